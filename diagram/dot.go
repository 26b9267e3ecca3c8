package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smallnest/agenttools/tool"
)

// DotOptions controls Dot.
type DotOptions struct {
	// Name is the graph name. Empty means "G".
	Name string
	// Undirected emits a graph with -- edges instead of a digraph.
	Undirected bool
	// RankDir is the layout direction: TB, LR, BT or RL. Empty means TB.
	RankDir string
	// NodeShape is the default node shape. Empty means box.
	NodeShape string
}

var (
	dotRankDirs = map[string]bool{"TB": true, "LR": true, "BT": true, "RL": true}
	dotShapes   = map[string]bool{"box": true, "ellipse": true, "circle": true, "diamond": true, "plaintext": true}
)

// Dot emits Graphviz DOT source. Nodes are sorted by id for deterministic
// output and all identifiers are quoted, so ids may contain spaces.
func Dot(opts DotOptions, nodes []Node, edges []Edge) (string, error) {
	name := opts.Name
	if name == "" {
		name = "G"
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}
	if !dotRankDirs[rankdir] {
		return "", tool.Invalidf("rankdir", "unknown rankdir %q (TB, LR, BT, RL)", opts.RankDir)
	}
	shape := opts.NodeShape
	if shape == "" {
		shape = "box"
	}
	if !dotShapes[shape] {
		return "", tool.Invalidf("node_shape", "unknown shape %q (box, ellipse, circle, diamond, plaintext)", opts.NodeShape)
	}
	if len(nodes) == 0 && len(edges) == 0 {
		return "", tool.Invalidf("nodes", "nothing to draw")
	}

	keyword, arrow := "digraph", "->"
	if opts.Undirected {
		keyword, arrow = "graph", "--"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s {\n", keyword, dotQuote(name)))
	sb.WriteString(fmt.Sprintf("    rankdir=%s;\n", rankdir))
	sb.WriteString(fmt.Sprintf("    node [shape=%s];\n", shape))

	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, node := range sorted {
		if node.ID == "" {
			return "", tool.Invalidf("id", "node ids must not be empty")
		}
		attrs := []string{}
		if node.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%s", dotQuote(node.Label)))
		}
		if node.Shape != "" {
			if !dotShapes[node.Shape] {
				return "", tool.Invalidf("shape", "unknown shape %q on node %q", node.Shape, node.ID)
			}
			attrs = append(attrs, fmt.Sprintf("shape=%s", node.Shape))
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("    %s [%s];\n", dotQuote(node.ID), strings.Join(attrs, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("    %s;\n", dotQuote(node.ID)))
		}
	}

	for _, edge := range edges {
		if edge.From == "" || edge.To == "" {
			return "", tool.Invalidf("edges", "edge endpoints must not be empty")
		}
		attrs := []string{}
		if edge.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%s", dotQuote(edge.Label)))
		}
		if edge.Dashed {
			attrs = append(attrs, "style=dashed")
		}
		line := fmt.Sprintf("    %s %s %s", dotQuote(edge.From), arrow, dotQuote(edge.To))
		if len(attrs) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(attrs, ", "))
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
