package diagram

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/smallnest/agenttools/tool"
)

// Node is one flowchart or graph node.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Shape string `json:"shape,omitempty"`
}

// Edge connects two nodes.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label,omitempty"`
	Dashed bool   `json:"dashed,omitempty"`
}

var flowDirections = map[string]bool{"TD": true, "TB": true, "LR": true, "RL": true, "BT": true}

var idCleaner = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// sanitizeID rewrites an id so Mermaid parses it as a bare identifier.
func sanitizeID(id string) (string, error) {
	clean := idCleaner.ReplaceAllString(strings.TrimSpace(id), "_")
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "", tool.Invalidf("id", "%q leaves nothing usable", id)
	}
	return clean, nil
}

func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	return strings.ReplaceAll(label, "\n", " ")
}

// Flowchart emits Mermaid flowchart source. Nodes are sorted by id for
// deterministic output; edges keep their given order.
func Flowchart(direction string, nodes []Node, edges []Edge) (string, error) {
	if direction == "" {
		direction = "TD"
	}
	if !flowDirections[direction] {
		return "", tool.Invalidf("direction", "unknown direction %q (TD, TB, LR, RL, BT)", direction)
	}
	if len(nodes) == 0 && len(edges) == 0 {
		return "", tool.Invalidf("nodes", "nothing to draw")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))

	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, node := range sorted {
		id, err := sanitizeID(node.ID)
		if err != nil {
			return "", err
		}
		label := node.Label
		if label == "" {
			label = node.ID
		}
		shaped, err := shapeNode(id, escapeLabel(label), node.Shape)
		if err != nil {
			return "", err
		}
		sb.WriteString("    " + shaped + "\n")
	}

	for _, edge := range edges {
		line, err := flowEdge(edge)
		if err != nil {
			return "", err
		}
		sb.WriteString("    " + line + "\n")
	}
	return sb.String(), nil
}

func shapeNode(id, label, shape string) (string, error) {
	switch shape {
	case "", "rect":
		return fmt.Sprintf(`%s["%s"]`, id, label), nil
	case "round":
		return fmt.Sprintf(`%s("%s")`, id, label), nil
	case "stadium":
		return fmt.Sprintf(`%s(["%s"])`, id, label), nil
	case "diamond":
		return fmt.Sprintf(`%s{"%s"}`, id, label), nil
	case "circle":
		return fmt.Sprintf(`%s(("%s"))`, id, label), nil
	default:
		return "", tool.Invalidf("shape", "unknown shape %q (rect, round, stadium, diamond, circle)", shape)
	}
}

func flowEdge(edge Edge) (string, error) {
	from, err := sanitizeID(edge.From)
	if err != nil {
		return "", tool.Invalidf("from", "bad edge source %q", edge.From)
	}
	to, err := sanitizeID(edge.To)
	if err != nil {
		return "", tool.Invalidf("to", "bad edge target %q", edge.To)
	}

	label := strings.ReplaceAll(escapeLabel(edge.Label), "|", "/")
	switch {
	case edge.Dashed && label != "":
		return fmt.Sprintf("%s -. %s .-> %s", from, label, to), nil
	case edge.Dashed:
		return fmt.Sprintf("%s -.-> %s", from, to), nil
	case label != "":
		return fmt.Sprintf("%s -->|%s| %s", from, label, to), nil
	default:
		return fmt.Sprintf("%s --> %s", from, to), nil
	}
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Pie emits Mermaid pie chart source. Slice order is kept; Mermaid orders
// the legend itself.
func Pie(title string, slices []Slice, showData bool) (string, error) {
	if len(slices) == 0 {
		return "", tool.Invalidf("slices", "need at least one slice")
	}

	var sb strings.Builder
	if showData {
		sb.WriteString("pie showData\n")
	} else {
		sb.WriteString("pie\n")
	}
	if title != "" {
		sb.WriteString(fmt.Sprintf("    title %s\n", escapeLabel(title)))
	}
	for _, slice := range slices {
		if slice.Label == "" {
			return "", tool.Invalidf("label", "slice labels must not be empty")
		}
		if slice.Value < 0 {
			return "", tool.Invalidf("value", "slice %q is negative", slice.Label)
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %s\n",
			escapeLabel(slice.Label), strconv.FormatFloat(slice.Value, 'f', -1, 64)))
	}
	return sb.String(), nil
}

// Message is one arrow of a sequence diagram.
type Message struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Text   string `json:"text,omitempty"`
	Dashed bool   `json:"dashed,omitempty"`
}

// Sequence emits Mermaid sequence diagram source. Declared participants
// keep their given order, which fixes the column order; senders and
// receivers missing from the list are appended in first-use order.
func Sequence(participants []string, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", tool.Invalidf("messages", "need at least one message")
	}
	for _, m := range messages {
		if strings.TrimSpace(m.Text) == "" {
			return "", tool.Invalidf("text", "messages need text")
		}
	}

	order := make([]string, 0, len(participants))
	seen := map[string]bool{}
	add := func(name string) error {
		id, err := sanitizeID(name)
		if err != nil {
			return err
		}
		if !seen[id] {
			seen[id] = true
			order = append(order, name)
		}
		return nil
	}
	for _, p := range participants {
		if err := add(p); err != nil {
			return "", err
		}
	}
	for _, m := range messages {
		if err := add(m.From); err != nil {
			return "", err
		}
		if err := add(m.To); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString("sequenceDiagram\n")
	for _, name := range order {
		id, _ := sanitizeID(name)
		if id == name {
			sb.WriteString(fmt.Sprintf("    participant %s\n", id))
		} else {
			sb.WriteString(fmt.Sprintf("    participant %s as %s\n", id, escapeLabel(name)))
		}
	}
	for _, m := range messages {
		from, _ := sanitizeID(m.From)
		to, _ := sanitizeID(m.To)
		arrow := "->>"
		if m.Dashed {
			arrow = "-->>"
		}
		sb.WriteString(fmt.Sprintf("    %s%s%s: %s\n", from, arrow, to, escapeLabel(m.Text)))
	}
	return sb.String(), nil
}
