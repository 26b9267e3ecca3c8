package diagram

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "diagram"

// Tools returns the diagram source generation tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		flowchartTool(),
		pieTool(),
		sequenceTool(),
		dotTool(),
	}
}

func nodeProp() *tool.Property {
	return tool.ObjectProp("One node.", map[string]*tool.Property{
		"id":    tool.StringProp("Node identifier."),
		"label": tool.StringProp("Display label. Defaults to the id."),
		"shape": tool.EnumProp("Node shape.", "rect", "round", "stadium", "diamond", "circle"),
	})
}

func edgeProp() *tool.Property {
	return tool.ObjectProp("One edge.", map[string]*tool.Property{
		"from":   tool.StringProp("Source node id."),
		"to":     tool.StringProp("Target node id."),
		"label":  tool.StringProp("Edge label."),
		"dashed": tool.BoolProp("Draw the edge dashed."),
	})
}

func flowchartTool() *tool.Definition {
	type params struct {
		Direction string `json:"direction"`
		Nodes     []Node `json:"nodes"`
		Edges     []Edge `json:"edges"`
	}
	return tool.New("mermaid_flowchart",
		"Generates Mermaid flowchart source from nodes and edges, ready to embed in markdown.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := Flowchart(p.Direction, p.Nodes, p.Edges)
			if err != nil {
				return nil, err
			}
			return map[string]string{"mermaid": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("mermaid", "flowchart", "graph"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"direction": tool.EnumProp("Flow direction. Defaults to TD.", "TD", "TB", "LR", "RL", "BT"),
			"nodes":     tool.ArrayProp("Flowchart nodes.", nodeProp()),
			"edges":     tool.ArrayProp("Flowchart edges.", edgeProp()),
		}, "nodes")),
	)
}

func pieTool() *tool.Definition {
	type params struct {
		Title    string  `json:"title"`
		Slices   []Slice `json:"slices"`
		ShowData bool    `json:"show_data"`
	}
	return tool.New("mermaid_pie",
		"Generates Mermaid pie chart source from labeled values.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := Pie(p.Title, p.Slices, p.ShowData)
			if err != nil {
				return nil, err
			}
			return map[string]string{"mermaid": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("mermaid", "pie", "chart"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"title": tool.StringProp("Chart title."),
			"slices": tool.ArrayProp("Pie slices.", tool.ObjectProp("One slice.", map[string]*tool.Property{
				"label": tool.StringProp("Slice label."),
				"value": tool.NumberProp("Slice value, at least 0."),
			})),
			"show_data": tool.BoolProp("Show values next to the legend."),
		}, "slices")),
	)
}

func sequenceTool() *tool.Definition {
	type params struct {
		Participants []string  `json:"participants"`
		Messages     []Message `json:"messages"`
	}
	return tool.New("mermaid_sequence",
		"Generates Mermaid sequence diagram source. Participant order fixes the column order.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := Sequence(p.Participants, p.Messages)
			if err != nil {
				return nil, err
			}
			return map[string]string{"mermaid": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("mermaid", "sequence"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"participants": tool.ArrayProp("Participants in column order.", tool.StringProp("Participant name.")),
			"messages": tool.ArrayProp("Messages in order.", tool.ObjectProp("One message.", map[string]*tool.Property{
				"from":   tool.StringProp("Sender."),
				"to":     tool.StringProp("Receiver."),
				"text":   tool.StringProp("Message text."),
				"dashed": tool.BoolProp("Draw a dashed reply arrow."),
			})),
		}, "messages")),
	)
}

func dotTool() *tool.Definition {
	type params struct {
		Name       string `json:"name"`
		Undirected bool   `json:"undirected"`
		RankDir    string `json:"rankdir"`
		NodeShape  string `json:"node_shape"`
		Nodes      []Node `json:"nodes"`
		Edges      []Edge `json:"edges"`
	}
	return tool.New("dot_graph",
		"Generates Graphviz DOT source from nodes and edges.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := Dot(DotOptions{
				Name:       p.Name,
				Undirected: p.Undirected,
				RankDir:    p.RankDir,
				NodeShape:  p.NodeShape,
			}, p.Nodes, p.Edges)
			if err != nil {
				return nil, err
			}
			return map[string]string{"dot": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("dot", "graphviz", "graph"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"name":       tool.StringProp(`Graph name. Defaults to "G".`),
			"undirected": tool.BoolProp("Emit an undirected graph."),
			"rankdir":    tool.EnumProp("Layout direction. Defaults to TB.", "TB", "LR", "BT", "RL"),
			"node_shape": tool.EnumProp("Default node shape. Defaults to box.", "box", "ellipse", "circle", "diamond", "plaintext"),
			"nodes":      tool.ArrayProp("Graph nodes.", nodeProp()),
			"edges":      tool.ArrayProp("Graph edges.", edgeProp()),
		}, "nodes")),
	)
}
