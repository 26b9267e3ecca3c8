// Package diagram generates diagram source text: Mermaid flowcharts, pie
// charts and sequence diagrams, plus Graphviz DOT graphs.
//
// Generation is text-only. The output is source an agent can embed in a
// markdown fence or hand to a renderer; nothing here rasterizes.
//
// Output is deterministic: flowchart and DOT nodes are sorted by id, and
// edges, slices and messages keep their given order.
//
//	src, _ := diagram.Flowchart("LR",
//		[]diagram.Node{{ID: "in", Label: "Input"}, {ID: "out", Label: "Output", Shape: "stadium"}},
//		[]diagram.Edge{{From: "in", To: "out", Label: "process"}},
//	)
//
//	// flowchart LR
//	//     in["Input"]
//	//     out(["Output"])
//	//     in -->|process| out
package diagram
