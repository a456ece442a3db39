// Package trace rebuilds the decision graph of a formatting pass from the
// nodes a writer.Recorder saw, marking which branches were committed and
// which were rolled back.
package trace

import (
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

// Node is one allocated output graph node.
type Node struct {
	ID        uint32 `json:"id"`
	Prev      uint32 `json:"prev,omitempty"`
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	Count     uint8  `json:"count,omitempty"`
	Committed bool   `json:"committed"`
}

// Graph is the full allocation history of a pass.
type Graph struct {
	// Nodes are listed in allocation order.
	Nodes []Node `json:"nodes"`

	// Tail is the final committed node, 0 for empty output.
	Tail uint32 `json:"tail"`

	// Committed counts nodes on the path from Tail to the root.
	Committed int `json:"committed"`

	// Abandoned counts nodes that no longer contribute to the output.
	Abandoned int `json:"abandoned"`
}

// Build assembles a Graph from the node ids recorded during a pass and the
// writer's final tail.
func Build(arena *writer.Arena, ids []writer.NodeID, tail writer.NodeID) *Graph {
	committed := make(map[writer.NodeID]bool)
	for id := tail; id.Valid(); {
		committed[id] = true
		_, id = arena.Node(id)
	}

	graph := &Graph{
		Nodes: make([]Node, 0, len(ids)),
		Tail:  uint32(tail),
	}

	for _, id := range ids {
		item, prev := arena.Node(id)
		n := Node{
			ID:        uint32(id),
			Prev:      uint32(prev),
			Kind:      item.Kind.String(),
			Committed: committed[id],
		}
		switch item.Kind {
		case writer.KindText:
			if item.Text != nil {
				n.Text = item.Text.Value
			}
		case writer.KindIndent:
			n.Count = item.Count
		}

		if n.Committed {
			graph.Committed++
		} else {
			graph.Abandoned++
		}
		graph.Nodes = append(graph.Nodes, n)
	}

	return graph
}

// Label returns a short description of the node's item.
func (n Node) Label() string {
	switch n.Kind {
	case "text":
		return n.Text
	case "indent":
		return writer.IndentItem(n.Count).String()
	default:
		return n.Kind
	}
}
