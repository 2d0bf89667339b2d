// Package visualize renders expression trees as diagrams.
package visualize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/emicklei/dot"

	"github.com/l7mp/xunits/pkg/expression"
)

// NodeKind is the role of a node in an expression graph.
type NodeKind string

const (
	OperatorNode    NodeKind = "operator"
	ReferenceNode   NodeKind = "reference"
	ConstructorNode NodeKind = "constructor"
	LiteralNode     NodeKind = "literal"
)

// Graph is the visualization graph of an expression.
type Graph struct {
	Name  string
	Nodes []Node
	Edges []Edge
}

// Node is an expression node.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// Edge connects an argument to the operator that consumes it.
type Edge struct {
	From, To string
	Label    string
}

// BuildGraph constructs a visualization graph from an expression.
func BuildGraph(name string, e *expression.Expression) *Graph {
	g := &Graph{Name: name}
	g.add(e)
	return g
}

// add adds the subtree of an expression and returns the ID of its root.
func (g *Graph) add(e *expression.Expression) string {
	idx := len(g.Nodes)
	id := fmt.Sprintf("n%d", idx)
	node := Node{ID: id, Label: e.String()}
	g.Nodes = append(g.Nodes, node)

	switch e.Op {
	case "@bool", "@int", "@float":
		node.Kind = LiteralNode

	case "@string":
		node.Kind = LiteralNode
		if s, err := e.GetLiteralString(); err == nil && strings.HasPrefix(s, expression.RefPrefix) {
			node.Kind, node.Label = ReferenceNode, s
		}

	case "@array", "@quantity":
		node.Kind = ConstructorNode

	case "@list":
		node.Kind, node.Label = OperatorNode, "@list"
		if args, ok := e.Literal.([]expression.Expression); ok {
			for i := range args {
				g.Edges = append(g.Edges, Edge{From: g.add(&args[i]), To: id, Label: fmt.Sprintf("%d", i)})
			}
		}

	case "@dict":
		node.Kind, node.Label = OperatorNode, "@dict"
		if m, ok := e.Literal.(map[string]expression.Expression); ok {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				v := m[k]
				g.Edges = append(g.Edges, Edge{From: g.add(&v), To: id, Label: k})
			}
		}

	default:
		node.Kind, node.Label = OperatorNode, e.Op
		if e.Arg != nil {
			args, err := expression.AsExpOrExpList(e.Arg)
			if err == nil {
				for i := range args {
					label := ""
					if len(args) > 1 {
						label = fmt.Sprintf("%d", i)
					}
					g.Edges = append(g.Edges, Edge{From: g.add(&args[i]), To: id, Label: label})
				}
			}
		}
	}

	g.Nodes[idx] = node
	return id
}

// Roots returns the nodes that are not arguments of another node.
func (g *Graph) Roots() []Node {
	args := map[string]bool{}
	for _, e := range g.Edges {
		args[e.From] = true
	}

	ret := []Node{}
	for _, n := range g.Nodes {
		if !args[n.ID] {
			ret = append(ret, n)
		}
	}
	return ret
}

// BuildDotGraph creates a dot.Graph from the visualization graph.
// This unified graph can then be rendered in different formats (DOT, Mermaid, etc.).
func BuildDotGraph(g *Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR") // Left to right layout.
	graph.Attr("label", g.Name)
	graph.Attr("labelloc", "t") // Label at top.
	graph.Attr("fontsize", "16")

	nodes := make(map[string]dot.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		node := graph.Node(n.ID).Attr("label", n.Label).Attr("fontname", "helvetica")
		switch n.Kind {
		case OperatorNode:
			node.Attr("shape", "box").
				Attr("style", "filled,rounded").
				Attr("fillcolor", "lightblue").
				Attr("color", "darkblue").
				Attr("penwidth", "2")
		case ReferenceNode:
			node.Attr("shape", "ellipse").
				Attr("style", "filled").
				Attr("fillcolor", "lightgreen")
		case ConstructorNode:
			node.Attr("shape", "box").
				Attr("style", "filled").
				Attr("fillcolor", "lightcyan")
		default:
			node.Attr("shape", "ellipse").
				Attr("style", "filled").
				Attr("fillcolor", "lightyellow")
		}
		nodes[n.ID] = node
	}

	for _, e := range g.Edges {
		edge := graph.Edge(nodes[e.From], nodes[e.To]).Attr("fontname", "helvetica").Attr("fontsize", "10")
		if e.Label != "" {
			edge.Attr("label", e.Label)
		}
	}

	return graph
}
