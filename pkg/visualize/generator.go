package visualize

import (
	"fmt"

	"github.com/emicklei/dot"
)

// Generator renders a graph as text.
type Generator interface {
	Generate(g *Graph) string
}

// NewGenerator returns the generator of a diagram format: "dot" or "mermaid".
func NewGenerator(format string) (Generator, error) {
	switch format {
	case "dot":
		return &DotGenerator{}, nil
	case "mermaid":
		return &MermaidGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown diagram format %q", format)
}

// DotGenerator generates Graphviz DOT diagrams.
type DotGenerator struct{}

func (d *DotGenerator) Generate(g *Graph) string {
	return BuildDotGraph(g).String()
}

// MermaidGenerator generates Mermaid flowchart diagrams.
type MermaidGenerator struct{}

func (m *MermaidGenerator) Generate(g *Graph) string {
	mermaid := dot.MermaidFlowchart(BuildDotGraph(g), dot.MermaidLeftToRight)
	return fmt.Sprintf("```mermaid\n%s\n```\n", mermaid)
}
