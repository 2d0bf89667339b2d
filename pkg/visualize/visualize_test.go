package visualize

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/json"

	"github.com/l7mp/xunits/pkg/expression"
)

func TestVisualize(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Visualize")
}

func parse(jsonData string) *expression.Expression {
	var exp expression.Expression
	Expect(json.Unmarshal([]byte(jsonData), &exp)).To(Succeed())
	return &exp
}

var _ = Describe("Graph", func() {
	It("should build the graph of an expression", func() {
		g := BuildGraph("velocity", parse(`{"@to": [{"@truediv": ["$distance", {"@quantity": [2, "s"]}]}, "m s-1"]}`))
		Expect(g.Name).To(Equal("velocity"))
		Expect(g.Nodes).To(HaveLen(5))
		Expect(g.Edges).To(HaveLen(4))

		Expect(g.Nodes[0]).To(Equal(Node{ID: "n0", Label: "@to", Kind: OperatorNode}))
		Expect(g.Nodes[1]).To(Equal(Node{ID: "n1", Label: "@truediv", Kind: OperatorNode}))
		Expect(g.Nodes[2]).To(Equal(Node{ID: "n2", Label: "$distance", Kind: ReferenceNode}))
		Expect(g.Nodes[3].Kind).To(Equal(ConstructorNode))
		Expect(g.Nodes[4]).To(Equal(Node{ID: "n4", Label: `"m s-1"`, Kind: LiteralNode}))

		Expect(g.Edges).To(ContainElement(Edge{From: "n1", To: "n0", Label: "0"}))
		Expect(g.Edges).To(ContainElement(Edge{From: "n4", To: "n0", Label: "1"}))
		Expect(g.Roots()).To(Equal([]Node{g.Nodes[0]}))
	})

	It("should label single arguments and map keys", func() {
		g := BuildGraph("", parse(`{"@units": {"a": "$x", "b": 1}}`))
		Expect(g.Nodes).To(HaveLen(4))
		Expect(g.Edges).To(ConsistOf(
			Edge{From: "n1", To: "n0"},
			Edge{From: "n2", To: "n1", Label: "a"},
			Edge{From: "n3", To: "n1", Label: "b"},
		))
	})
})

var _ = Describe("Generators", func() {
	var g *Graph

	BeforeEach(func() {
		g = BuildGraph("sum", parse(`{"@add": ["$km", "$mm"]}`))
	})

	It("should generate a DOT diagram", func() {
		gen, err := NewGenerator("dot")
		Expect(err).NotTo(HaveOccurred())
		out := gen.Generate(g)
		Expect(out).To(ContainSubstring("digraph"))
		Expect(out).To(ContainSubstring("@add"))
		Expect(out).To(ContainSubstring("$km"))
	})

	It("should generate a Mermaid diagram", func() {
		gen, err := NewGenerator("mermaid")
		Expect(err).NotTo(HaveOccurred())
		out := gen.Generate(g)
		Expect(out).To(HavePrefix("```mermaid\n"))
		Expect(out).To(ContainSubstring("flowchart LR"))
	})

	It("should reject unknown formats", func() {
		_, err := NewGenerator("svg")
		Expect(err).To(HaveOccurred())
	})
})
