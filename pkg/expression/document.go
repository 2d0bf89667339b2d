package expression

import (
	"context"

	"github.com/go-logr/logr"
	"sigs.k8s.io/yaml"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/operator"
)

// Document is a self-contained unit computation: a set of named arrays and an expression over
// them. Documents are written in YAML or JSON.
type Document struct {
	Arrays     map[string]*array.DataArray `json:"arrays,omitempty"`
	Expression Expression                  `json:"expression"`
}

// LoadDocument parses a YAML or JSON document.
func LoadDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, NewUnmarshalError("document", err.Error())
	}

	if len(doc.Expression.Op) == 0 {
		return nil, NewInvalidArgumentsError("document has no expression")
	}

	return doc, nil
}

// Evaluate evaluates the expression of the document. A nil dispatcher means the default one.
func (doc *Document) Evaluate(ctx context.Context, dispatcher *operator.Dispatcher, log logr.Logger) (any, error) {
	log.V(4).Info("evaluating document", "arrays", len(doc.Arrays),
		"expression", doc.Expression.String())

	return doc.Expression.Evaluate(EvalCtx{
		Arrays:     doc.Arrays,
		Dispatcher: dispatcher,
		Context:    ctx,
		Log:        log,
	})
}
