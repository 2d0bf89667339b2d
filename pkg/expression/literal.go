package expression

import "fmt"

// NewLiteralExpression creates a new literal expression with the given argument.
func NewLiteralExpression(value any) (Expression, error) {
	op := ""
	switch value.(type) {
	case bool:
		op = "@bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		op = "@int"
	case string:
		op = "@string"
	case float32, float64:
		op = "@float"
	default:
		return Expression{}, fmt.Errorf("cannot create a literal expression from an "+
			"argument %#v", value)
	}

	return Expression{Op: op, Literal: value}, nil
}

// NewReferenceExpression creates an expression that evaluates to the named array.
func NewReferenceExpression(name string) Expression {
	return Expression{Op: "@string", Literal: RefPrefix + name}
}

// NewOpExpression creates an operator expression over a list of arguments.
func NewOpExpression(op string, args ...Expression) Expression {
	return Expression{Op: op, Arg: &Expression{Op: "@list", Literal: args}}
}

func (e *Expression) GetLiteralBool() (bool, error) {
	return AsBool(e.Literal)
}

func (e *Expression) GetLiteralInt() (int64, error) {
	return AsInt(e.Literal)
}

func (e *Expression) GetLiteralString() (string, error) {
	return AsString(e.Literal)
}

func (e *Expression) GetLiteralFloat() (float64, error) {
	return AsFloat(e.Literal)
}
