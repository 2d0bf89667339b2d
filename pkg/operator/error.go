package operator

import (
	"errors"
	"fmt"
)

var ErrInvalidOperator = errors.New("invalid operator")

type ErrOperator = error

func NewInvalidOperatorError(op string) ErrOperator {
	return fmt.Errorf("%w: %q", ErrInvalidOperator, op)
}
