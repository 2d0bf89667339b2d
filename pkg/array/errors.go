package array

import (
	"fmt"
)

type ErrShape = error

func NewShapeError(format string, args ...any) ErrShape {
	return fmt.Errorf("shape mismatch: %s", fmt.Sprintf(format, args...))
}

type ErrDimension = error

func NewDimensionError(dim string, err error) ErrDimension {
	return fmt.Errorf("invalid dimension %q: %w", dim, err)
}

type ErrBlock = error

func NewBlockError(index int, err error) ErrBlock {
	return fmt.Errorf("failed to process block %d: %w", index, err)
}
