package units

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the unit-aware operations matches exactly one of these
// with errors.Is.
var (
	ErrUnitsNotFound   = errors.New("units not found")
	ErrUnitsNotValid   = errors.New("units not valid")
	ErrUnitsExist      = errors.New("units already exist")
	ErrUnitsConversion = errors.New("units conversion failed")
)

type ErrNotFound = error

func NewNotFoundError(content string) ErrNotFound {
	return fmt.Errorf("%w: %s", ErrUnitsNotFound, content)
}

type ErrNotValid = error

func NewNotValidError(content string, err error) ErrNotValid {
	if err == nil {
		return fmt.Errorf("%w: %q", ErrUnitsNotValid, content)
	}
	return fmt.Errorf("%w: %q: %v", ErrUnitsNotValid, content, err)
}

type ErrExist = error

func NewExistError(content string) ErrExist {
	return fmt.Errorf("%w: %s", ErrUnitsExist, content)
}

// NewConversionError re-raises any lower-level failure as a conversion error. The cause is kept
// in the message only, so that callers see a single error kind.
type ErrConversion = error

func NewConversionError(err error) ErrConversion {
	if errors.Is(err, ErrUnitsConversion) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnitsConversion, err)
}
