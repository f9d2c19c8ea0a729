package nsid

import (
	"errors"
	"fmt"
)

var (
	// ErrType reports an object of the wrong kind.
	ErrType = errors.New("nsid: wrong object type")
	// ErrShape reports a rank, length or dimension count mismatch.
	ErrShape = errors.New("nsid: shape mismatch")
	// ErrKey reports axis keys that are not exactly 0..rank-1.
	ErrKey = errors.New("nsid: invalid axis keys")
	// ErrDuplicateName reports two dimension scales sharing a name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate dimension name", ErrKey)
	// ErrContent reports a scale that fails validation.
	ErrContent = errors.New("nsid: invalid dimension scale")
)

// AxisError carries the violations found on one axis.
type AxisError struct {
	Axis       int
	Violations Violations
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("dimension %d: %s", e.Axis, e.Violations)
}

func (e *AxisError) Unwrap() error {
	return ErrContent
}
