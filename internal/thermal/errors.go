package thermal

import (
	"errors"
	"fmt"
)

// Input shape failures. Match them with errors.Is.
var (
	ErrEmptyImage        = errors.New("image has zero area")
	ErrDimensionMismatch = errors.New("image dimensions do not match")
	ErrMaskMismatch      = errors.New("validity mask dimensions do not match")
)

// ShapeError reports which input precondition a comparison failed.
//
// Shape errors are not recoverable for the comparison that produced them;
// callers processing a batch should skip the pair and continue.
type ShapeError struct {
	// Precondition names the check that failed, e.g. "baseline matches candidate".
	Precondition string

	// Want and Got are the expected and actual dimensions, when relevant.
	Want, Got [2]int

	Err error
}

func (e *ShapeError) Error() string {
	if e.Want == ([2]int{}) && e.Got == ([2]int{}) {
		return fmt.Sprintf("%s: %v", e.Precondition, e.Err)
	}
	return fmt.Sprintf("%s: %v (want %dx%d, got %dx%d)",
		e.Precondition, e.Err, e.Want[0], e.Want[1], e.Got[0], e.Got[1])
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
