package form3

import (
	"fmt"
	"runtime/debug"
)

// ShapeError is returned when a primitive rejects its dimensions. It
// wraps the error the primitive panicked with, if any.
type ShapeError struct {
	// Shape names the primitive that failed.
	Shape    string
	panicObj interface{}
	stack    string
}

func (s *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v", s.Shape, s.panicObj)
}

// Unwrap returns the recovered value if it was an error.
func (s *ShapeError) Unwrap() error {
	err, _ := s.panicObj.(error)
	return err
}

// Stack returns the stack trace of the panic.
func (s *ShapeError) Stack() string { return s.stack }

// catch turns a panic of the shape primitive into a *ShapeError in err.
// It must be deferred directly.
func catch(shape string, err *error) {
	if a := recover(); a != nil {
		*err = &ShapeError{
			Shape:    shape,
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}
