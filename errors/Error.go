package errors

import (
	"errors"
	"fmt"
	"strings"
)

type Error struct {
	code       ERR
	message    string
	wrappedErr error
}

type Interface interface {
	Error() string
	Is(target error) bool
	As(target interface{}) bool
	Unwrap() error

	Code() ERR
	Message() string
	WrappedErr() error
}

func (e *Error) Error() string {
	// sentinel values may be nil pointers
	if e == nil {
		return "<nil>"
	}

	s := fmt.Sprintf("Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)
	if e.wrappedErr != nil {
		s += fmt.Sprintf(", Wrapped err: %v", e.wrappedErr)
	}

	return s
}

// Is reports whether e or any *Error it wraps has the code of target.
// Targets that are not *Error are left to the standard unwrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	for cur := e; cur != nil; {
		if cur.code == t.code {
			return true
		}

		next, ok := cur.wrappedErr.(*Error)
		if !ok {
			return false
		}

		cur = next
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	return e.Unwrap()
}

// New creates an *Error. A trailing error in params is wrapped instead of
// being used as a format argument.
func New(code ERR, message string, params ...interface{}) *Error {
	e := &Error{code: code}

	if n := len(params); n > 0 {
		if err, ok := params[n-1].(error); ok && err != nil {
			e.wrappedErr = err
			params = params[:n-1]
		}
	}

	switch {
	case !code.valid():
		e.message = "invalid error code"
	case len(params) > 0:
		e.message = fmt.Sprintf(message, params...)
	default:
		e.message = message
	}

	return e
}

// Join flattens the non-nil errors into one comma separated error.
func Join(errs ...error) error {
	parts := make([]string, 0, len(errs))

	for _, err := range errs {
		if err != nil {
			parts = append(parts, err.Error())
		}
	}

	if len(parts) == 0 {
		return nil
	}

	return errors.New(strings.Join(parts, ", "))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
