package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrAuthExpired = errors.New("session expired, please sign in again")
	ErrNoSession   = errors.New("no session")
	ErrQueueOff    = errors.New("retry queue is disabled")
)

// ValidationError is bad or missing input, detected before anything is sent upstream.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func NotFound(kind string, id fmt.Stringer) error {
	return errors.Wrapf(ErrNotFound, "%s %s", kind, id)
}

// TransientRequestError is a network or upstream failure; retrying the action may succeed.
type TransientRequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransientRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientRequestError) Unwrap() error { return e.Err }

// PartialFailureError reports a return that went through while some of its fines did not.
type PartialFailureError struct {
	Failed int
	Total  int
	Causes []error
}

func (e *PartialFailureError) Error() string {
	msgs := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("returned, but %d of %d fines failed: %s", e.Failed, e.Total, strings.Join(msgs, "; "))
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsTransient(err error) bool {
	var t *TransientRequestError
	return errors.As(err, &t)
}
