// internal/client/errors.go
package client

import (
	"errors"
	"fmt"
	"net/http"

	"customer-admin/internal/domain/customer"
)

var ErrNotFound = errors.New("customer not found")

// ConflictError is returned when mobile and/or email belong to another customer.
type ConflictError struct {
	Reason  customer.ConflictReason
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Reason.Message()
}

// StatusError is any other non-2xx reply.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
	Fields  map[string]string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// AsConflict reports the conflict reason carried by err.
func AsConflict(err error) (customer.ConflictReason, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Reason, true
	}
	return customer.ConflictNone, false
}
