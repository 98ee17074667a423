// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCustomerNotFound is returned when a customer id does not exist
type ErrCustomerNotFound struct {
	CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id int) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// IsNotFound reports whether err wraps an ErrCustomerNotFound.
func IsNotFound(err error) bool {
	var nf *ErrCustomerNotFound
	return errors.As(err, &nf)
}

// APIError is a non-2xx answer from the customer API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Body != "" {
		text = e.Body
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, text)
}
