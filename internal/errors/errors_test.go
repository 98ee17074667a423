package appErrors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/customer-admin/internal/errors"
)

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("delete: %w", appErrors.NewCustomerNotFound(7))

	assert.True(t, appErrors.IsNotFound(err))
	assert.False(t, appErrors.IsNotFound(fmt.Errorf("boom")))
	assert.Equal(t, "delete: customer with ID 7 not found", err.Error())
}

func TestAPIErrorMessage(t *testing.T) {
	withBody := &appErrors.APIError{Method: http.MethodPost, Path: "/api/customers", StatusCode: 500, Body: "db down"}
	assert.Equal(t, "POST /api/customers: 500 db down", withBody.Error())

	noBody := &appErrors.APIError{Method: http.MethodGet, Path: "/api/customers", StatusCode: 404}
	assert.Equal(t, "GET /api/customers: 404 Not Found", noBody.Error())
}
