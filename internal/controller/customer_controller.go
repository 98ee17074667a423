// internal/controller/customer_controller.go
package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/customer-admin/internal/errors"
	"github.com/unclebandit/customer-admin/internal/model"
)

// CustomerService is the subset of service.CustomerService the
// controller calls.
type CustomerService interface {
	ListCustomers(ctx context.Context, includes string) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (*model.MessageResponse, error)
	DeleteCustomer(ctx context.Context, id int) (*model.MessageResponse, error)
}

type CustomerController struct {
	CustomerService CustomerService
	Log             *zap.Logger
}

// Routes mounts the customer collection on r.
func (c *CustomerController) Routes(r chi.Router) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", c.ListCustomers)
		r.Post("/", c.CreateCustomer)
		r.Delete("/{id}", c.DeleteCustomer)
	})
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.ListCustomers(r.Context(), r.URL.Query().Get("includes"))
	if err != nil {
		c.Log.Error("list customers failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body model.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	resp, err := c.CustomerService.CreateCustomer(r.Context(), body)
	if err != nil {
		c.Log.Error("create customer failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	resp, err := c.CustomerService.DeleteCustomer(r.Context(), id)
	if err != nil {
		if appErrors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		c.Log.Error("delete customer failed", zap.Int("customer_id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
