// internal/service/customer_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/model"
	"github.com/unclebandit/customer-admin/internal/queue"
	"github.com/unclebandit/customer-admin/internal/repository"
)

const (
	DefaultCreatedTemplate = "Customer {name} created successfully"
	DefaultDeletedTemplate = "Customer {id} deleted successfully"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Queue        queue.Queue
	Log          *zap.Logger

	CreatedTemplate string
	DeletedTemplate string

	// Now defaults to time.Now
	Now func() time.Time
}

// WantsSocialMedia reports whether the includes query value names the
// socialMedia relation. Multiple relations are comma separated.
func WantsSocialMedia(includes string) bool {
	for _, rel := range strings.Split(includes, ",") {
		if strings.TrimSpace(rel) == model.IncludeSocialMedia {
			return true
		}
	}
	return false
}

// ListCustomers returns the whole collection, no pagination.
func (s *CustomerService) ListCustomers(ctx context.Context, includes string) ([]model.Customer, error) {
	return s.CustomerRepo.List(ctx, WantsSocialMedia(includes))
}

// CreateCustomer stores the customer with every handle it was given,
// blank ones included.
func (s *CustomerService) CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (*model.MessageResponse, error) {
	c := &model.Customer{
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		SocialMedia: append([]model.SocialMedia{}, req.SocialMedia...),
	}
	for i := range c.SocialMedia {
		c.SocialMedia[i].ID = 0
	}

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.publish(model.CustomerCreated, c.ID)

	tmpl := s.CreatedTemplate
	if tmpl == "" {
		tmpl = DefaultCreatedTemplate
	}
	return &model.MessageResponse{
		Message: RenderTemplate(tmpl, map[string]string{"name": c.Name, "id": fmt.Sprint(c.ID)}),
		Data:    c,
	}, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) (*model.MessageResponse, error) {
	if err := s.CustomerRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete customer %d: %w", id, err)
	}

	s.publish(model.CustomerDeleted, id)

	tmpl := s.DeletedTemplate
	if tmpl == "" {
		tmpl = DefaultDeletedTemplate
	}
	return &model.MessageResponse{
		Message: RenderTemplate(tmpl, map[string]string{"id": fmt.Sprint(id)}),
	}, nil
}

// publish never fails the request; the event is only logged when the
// queue rejects it.
func (s *CustomerService) publish(eventType string, customerID int) {
	if s.Queue == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ev := model.CustomerEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		CustomerID: customerID,
		OccurredAt: now().UTC(),
	}
	if err := s.Queue.Publish(queue.CustomerEventsTopic, ev); err != nil {
		s.logger().Warn("failed to enqueue customer event",
			zap.String("type", eventType),
			zap.Int("customer_id", customerID),
			zap.Error(err),
		)
	}
}

func (s *CustomerService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
