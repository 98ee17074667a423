package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appErrors "github.com/unclebandit/customer-admin/internal/errors"
	"github.com/unclebandit/customer-admin/internal/model"
	"github.com/unclebandit/customer-admin/internal/service"
)

// Mock repositories
type MockCustomerRepo struct {
	customers  []model.Customer
	lastCreate *model.Customer
	withSM     bool
	createErr  error
	deleteErr  error
}

func (m *MockCustomerRepo) List(ctx context.Context, withSocialMedia bool) ([]model.Customer, error) {
	m.withSM = withSocialMedia
	return m.customers, nil
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = 42
	m.lastCreate = c
	return nil
}

func (m *MockCustomerRepo) Delete(ctx context.Context, id int) error {
	return m.deleteErr
}

type MockQueue struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (q *MockQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, payload)
	return nil
}

func (q *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

func TestWantsSocialMedia(t *testing.T) {
	assert.True(t, service.WantsSocialMedia("socialMedia"))
	assert.True(t, service.WantsSocialMedia("orders, socialMedia"))
	assert.False(t, service.WantsSocialMedia(""))
	assert.False(t, service.WantsSocialMedia("socialmedia"))
}

func TestListCustomers(t *testing.T) {
	repo := &MockCustomerRepo{customers: []model.Customer{{ID: 1, Name: "Alice"}}}
	svc := &service.CustomerService{CustomerRepo: repo}

	customers, err := svc.ListCustomers(context.Background(), "socialMedia")

	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.True(t, repo.withSM)
}

func TestCreateCustomer(t *testing.T) {
	repo := &MockCustomerRepo{}
	q := &MockQueue{}
	fixed := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	svc := &service.CustomerService{CustomerRepo: repo, Queue: q, Now: func() time.Time { return fixed }}

	req := model.CreateCustomerRequest{
		Name:        "A",
		Email:       "a@x.com",
		Description: "d",
		SocialMedia: []model.SocialMedia{{SocialMediaName: "X", Username: "u"}, {}},
	}
	resp, err := svc.CreateCustomer(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Customer A created successfully", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, 42, resp.Data.ID)

	// blank handles are stored verbatim
	require.Len(t, repo.lastCreate.SocialMedia, 2)
	assert.Equal(t, model.SocialMedia{}, repo.lastCreate.SocialMedia[1])

	require.Len(t, q.published, 1)
	ev := q.published[0].(model.CustomerEvent)
	assert.Equal(t, model.CustomerCreated, ev.Type)
	assert.Equal(t, 42, ev.CustomerID)
	assert.Equal(t, fixed, ev.OccurredAt)
	assert.NotEmpty(t, ev.EventID)
}

func TestCreateCustomerCustomTemplate(t *testing.T) {
	svc := &service.CustomerService{
		CustomerRepo:    &MockCustomerRepo{},
		CreatedTemplate: "Data {name} (#{id}) berhasil ditambahkan",
	}

	resp, err := svc.CreateCustomer(context.Background(), model.CreateCustomerRequest{Name: "Budi"})

	require.NoError(t, err)
	assert.Equal(t, "Data Budi (#42) berhasil ditambahkan", resp.Message)
}

func TestCreateCustomerRepoError(t *testing.T) {
	q := &MockQueue{}
	svc := &service.CustomerService{CustomerRepo: &MockCustomerRepo{createErr: errors.New("db down")}, Queue: q}

	resp, err := svc.CreateCustomer(context.Background(), model.CreateCustomerRequest{Name: "A"})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "db down")
	assert.Empty(t, q.published)
}

func TestCreateCustomerQueueFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := &service.CustomerService{
		CustomerRepo: &MockCustomerRepo{},
		Queue:        &MockQueue{err: errors.New("no subscribers")},
		Log:          zap.New(core),
	}

	resp, err := svc.CreateCustomer(context.Background(), model.CreateCustomerRequest{Name: "A"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 1, logs.FilterMessage("failed to enqueue customer event").Len())
}

func TestDeleteCustomer(t *testing.T) {
	q := &MockQueue{}
	svc := &service.CustomerService{CustomerRepo: &MockCustomerRepo{}, Queue: q}

	resp, err := svc.DeleteCustomer(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Customer 3 deleted successfully", resp.Message)
	require.Len(t, q.published, 1)
	assert.Equal(t, model.CustomerDeleted, q.published[0].(model.CustomerEvent).Type)
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc := &service.CustomerService{CustomerRepo: &MockCustomerRepo{deleteErr: appErrors.NewCustomerNotFound(3)}}

	_, err := svc.DeleteCustomer(context.Background(), 3)

	assert.True(t, appErrors.IsNotFound(err))
}

func TestRenderTemplate(t *testing.T) {
	got := service.RenderTemplate("Hi {name}, you are #{id}. {unknown}", map[string]string{"name": "Ana", "id": "7"})
	assert.Equal(t, "Hi Ana, you are #7. {unknown}", got)
}
