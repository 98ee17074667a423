package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/unclebandit/customer-admin/internal/model"
)

// ErrMutationInFlight rejects a submit or delete while the same
// mutation is still waiting for the server.
var ErrMutationInFlight = errors.New("page: mutation already in flight")

// CustomerAPI is the collection endpoint as seen by the page.
type CustomerAPI interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, req model.CreateCustomerRequest) (*model.MessageResponse, error)
	Delete(ctx context.Context, id int) error
}

type Config struct {
	Options
	SuccessNotification time.Duration
	FailureNotification time.Duration
}

// DefaultConfig shows success for 1.2s and failure for 1.9s.
func DefaultConfig() Config {
	return Config{
		SuccessNotification: 1200 * time.Millisecond,
		FailureNotification: 1900 * time.Millisecond,
	}
}

// Controller owns the page state and performs the HTTP calls. All state
// changes go through Reduce.
type Controller struct {
	api CustomerAPI
	log *zap.Logger
	cfg Config

	// afterFunc schedules notification expiry; tests replace it.
	afterFunc func(d time.Duration, f func())

	loads singleflight.Group

	mu       sync.Mutex
	state    State
	inFlight map[string]struct{}
	onChange func(State)
	// generation increases after every completed mutation so refetches
	// never join, or get overwritten by, a list request started earlier.
	generation uint64
	applied    uint64
}

func NewController(api CustomerAPI, log *zap.Logger, cfg Config) *Controller {
	return &Controller{
		api:      api,
		log:      log.Named("page"),
		cfg:      cfg,
		state:    NewState(),
		inFlight: make(map[string]struct{}),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// OnChange registers fn to receive a copy of the state after every change.
// fn runs without the controller lock held.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies a synchronous user action.
func (c *Controller) Dispatch(a Action) State {
	c.mu.Lock()
	snapshot, notify := c.applyLocked(a)
	c.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return snapshot
}

// applyLocked reduces a into the state and bumps its version. c.mu must
// be held.
func (c *Controller) applyLocked(a Action) (State, func(State)) {
	c.state = Reduce(c.state, a, c.cfg.Options)
	c.state.Version++
	return c.state.Clone(), c.onChange
}

// Load fetches the collection and replaces the list. A failure is logged
// and the current list stays. Concurrent loads of the same generation
// share one request; the request outlives any single caller, and each
// caller stops waiting when its own ctx is done.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	shared := context.WithoutCancel(ctx)
	ch := c.loads.DoChan(fmt.Sprintf("list:%d", gen), func() (any, error) {
		return c.api.List(shared)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.Err != nil {
		c.log.Error("fetch customers failed", zap.Error(res.Err))
		return res.Err
	}

	c.mu.Lock()
	if gen < c.applied {
		c.mu.Unlock()
		c.log.Debug("discarding stale customer list", zap.Uint64("generation", gen))
		return nil
	}
	c.applied = gen
	snapshot, notify := c.applyLocked(CustomersLoaded{Customers: res.Val.([]model.Customer)})
	c.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return nil
}

// Submit sends the current draft. On success the dialog closes, the
// server message is shown and the list is refetched once. On failure the
// dialog and draft stay as they are.
func (c *Controller) Submit(ctx context.Context) error {
	release, err := c.acquire("create")
	if err != nil {
		return err
	}
	defer release()

	req := c.Snapshot().Draft.Request()

	resp, err := c.api.Create(ctx, req)
	if err != nil {
		c.log.Error("create customer failed", zap.Error(err))
		c.notify(CreateFailed{}, c.cfg.FailureNotification)
		return err
	}

	c.notify(CreateSucceeded{Message: resp.Message}, c.cfg.SuccessNotification)
	c.bumpGeneration()
	_ = c.Load(ctx)
	return nil
}

// Delete removes a customer. Success and failure are handled alike: the
// dialog closes and the list is refetched. The error is returned for
// callers that want it.
func (c *Controller) Delete(ctx context.Context, id int) error {
	release, err := c.acquire(fmt.Sprintf("delete:%d", id))
	if err != nil {
		return err
	}
	defer release()

	err = c.api.Delete(ctx, id)
	if err != nil {
		c.log.Error("delete customer failed", zap.Int("customer_id", id), zap.Error(err))
	}

	c.Dispatch(DeleteCompleted{})
	c.bumpGeneration()
	_ = c.Load(ctx)
	return err
}

func (c *Controller) acquire(key string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return nil, fmt.Errorf("%s: %w", key, ErrMutationInFlight)
	}
	c.inFlight[key] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}, nil
}

func (c *Controller) bumpGeneration() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
}

// notify shows a notification and schedules its expiry.
func (c *Controller) notify(a Action, ttl time.Duration) {
	seq := c.Dispatch(a).Notification.Seq
	c.afterFunc(ttl, func() {
		c.Dispatch(NotificationExpired{Seq: seq})
	})
}
