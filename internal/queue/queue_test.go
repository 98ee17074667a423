package queue

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/model"
)

func newTestQueue() *InMemoryQueue {
	q := NewInMemoryQueue(zap.NewNop())
	q.backoff = func(int) time.Duration { return 0 }
	return q
}

func TestPublishWithoutSubscribers(t *testing.T) {
	q := newTestQueue()
	assert.Error(t, q.Publish(CustomerEventsTopic, 1))
}

func TestPublishFansOut(t *testing.T) {
	q := newTestQueue()

	var mu sync.Mutex
	got := []any{}
	for i := 0; i < 2; i++ {
		require.NoError(t, q.Subscribe("t", func(payload any) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, payload)
			return nil
		}))
	}

	require.NoError(t, q.Publish("t", "hello"))
	q.Wait()

	assert.Equal(t, []any{"hello", "hello"}, got)
}

func TestRetriesUntilSuccess(t *testing.T) {
	q := newTestQueue()

	var calls int32
	require.NoError(t, q.Subscribe("t", func(any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, q.Publish("t", 1))
	q.Wait()

	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	q := newTestQueue()

	var calls int32
	require.NoError(t, q.Subscribe("t", func(any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	}))

	require.NoError(t, q.Publish("t", 1))
	q.Wait()

	assert.EqualValues(t, 4, atomic.LoadInt32(&calls))
}

type recordingSink struct {
	mu     sync.Mutex
	events []model.CustomerEvent
}

func (s *recordingSink) PublishEvent(ev model.CustomerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestCustomerEventSubscriber(t *testing.T) {
	q := newTestQueue()
	sink := &recordingSink{}
	require.NoError(t, StartCustomerEventSubscriber(q, sink, zap.NewNop()))

	ev := model.CustomerEvent{EventID: "e1", Type: model.CustomerDeleted, CustomerID: 2}
	require.NoError(t, q.Publish(CustomerEventsTopic, ev))
	require.NoError(t, q.Publish(CustomerEventsTopic, "not an event"))
	q.Wait()

	assert.Equal(t, []model.CustomerEvent{ev}, sink.events)
}

func TestEventPublishing(t *testing.T) {
	ev := model.CustomerEvent{
		EventID:    "e1",
		Type:       model.CustomerCreated,
		CustomerID: 9,
		OccurredAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	msg, err := EventPublishing(ev)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "e1", msg.MessageId)
	assert.Equal(t, model.CustomerCreated, msg.Type)

	var decoded model.CustomerEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, ev, decoded)
}
