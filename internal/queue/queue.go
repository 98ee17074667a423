package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/model"
)

// CustomerEventsTopic carries model.CustomerEvent payloads.
const CustomerEventsTopic = "customer_events"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans each published payload out to every subscriber of
// the topic and retries failed handlers.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	log        *zap.Logger
	maxRetries int
	backoff    func(attempt int) time.Duration
	wg         sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(log *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		log:        log.Named("queue"),
		maxRetries: 3,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*500) * time.Millisecond
		},
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Topic:      topic,
			Payload:    payload,
			MaxRetries: q.maxRetries,
		}
		q.wg.Add(1)
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	defer q.wg.Done()

	for {
		err := handler(job.Payload)
		if err == nil {
			q.log.Debug("job processed", zap.String("topic", job.Topic), zap.Int("attempts", job.RetryCount+1))
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.log.Error("job permanently failed",
				zap.String("topic", job.Topic),
				zap.Int("attempts", job.RetryCount),
				zap.Error(err),
			)
			return
		}

		q.log.Warn("job failed, retrying",
			zap.String("topic", job.Topic),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		time.Sleep(q.backoff(job.RetryCount))
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every in-flight job has finished.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// EventSink receives customer events taken off the in-memory queue.
type EventSink interface {
	PublishEvent(ev model.CustomerEvent) error
}

// LogSink writes events to the log. It is used when RabbitMQ is not configured.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) PublishEvent(ev model.CustomerEvent) error {
	s.Log.Info("customer event",
		zap.String("event_id", ev.EventID),
		zap.String("type", ev.Type),
		zap.Int("customer_id", ev.CustomerID),
	)
	return nil
}

// StartCustomerEventSubscriber forwards customer events to sink.
func StartCustomerEventSubscriber(q Queue, sink EventSink, log *zap.Logger) error {
	return q.Subscribe(CustomerEventsTopic, func(payload any) error {
		ev, ok := payload.(model.CustomerEvent)
		if !ok {
			log.Warn("invalid payload type, expected CustomerEvent", zap.String("type", fmt.Sprintf("%T", payload)))
			return nil // no retry
		}
		return sink.PublishEvent(ev)
	})
}
