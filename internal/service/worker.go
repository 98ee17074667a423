package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/model"
)

// ActivityRecorder is what the worker needs from storage
type ActivityRecorder interface {
	Record(ctx context.Context, ev model.CustomerEvent) (bool, error)
}

// Worker records customer events consumed from RabbitMQ
type Worker struct {
	Activity ActivityRecorder
	Log      *zap.Logger
}

func NewWorker(activity ActivityRecorder, log *zap.Logger) *Worker {
	return &Worker{
		Activity: activity,
		Log:      log,
	}
}

// ErrDeliveriesClosed means the broker stopped delivering, usually
// because the connection or channel went away.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Start consumes deliveries until ctx is done, which returns nil, or the
// channel closes, which returns ErrDeliveriesClosed.
func (w *Worker) Start(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			w.Handle(ctx, d)
		}
	}
}

// Handle acks malformed payloads (they will never succeed), requeues a
// storage failure once and drops it if the redelivery fails too.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	var ev model.CustomerEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.EventID == "" {
		w.Log.Warn("invalid customer event, dropping", zap.ByteString("body", d.Body), zap.Error(err))
		w.ack(d)
		return
	}

	inserted, err := w.Activity.Record(ctx, ev)
	if err != nil {
		requeue := !d.Redelivered
		w.Log.Error("failed to record customer event",
			zap.String("event_id", ev.EventID),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if nackErr := d.Nack(false, requeue); nackErr != nil {
			w.Log.Error("nack failed", zap.Error(nackErr))
		}
		return
	}

	if inserted {
		w.Log.Info("recorded customer event",
			zap.String("event_id", ev.EventID),
			zap.String("type", ev.Type),
			zap.Int("customer_id", ev.CustomerID),
		)
	} else {
		w.Log.Debug("duplicate customer event", zap.String("event_id", ev.EventID))
	}
	w.ack(d)
}

func (w *Worker) ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		w.Log.Error("ack failed", zap.Error(err))
	}
}
