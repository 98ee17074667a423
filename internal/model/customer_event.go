// internal/model/customer_event.go
package model

import "time"

const (
	CustomerCreated = "customer.created"
	CustomerDeleted = "customer.deleted"
)

// CustomerEvent is published on every customer mutation.
type CustomerEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	CustomerID int       `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Activity is a CustomerEvent as recorded by the worker.
type Activity struct {
	ID         int       `db:"id" json:"id"`
	EventID    string    `db:"event_id" json:"event_id"`
	Type       string    `db:"type" json:"type"`
	CustomerID int       `db:"customer_id" json:"customer_id"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
