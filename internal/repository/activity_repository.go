package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/customer-admin/internal/model"
)

// ActivityRepository stores consumed customer events.
type ActivityRepository struct {
	DB *sql.DB
}

// Record inserts the event unless its event id was already stored.
// It reports whether a row was written.
func (r *ActivityRepository) Record(ctx context.Context, ev model.CustomerEvent) (bool, error) {
	query := `
        INSERT INTO customer_activity (event_id, type, customer_id, occurred_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (event_id) DO NOTHING
    `
	res, err := r.DB.ExecContext(ctx, query, ev.EventID, ev.Type, ev.CustomerID, ev.OccurredAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
