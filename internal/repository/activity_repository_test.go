package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-admin/internal/model"
)

func TestActivityRepository_Record(t *testing.T) {
	ev := model.CustomerEvent{
		EventID:    "7f1c2e7a-5b0e-4a57-9f0e-0b8e4c1d2a33",
		Type:       model.CustomerCreated,
		CustomerID: 4,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "new event", affected: 1, want: true},
		{name: "duplicate delivery", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			mock.ExpectExec(`INSERT INTO customer_activity .* ON CONFLICT \(event_id\) DO NOTHING`).
				WithArgs(ev.EventID, ev.Type, ev.CustomerID, ev.OccurredAt).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			repo := &ActivityRepository{DB: mockDB}
			inserted, err := repo.Record(context.Background(), ev)

			require.NoError(t, err)
			assert.Equal(t, tt.want, inserted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
