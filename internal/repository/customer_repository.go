package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/customer-admin/internal/errors"
	"github.com/unclebandit/customer-admin/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	List(ctx context.Context, withSocialMedia bool) ([]model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// List fetches every customer ordered by id. Social media handles are
// loaded in a second query when requested.
func (r *CustomerRepository) List(ctx context.Context, withSocialMedia bool) ([]model.Customer, error) {
	query := `
        SELECT id, name, email, description
        FROM customers
        ORDER BY id
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Description); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !withSocialMedia || len(customers) == 0 {
		return customers, nil
	}

	ids := make([]int64, len(customers))
	index := make(map[int]int, len(customers))
	for i, c := range customers {
		ids[i] = int64(c.ID)
		index[c.ID] = i
		customers[i].SocialMedia = []model.SocialMedia{}
	}

	smQuery := `
        SELECT id, customer_id, social_media_name, username
        FROM social_media
        WHERE customer_id = ANY($1)
        ORDER BY id
    `
	smRows, err := r.DB.QueryContext(ctx, smQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load social media: %w", err)
	}
	defer smRows.Close()

	for smRows.Next() {
		var sm model.SocialMedia
		if err := smRows.Scan(&sm.ID, &sm.CustomerID, &sm.SocialMediaName, &sm.Username); err != nil {
			return nil, err
		}
		if i, ok := index[sm.CustomerID]; ok {
			customers[i].SocialMedia = append(customers[i].SocialMedia, sm)
		}
	}
	return customers, smRows.Err()
}

// Create inserts the customer and its handles in one transaction and
// fills in the generated ids.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO customers (name, email, description)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	if err := tx.QueryRowContext(ctx, query, c.Name, c.Email, c.Description).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	smQuery := `
        INSERT INTO social_media (customer_id, social_media_name, username)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	for i := range c.SocialMedia {
		sm := &c.SocialMedia[i]
		sm.CustomerID = c.ID
		if err := tx.QueryRowContext(ctx, smQuery, c.ID, sm.SocialMediaName, sm.Username).Scan(&sm.ID); err != nil {
			return fmt.Errorf("insert social media %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Delete removes a customer; its handles go with it via ON DELETE CASCADE.
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewCustomerNotFound(id)
	}
	return nil
}
