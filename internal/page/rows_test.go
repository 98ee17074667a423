package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-admin/internal/model"
)

func TestRowsMatchCustomers(t *testing.T) {
	s := Reduce(NewState(), CustomersLoaded{Customers: []model.Customer{
		{
			ID: 1, Name: "Alice", Email: "alice@example.com", Description: "vip",
			SocialMedia: []model.SocialMedia{
				{ID: 10, SocialMediaName: "twitter", Username: "@alice"},
				{ID: 11, SocialMediaName: "github", Username: "alice"},
			},
		},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}}, Options{})

	rows := Rows(s)

	require.Len(t, rows, len(s.Customers))
	for i, c := range s.Customers {
		assert.Equal(t, c.ID, rows[i].ID)
		assert.Equal(t, c.Name, rows[i].Name)
		assert.Equal(t, c.Email, rows[i].Email)
		assert.Equal(t, c.Description, rows[i].Description)
	}
	assert.Equal(t, []string{
		"Social Media Name: twitter",
		"Username: @alice",
		"Social Media Name: github",
		"Username: alice",
	}, rows[0].SocialMedia)
	assert.Empty(t, rows[1].SocialMedia)
}

func TestRowsEmpty(t *testing.T) {
	assert.Empty(t, Rows(NewState()))
}
