// internal/model/customer.go
package model

// SocialMedia is a (platform, username) pair attached to a customer.
// ID is only set for handles that have been persisted.
type SocialMedia struct {
	ID              int    `db:"id" json:"id,omitempty"`
	CustomerID      int    `db:"customer_id" json:"-"`
	SocialMediaName string `db:"social_media_name" json:"social_media_name"`
	Username        string `db:"username" json:"username"`
}

type Customer struct {
	ID          int           `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Email       string        `db:"email" json:"email"`
	Description string        `db:"description" json:"description"`
	SocialMedia []SocialMedia `json:"social_media,omitempty"`
}

// CreateCustomerRequest is the body of POST /api/customers.
type CreateCustomerRequest struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	SocialMedia []SocialMedia `json:"social_media"`
	Description string        `json:"description"`
}

// MessageResponse is what the API answers to mutations.
type MessageResponse struct {
	Message string    `json:"message"`
	Data    *Customer `json:"data,omitempty"`
}

// IncludeSocialMedia is the value of the includes query parameter that
// asks the list endpoint to embed social media handles.
const IncludeSocialMedia = "socialMedia"
