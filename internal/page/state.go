// Package page holds the customer page: a serializable state, the
// actions that change it and a controller that runs the HTTP effects.
package page

import (
	"github.com/unclebandit/customer-admin/internal/model"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// DefaultAlertText is shown when a notification carries no message.
const DefaultAlertText = "This is an error alert — check it out!"

// Social media draft fields addressable by EditSocialMedia.
const (
	FieldSocialMediaName = "social_media_name"
	FieldUsername        = "username"
)

// Draft is the create form. It lives as long as the page, not the dialog.
type Draft struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Description string              `json:"description"`
	SocialMedia []model.SocialMedia `json:"social_media"`
}

// NewDraft returns an empty form with one blank social media row.
func NewDraft() Draft {
	return Draft{SocialMedia: []model.SocialMedia{{}}}
}

// Request converts the draft into the create body. Blank rows are kept.
func (d Draft) Request() model.CreateCustomerRequest {
	return model.CreateCustomerRequest{
		Name:        d.Name,
		Email:       d.Email,
		SocialMedia: cloneHandles(d.SocialMedia),
		Description: d.Description,
	}
}

type Notification struct {
	Visible  bool     `json:"visible"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	// Seq identifies the showing; expiry only hides the matching one.
	Seq uint64 `json:"seq"`
}

// Text is what the alert displays.
func (n Notification) Text() string {
	if n.Message == "" {
		return DefaultAlertText
	}
	return n.Message
}

// State is the whole page. Version goes up on every change applied by a
// Controller, so a consumer can tell an older snapshot from a newer one.
type State struct {
	Version      uint64           `json:"version"`
	Customers    []model.Customer `json:"customers"`
	DialogOpen   bool             `json:"dialog_open"`
	Draft        Draft            `json:"draft"`
	Notification Notification     `json:"notification"`
}

func NewState() State {
	return State{
		Customers: []model.Customer{},
		Draft:     NewDraft(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Customers = cloneCustomers(s.Customers)
	out.Draft.SocialMedia = cloneHandles(s.Draft.SocialMedia)
	return out
}

func cloneHandles(in []model.SocialMedia) []model.SocialMedia {
	if in == nil {
		return nil
	}
	return append(make([]model.SocialMedia, 0, len(in)), in...)
}

func cloneCustomers(in []model.Customer) []model.Customer {
	if in == nil {
		return nil
	}
	out := make([]model.Customer, len(in))
	for i, c := range in {
		out[i] = c
		out[i].SocialMedia = cloneHandles(c.SocialMedia)
	}
	return out
}
