package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/unclebandit/customer-admin/internal/page"
)

type fieldKind int

const (
	fieldName fieldKind = iota
	fieldEmail
	fieldPlatform
	fieldUsername
	fieldDescription
)

// field addresses one input of the create form. row is only meaningful
// for social media fields.
type field struct {
	kind fieldKind
	row  int
}

// formFields lists the inputs in focus order: name, email, each social
// media row, description.
func formFields(d page.Draft) []field {
	fields := []field{{kind: fieldName}, {kind: fieldEmail}}
	for i := range d.SocialMedia {
		fields = append(fields, field{kind: fieldPlatform, row: i}, field{kind: fieldUsername, row: i})
	}
	return append(fields, field{kind: fieldDescription})
}

func (f field) label() string {
	switch f.kind {
	case fieldName:
		return "Name"
	case fieldEmail:
		return "Email"
	case fieldPlatform:
		return fmt.Sprintf("Social Media Name #%d", f.row+1)
	case fieldUsername:
		return fmt.Sprintf("Username #%d", f.row+1)
	default:
		return "Description"
	}
}

func (f field) value(d page.Draft) string {
	switch f.kind {
	case fieldName:
		return d.Name
	case fieldEmail:
		return d.Email
	case fieldPlatform:
		return d.SocialMedia[f.row].SocialMediaName
	case fieldUsername:
		return d.SocialMedia[f.row].Username
	default:
		return d.Description
	}
}

// action turns an edited value into the matching page action.
func (f field) action(value string) page.Action {
	switch f.kind {
	case fieldName:
		return page.SetName{Value: value}
	case fieldEmail:
		return page.SetEmail{Value: value}
	case fieldPlatform:
		return page.EditSocialMedia{Index: f.row, Field: page.FieldSocialMediaName, Value: value}
	case fieldUsername:
		return page.EditSocialMedia{Index: f.row, Field: page.FieldUsername, Value: value}
	default:
		return page.SetDescription{Value: value}
	}
}

func (f field) isSocialMedia() bool {
	return f.kind == fieldPlatform || f.kind == fieldUsername
}

func newInput(f field) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = f.label()
	in.CharLimit = 256
	in.Width = 40
	return in
}
