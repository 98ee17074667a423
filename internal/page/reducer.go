package page

import "github.com/unclebandit/customer-admin/internal/model"

// Action is a state transition request.
type Action interface {
	isAction()
}

type (
	OpenDialog  struct{}
	CloseDialog struct{}

	SetName        struct{ Value string }
	SetEmail       struct{ Value string }
	SetDescription struct{ Value string }

	EditSocialMedia struct {
		Index int
		Field string
		Value string
	}
	AddSocialMedia    struct{}
	RemoveSocialMedia struct{ Index int }

	// CustomersLoaded replaces the list with a fresh fetch.
	CustomersLoaded struct{ Customers []model.Customer }
	CreateSucceeded struct{ Message string }
	CreateFailed    struct{}
	DeleteCompleted struct{}

	NotificationExpired struct{ Seq uint64 }
)

func (OpenDialog) isAction()          {}
func (CloseDialog) isAction()         {}
func (SetName) isAction()             {}
func (SetEmail) isAction()            {}
func (SetDescription) isAction()      {}
func (EditSocialMedia) isAction()     {}
func (AddSocialMedia) isAction()      {}
func (RemoveSocialMedia) isAction()   {}
func (CustomersLoaded) isAction()     {}
func (CreateSucceeded) isAction()     {}
func (CreateFailed) isAction()        {}
func (DeleteCompleted) isAction()     {}
func (NotificationExpired) isAction() {}

// Options switch the two behaviours that are product decisions rather
// than mechanics. The zero value keeps the established behaviour.
type Options struct {
	// ResetDraftOnOpen clears the form every time the dialog opens.
	ResetDraftOnOpen bool
	// SeverityFromOutcome shows success notifications as "success".
	// Without it every notification is styled as an error.
	SeverityFromOutcome bool
}

// Reduce applies a to s and returns the new state. s is not modified.
func Reduce(s State, a Action, opts Options) State {
	s = s.Clone()

	switch a := a.(type) {
	case OpenDialog:
		s.DialogOpen = true
		if opts.ResetDraftOnOpen {
			s.Draft = NewDraft()
		}
	case CloseDialog:
		s.DialogOpen = false

	case SetName:
		s.Draft.Name = a.Value
	case SetEmail:
		s.Draft.Email = a.Value
	case SetDescription:
		s.Draft.Description = a.Value

	case EditSocialMedia:
		if a.Index < 0 || a.Index >= len(s.Draft.SocialMedia) {
			return s
		}
		switch a.Field {
		case FieldSocialMediaName:
			s.Draft.SocialMedia[a.Index].SocialMediaName = a.Value
		case FieldUsername:
			s.Draft.SocialMedia[a.Index].Username = a.Value
		}
	case AddSocialMedia:
		s.Draft.SocialMedia = append(s.Draft.SocialMedia, model.SocialMedia{})
	case RemoveSocialMedia:
		if a.Index < 0 || a.Index >= len(s.Draft.SocialMedia) {
			return s
		}
		handles := s.Draft.SocialMedia
		s.Draft.SocialMedia = append(handles[:a.Index:a.Index], handles[a.Index+1:]...)

	case CustomersLoaded:
		s.Customers = cloneCustomers(a.Customers)
		if s.Customers == nil {
			s.Customers = []model.Customer{}
		}

	case CreateSucceeded:
		s.DialogOpen = false
		s.Notification = Notification{
			Visible:  true,
			Message:  a.Message,
			Severity: severity(opts.SeverityFromOutcome),
			Seq:      s.Notification.Seq + 1,
		}
	case CreateFailed:
		// the previous message text is left in place
		s.Notification.Visible = true
		s.Notification.Severity = severity()
		s.Notification.Seq++
	case DeleteCompleted:
		s.DialogOpen = false

	case NotificationExpired:
		if a.Seq == s.Notification.Seq {
			s.Notification.Visible = false
		}
	}
	return s
}

// severity is "error" unless explicitly told the outcome was good.
func severity(success ...bool) Severity {
	if len(success) > 0 && success[0] {
		return SeveritySuccess
	}
	return SeverityError
}
