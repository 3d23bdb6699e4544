package provider

import (
	"context"

	"github.com/lu-zhengda/workapi/internal/domain"
)

type ListOptions struct {
	PageToken  string
	MaxResults int
	LabelIDs   []string
	Query      string
}

// MailProvider fetches emails from a remote service. Returned emails carry
// their raw body blocks; normalization is left to the caller.
type MailProvider interface {
	Authenticate(ctx context.Context) error
	IsAuthenticated() bool

	ListMessages(ctx context.Context, opts ListOptions) ([]domain.Email, string, error)
	GetMessage(ctx context.Context, id string) (*domain.Email, error)
}

// CalendarProvider fetches event attendees.
type CalendarProvider interface {
	ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error)
}
