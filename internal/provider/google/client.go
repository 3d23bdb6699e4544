// Package google reads Gmail messages and Google Calendar attendees.
package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/provider"
	"github.com/lu-zhengda/workapi/internal/store"
)

const (
	userID          = "me"
	primaryCalendar = "primary"
)

// Provider implements provider.MailProvider over Gmail and
// provider.CalendarProvider over Google Calendar.
type Provider struct {
	tokenStore *store.KeyringTokenStore
	accountID  string
	gmail      *gmailapi.Service
	calendar   *calendarapi.Service
}

var (
	_ provider.MailProvider     = (*Provider)(nil)
	_ provider.CalendarProvider = (*Provider)(nil)
)

// New creates a new Google provider for the given account.
func New(accountID string, tokenStore *store.KeyringTokenStore) *Provider {
	return &Provider{
		accountID:  accountID,
		tokenStore: tokenStore,
	}
}

// Authenticate runs the OAuth2 flow, saves the token, and initializes the
// Gmail and Calendar services.
func (p *Provider) Authenticate(ctx context.Context) error {
	token, err := authenticate(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate gmail: %w", err)
	}

	if err := p.tokenStore.SaveToken(p.accountID, token); err != nil {
		return fmt.Errorf("failed to save gmail token: %w", err)
	}
	return p.initServices(ctx, token)
}

// IsAuthenticated returns true if the services are initialized.
func (p *Provider) IsAuthenticated() bool {
	return p.gmail != nil
}

func (p *Provider) initServices(ctx context.Context, token *oauth2.Token) error {
	ts := option.WithTokenSource(oauthConfig.TokenSource(ctx, token))

	gmailSrv, err := gmailapi.NewService(ctx, ts)
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}
	calSrv, err := calendarapi.NewService(ctx, ts)
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}
	p.gmail = gmailSrv
	p.calendar = calSrv
	return nil
}

// ensureService lazily loads the token from the keyring and initializes the services.
func (p *Provider) ensureService(ctx context.Context) error {
	if p.gmail != nil {
		return nil
	}
	token, err := p.tokenStore.LoadToken(p.accountID)
	if err != nil {
		return fmt.Errorf("failed to load gmail token: %w", err)
	}
	return p.initServices(ctx, token)
}

// ListMessages returns a page of emails matching the given options.
func (p *Provider) ListMessages(ctx context.Context, opts provider.ListOptions) ([]domain.Email, string, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	call := p.gmail.Users.Messages.List(userID)
	if opts.MaxResults > 0 {
		call = call.MaxResults(int64(opts.MaxResults))
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}
	if len(opts.LabelIDs) > 0 {
		call = call.LabelIds(opts.LabelIDs...)
	}
	if opts.Query != "" {
		call = call.Q(opts.Query)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list gmail messages: %w", err)
	}

	emails := make([]domain.Email, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		msg, err := p.gmail.Users.Messages.Get(userID, m.Id).
			Format("full").Context(ctx).Do()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get gmail message %s: %w", m.Id, err)
		}
		emails = append(emails, *mapMessage(msg))
	}

	return emails, resp.NextPageToken, nil
}

// GetMessage returns a single email by ID.
func (p *Provider) GetMessage(ctx context.Context, id string) (*domain.Email, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	msg, err := p.gmail.Users.Messages.Get(userID, id).
		Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get gmail message %s: %w", id, err)
	}
	return mapMessage(msg), nil
}

// ListAttendees returns the attendees of an event on the primary calendar.
func (p *Provider) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure calendar service: %w", err)
	}

	event, err := p.calendar.Events.Get(primaryCalendar, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event %s: %w", eventID, err)
	}
	return mapAttendees(event.Attendees), nil
}

// GetProfile returns the authenticated user's email address.
func (p *Provider) GetProfile(ctx context.Context) (string, error) {
	if err := p.ensureService(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	profile, err := p.gmail.Users.GetProfile(userID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get gmail profile: %w", err)
	}
	return profile.EmailAddress, nil
}
