package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/provider"
	"github.com/lu-zhengda/workapi/internal/store/sqlite"
)

// fakeMail serves a fixed set of emails in pages.
type fakeMail struct {
	emails []domain.Email
	calls  []provider.ListOptions
	err    error
}

func (f *fakeMail) Authenticate(context.Context) error { return nil }
func (f *fakeMail) IsAuthenticated() bool              { return true }

func (f *fakeMail) ListMessages(_ context.Context, opts provider.ListOptions) ([]domain.Email, string, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, "", f.err
	}

	start := 0
	if opts.PageToken != "" {
		n, err := strconv.Atoi(opts.PageToken)
		if err != nil {
			return nil, "", err
		}
		start = n
	}
	end := min(start+opts.MaxResults, len(f.emails))

	page := make([]domain.Email, end-start)
	copy(page, f.emails[start:end])

	next := ""
	if end < len(f.emails) {
		next = strconv.Itoa(end)
	}
	return page, next, nil
}

func (f *fakeMail) GetMessage(_ context.Context, id string) (*domain.Email, error) {
	for _, e := range f.emails {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, errors.New("no such message")
}

type fakeCalendar struct {
	attendees map[string][]domain.Attendee
	calls     int
}

func (f *fakeCalendar) ListAttendees(_ context.Context, eventID string) ([]domain.Attendee, error) {
	f.calls++
	a, ok := f.attendees[eventID]
	if !ok {
		return nil, fmt.Errorf("event %s not found", eventID)
	}
	return a, nil
}

func newTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.CreateAccount(context.Background(), &domain.Account{
		ID:       "acc-1",
		Email:    "me@example.com",
		Provider: domain.ProviderWorkAPI,
	}))
	return db
}

func makeEmails(n int) []domain.Email {
	emails := make([]domain.Email, n)
	for i := range emails {
		emails[i] = domain.Email{
			ID:         fmt.Sprintf("em-%03d", i),
			Subject:    fmt.Sprintf("Subject %d", i),
			Sender:     domain.Recipient{Address: "jane@example.com"},
			Body:       domain.EmailBody{PlainText: []string{"first\n\nsecond"}},
			Labels:     []string{domain.LabelInbox},
			ReceivedAt: int64(1750000000 + i),
		}
	}
	return emails
}
