package store

import (
	"context"
	"errors"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for the application.
type Store interface {
	// Accounts
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	// Emails
	UpsertEmail(ctx context.Context, email *domain.Email, accountID string) error
	GetEmail(ctx context.Context, id string) (*domain.Email, error)
	ListEmails(ctx context.Context, opts ListEmailOptions) ([]domain.Email, error)
	DeleteEmail(ctx context.Context, id string) error
	SetEmailFlags(ctx context.Context, emailID string, flags domain.Flags) error

	// Labels
	ListLabels(ctx context.Context, accountID string) ([]domain.Label, error)

	// Search
	SearchEmails(ctx context.Context, query string, accountID string) ([]domain.Email, error)

	// Attendees
	ReplaceAttendees(ctx context.Context, accountID, eventID string, attendees []domain.Attendee) error
	ListAttendees(ctx context.Context, accountID, eventID string) ([]domain.Attendee, error)

	// Sync state
	GetSyncState(ctx context.Context, accountID string) (*SyncState, error)
	SetSyncState(ctx context.Context, state *SyncState) error

	// Lifecycle
	Close() error
}

// ListEmailOptions configures email listing queries.
type ListEmailOptions struct {
	AccountID string
	Label     string
	Limit     int
	Offset    int
}

// SyncState tracks the synchronization progress for an account.
type SyncState struct {
	AccountID    string
	MessageCount int
	LastSync     int64 // Unix timestamp
}
