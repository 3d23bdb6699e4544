package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/provider"
	"github.com/lu-zhengda/workapi/internal/store"
)

// AttendeeService fetches event attendees and caches them per account.
type AttendeeService struct {
	store     store.Store
	provider  provider.CalendarProvider
	accountID string
	logger    *zap.Logger
}

func NewAttendeeService(s store.Store, p provider.CalendarProvider, accountID string, logger *zap.Logger) *AttendeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendeeService{
		store:     s,
		provider:  p,
		accountID: accountID,
		logger:    logger.Named("attendees").With(zap.String("account_id", accountID)),
	}
}

// Refresh fetches the attendees of eventID from the provider and replaces
// the cached list.
func (s *AttendeeService) Refresh(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	attendees, err := s.provider.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendees: %w", err)
	}
	if err := s.store.ReplaceAttendees(ctx, s.accountID, eventID, attendees); err != nil {
		return nil, fmt.Errorf("failed to store attendees: %w", err)
	}
	s.logger.Info("attendees refreshed", zap.String("event_id", eventID), zap.Int("count", len(attendees)))
	return attendees, nil
}

// List returns the cached attendees of eventID, fetching them when nothing
// is cached yet.
func (s *AttendeeService) List(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	attendees, err := s.store.ListAttendees(ctx, s.accountID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached attendees: %w", err)
	}
	if len(attendees) > 0 {
		return attendees, nil
	}
	return s.Refresh(ctx, eventID)
}
