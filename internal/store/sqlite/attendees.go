package sqlite

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// ReplaceAttendees stores the attendee list of an event, replacing any
// previous list and keeping the given order.
func (s *DB) ReplaceAttendees(ctx context.Context, accountID, eventID string, attendees []domain.Attendee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM attendees WHERE account_id = ? AND event_id = ?`, accountID, eventID); err != nil {
		return fmt.Errorf("failed to delete attendees for event %s: %w", eventID, err)
	}

	for i, a := range attendees {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attendees (account_id, event_id, position, profile_id, email_address,
				display_name, organizer, self, resource, optional, response_status, comment,
				additional_guests)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			accountID, eventID, i, a.ProfileID, a.EmailAddress,
			a.DisplayName, a.Organizer, a.Self, a.Resource, a.Optional, a.ResponseStatus, a.Comment,
			a.AdditionalGuests,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attendee %d for event %s: %w", i, eventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendees for event %s: %w", eventID, err)
	}
	return nil
}

// ListAttendees returns the stored attendees of an event in their original order.
func (s *DB) ListAttendees(ctx context.Context, accountID, eventID string) ([]domain.Attendee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT profile_id, email_address, display_name, organizer, self, resource, optional,
			response_status, comment, additional_guests
		FROM attendees
		WHERE account_id = ? AND event_id = ?
		ORDER BY position`, accountID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees for event %s: %w", eventID, err)
	}
	defer rows.Close()

	var attendees []domain.Attendee
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.ProfileID, &a.EmailAddress, &a.DisplayName,
			&a.Organizer, &a.Self, &a.Resource, &a.Optional,
			&a.ResponseStatus, &a.Comment, &a.AdditionalGuests); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendees: %w", err)
	}
	return attendees, nil
}
