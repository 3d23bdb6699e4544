package sqlite

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// SearchEmails performs a full-text search across subject, body segments
// and sender using FTS5.
func (s *DB) SearchEmails(ctx context.Context, query string, accountID string) ([]domain.Email, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	emails, err := s.queryEmails(ctx, `
		SELECT `+emailColumns+`
		FROM emails e
		JOIN emails_fts fts ON fts.rowid = e.rowid
		WHERE emails_fts MATCH ? AND e.account_id = ?
		ORDER BY rank`, match, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to search emails: %w", err)
	}
	return emails, nil
}
