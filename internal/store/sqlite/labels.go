package sqlite

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// ListLabels returns the distinct labels on an account's emails with the
// number of emails carrying each, ordered by name.
func (s *DB) ListLabels(ctx context.Context, accountID string) ([]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT el.label, COUNT(*)
		FROM email_labels el
		JOIN emails e ON e.id = el.email_id
		WHERE e.account_id = ?
		GROUP BY el.label
		ORDER BY el.label`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.Name, &l.Count); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate labels: %w", err)
	}

	return labels, nil
}
