package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/store"
)

const emailColumns = `e.id, e.thread_id, e.subject, e.sender_addr, e.sender_name,
	e.to_addrs, e.cc_addrs, e.bcc_addrs, e.seen, e.flagged,
	e.segments, e.plain_text, e.html, e.mailbox_ids, e.attachment_ids, e.received_at`

// UpsertEmail inserts or updates an email and its labels. The transient
// Urgent flag is not persisted. A locally recorded seen flag survives
// updates from the provider.
func (s *DB) UpsertEmail(ctx context.Context, email *domain.Email, accountID string) error {
	cols, err := encodeEmailColumns(email)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO emails (id, account_id, thread_id, subject, sender_addr, sender_name,
			to_addrs, cc_addrs, bcc_addrs, seen, flagged, segments, plain_text, html,
			body_text, mailbox_ids, attachment_ids, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id     = excluded.account_id,
			thread_id      = excluded.thread_id,
			subject        = excluded.subject,
			sender_addr    = excluded.sender_addr,
			sender_name    = excluded.sender_name,
			to_addrs       = excluded.to_addrs,
			cc_addrs       = excluded.cc_addrs,
			bcc_addrs      = excluded.bcc_addrs,
			seen           = emails.seen OR excluded.seen,
			flagged        = excluded.flagged,
			segments       = excluded.segments,
			plain_text     = excluded.plain_text,
			html           = excluded.html,
			body_text      = excluded.body_text,
			mailbox_ids    = excluded.mailbox_ids,
			attachment_ids = excluded.attachment_ids,
			received_at    = excluded.received_at`,
		email.ID, accountID, email.ThreadID, email.Subject,
		email.Sender.Address, email.Sender.Name,
		cols.to, cols.cc, cols.bcc,
		email.Flags.Seen, email.Flags.Flagged,
		cols.segments, cols.plainText, cols.html,
		email.Body.Text(),
		cols.mailboxes, cols.attachments,
		email.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert email: %w", err)
	}

	if err := replaceLabels(ctx, tx, email.ID, email.Labels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit email upsert: %w", err)
	}
	return nil
}

// GetEmail retrieves a single email by ID, including its labels.
func (s *DB) GetEmail(ctx context.Context, id string) (*domain.Email, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+emailColumns+` FROM emails e WHERE e.id = ?`, id)
	e, err := scanEmail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("email %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email %s: %w", id, err)
	}

	labels, err := s.emailLabels(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Labels = labels
	return e, nil
}

// ListEmails returns emails newest first, optionally filtered by label.
func (s *DB) ListEmails(ctx context.Context, opts store.ListEmailOptions) ([]domain.Email, error) {
	var query string
	var args []any

	if opts.Label != "" {
		query = `SELECT ` + emailColumns + `
			FROM emails e
			JOIN email_labels el ON el.email_id = e.id
			WHERE e.account_id = ? AND el.label = ?
			ORDER BY e.received_at DESC, e.id`
		args = append(args, opts.AccountID, opts.Label)
	} else {
		query = `SELECT ` + emailColumns + `
			FROM emails e
			WHERE e.account_id = ?
			ORDER BY e.received_at DESC, e.id`
		args = append(args, opts.AccountID)
	}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	emails, err := s.queryEmails(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return emails, nil
}

// SetEmailFlags updates the seen and flagged state of an email.
func (s *DB) SetEmailFlags(ctx context.Context, emailID string, flags domain.Flags) error {
	_, err := s.db.ExecContext(ctx, `UPDATE emails SET seen = ?, flagged = ? WHERE id = ?`,
		flags.Seen, flags.Flagged, emailID)
	if err != nil {
		return fmt.Errorf("failed to set flags on email %s: %w", emailID, err)
	}
	return nil
}

// DeleteEmail removes an email by ID.
func (s *DB) DeleteEmail(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM emails WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete email %s: %w", id, err)
	}
	return nil
}

func (s *DB) queryEmails(ctx context.Context, query string, args ...any) ([]domain.Email, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []domain.Email
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email row: %w", err)
		}
		emails = append(emails, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emails: %w", err)
	}
	rows.Close()

	for i := range emails {
		labels, err := s.emailLabels(ctx, emails[i].ID)
		if err != nil {
			return nil, err
		}
		emails[i].Labels = labels
	}
	return emails, nil
}

func (s *DB) emailLabels(ctx context.Context, emailID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM email_labels WHERE email_id = ? ORDER BY label`, emailID)
	if err != nil {
		return nil, fmt.Errorf("failed to query email labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan email label: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email labels: %w", err)
	}
	return labels, nil
}

func replaceLabels(ctx context.Context, tx *sql.Tx, emailID string, labels []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM email_labels WHERE email_id = ?`, emailID); err != nil {
		return fmt.Errorf("failed to delete email labels: %w", err)
	}
	for _, label := range labels {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO email_labels (email_id, label) VALUES (?, ?)`,
			emailID, label); err != nil {
			return fmt.Errorf("failed to insert email label: %w", err)
		}
	}
	return nil
}

type emailColumnValues struct {
	to, cc, bcc            string
	segments               string
	plainText, html        sql.NullString
	mailboxes, attachments string
}

func encodeEmailColumns(e *domain.Email) (emailColumnValues, error) {
	var v emailColumnValues
	var err error
	if v.to, err = encodeJSON(e.ToRecipients); err != nil {
		return v, fmt.Errorf("failed to marshal to recipients: %w", err)
	}
	if v.cc, err = encodeJSON(e.CcRecipients); err != nil {
		return v, fmt.Errorf("failed to marshal cc recipients: %w", err)
	}
	if v.bcc, err = encodeJSON(e.BccRecipients); err != nil {
		return v, fmt.Errorf("failed to marshal bcc recipients: %w", err)
	}
	if v.segments, err = encodeJSON(e.Body.Segments); err != nil {
		return v, fmt.Errorf("failed to marshal segments: %w", err)
	}
	if v.plainText, err = encodeOptional(e.Body.PlainText); err != nil {
		return v, fmt.Errorf("failed to marshal plain text: %w", err)
	}
	if v.html, err = encodeOptional(e.Body.HTML); err != nil {
		return v, fmt.Errorf("failed to marshal html: %w", err)
	}
	if v.mailboxes, err = encodeJSON(e.MailboxIDs); err != nil {
		return v, fmt.Errorf("failed to marshal mailbox ids: %w", err)
	}
	if v.attachments, err = encodeJSON(e.AttachmentIDs); err != nil {
		return v, fmt.Errorf("failed to marshal attachment ids: %w", err)
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (*domain.Email, error) {
	var e domain.Email
	var threadID, subject sql.NullString
	var to, cc, bcc, segments, plainText, html, mailboxes, attachments sql.NullString

	if err := row.Scan(
		&e.ID, &threadID, &subject, &e.Sender.Address, &e.Sender.Name,
		&to, &cc, &bcc, &e.Flags.Seen, &e.Flags.Flagged,
		&segments, &plainText, &html, &mailboxes, &attachments, &e.ReceivedAt,
	); err != nil {
		return nil, err
	}
	e.ThreadID = threadID.String
	e.Subject = subject.String

	fields := []struct {
		name string
		src  sql.NullString
		dst  any
	}{
		{"to recipients", to, &e.ToRecipients},
		{"cc recipients", cc, &e.CcRecipients},
		{"bcc recipients", bcc, &e.BccRecipients},
		{"segments", segments, &e.Body.Segments},
		{"plain text", plainText, &e.Body.PlainText},
		{"html", html, &e.Body.HTML},
		{"mailbox ids", mailboxes, &e.MailboxIDs},
		{"attachment ids", attachments, &e.AttachmentIDs},
	}
	for _, f := range fields {
		if !f.src.Valid || f.src.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src.String), f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", f.name, err)
		}
	}
	return &e, nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// encodeOptional stores nil slices as NULL so an absent body alternative
// stays distinguishable from an empty one.
func encodeOptional(blocks []string) (sql.NullString, error) {
	if blocks == nil {
		return sql.NullString{}, nil
	}
	s, err := encodeJSON(blocks)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// ftsQuery quotes each term so user input cannot inject FTS5 syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
