package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lu-zhengda/workapi/internal/domain"
)

const ruleWidth = 60

// printJSON encodes v as indented JSON to stdout.
func printJSON(v any) error {
	return fprintJSON(os.Stdout, v)
}

// fprintJSON encodes v as indented JSON to w.
func fprintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeEmail renders an email for reading: summary, headers, then each body
// segment separated by a blank line.
func writeEmail(w io.Writer, e *domain.Email) error {
	var b strings.Builder
	b.WriteString(e.Summary() + "\n")
	b.WriteString("Subject: " + e.SubjectLabel() + "\n")
	b.WriteString("From: " + e.Sender.String() + "\n")
	if to := e.ToRecipientsLabel(); to != "" {
		b.WriteString("To: " + to + "\n")
	}
	if cc := e.CcRecipientsLabel(); cc != "" {
		b.WriteString("Cc: " + cc + "\n")
	}
	if bcc := e.BccRecipientsLabel(); bcc != "" {
		b.WriteString("Bcc: " + bcc + "\n")
	}
	if e.ReceivedAt != 0 {
		b.WriteString("Date: " + e.ReceivedTime().Format("Mon, Jan 2 2006 3:04 PM") + "\n")
	}
	if len(e.Labels) > 0 {
		b.WriteString("Labels: " + strings.Join(e.Labels, ", ") + "\n")
	}
	b.WriteString("Message ID: " + e.ID + "\n")
	b.WriteString(strings.Repeat("─", ruleWidth) + "\n")
	b.WriteString(strings.Join(e.Body.Segments, "\n\n"))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// flagMarks returns "*" for unread and "+" for flagged, padded to two columns.
func flagMarks(f domain.Flags) string {
	marks := []byte("  ")
	if !f.Seen {
		marks[0] = '*'
	}
	if f.Flagged {
		marks[1] = '+'
	}
	return string(marks)
}

// formatDate formats a Unix timestamp for list views.
func formatDate(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("Jan 2, 2006")
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
