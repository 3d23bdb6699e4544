package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/lu-zhengda/workapi/internal/domain"
)

func TestToJSONAccounts(t *testing.T) {
	accounts := []domain.Account{
		{
			ID:        "user@example.com",
			Email:     "user@example.com",
			Provider:  domain.ProviderWorkAPI,
			CreatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "other@example.com",
			Email:     "other@example.com",
			Provider:  domain.ProviderGmail,
			CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	got := toJSONAccounts(accounts)

	if len(got) != 2 {
		t.Fatalf("got %d accounts, want 2", len(got))
	}
	if got[0].ID != "user@example.com" {
		t.Errorf("got ID %q, want %q", got[0].ID, "user@example.com")
	}
	if got[0].Provider != "workapi" {
		t.Errorf("got provider %q, want %q", got[0].Provider, "workapi")
	}
	if got[0].CreatedAt != "2025-01-15" {
		t.Errorf("got created_at %q, want %q", got[0].CreatedAt, "2025-01-15")
	}
}

func TestToJSONAccounts_Empty(t *testing.T) {
	got := toJSONAccounts(nil)
	if len(got) != 0 {
		t.Errorf("got %d accounts for nil input, want 0", len(got))
	}

	var buf bytes.Buffer
	if err := fprintJSON(&buf, got); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("got %q, want %q", got, "[]\n")
	}
}

func TestToJSONEmails(t *testing.T) {
	emails := []domain.Email{
		{
			ID:         "em-1",
			ThreadID:   "th-1",
			Subject:    "Deploy",
			Sender:     domain.Recipient{Name: "Alice", Address: "alice@example.com"},
			Flags:      domain.Flags{Seen: false, Flagged: true},
			Labels:     []string{"INBOX"},
			ReceivedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC).Unix(),
			Urgent:     true,
		},
		{
			ID:      "em-2",
			Subject: "Lunch",
			Sender:  domain.Recipient{Address: "bob@example.com"},
		},
	}

	got := toJSONEmails(emails)

	if len(got) != 2 {
		t.Fatalf("got %d emails, want 2", len(got))
	}
	if got[0].SubjectLabel != "Deploy [URGENT]" {
		t.Errorf("got subject_label %q, want %q", got[0].SubjectLabel, "Deploy [URGENT]")
	}
	if got[0].Sender != "Alice" {
		t.Errorf("got sender %q, want %q", got[0].Sender, "Alice")
	}
	if got[0].Date != "2025-03-10T14:30:00Z" {
		t.Errorf("got date %q, want %q", got[0].Date, "2025-03-10T14:30:00Z")
	}
	if !got[0].Flagged || got[0].Seen || !got[0].Urgent {
		t.Errorf("got flags seen=%v flagged=%v urgent=%v", got[0].Seen, got[0].Flagged, got[0].Urgent)
	}
	if got[1].Sender != "bob@example.com" {
		t.Errorf("got sender %q, want %q", got[1].Sender, "bob@example.com")
	}
	if got[1].Date != "" {
		t.Errorf("got date %q for unset timestamp, want empty", got[1].Date)
	}

	var buf bytes.Buffer
	if err := fprintJSON(&buf, got[1]); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if _, ok := raw["date"]; ok {
		t.Error("date should be omitted when unset")
	}
}

func TestToJSONEmailDetail(t *testing.T) {
	e := &domain.Email{
		ID:           "em-1",
		Subject:      "Plan",
		Sender:       domain.Recipient{Name: "Alice", Address: "alice@example.com"},
		ToRecipients: []domain.Recipient{{Name: "Bob", Address: "bob@example.com"}, {Address: "carol@example.com"}},
		Body:         domain.EmailBody{Segments: []string{"one", "two"}},
	}

	got := toJSONEmailDetail(e)

	if got.Summary != `"Plan" from Alice` {
		t.Errorf("got summary %q, want %q", got.Summary, `"Plan" from Alice`)
	}
	if got.ToLabel != "Bob, carol@example.com" {
		t.Errorf("got to_label %q, want %q", got.ToLabel, "Bob, carol@example.com")
	}
	if got.CCLabel != "" {
		t.Errorf("got cc_label %q, want empty", got.CCLabel)
	}
	if len(got.Segments) != 2 {
		t.Errorf("got %d segments, want 2", len(got.Segments))
	}

	// Unprocessed bodies still encode segments as an empty list.
	empty := toJSONEmailDetail(&domain.Email{ID: "em-2"})
	var buf bytes.Buffer
	if err := fprintJSON(&buf, empty); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"segments": []`)) {
		t.Errorf("expected empty segments list in %s", buf.String())
	}
}

func TestToJSONLabels(t *testing.T) {
	got := toJSONLabels([]domain.Label{{Name: "INBOX", Count: 3}, {Name: "Work", Count: 1}})
	if len(got) != 2 {
		t.Fatalf("got %d labels, want 2", len(got))
	}
	if got[0].Name != "INBOX" || got[0].Count != 3 {
		t.Errorf("got %+v, want INBOX/3", got[0])
	}
}

func TestToJSONAttendees(t *testing.T) {
	got := toJSONAttendees([]domain.Attendee{
		{DisplayName: "Jane", EmailAddress: "jane@example.com", Organizer: true, Self: true},
		{EmailAddress: "bob@example.com", AdditionalGuests: 2},
	})
	if len(got) != 2 {
		t.Fatalf("got %d attendees, want 2", len(got))
	}
	if got[0].Label != "Jane (organizer)" {
		t.Errorf("got label %q, want %q", got[0].Label, "Jane (organizer)")
	}
	if got[1].Label != "bob@example.com" {
		t.Errorf("got label %q, want %q", got[1].Label, "bob@example.com")
	}
	if got[1].AdditionalGuests != 2 {
		t.Errorf("got additional_guests %d, want 2", got[1].AdditionalGuests)
	}
}

func TestJSONAction_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	if err := fprintJSON(&buf, jsonAction{OK: true, Action: "sync", AccountID: "acc-1", Count: 12}); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if _, ok := raw["email"]; ok {
		t.Error("email should be omitted when empty")
	}
	if raw["count"] != float64(12) {
		t.Errorf("got count %v, want 12", raw["count"])
	}
}
