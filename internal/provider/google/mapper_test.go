package google

import (
	"reflect"
	"testing"

	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantAddress string
	}{
		{"name and address", "John Doe <john@example.com>", "John Doe", "john@example.com"},
		{"address in angle brackets", "<john@example.com>", "", "john@example.com"},
		{"bare address", "john@example.com", "", "john@example.com"},
		{"quoted name", `"Jane Doe" <jane@example.com>`, "Jane Doe", "jane@example.com"},
		{"unparseable falls back to raw", "not an address", "", "not an address"},
		{"empty string", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAddress(tt.input)
			if got.Name != tt.wantName {
				t.Errorf("parseAddress(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if got.Address != tt.wantAddress {
				t.Errorf("parseAddress(%q).Address = %q, want %q", tt.input, got.Address, tt.wantAddress)
			}
		})
	}
}

func TestParseAddressList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single address", "john@example.com", 1},
		{"multiple addresses", "john@example.com, jane@example.com", 2},
		{"with names", "John <john@example.com>, Jane <jane@example.com>", 2},
		{"empty string", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAddressList(tt.input)
			if len(got) != tt.want {
				t.Errorf("parseAddressList(%q) returned %d addresses, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func TestFindHeader(t *testing.T) {
	headers := []*gmailapi.MessagePartHeader{
		{Name: "From", Value: "john@example.com"},
		{Name: "Subject", Value: "Hello"},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"existing header", "From", "john@example.com"},
		{"case insensitive", "from", "john@example.com"},
		{"subject header", "Subject", "Hello"},
		{"missing header", "Bcc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findHeader(headers, tt.key)
			if got != tt.want {
				t.Errorf("findHeader(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestDecodeBase64URL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple text", "SGVsbG8gV29ybGQ", "Hello World"},
		{"padded", "SGVsbG8=", "Hello"},
		{"empty", "", ""},
		{"url alphabet", "PGI-SGk8L2I-", "<b>Hi</b>"},
		{"invalid", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeBase64URL(tt.input)
			if got != tt.want {
				t.Errorf("decodeBase64URL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapMessage(t *testing.T) {
	msg := &gmailapi.Message{
		Id:           "msg123",
		ThreadId:     "thread456",
		LabelIds:     []string{"INBOX", "STARRED"},
		InternalDate: 1704110400123,
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "To", Value: "Bob <bob@example.com>"},
				{Name: "Cc", Value: "carol@example.com"},
				{Name: "Subject", Value: "Test Subject"},
			},
			Body: &gmailapi.MessagePartBody{Data: "SGVsbG8"},
		},
	}

	email := mapMessage(msg)
	if email.ID != "msg123" {
		t.Errorf("ID = %q, want %q", email.ID, "msg123")
	}
	if email.ThreadID != "thread456" {
		t.Errorf("ThreadID = %q, want %q", email.ThreadID, "thread456")
	}
	if email.Subject != "Test Subject" {
		t.Errorf("Subject = %q, want %q", email.Subject, "Test Subject")
	}
	if email.SenderLabel() != "Alice" {
		t.Errorf("SenderLabel() = %q, want %q", email.SenderLabel(), "Alice")
	}
	if email.ToRecipientsLabel() != "Bob" {
		t.Errorf("ToRecipientsLabel() = %q, want %q", email.ToRecipientsLabel(), "Bob")
	}
	if email.CcRecipientsLabel() != "carol@example.com" {
		t.Errorf("CcRecipientsLabel() = %q, want %q", email.CcRecipientsLabel(), "carol@example.com")
	}
	if email.BccRecipients != nil {
		t.Errorf("BccRecipients = %v, want nil", email.BccRecipients)
	}
	if !email.Flags.Seen {
		t.Error("expected Flags.Seen = true (UNREAD label absent)")
	}
	if !email.Flags.Flagged {
		t.Error("expected Flags.Flagged = true")
	}
	if email.ReceivedAt != 1704110400 {
		t.Errorf("ReceivedAt = %d, want %d", email.ReceivedAt, 1704110400)
	}
	if !reflect.DeepEqual(email.Body.PlainText, []string{"Hello"}) {
		t.Errorf("Body.PlainText = %q, want [Hello]", email.Body.PlainText)
	}
	if len(email.Body.Segments) != 0 {
		t.Errorf("Body.Segments = %q, want empty before normalization", email.Body.Segments)
	}
}

func TestMapMessage_Seen(t *testing.T) {
	msg := &gmailapi.Message{
		Id:       "msg1",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload:  &gmailapi.MessagePart{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{}},
	}
	if mapMessage(msg).Flags.Seen {
		t.Error("expected Flags.Seen = false when UNREAD label present")
	}

	msg.LabelIds = []string{"INBOX"}
	if !mapMessage(msg).Flags.Seen {
		t.Error("expected Flags.Seen = true when UNREAD label absent")
	}
}

func TestMapMessage_BodyBlocks(t *testing.T) {
	tests := []struct {
		name          string
		payload       *gmailapi.MessagePart
		wantPlain     []string
		wantHTML      []string
		wantAttachIDs []string
	}{
		{
			name:    "nil payload",
			payload: nil,
		},
		{
			name: "html only",
			payload: &gmailapi.MessagePart{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: "PGI-SGk8L2I-"},
			},
			wantHTML: []string{"<b>Hi</b>"},
		},
		{
			name: "alternative keeps both",
			payload: &gmailapi.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: "SGVsbG8"}},
					{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: "PGI-SGk8L2I-"}},
				},
			},
			wantPlain: []string{"Hello"},
			wantHTML:  []string{"<b>Hi</b>"},
		},
		{
			name: "mixed collects blocks in tree order and skips files",
			payload: &gmailapi.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmailapi.MessagePart{
					{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: "SGVsbG8"}},
					{
						MimeType: "text/plain",
						Filename: "notes.txt",
						Body:     &gmailapi.MessagePartBody{AttachmentId: "att123", Size: 1024},
					},
					{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: "SGVsbG8gV29ybGQ"}},
				},
			},
			wantPlain:     []string{"Hello", "Hello World"},
			wantAttachIDs: []string{"att123"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := mapMessage(&gmailapi.Message{Id: "m", Payload: tt.payload})
			if !reflect.DeepEqual(email.Body.PlainText, tt.wantPlain) {
				t.Errorf("PlainText = %q, want %q", email.Body.PlainText, tt.wantPlain)
			}
			if !reflect.DeepEqual(email.Body.HTML, tt.wantHTML) {
				t.Errorf("HTML = %q, want %q", email.Body.HTML, tt.wantHTML)
			}
			if !reflect.DeepEqual(email.AttachmentIDs, tt.wantAttachIDs) {
				t.Errorf("AttachmentIDs = %v, want %v", email.AttachmentIDs, tt.wantAttachIDs)
			}
		})
	}
}

func TestMapAttendees(t *testing.T) {
	in := []*calendarapi.EventAttendee{
		{
			Id:               "p1",
			Email:            "jane@example.com",
			DisplayName:      "Jane",
			Organizer:        true,
			ResponseStatus:   "accepted",
			AdditionalGuests: 1,
		},
		nil,
		{Email: "room@example.com", Resource: true},
	}

	got := mapAttendees(in)
	if len(got) != 2 {
		t.Fatalf("mapAttendees() returned %d attendees, want 2", len(got))
	}
	if got[0].ProfileID != "p1" || got[0].AdditionalGuests != 1 || got[0].ResponseStatus != "accepted" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[0].Label() != "Jane (organizer)" {
		t.Errorf("got[0].Label() = %q, want %q", got[0].Label(), "Jane (organizer)")
	}
	// Calendar reports flags explicitly, so absent ones stay false.
	if got[1].Organizer || got[1].Self || !got[1].Resource {
		t.Errorf("got[1] flags = %+v", got[1])
	}
	if got[1].Label() != "room@example.com" {
		t.Errorf("got[1].Label() = %q, want %q", got[1].Label(), "room@example.com")
	}
}
