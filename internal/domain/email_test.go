package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestEmail_HasLabel(t *testing.T) {
	e := &Email{Labels: []string{"INBOX", "STARRED"}}
	if !e.HasLabel("INBOX") {
		t.Error("expected HasLabel(INBOX) = true")
	}
	if e.HasLabel("TRASH") {
		t.Error("expected HasLabel(TRASH) = false")
	}
}

func TestEmail_SubjectLabel(t *testing.T) {
	e := &Email{Subject: "Quarterly report"}
	if got := e.SubjectLabel(); got != "Quarterly report" {
		t.Errorf("SubjectLabel() = %q, want %q", got, "Quarterly report")
	}

	e.Urgent = true
	if got := e.SubjectLabel(); got != "Quarterly report [URGENT]" {
		t.Errorf("SubjectLabel() urgent = %q, want %q", got, "Quarterly report [URGENT]")
	}
}

func TestEmail_Summary(t *testing.T) {
	tests := []struct {
		name  string
		email Email
		want  string
	}{
		{"address only", Email{Subject: "Hi", Sender: Recipient{Address: "a@b.com"}}, `"Hi" from a@b.com`},
		{"named sender", Email{Subject: "Hi", Sender: Recipient{Name: "Ann", Address: "a@b.com"}}, `"Hi" from Ann`},
		{"empty", Email{}, `"" from `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.email.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmail_RecipientLabels(t *testing.T) {
	e := &Email{
		ToRecipients:  []Recipient{{Name: "Bob", Address: "bob@example.com"}, {Address: "carol@example.com"}},
		CcRecipients:  []Recipient{{Address: "dave@example.com"}},
		BccRecipients: nil,
	}
	if got := e.ToRecipientsLabel(); got != "Bob, carol@example.com" {
		t.Errorf("ToRecipientsLabel() = %q", got)
	}
	if got := e.CcRecipientsLabel(); got != "dave@example.com" {
		t.Errorf("CcRecipientsLabel() = %q", got)
	}
	if got := e.BccRecipientsLabel(); got != "" {
		t.Errorf("BccRecipientsLabel() = %q, want empty", got)
	}
}

func TestEmail_ProcessBodyContent(t *testing.T) {
	tests := []struct {
		name string
		body EmailBody
		want []string
	}{
		{
			name: "plain text paragraphs",
			body: EmailBody{PlainText: []string{"para1\n\npara2  "}},
			want: []string{"para1", "para2"},
		},
		{
			name: "crlf paragraphs across blocks",
			body: EmailBody{PlainText: []string{"a\r\n\r\nb", "  ", "c\n\n\n\nd"}},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "single newlines kept inside a segment",
			body: EmailBody{PlainText: []string{"line one\nline two"}},
			want: []string{"line one\nline two"},
		},
		{
			name: "plain text preferred over html",
			body: EmailBody{PlainText: []string{"text"}, HTML: []string{"<p>html</p>"}},
			want: []string{"text"},
		},
		{
			name: "plain text of empty blocks still wins",
			body: EmailBody{PlainText: []string{""}, HTML: []string{"<p>html</p>"}},
			want: nil,
		},
		{
			name: "html fallback strips tags and comments",
			body: EmailBody{HTML: []string{"<p>Hello</p><!-- track -->"}},
			want: []string{"Hello"},
		},
		{
			name: "empty plain text list falls back to html",
			body: EmailBody{PlainText: []string{}, HTML: []string{"One<br><br>Two"}},
			want: []string{"One", "Two"},
		},
		{
			name: "neither present",
			body: EmailBody{},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Email{Body: tt.body}
			e.ProcessBodyContent()
			if !reflect.DeepEqual(e.Body.Segments, tt.want) {
				t.Errorf("Segments = %q, want %q", e.Body.Segments, tt.want)
			}
		})
	}
}

func TestEmail_ProcessBodyContent_NoCommentResidue(t *testing.T) {
	e := &Email{Body: EmailBody{HTML: []string{"<div>Hi<!--\nmulti-line\n--></div><p>&lt;!-- literal --&gt;</p>"}}}
	e.ProcessBodyContent()
	for _, s := range e.Body.Segments {
		if strings.Contains(s, "<!--") || strings.Contains(s, "-->") {
			t.Errorf("segment %q contains comment residue", s)
		}
	}
}

func TestEmail_ProcessBodyContent_AppendsOnRepeat(t *testing.T) {
	e := &Email{Body: EmailBody{PlainText: []string{"one\n\ntwo"}}}
	e.ProcessBodyContent()
	e.ProcessBodyContent()

	want := []string{"one", "two", "one", "two"}
	if !reflect.DeepEqual(e.Body.Segments, want) {
		t.Errorf("Segments after two passes = %q, want %q", e.Body.Segments, want)
	}
}

func TestEmail_Matches(t *testing.T) {
	e := &Email{
		Sender: Recipient{Name: "Alice", Address: "alice@example.com"},
		Body:   EmailBody{Segments: []string{"Lunch?", "See you at noon."}},
	}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"contact by address", e.MatchesContact("alice@example.com"), true},
		{"contact by name", e.MatchesContact("Alice"), true},
		{"contact is literal", e.MatchesContact("alice@.*"), false},
		{"contact partial", e.MatchesContact("alice"), false},
		{"keyword whole segment", e.MatchesKeyword("Lunch?"), true},
		{"keyword is literal", e.MatchesKeyword("Lunch."), false},
		{"keyword substring", e.MatchesKeyword("noon"), false},
		{"account unsupported", e.MatchesAccount("alice@example.com"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestEmail_JSON(t *testing.T) {
	payload := `{
		"thread_id": "t-1",
		"subject": "Standup",
		"sender": {"name": "Ann", "address": "ann@example.com"},
		"to_recipients": [{"name": "", "address": "bob@example.com"}],
		"cc_recipients": [],
		"bcc_recipients": [],
		"flags": {"seen": true, "flagged": false},
		"body": {"segments": [], "plain_text": ["hello\n\nworld"]},
		"labels": ["INBOX"],
		"received_at": 1700000000
	}`

	var e Email
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if e.ThreadID != "t-1" || e.Sender.Address != "ann@example.com" || !e.Flags.Seen {
		t.Errorf("decoded email = %+v", e)
	}
	if !e.Body.HasPlainText() || e.Body.HasHTML() {
		t.Errorf("HasPlainText/HasHTML = %v/%v, want true/false", e.Body.HasPlainText(), e.Body.HasHTML())
	}
	if e.ReceivedTime().Unix() != 1700000000 {
		t.Errorf("ReceivedTime() = %v", e.ReceivedTime())
	}

	e.Urgent = true
	out, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if strings.Contains(string(out), "rgent") {
		t.Errorf("urgent flag leaked into wire payload: %s", out)
	}
	if strings.Contains(string(out), `"html"`) {
		t.Errorf("absent html should be omitted: %s", out)
	}
}
