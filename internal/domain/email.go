package domain

import "time"

// Matcher is implemented by records that can be filtered by account,
// contact or keyword.
type Matcher interface {
	MatchesAccount(account string) bool
	MatchesContact(contact string) bool
	MatchesKeyword(keyword string) bool
}

// Flags carries the per-message state flags.
type Flags struct {
	Seen    bool `json:"seen"`
	Flagged bool `json:"flagged"`
}

type Email struct {
	// ID is the resource id from the API envelope, not part of attributes.
	ID            string      `json:"-"`
	ThreadID      string      `json:"thread_id"`
	Subject       string      `json:"subject"`
	Sender        Recipient   `json:"sender"`
	ToRecipients  []Recipient `json:"to_recipients"`
	CcRecipients  []Recipient `json:"cc_recipients"`
	BccRecipients []Recipient `json:"bcc_recipients"`
	Flags         Flags       `json:"flags"`
	Body          EmailBody   `json:"body"`
	Labels        []string    `json:"labels"`
	ReceivedAt    int64       `json:"received_at"` // Unix seconds

	// Relationship linkage, filled by the provider.
	MailboxIDs    []string `json:"-"`
	AttachmentIDs []string `json:"-"`

	// Urgent is set in-process by urgency rules and never serialized.
	Urgent bool `json:"-"`
}

var _ Matcher = (*Email)(nil)

// ReceivedTime returns ReceivedAt as a time.Time, or the zero time if unset.
func (e *Email) ReceivedTime() time.Time {
	if e.ReceivedAt == 0 {
		return time.Time{}
	}
	return time.Unix(e.ReceivedAt, 0)
}

func (e *Email) HasLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// SubjectLabel returns the subject, suffixed with " [URGENT]" when Urgent is set.
func (e *Email) SubjectLabel() string {
	if e.Urgent {
		return e.Subject + " [URGENT]"
	}
	return e.Subject
}

// Summary returns `"<subject>" from <sender>`.
func (e *Email) Summary() string {
	return `"` + e.Subject + `" from ` + e.SenderLabel()
}

func (e *Email) SenderLabel() string {
	return e.Sender.Label()
}

func (e *Email) ToRecipientsLabel() string {
	return RecipientsLabel(e.ToRecipients)
}

func (e *Email) CcRecipientsLabel() string {
	return RecipientsLabel(e.CcRecipients)
}

func (e *Email) BccRecipientsLabel() string {
	return RecipientsLabel(e.BccRecipients)
}

// ProcessBodyContent derives Body.Segments from the plain-text blocks, or
// from the HTML blocks when there is no plain text. Segments are appended,
// so calling it twice duplicates them.
func (e *Email) ProcessBodyContent() {
	switch {
	case e.Body.HasPlainText():
		e.Body.Segments = append(e.Body.Segments, splitContent(e.Body.PlainText)...)
	case e.Body.HasHTML():
		e.Body.Segments = append(e.Body.Segments, splitContent(e.Body.strippedHTML())...)
	}
}

// MatchesAccount is not supported for emails and always reports false.
func (e *Email) MatchesAccount(account string) bool {
	return false
}

// MatchesContact reports whether the sender address or name equals contact.
func (e *Email) MatchesContact(contact string) bool {
	return e.Sender.Address == contact || e.Sender.Name == contact
}

// MatchesKeyword reports whether any body segment equals keyword.
func (e *Email) MatchesKeyword(keyword string) bool {
	for _, s := range e.Body.Segments {
		if s == keyword {
			return true
		}
	}
	return false
}
