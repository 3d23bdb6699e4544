package cli

import (
	"time"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// ---------------------------------------------------------------------------
// Account JSON types (account list)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Provider  string `json:"provider"`
	CreatedAt string `json:"created_at"`
}

func toJSONAccounts(accounts []domain.Account) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jsonAccount{
			ID:        a.ID,
			Email:     a.Email,
			Provider:  a.Provider,
			CreatedAt: a.CreatedAt.Format(time.DateOnly),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Email JSON types (list, search)
// ---------------------------------------------------------------------------

type jsonEmail struct {
	ID           string   `json:"id"`
	ThreadID     string   `json:"thread_id,omitempty"`
	Subject      string   `json:"subject"`
	SubjectLabel string   `json:"subject_label"`
	Sender       string   `json:"sender"`
	Date         string   `json:"date,omitempty"`
	Seen         bool     `json:"seen"`
	Flagged      bool     `json:"flagged"`
	Urgent       bool     `json:"urgent"`
	Labels       []string `json:"labels,omitempty"`
}

func toJSONEmails(emails []domain.Email) []jsonEmail {
	out := make([]jsonEmail, 0, len(emails))
	for i := range emails {
		out = append(out, toJSONEmail(&emails[i]))
	}
	return out
}

func toJSONEmail(e *domain.Email) jsonEmail {
	return jsonEmail{
		ID:           e.ID,
		ThreadID:     e.ThreadID,
		Subject:      e.Subject,
		SubjectLabel: e.SubjectLabel(),
		Sender:       e.SenderLabel(),
		Date:         formatTimestamp(e.ReceivedAt),
		Seen:         e.Flags.Seen,
		Flagged:      e.Flags.Flagged,
		Urgent:       e.Urgent,
		Labels:       e.Labels,
	}
}

// ---------------------------------------------------------------------------
// Email detail JSON type (read)
// ---------------------------------------------------------------------------

type jsonEmailDetail struct {
	jsonEmail
	Summary  string             `json:"summary"`
	From     domain.Recipient   `json:"from"`
	To       []domain.Recipient `json:"to,omitempty"`
	CC       []domain.Recipient `json:"cc,omitempty"`
	BCC      []domain.Recipient `json:"bcc,omitempty"`
	ToLabel  string             `json:"to_label,omitempty"`
	CCLabel  string             `json:"cc_label,omitempty"`
	BCCLabel string             `json:"bcc_label,omitempty"`
	Segments []string           `json:"segments"`
}

func toJSONEmailDetail(e *domain.Email) jsonEmailDetail {
	segments := e.Body.Segments
	if segments == nil {
		segments = []string{}
	}
	return jsonEmailDetail{
		jsonEmail: toJSONEmail(e),
		Summary:   e.Summary(),
		From:      e.Sender,
		To:        e.ToRecipients,
		CC:        e.CcRecipients,
		BCC:       e.BccRecipients,
		ToLabel:   e.ToRecipientsLabel(),
		CCLabel:   e.CcRecipientsLabel(),
		BCCLabel:  e.BccRecipientsLabel(),
		Segments:  segments,
	}
}

// ---------------------------------------------------------------------------
// Label JSON type (labels)
// ---------------------------------------------------------------------------

type jsonLabel struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func toJSONLabels(labels []domain.Label) []jsonLabel {
	out := make([]jsonLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, jsonLabel{Name: l.Name, Count: l.Count})
	}
	return out
}

// ---------------------------------------------------------------------------
// Attendee JSON type (attendees)
// ---------------------------------------------------------------------------

type jsonAttendee struct {
	Label            string `json:"label"`
	EmailAddress     string `json:"email_address"`
	DisplayName      string `json:"display_name,omitempty"`
	Organizer        bool   `json:"organizer"`
	Self             bool   `json:"self"`
	Resource         bool   `json:"resource"`
	Optional         bool   `json:"optional"`
	ResponseStatus   string `json:"response_status,omitempty"`
	AdditionalGuests int    `json:"additional_guests"`
}

func toJSONAttendees(attendees []domain.Attendee) []jsonAttendee {
	out := make([]jsonAttendee, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, jsonAttendee{
			Label:            a.Label(),
			EmailAddress:     a.EmailAddress,
			DisplayName:      a.DisplayName,
			Organizer:        a.Organizer,
			Self:             a.Self,
			Resource:         a.Resource,
			Optional:         a.Optional,
			ResponseStatus:   a.ResponseStatus,
			AdditionalGuests: a.AdditionalGuests,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Action JSON type (account add/remove, sync, import)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK        bool   `json:"ok"`
	Action    string `json:"action"`
	Email     string `json:"email,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Count     int    `json:"count,omitempty"`
}

func formatTimestamp(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
