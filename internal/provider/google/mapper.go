package google

import (
	"encoding/base64"
	"net/mail"
	"strings"

	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// mapMessage converts a Gmail API Message to a domain Email. The body blocks
// are left raw.
func mapMessage(msg *gmailapi.Message) *domain.Email {
	var headers []*gmailapi.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	var body domain.EmailBody
	var attachments []string
	walkParts(msg.Payload, &body, &attachments)

	return &domain.Email{
		ID:            msg.Id,
		ThreadID:      msg.ThreadId,
		Subject:       findHeader(headers, "Subject"),
		Sender:        parseAddress(findHeader(headers, "From")),
		ToRecipients:  parseAddressList(findHeader(headers, "To")),
		CcRecipients:  parseAddressList(findHeader(headers, "Cc")),
		BccRecipients: parseAddressList(findHeader(headers, "Bcc")),
		Flags: domain.Flags{
			Seen:    !containsLabel(msg.LabelIds, "UNREAD"),
			Flagged: containsLabel(msg.LabelIds, domain.LabelStarred),
		},
		Body:          body,
		Labels:        msg.LabelIds,
		ReceivedAt:    msg.InternalDate / 1000,
		AttachmentIDs: attachments,
	}
}

// mapAttendees converts Calendar event attendees field for field.
func mapAttendees(in []*calendarapi.EventAttendee) []domain.Attendee {
	out := make([]domain.Attendee, 0, len(in))
	for _, a := range in {
		if a == nil {
			continue
		}
		out = append(out, domain.Attendee{
			ProfileID:        a.Id,
			EmailAddress:     a.Email,
			DisplayName:      a.DisplayName,
			Organizer:        a.Organizer,
			Self:             a.Self,
			Resource:         a.Resource,
			Optional:         a.Optional,
			ResponseStatus:   a.ResponseStatus,
			Comment:          a.Comment,
			AdditionalGuests: int(a.AdditionalGuests),
		})
	}
	return out
}

// findHeader performs a case-insensitive lookup for a header value.
func findHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// parseAddress parses an RFC 5322 address string into a Recipient.
// Falls back to treating the entire string as a bare address if parsing fails.
func parseAddress(s string) domain.Recipient {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Recipient{}
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return domain.Recipient{Address: s}
	}
	return domain.Recipient{Name: addr.Name, Address: addr.Address}
}

// parseAddressList parses a comma-separated list of RFC 5322 addresses.
func parseAddressList(s string) []domain.Recipient {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parsed, err := mail.ParseAddressList(s)
	if err != nil {
		// Fallback: split by comma and parse individually
		var out []domain.Recipient
		for _, p := range strings.Split(s, ",") {
			if r := parseAddress(p); r.Address != "" {
				out = append(out, r)
			}
		}
		return out
	}

	out := make([]domain.Recipient, 0, len(parsed))
	for _, a := range parsed {
		out = append(out, domain.Recipient{Name: a.Name, Address: a.Address})
	}
	return out
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// walkParts collects every inline text/plain and text/html leaf as a body
// block in tree order, and the attachment ids of file parts.
func walkParts(part *gmailapi.MessagePart, body *domain.EmailBody, attachments *[]string) {
	if part == nil {
		return
	}
	if len(part.Parts) > 0 {
		for _, p := range part.Parts {
			walkParts(p, body, attachments)
		}
		return
	}

	if part.Filename != "" {
		if part.Body != nil && part.Body.AttachmentId != "" {
			*attachments = append(*attachments, part.Body.AttachmentId)
		}
		return
	}

	var data string
	if part.Body != nil {
		data = decodeBase64URL(part.Body.Data)
	}

	switch strings.ToLower(part.MimeType) {
	case "text/plain":
		body.PlainText = append(body.PlainText, data)
	case "text/html":
		body.HTML = append(body.HTML, data)
	}
}

// decodeBase64URL decodes Gmail's URL-safe base64 encoded strings. Gmail
// sometimes includes padding, so both forms are accepted.
func decodeBase64URL(s string) string {
	if s == "" {
		return ""
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return ""
	}
	return string(data)
}
