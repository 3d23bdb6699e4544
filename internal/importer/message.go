// Package importer reads RFC 5322 messages and mbox archives into emails.
package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// ParseMessage reads a single message. Inline text/plain and text/html parts
// become body blocks in the order they appear; attachments are ignored. The
// body is left raw.
func ParseMessage(r io.Reader) (*domain.Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && (mr == nil || !message.IsUnknownCharset(err)) {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	defer mr.Close()

	e := parseHeader(&mr.Header)

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && (p == nil || !message.IsUnknownCharset(err)) {
			return nil, fmt.Errorf("failed to read part of message %s: %w", e.ID, err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType := "text/plain"
		if h.Get("Content-Type") != "" {
			if contentType, _, err = h.ContentType(); err != nil {
				continue
			}
		}

		switch strings.ToLower(contentType) {
		case "text/plain":
			text, err := io.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read text part of message %s: %w", e.ID, err)
			}
			e.Body.PlainText = append(e.Body.PlainText, string(text))
		case "text/html":
			markup, err := io.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read html part of message %s: %w", e.ID, err)
			}
			e.Body.HTML = append(e.Body.HTML, string(markup))
		}
	}

	return e, nil
}

func parseHeader(h *mail.Header) *domain.Email {
	e := &domain.Email{}

	if id, err := h.MessageID(); err == nil && id != "" {
		e.ID = id
	} else {
		e.ID = headerID(h)
	}

	if subject, err := h.Subject(); err == nil {
		e.Subject = subject
	} else {
		e.Subject = h.Get("Subject")
	}

	if from := addressList(h, "From"); len(from) > 0 {
		e.Sender = from[0]
	}
	e.ToRecipients = addressList(h, "To")
	e.CcRecipients = addressList(h, "Cc")
	e.BccRecipients = addressList(h, "Bcc")

	if date, err := h.Date(); err == nil && !date.IsZero() {
		e.ReceivedAt = date.Unix()
	}
	return e
}

// headerID derives an ID from the header fields so that importing the same
// message twice updates one row.
func headerID(h *mail.Header) string {
	sum := sha256.New()
	fields := h.Fields()
	for fields.Next() {
		io.WriteString(sum, fields.Key())
		io.WriteString(sum, ": ")
		io.WriteString(sum, fields.Value())
		io.WriteString(sum, "\r\n")
	}
	return "import-" + hex.EncodeToString(sum.Sum(nil))[:32]
}

func addressList(h *mail.Header, key string) []domain.Recipient {
	addrs, err := h.AddressList(key)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	out := make([]domain.Recipient, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, domain.Recipient{Name: a.Name, Address: a.Address})
	}
	return out
}
