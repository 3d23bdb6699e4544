package workapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lu-zhengda/workapi/internal/domain"
)

const (
	mediaType = "application/vnd.api+json"

	typeEmail = "email"

	relMailboxes   = "mailboxes"
	relAttachments = "email_attachments"
)

type collectionDocument struct {
	Data  []resource `json:"data"`
	Links links      `json:"links"`
}

type singleDocument struct {
	Data resource `json:"data"`
}

type links struct {
	Next string `json:"next"`
}

type resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]relationship `json:"relationships"`
}

type relationship struct {
	Data json.RawMessage `json:"data"`
}

type identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ids returns the linkage ids of a to-one or to-many relationship.
func (r relationship) ids() ([]string, error) {
	data := bytes.TrimSpace(r.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '[' {
		var many []identifier
		if err := json.Unmarshal(data, &many); err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(many))
		for _, id := range many {
			ids = append(ids, id.ID)
		}
		return ids, nil
	}

	var one identifier
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []string{one.ID}, nil
}

func decodeEmail(r *resource) (*domain.Email, error) {
	if r.Type != "" && r.Type != typeEmail {
		return nil, fmt.Errorf("unexpected resource type %q for %s", r.Type, r.ID)
	}

	var e domain.Email
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &e); err != nil {
			return nil, fmt.Errorf("failed to decode email %s: %w", r.ID, err)
		}
	}
	e.ID = r.ID

	var err error
	if e.MailboxIDs, err = r.Relationships[relMailboxes].ids(); err != nil {
		return nil, fmt.Errorf("failed to decode mailboxes of email %s: %w", r.ID, err)
	}
	if e.AttachmentIDs, err = r.Relationships[relAttachments].ids(); err != nil {
		return nil, fmt.Errorf("failed to decode attachments of email %s: %w", r.ID, err)
	}
	return &e, nil
}

// nextCursor extracts the page[cursor] value from a links.next URL.
func nextCursor(next string) (string, error) {
	if next == "" {
		return "", nil
	}
	u, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("failed to parse next link %q: %w", next, err)
	}
	return u.Query().Get("page[cursor]"), nil
}
