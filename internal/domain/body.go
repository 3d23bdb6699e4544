package domain

import (
	"regexp"
	"strings"

	"github.com/lu-zhengda/workapi/internal/htmltext"
)

// EmailBody holds the raw content blocks of a message and the readable
// segments derived from them.
type EmailBody struct {
	// Segments is empty until Email.ProcessBodyContent runs.
	Segments []string `json:"segments"`

	// PlainText and HTML are the blocks present in the original message.
	// A nil slice means the alternative was absent from the payload.
	PlainText []string `json:"plain_text,omitempty"`
	HTML      []string `json:"html,omitempty"`
}

// HasPlainText reports whether at least one plain-text block is present.
// Blocks themselves may be empty strings.
func (b *EmailBody) HasPlainText() bool {
	return len(b.PlainText) > 0
}

// HasHTML reports whether at least one HTML block is present.
func (b *EmailBody) HasHTML() bool {
	return len(b.HTML) > 0
}

// Text returns the segments joined by blank lines.
func (b *EmailBody) Text() string {
	return strings.Join(b.Segments, "\n\n")
}

func (b *EmailBody) strippedHTML() []string {
	out := make([]string, len(b.HTML))
	for i, block := range b.HTML {
		out[i] = htmltext.ToText(block)
	}
	return out
}

var paragraphBreak = regexp.MustCompile(`\r\n\r\n|\n\n`)

// splitContent splits every block on blank lines and returns the trimmed,
// non-empty pieces in order.
func splitContent(blocks []string) []string {
	var out []string
	for _, block := range blocks {
		for _, piece := range paragraphBreak.Split(block, -1) {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}
		}
	}
	return out
}
