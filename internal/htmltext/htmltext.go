// Package htmltext extracts readable text from HTML email parts.
//
// Block-level elements are separated by a single newline and <br> emits a
// newline, so two consecutive <br> tags produce a blank line. Runs of
// whitespace outside <pre> collapse to one space. Content of script, style,
// head and title elements is dropped. Input that does not tokenize as markup
// is kept as literal text.
package htmltext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Head: true, atom.Title: true,
	atom.Noscript: true, atom.Template: true,
}

// ToText converts an HTML fragment or document into plain text and removes
// any "<!-- ... -->" sequences left in the extracted text.
func ToText(markup string) string {
	return StripComments(extract(markup))
}

// StripComments removes HTML comment sequences, including ones spanning
// several lines.
func StripComments(s string) string {
	return commentPattern.ReplaceAllString(s, "")
}

func extract(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	w := newWriter()
	skip, pre := 0, 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce.
			return w.String()

		case html.TextToken:
			if skip > 0 {
				continue
			}
			if pre > 0 {
				w.writeRaw(string(z.Text()))
			} else {
				w.writeCollapsed(string(z.Text()))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			switch {
			case skippedElements[tag]:
				if tt == html.StartTagToken {
					skip++
				}
			case tag == atom.Br:
				w.newline()
			case blockElements[tag]:
				w.blockBreak()
				if tag == atom.Pre && tt == html.StartTagToken {
					pre++
				}
			case tag == atom.Td || tag == atom.Th:
				w.cellBreak()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			switch {
			case skippedElements[tag]:
				if skip > 0 {
					skip--
				}
			case blockElements[tag]:
				w.blockBreak()
				if tag == atom.Pre && pre > 0 {
					pre--
				}
			}
		}
	}
}

// writer accumulates text while tracking line state for whitespace collapsing.
type writer struct {
	b            strings.Builder
	atLineStart  bool
	pendingSpace bool
}

func newWriter() *writer {
	return &writer{atLineStart: true}
}

func (w *writer) String() string {
	return w.b.String()
}

func (w *writer) writeCollapsed(text string) {
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !w.atLineStart {
				w.pendingSpace = true
			}
			continue
		}
		if w.pendingSpace {
			w.b.WriteByte(' ')
			w.pendingSpace = false
		}
		w.b.WriteRune(r)
		w.atLineStart = false
	}
}

func (w *writer) writeRaw(text string) {
	if text == "" {
		return
	}
	if w.pendingSpace {
		w.b.WriteByte(' ')
		w.pendingSpace = false
	}
	w.b.WriteString(text)
	w.atLineStart = strings.HasSuffix(text, "\n")
}

func (w *writer) newline() {
	w.b.WriteByte('\n')
	w.atLineStart = true
	w.pendingSpace = false
}

// blockBreak ends the current line unless it is already empty.
func (w *writer) blockBreak() {
	if !w.atLineStart {
		w.newline()
	}
}

func (w *writer) cellBreak() {
	if !w.atLineStart {
		w.pendingSpace = true
	}
}
