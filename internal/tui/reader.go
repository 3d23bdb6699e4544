package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lu-zhengda/workapi/internal/domain"
)

type closeReaderMsg struct{}

// readerModel shows one email in a scrollable pane.
type readerModel struct {
	email        *domain.Email
	content      string
	scrollOffset int
	maxScroll    int
	width        int
	height       int
	focused      bool
	visible      bool
}

func newReader() readerModel {
	return readerModel{}
}

func (r readerModel) Update(msg tea.Msg) (readerModel, tea.Cmd) {
	if !r.focused || !r.visible {
		return r, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.scrollOffset > 0 {
				r.scrollOffset--
			}

		case key.Matches(msg, keys.Down):
			if r.scrollOffset < r.maxScroll {
				r.scrollOffset++
			}

		case key.Matches(msg, keys.Back):
			return r, func() tea.Msg {
				return closeReaderMsg{}
			}
		}
	}

	return r, nil
}

func (r readerModel) View() string {
	if !r.visible || r.width == 0 || r.height == 0 {
		return ""
	}
	if r.content == "" {
		return mutedTextStyle.Render("No email selected")
	}

	lines := strings.Split(r.content, "\n")
	start := min(r.scrollOffset, len(lines))
	end := min(start+max(r.height, 1), len(lines))
	return strings.Join(lines[start:end], "\n")
}

// ShowEmail displays email and resets the scroll position.
func (r *readerModel) ShowEmail(email *domain.Email) {
	r.email = email
	r.visible = true
	r.scrollOffset = 0
	r.content = renderEmail(email, r.width)
	r.recalcMaxScroll()
}

// Close hides the reader and clears its content.
func (r *readerModel) Close() {
	r.visible = false
	r.email = nil
	r.content = ""
	r.scrollOffset = 0
	r.maxScroll = 0
}

func (r *readerModel) SetSize(w, h int) {
	r.width = w
	r.height = h
	if r.email != nil {
		r.content = renderEmail(r.email, r.width)
	}
	r.recalcMaxScroll()
}

func (r readerModel) IsVisible() bool {
	return r.visible
}

func (r *readerModel) recalcMaxScroll() {
	if r.content == "" {
		r.maxScroll = 0
		r.scrollOffset = 0
		return
	}
	lines := strings.Count(r.content, "\n") + 1
	r.maxScroll = max(lines-max(r.height, 1), 0)
	if r.scrollOffset > r.maxScroll {
		r.scrollOffset = r.maxScroll
	}
}

// renderEmail formats the headers followed by the body segments.
func renderEmail(email *domain.Email, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(email.Summary()))
	b.WriteByte('\n')

	header := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(mutedTextStyle.Render(name))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	header("From:    ", email.SenderLabel())
	header("To:      ", email.ToRecipientsLabel())
	header("Cc:      ", email.CcRecipientsLabel())
	header("Bcc:     ", email.BccRecipientsLabel())
	if t := email.ReceivedTime(); !t.IsZero() {
		header("Date:    ", t.Format("Jan 2, 2006 3:04 PM"))
	}
	header("Subject: ", email.SubjectLabel())

	b.WriteString(mutedTextStyle.Render(strings.Repeat("─", max(width, 20))))
	b.WriteByte('\n')

	body := email.Body.Text()
	if body == "" {
		body = mutedTextStyle.Render("(no readable content)")
	}
	b.WriteByte('\n')
	b.WriteString(body)

	return b.String()
}
