package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/workapi/internal/domain"
)

type emailSelectedMsg struct {
	emailID string
}

// inboxModel displays the cached emails of the active label.
type inboxModel struct {
	emails  []domain.Email
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

func newInbox() inboxModel {
	return inboxModel{}
}

func (m inboxModel) Update(msg tea.Msg) (inboxModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.emails)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Enter):
			id := m.SelectedEmailID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return emailSelectedMsg{emailID: id}
			}
		}
	}

	return m, nil
}

func (m inboxModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if len(m.emails) == 0 {
		return mutedTextStyle.Render("No messages")
	}

	var b strings.Builder
	end := min(m.offset+m.visibleRows(), len(m.emails))
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		line := renderEmailRow(m.emails[i], m.width)
		if i == m.cursor && m.focused {
			line = selectedStyle.Width(m.width).Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

// SetEmails replaces the list, keeping the cursor in range.
func (m *inboxModel) SetEmails(emails []domain.Email) {
	m.emails = emails
	m.clampCursor()
}

// MarkSeen updates the local copy so the row redraws without a reload.
func (m *inboxModel) MarkSeen(id string) {
	for i := range m.emails {
		if m.emails[i].ID == id {
			m.emails[i].Flags.Seen = true
			return
		}
	}
}

func (m *inboxModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

func (m *inboxModel) Reset() {
	m.cursor = 0
	m.offset = 0
}

// SelectedEmailID returns the ID of the highlighted email.
func (m inboxModel) SelectedEmailID() string {
	if len(m.emails) == 0 || m.cursor >= len(m.emails) {
		return ""
	}
	return m.emails[m.cursor].ID
}

func (m inboxModel) visibleRows() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

func (m *inboxModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *inboxModel) clampCursor() {
	if len(m.emails) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.emails) {
		m.cursor = len(m.emails) - 1
	}
	m.adjustScroll()
}

// renderEmailRow lays out star, sender, subject and date in one line.
// Shared by the inbox and the search results.
func renderEmailRow(e domain.Email, width int) string {
	star := "  "
	if e.Flags.Flagged {
		star = starStyle.Render("★ ")
	}

	date := relativeDate(e.ReceivedTime())

	fromWidth := 18
	dateWidth := len(date)
	subjectWidth := width - fromWidth - dateWidth - 6
	if subjectWidth < 10 {
		subjectWidth = 10
	}

	from := truncate(e.SenderLabel(), fromWidth)
	subject := truncate(e.SubjectLabel(), subjectWidth)

	subjectStyle := lipgloss.NewStyle().Width(subjectWidth)
	if e.Urgent {
		subjectStyle = urgentStyle.Width(subjectWidth)
	}

	fromCol := lipgloss.NewStyle().Width(fromWidth).Render(from)
	subjectCol := subjectStyle.Render(subject)
	dateCol := mutedTextStyle.Width(dateWidth).Render(date)

	line := star + fromCol + "  " + subjectCol + "  " + dateCol
	if !e.Flags.Seen {
		line = unreadStyle.Render(line)
	}
	return line
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
