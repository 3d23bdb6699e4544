package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/workapi/internal/domain"
)

type labelSelectedMsg struct {
	label string
}

// systemLabelOrder pins well-known labels to the top of the sidebar.
var systemLabelOrder = []string{
	domain.LabelInbox,
	domain.LabelStarred,
	domain.LabelSent,
	domain.LabelDraft,
	domain.LabelTrash,
	domain.LabelSpam,
}

var systemLabelNames = map[string]string{
	domain.LabelInbox:   "Inbox",
	domain.LabelStarred: "Starred",
	domain.LabelSent:    "Sent",
	domain.LabelDraft:   "Drafts",
	domain.LabelTrash:   "Trash",
	domain.LabelSpam:    "Spam",
}

// sidebarModel displays a navigable list of labels.
type sidebarModel struct {
	labels      []domain.Label
	cursor      int
	activeLabel string
	accountID   string
	width       int
	height      int
	focused     bool
}

func newSidebar() sidebarModel {
	return sidebarModel{
		activeLabel: domain.LabelInbox,
	}
}

// SetLabels stores labels with system labels first in canonical order.
func (s *sidebarModel) SetLabels(labels []domain.Label) {
	s.labels = orderLabels(labels)
	if s.cursor >= len(s.labels) {
		s.cursor = max(len(s.labels)-1, 0)
	}
}

func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused || len(s.labels) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor--
			if s.cursor < 0 {
				s.cursor = len(s.labels) - 1
			}
		case key.Matches(msg, keys.Down):
			s.cursor++
			if s.cursor >= len(s.labels) {
				s.cursor = 0
			}
		case key.Matches(msg, keys.Enter):
			label := s.labels[s.cursor].Name
			s.activeLabel = label
			return s, func() tea.Msg {
				return labelSelectedMsg{label: label}
			}
		}
	}

	return s, nil
}

func (s sidebarModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("workapi"))
	b.WriteString("\n")
	if s.accountID != "" {
		b.WriteString(mutedTextStyle.Render(truncate(s.accountID, max(s.width, 10))))
	}
	b.WriteString("\n")

	if len(s.labels) == 0 {
		b.WriteString(mutedTextStyle.Render("No labels"))
		return b.String()
	}

	for i, l := range s.labels {
		prefix := "  "
		if l.Name == s.activeLabel {
			prefix = "▶ "
		}
		line := fmt.Sprintf("%s%s (%d)", prefix, displayName(l.Name), l.Count)
		line = lipgloss.NewStyle().Width(max(s.width, 10)).Render(line)
		if s.focused && i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func orderLabels(labels []domain.Label) []domain.Label {
	byName := make(map[string]domain.Label, len(labels))
	for _, l := range labels {
		byName[l.Name] = l
	}

	out := make([]domain.Label, 0, len(labels))
	for _, name := range systemLabelOrder {
		if l, ok := byName[name]; ok {
			out = append(out, l)
		}
	}
	for _, l := range labels {
		if _, system := systemLabelNames[l.Name]; !system {
			out = append(out, l)
		}
	}
	return out
}

func displayName(label string) string {
	if name, ok := systemLabelNames[label]; ok {
		return name
	}
	return label
}
