package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lu-zhengda/workapi/internal/domain"
)

type searchQueryMsg struct {
	query string
}

type searchResultSelectedMsg struct {
	emailID string
}

type closeSearchMsg struct{}

// searchModel runs full-text queries against the local cache.
type searchModel struct {
	input     textinput.Model
	results   []domain.Email
	cursor    int
	searching bool
	inputMode bool
	width     int
	height    int
}

func newSearch() searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search emails..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return searchModel{
		input:     ti,
		inputMode: true,
	}
}

func (s searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	if !s.searching {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return s, func() tea.Msg { return closeSearchMsg{} }

		case key.Matches(msg, keys.Enter):
			if s.inputMode {
				q := strings.TrimSpace(s.input.Value())
				if q == "" {
					return s, nil
				}
				s.inputMode = false
				s.input.Blur()
				s.cursor = 0
				return s, func() tea.Msg { return searchQueryMsg{query: q} }
			}
			id := s.SelectedEmailID()
			if id == "" {
				return s, nil
			}
			return s, func() tea.Msg { return searchResultSelectedMsg{emailID: id} }

		case !s.inputMode && key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil

		case !s.inputMode && key.Matches(msg, keys.Down):
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		}
	}

	if s.inputMode {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s searchModel) View() string {
	if !s.searching || s.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.input.View())
	b.WriteByte('\n')

	if len(s.results) == 0 {
		if !s.inputMode {
			b.WriteByte('\n')
			b.WriteString(mutedTextStyle.Render("No results"))
		}
		return b.String()
	}

	b.WriteByte('\n')
	b.WriteString(titleStyle.Render(fmt.Sprintf("Results (%d):", len(s.results))))
	b.WriteByte('\n')

	// input, blank line, header and padding
	rows := max(s.height-4, 1)
	end := min(len(s.results), rows)
	for i := 0; i < end; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := renderEmailRow(s.results[i], s.width)
		if !s.inputMode && i == s.cursor {
			line = selectedStyle.Width(s.width).Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

func (s *searchModel) Open() {
	s.searching = true
	s.inputMode = true
	s.input.Focus()
}

func (s *searchModel) Close() {
	s.searching = false
	s.inputMode = true
	s.input.SetValue("")
	s.input.Blur()
	s.results = nil
	s.cursor = 0
}

func (s *searchModel) SetResults(results []domain.Email) {
	s.results = results
	s.cursor = 0
}

func (s *searchModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	s.input.Width = w - 4
}

func (s searchModel) IsActive() bool {
	return s.searching
}

// SelectedEmailID returns the ID of the highlighted result.
func (s searchModel) SelectedEmailID() string {
	if len(s.results) == 0 || s.cursor >= len(s.results) {
		return ""
	}
	return s.results[s.cursor].ID
}
