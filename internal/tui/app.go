package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/workapi/internal/app"
	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/store"
)

type pane int

const (
	paneSidebar pane = iota
	paneList
	paneReader
)

// --- async result messages ---

type labelsLoadedMsg struct {
	labels []domain.Label
}

type emailsLoadedMsg struct {
	emails []domain.Email
}

type emailLoadedMsg struct {
	email *domain.Email
}

type searchResultsMsg struct {
	results []domain.Email
}

type syncDoneMsg struct {
	fetched int
}

type syncTickMsg struct{}

type syncFailedMsg struct {
	err error
}

type errMsg struct {
	err error
}

// Syncer pulls emails from the remote provider into the store.
type Syncer interface {
	Sync(ctx context.Context, count int) (*app.SyncResult, error)
}

// Options configures the TUI.
type Options struct {
	Store     store.Store
	Syncer    Syncer
	AccountID string
	Rules     app.UrgencyRules
	SyncCount int

	// SyncInterval triggers a background sync periodically. Zero disables it.
	SyncInterval time.Duration
}

// --- root model ---

type model struct {
	store     store.Store
	syncer    Syncer
	accountID string
	rules     app.UrgencyRules
	syncCount int
	interval  time.Duration

	sidebar sidebarModel
	inbox   inboxModel
	reader  readerModel
	search  searchModel

	activePane pane
	statusBar  statusBar
	syncing    bool

	width  int
	height int
}

func newModel(opts Options) model {
	inbox := newInbox()
	inbox.focused = true

	sidebar := newSidebar()
	sidebar.accountID = opts.AccountID

	return model{
		store:      opts.Store,
		syncer:     opts.Syncer,
		accountID:  opts.AccountID,
		rules:      opts.Rules,
		syncCount:  opts.SyncCount,
		interval:   opts.SyncInterval,
		sidebar:    sidebar,
		inbox:      inbox,
		reader:     newReader(),
		search:     newSearch(),
		activePane: paneList,
		statusBar:  newStatusBar(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadLabelsCmd(),
		m.loadMailCmd(m.sidebar.activeLabel),
		m.tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	case labelsLoadedMsg:
		m.sidebar.SetLabels(msg.labels)
		return m, nil

	case emailsLoadedMsg:
		m.inbox.SetEmails(msg.emails)
		m.statusBar.setMessage(fmt.Sprintf("Loaded %d emails", len(msg.emails)))
		return m, nil

	case emailLoadedMsg:
		m.inbox.MarkSeen(msg.email.ID)
		m.reader.ShowEmail(msg.email)
		m.statusBar.readerVisible = true
		m.setFocus(paneReader)
		m.resizeSubModels()
		m.statusBar.setMessage(msg.email.Summary())
		return m, nil

	case searchResultsMsg:
		m.search.SetResults(msg.results)
		m.statusBar.setMessage(fmt.Sprintf("Found %d results", len(msg.results)))
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.statusBar.setMessage(fmt.Sprintf("Synced %d emails", msg.fetched))
		return m, tea.Batch(
			m.loadLabelsCmd(),
			m.loadMailCmd(m.sidebar.activeLabel),
		)

	case syncTickMsg:
		if m.syncer == nil || m.syncing {
			return m, m.tickCmd()
		}
		m.syncing = true
		m.statusBar.setMessage("Syncing...")
		return m, tea.Batch(m.syncCmd(), m.tickCmd())

	case syncFailedMsg:
		m.syncing = false
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	case errMsg:
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	// --- sub-model emitted messages ---
	case labelSelectedMsg:
		m.reader.Close()
		m.statusBar.readerVisible = false
		m.inbox.Reset()
		m.setFocus(paneList)
		m.resizeSubModels()
		m.statusBar.setMessage(fmt.Sprintf("Loading %s...", msg.label))
		return m, m.loadMailCmd(msg.label)

	case emailSelectedMsg:
		m.statusBar.setMessage("Loading email...")
		return m, m.openEmailCmd(msg.emailID)

	case closeReaderMsg:
		m.reader.Close()
		m.statusBar.readerVisible = false
		m.setFocus(paneList)
		m.resizeSubModels()
		return m, nil

	case searchQueryMsg:
		m.statusBar.setMessage(fmt.Sprintf("Searching: %s", msg.query))
		return m, m.searchCmd(msg.query)

	case searchResultSelectedMsg:
		m.search.Close()
		m.setFocus(paneList)
		return m, m.openEmailCmd(msg.emailID)

	case closeSearchMsg:
		m.search.Close()
		m.setFocus(paneList)
		return m, nil

	case tea.KeyMsg:
		if m.search.IsActive() {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Search):
			m.search.Open()
			m.resizeSubModels()
			return m, nil

		case key.Matches(msg, keys.Sync):
			if m.syncer == nil {
				m.statusBar.setError("No remote account configured")
				return m, nil
			}
			if m.syncing {
				return m, nil
			}
			m.syncing = true
			m.statusBar.setMessage("Syncing...")
			return m, m.syncCmd()

		case key.Matches(msg, keys.Tab):
			if m.reader.IsVisible() {
				if m.activePane == paneList {
					m.setFocus(paneReader)
				} else {
					m.setFocus(paneList)
				}
			} else if m.activePane == paneSidebar {
				m.setFocus(paneList)
			} else {
				m.setFocus(paneSidebar)
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.activePane {
		case paneSidebar:
			m.sidebar, cmd = m.sidebar.Update(msg)
		case paneList:
			m.inbox, cmd = m.inbox.Update(msg)
		case paneReader:
			m.reader, cmd = m.reader.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3 // status bar

	sidebarView := sidebarStyle.
		Width(sidebarWidth).
		Height(contentHeight).
		Render(m.sidebar.View())

	var contentView string
	switch {
	case m.search.IsActive():
		contentView = lipgloss.NewStyle().
			Width(contentWidth).
			Height(contentHeight).
			Render(m.search.View())

	case m.reader.IsVisible():
		listHeight := contentHeight / 2
		readerHeight := contentHeight - listHeight

		listView := listStyle.
			Width(contentWidth).
			Height(listHeight).
			Render(m.inbox.View())
		readerView := readerStyle.
			Width(contentWidth).
			Height(readerHeight).
			Render(m.reader.View())
		contentView = lipgloss.JoinVertical(lipgloss.Left, listView, readerView)

	default:
		contentView = listStyle.
			Width(contentWidth).
			Height(contentHeight).
			Render(m.inbox.View())
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, contentView)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
}

func (m *model) setFocus(p pane) {
	m.activePane = p
	m.sidebar.focused = p == paneSidebar
	m.inbox.focused = p == paneList
	m.reader.focused = p == paneReader
}

func (m model) layoutWidths() (sidebarWidth, contentWidth int) {
	sidebarWidth = max(m.width/5, 20)
	contentWidth = m.width - sidebarWidth - 2
	return
}

func (m *model) resizeSubModels() {
	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3

	// Sizes exclude each style's border and padding.
	m.sidebar.SetSize(sidebarWidth-4, contentHeight-4)
	if m.reader.IsVisible() {
		listHeight := contentHeight / 2
		readerHeight := contentHeight - listHeight
		m.inbox.SetSize(contentWidth-4, listHeight-2)
		m.reader.SetSize(contentWidth-6, readerHeight-4)
	} else {
		m.inbox.SetSize(contentWidth-4, contentHeight-2)
	}
	m.search.SetSize(contentWidth, contentHeight)
}

// --- async commands ---

func (m model) loadLabelsCmd() tea.Cmd {
	return func() tea.Msg {
		labels, err := m.store.ListLabels(context.Background(), m.accountID)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load labels: %w", err)}
		}
		return labelsLoadedMsg{labels: labels}
	}
}

func (m model) loadMailCmd(label string) tea.Cmd {
	opts := store.ListEmailOptions{
		AccountID: m.accountID,
		Label:     label,
	}
	return func() tea.Msg {
		emails, err := m.store.ListEmails(context.Background(), opts)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load emails: %w", err)}
		}
		m.rules.ApplyAll(emails)
		return emailsLoadedMsg{emails: emails}
	}
}

// openEmailCmd loads an email and records it as seen in the local cache.
func (m model) openEmailCmd(emailID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		email, err := m.store.GetEmail(ctx, emailID)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load email: %w", err)}
		}
		if !email.Flags.Seen {
			email.Flags.Seen = true
			if err := m.store.SetEmailFlags(ctx, email.ID, email.Flags); err != nil {
				return errMsg{err: fmt.Errorf("failed to mark as seen: %w", err)}
			}
		}
		m.rules.Apply(email)
		return emailLoadedMsg{email: email}
	}
}

func (m model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.store.SearchEmails(context.Background(), query, m.accountID)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to search: %w", err)}
		}
		m.rules.ApplyAll(results)
		return searchResultsMsg{results: results}
	}
}

func (m model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.syncer.Sync(context.Background(), m.syncCount)
		if err != nil {
			return syncFailedMsg{err: fmt.Errorf("failed to sync: %w", err)}
		}
		return syncDoneMsg{fetched: res.Fetched}
	}
}

func (m model) tickCmd() tea.Cmd {
	if m.interval <= 0 || m.syncer == nil {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return syncTickMsg{}
	})
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	prog := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
