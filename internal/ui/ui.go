// package ui implements the interactive terminal interface.
//
// The flow mirrors the CLI: analyze the channel's tags, pick a tag from the
// table, fill in playlist details, confirm, then watch the build progress.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AnalyzeView ViewState = iota
	TagTableView
	FormView
	ConfirmView
	CreateView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine tasks.Engine
	width  int
	height int

	analysis    *tasks.AnalysisResult
	tagTable    table.Model
	selectedTag *models.TagCount

	titleInput textinput.Model
	visibility models.Visibility

	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.PlaylistResult
	err          error

	help help.Model
	keys keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	cycle   key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "visibility"),
		),
		yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.yes, k.no},
		{k.restart, k.quit},
	}
}

type analysisDoneMsg struct {
	result *tasks.AnalysisResult
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type createDoneMsg struct {
	result *tasks.PlaylistResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Engine) *Model {
	input := textinput.New()
	input.Placeholder = "Playlist title (leave empty for default)"
	input.CharLimit = 150

	return &Model{
		ctx:        ctx,
		view:       AnalyzeView,
		engine:     engine,
		titleInput: input,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the tag analysis immediately.
func (m *Model) Init() tea.Cmd {
	return m.startAnalysis()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.tagTable.Width() > 0 {
			m.tagTable.SetHeight(max(msg.Height-10, 5))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TagTableView:
			return m.handleTagTableKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case analysisDoneMsg:
		m.progressChan = nil
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.analysis = msg.result
		m.tagTable = newTagTable(msg.result.Tags, max(m.height-10, 5))
		m.view = TagTableView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case createDoneMsg:
		m.progressChan = nil
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == TagTableView {
		var cmd tea.Cmd
		m.tagTable, cmd = m.tagTable.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case AnalyzeView:
		return m.renderAnalyze()
	case TagTableView:
		return m.renderTagTable()
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	case CreateView:
		return m.renderCreate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func newTagTable(counts []models.TagCount, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Tag", Width: 40},
		{Title: "Videos", Width: 8},
	}

	rows := make([]table.Row, len(counts))
	for i, tc := range counts {
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), tc.Tag, fmt.Sprintf("%d", tc.Count)}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	return t
}

func (m *Model) handleTagTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		idx := m.tagTable.Cursor()
		if idx >= 0 && idx < len(m.analysis.Tags) {
			tag := m.analysis.Tags[idx]
			m.selectedTag = &tag
			m.titleInput.SetValue("")
			m.titleInput.Focus()
			m.visibility = models.VisibilityPrivate
			m.view = FormView
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.tagTable, cmd = m.tagTable.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TagTableView
		return m, nil
	case "tab":
		m.visibility = (m.visibility + 1) % 3
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = FormView
		return m, nil
	case "y":
		m.view = CreateView
		return m, m.startCreate()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = TagTableView
		m.selectedTag = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) startAnalysis() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		result, err := m.engine.Analyze(m.ctx, progress)
		m.analysis = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) startCreate() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	req := tasks.PlaylistRequest{
		Tag:         m.selectedTag.Tag,
		Title:       m.titleInput.Value(),
		Description: fmt.Sprintf("Videos tagged %q", m.selectedTag.Tag),
		Visibility:  m.visibility,
		VideoIDs:    m.selectedTag.VideoIDs,
	}

	go func() {
		result, err := m.engine.CreatePlaylist(m.ctx, req, progress)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}

		update, ok := <-progress
		if !ok {
			if m.view == CreateView {
				return createDoneMsg{result: m.result, err: m.err}
			}
			return analysisDoneMsg{result: m.analysis, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderAnalyze() string {
	title := styles.title.Render("Analyzing your channel")
	message := m.progress.Message
	if message == "" {
		message = "Starting analysis..."
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, message, helpView)
}

func (m *Model) renderTagTable() string {
	title := styles.title.Render(fmt.Sprintf("%s • %d videos • %d tags",
		m.analysis.ChannelTitle, m.analysis.VideoCount, len(m.analysis.Tags)))

	if len(m.analysis.Tags) == 0 {
		return fmt.Sprintf("%s\n\n%s\n\n%s", title,
			"No tags found on your videos.",
			m.help.ShortHelpView([]key.Binding{m.keys.quit}))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.tagTable.View(), helpView)
}

func (m *Model) renderForm() string {
	title := styles.title.Render(fmt.Sprintf("New playlist for %q (%d videos)",
		m.selectedTag.Tag, m.selectedTag.Count))

	form := fmt.Sprintf("%s\n\nVisibility: %s", m.titleInput.View(), m.visibility)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.cycle, m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, form, helpView)
}

func (m *Model) renderConfirm() string {
	title := m.titleInput.Value()
	if title == "" {
		title = tasks.DefaultPlaylistTitle(m.selectedTag.Tag)
	}

	header := styles.title.Render(fmt.Sprintf("Create playlist '%s'?", title))
	info := fmt.Sprintf("\nTag: %s\nVideos: %d\nVisibility: %s\n",
		m.selectedTag.Tag, m.selectedTag.Count, m.visibility)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", header, info, helpView)
}

func (m *Model) renderCreate() string {
	title := styles.title.Render("Building playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.CreatePlaylist:
		phase = "Creating playlist..."
	case tasks.InsertVideos:
		phase = fmt.Sprintf("Adding videos (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Playlist creation failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Playlist created")
	info := fmt.Sprintf("\nPlaylist: %s\nURL: %s\nAdded: %d/%d videos",
		m.result.Playlist.Title, m.result.Playlist.URL(), m.result.Inserted, m.result.Requested)

	var failed string
	if len(m.result.Failures) > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed to add %d videos:", len(m.result.Failures))))
		for _, failure := range m.result.Failures {
			failed += fmt.Sprintf("\n  • %s: %v", failure.VideoID, failure.Err)
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
