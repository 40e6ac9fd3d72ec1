package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"mtodo/internal/application/controller"
	"mtodo/internal/application/dto"
	"mtodo/internal/di"
	"mtodo/internal/infrastructure/config"
	"mtodo/tui/style"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEditor
	modeConfirm
)

// lines taken by one task card, borders included
const cardHeight = 5

// Model represents the TUI state
type Model struct {
	container *di.Container
	ctrl      *controller.Controller
	ctx       context.Context
	events    chan tea.Msg

	mode    mode
	cursor  int // selected task on the current page
	offset  int // first visible task
	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	search  textinput.Model
	editor  *editor
	confirm *confirmation
	status  string

	dateFormat string
	pageSizes  []int
}

// confirmation is a pending delete waiting for y/n
type confirmation struct {
	taskID string
	title  string
}

// fetchResultMsg carries a finished list + counts fetch
type fetchResultMsg struct {
	result controller.Result
}

// mutationResultMsg carries a finished create, update or delete
type mutationResultMsg struct {
	result controller.MutationResult
}

// searchDueMsg is sent when the search debounce timer fires
type searchDueMsg struct{}

// ConfigReloadedMsg is sent when the config file changed on disk
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, container *di.Container) Model {
	cfg := container.Config
	style.InitStyles(cfg)
	InitKeybindings(cfg)

	events := make(chan tea.Msg, 1)
	ctrl := container.Controller
	ctrl.SetNotifier(func() {
		select {
		case events <- searchDueMsg{}:
		default:
		}
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.CharLimit = 256

	return Model{
		container:  container,
		ctrl:       ctrl,
		ctx:        ctx,
		events:     events,
		mode:       modeList,
		spinner:    sp,
		help:       help.New(),
		search:     search,
		dateFormat: cfg.Display.DateFormat,
		pageSizes:  cfg.List.PageSizes,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetch(m.ctrl.Start()),
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// waitForEvent relays one message from the events channel
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// fetch runs the list and count requests off the update loop
func (m Model) fetch(f controller.Fetch) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return fetchResultMsg{result: ctrl.Run(ctx, f)}
	}
}

// fetchIf is fetch for the (Fetch, bool) pairs returned by the controller
func (m Model) fetchIf(f controller.Fetch, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return m.fetch(f)
}

// mutate sends a validated mutation to the Task API off the update loop
func (m Model) mutate(mut controller.Mutation) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return mutationResultMsg{result: ctrl.Execute(ctx, mut)}
	}
}

// selectedTask returns the task under the cursor
func (m Model) selectedTask() (dto.TaskDTO, bool) {
	tasks := m.ctrl.Snapshot().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return dto.TaskDTO{}, false
	}
	return tasks[m.cursor], true
}

// visibleCards returns how many task cards fit on screen
func (m Model) visibleCards() int {
	// header, tabs, search box, pagination, status and help
	n := (m.height - 12) / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

// clampCursor keeps the cursor on the current page and in view
func (m *Model) clampCursor() {
	count := len(m.ctrl.Snapshot().Tasks)
	if count == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	maxOffset := count - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// nextPageSize returns the configured page size after the current one
func (m Model) nextPageSize(current int) int {
	if len(m.pageSizes) == 0 {
		return current
	}
	for _, size := range m.pageSizes {
		if size > current {
			return size
		}
	}
	return m.pageSizes[0]
}
