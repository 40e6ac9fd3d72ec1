package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"mtodo/internal/application/controller"
	"mtodo/internal/domain/valueobject"
	"mtodo/tui/style"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-8, 10)
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		if m.ctrl.Stale(msg.result) {
			return m, nil
		}
		follow, ok := m.ctrl.Apply(msg.result)
		m.clampCursor()
		return m, m.fetchIf(follow, ok)

	case mutationResultMsg:
		return m.settle(msg.result)

	case searchDueMsg:
		f, ok := m.ctrl.CommitSearch()
		return m, tea.Batch(m.fetchIf(f, ok), waitForEvent(m.events))

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Config reload failed: %v", msg.Err)
			return m, nil
		}
		style.InitStyles(msg.Config)
		InitKeybindings(msg.Config)
		m.dateFormat = msg.Config.Display.DateFormat
		m.pageSizes = msg.Config.List.PageSizes
		m.status = "Config reloaded"
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEditor:
			return m.updateEditor(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

// updateList handles keys on the task list
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()

	// A failed fetch blocks everything but retry and quit
	if snap.FetchErr != nil {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Reload):
			return m, m.fetchIf(m.ctrl.Reload())
		}
		return m, nil
	}

	m.status = ""
	page := snap.Query.Page
	totalPages := max(snap.Pagination.TotalPages, 1)

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.ctrl.ClearMutationError()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()

	case key.Matches(msg, keys.Down):
		if m.cursor < len(snap.Tasks)-1 {
			m.cursor++
		}
		m.clampCursor()

	case key.Matches(msg, keys.PrevPage):
		if page > 1 {
			return m.goTo(m.ctrl.SetPage(page - 1))
		}

	case key.Matches(msg, keys.NextPage):
		if page < totalPages {
			return m.goTo(m.ctrl.SetPage(page + 1))
		}

	case key.Matches(msg, keys.FirstPage):
		return m.goTo(m.ctrl.SetPage(1))

	case key.Matches(msg, keys.LastPage):
		return m.goTo(m.ctrl.SetPage(totalPages))

	case key.Matches(msg, keys.PageSize):
		return m.goTo(m.ctrl.SetPageSize(m.nextPageSize(snap.Query.PageSize)))

	case key.Matches(msg, keys.NextFilter):
		return m.filter(snap.Query.Filter.Next())

	case key.Matches(msg, keys.FilterAll):
		return m.filter(valueobject.FilterAll)

	case key.Matches(msg, keys.FilterPending):
		return m.filter(valueobject.FilterPending)

	case key.Matches(msg, keys.FilterCompleted):
		return m.filter(valueobject.FilterCompleted)

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.SetValue(snap.SearchText)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, keys.Add):
		m.editor = newEditor(nil, m.width)
		m.mode = modeEditor

	case key.Matches(msg, keys.Edit):
		if task, ok := m.selectedTask(); ok {
			m.editor = newEditor(&task, m.width)
			m.mode = modeEditor
		}

	case key.Matches(msg, keys.Toggle):
		if task, ok := m.selectedTask(); ok {
			mut, err := m.ctrl.ToggleComplete(task.ID)
			if err != nil {
				return m, nil
			}
			m.status = "Saving..."
			return m, m.mutate(mut)
		}

	case key.Matches(msg, keys.Delete):
		if task, ok := m.selectedTask(); ok {
			m.confirm = &confirmation{taskID: task.ID, title: task.Title}
			m.mode = modeConfirm
		}

	case key.Matches(msg, keys.Reload):
		return m, m.fetchIf(m.ctrl.Reload())

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// goTo starts a fetch for a new page and moves the cursor to its top
func (m Model) goTo(f controller.Fetch, ok bool) (tea.Model, tea.Cmd) {
	if ok {
		m.cursor, m.offset = 0, 0
	}
	return m, m.fetchIf(f, ok)
}

func (m Model) filter(f valueobject.Filter) (tea.Model, tea.Cmd) {
	next, ok := m.ctrl.SetFilter(f)
	m.search.SetValue("")
	return m.goTo(next, ok)
}

// updateSearch handles keys while the search box has focus
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.mode = modeList
		return m, nil

	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeList
		return m.goTo(m.ctrl.CommitSearch())
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.SetSearchText(m.search.Value())
	}
	return m, cmd
}

// updateEditor handles keys while the add/edit modal is open
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor = nil
		m.mode = modeList
		return m, nil
	case "ctrl+s":
		return m.saveEditor()
	}
	return m, m.editor.update(msg)
}

func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	var (
		mut controller.Mutation
		err error
	)

	if m.editor.editing() {
		req, reqErr := m.editor.updateRequest()
		if reqErr != nil {
			m.editor.err = reqErr.Error()
			return m, nil
		}
		mut, err = m.ctrl.UpdateTask(m.editor.taskID, req)
	} else {
		req, reqErr := m.editor.createRequest()
		if reqErr != nil {
			m.editor.err = reqErr.Error()
			return m, nil
		}
		mut, err = m.ctrl.CreateTask(req)
	}

	if err != nil {
		// The form shows the validation error, no need for the banner too
		m.ctrl.ClearMutationError()
		m.editor.err = err.Error()
		return m, nil
	}

	m.editor = nil
	m.mode = modeList
	m.status = "Saving..."
	return m, m.mutate(mut)
}

// updateConfirm handles the delete confirmation dialog
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		pending := m.confirm
		m.confirm = nil
		m.mode = modeList
		mut, err := m.ctrl.DeleteTask(pending.taskID)
		if err != nil {
			return m, nil
		}
		m.status = "Deleting..."
		return m, m.mutate(mut)

	case "n", "N", "esc", "q":
		m.confirm = nil
		m.mode = modeList
	}
	return m, nil
}

// settle applies a mutation outcome and refreshes the list on success
func (m Model) settle(r controller.MutationResult) (tea.Model, tea.Cmd) {
	f, ok := m.ctrl.Settle(r)
	if r.Err != nil {
		m.status = ""
		return m, nil
	}

	switch r.Mutation.Kind {
	case controller.MutationCreate:
		m.status = "Task created"
	case controller.MutationUpdate:
		m.status = "Task updated"
	case controller.MutationDelete:
		m.status = "Task deleted"
	}
	return m, m.fetchIf(f, ok)
}
