package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"mtodo/internal/application/dto"
	"mtodo/internal/domain/valueobject"
	"mtodo/tui/style"
)

// dueDateHint is the due date format as users read it
const dueDateHint = "YYYY-MM-DD"

type editorField int

const (
	fieldTitle editorField = iota
	fieldDescription
	fieldDueDate
	fieldCompleted
)

// editor is the modal form used to add and edit a task
type editor struct {
	taskID      string // empty when adding
	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	completed   bool
	focus       editorField
	err         string
}

func newEditor(task *dto.TaskDTO, width int) *editor {
	inner := editorWidth(width)

	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200
	title.Width = inner

	description := textarea.New()
	description.Placeholder = "Details (optional)"
	description.ShowLineNumbers = false
	description.SetWidth(inner)
	description.SetHeight(4)

	dueDate := textinput.New()
	dueDate.Placeholder = dueDateHint
	dueDate.CharLimit = 10
	dueDate.Width = inner

	e := &editor{title: title, description: description, dueDate: dueDate}
	if task != nil {
		e.taskID = task.ID
		e.title.SetValue(task.Title)
		e.description.SetValue(task.Description)
		if task.DueDate != nil {
			e.dueDate.SetValue(task.DueDate.String())
		}
		e.completed = task.Completed
	}
	e.setFocus(fieldTitle)
	return e
}

func editorWidth(width int) int {
	if width <= 0 {
		return 40
	}
	w := width/2 - 6
	if w < 30 {
		return 30
	}
	if w > 70 {
		return 70
	}
	return w
}

func (e *editor) editing() bool {
	return e.taskID != ""
}

// fieldCount is 4 when editing, since only existing tasks have a completed checkbox
func (e *editor) fieldCount() int {
	if e.editing() {
		return 4
	}
	return 3
}

func (e *editor) setFocus(f editorField) tea.Cmd {
	e.focus = f
	e.title.Blur()
	e.description.Blur()
	e.dueDate.Blur()

	switch f {
	case fieldTitle:
		return e.title.Focus()
	case fieldDescription:
		return e.description.Focus()
	case fieldDueDate:
		return e.dueDate.Focus()
	}
	return nil
}

func (e *editor) nextField() tea.Cmd {
	return e.setFocus(editorField((int(e.focus) + 1) % e.fieldCount()))
}

func (e *editor) prevField() tea.Cmd {
	n := e.fieldCount()
	return e.setFocus(editorField((int(e.focus) + n - 1) % n))
}

// update routes a key to the focused field
func (e *editor) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return e.nextField()
	case "shift+tab":
		return e.prevField()
	}

	var cmd tea.Cmd
	switch e.focus {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			return e.nextField()
		}
		e.title, cmd = e.title.Update(msg)
	case fieldDescription:
		e.description, cmd = e.description.Update(msg)
	case fieldDueDate:
		if msg.Type == tea.KeyEnter {
			return e.nextField()
		}
		e.dueDate, cmd = e.dueDate.Update(msg)
	case fieldCompleted:
		switch msg.String() {
		case " ", "x", "enter":
			e.completed = !e.completed
		}
	}
	return cmd
}

// parseDue reads the due date field; an empty field means no due date
func (e *editor) parseDue() (*valueobject.Date, error) {
	raw := strings.TrimSpace(e.dueDate.Value())
	if raw == "" {
		return nil, nil
	}
	d, err := valueobject.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("due date must be %s", dueDateHint)
	}
	return &d, nil
}

func (e *editor) createRequest() (dto.CreateTaskRequest, error) {
	due, err := e.parseDue()
	if err != nil {
		return dto.CreateTaskRequest{}, err
	}
	return dto.CreateTaskRequest{
		Title:       e.title.Value(),
		Description: strings.TrimSpace(e.description.Value()),
		DueDate:     due,
	}, nil
}

// updateRequest sends every field explicitly so cleared values are cleared
// on the server too
func (e *editor) updateRequest() (dto.UpdateTaskRequest, error) {
	due, err := e.parseDue()
	if err != nil {
		return dto.UpdateTaskRequest{}, err
	}
	return dto.UpdateTaskRequest{
		Title:        dto.StringPtr(e.title.Value()),
		Description:  dto.StringPtr(strings.TrimSpace(e.description.Value())),
		DueDate:      due,
		ClearDueDate: due == nil,
		Completed:    dto.BoolPtr(e.completed),
	}, nil
}

func (e *editor) view() string {
	heading := "New task"
	if e.editing() {
		heading = "Edit task"
	}

	sections := []string{
		style.HeaderStyle.Render(heading),
		e.label(fieldTitle, "Title *"),
		e.title.View(),
		e.label(fieldDescription, "Description"),
		e.description.View(),
		e.label(fieldDueDate, "Due date"),
		e.dueDate.View(),
	}
	if e.editing() {
		box := "[ ]"
		if e.completed {
			box = "[x]"
		}
		sections = append(sections, e.label(fieldCompleted, box+" Completed"))
	}
	if e.err != "" {
		sections = append(sections, "", style.ErrorTextStyle.Render(e.err))
	}
	sections = append(sections, "", style.HelpStyle.Render("tab next field • ctrl+s save • esc cancel"))

	return style.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (e *editor) label(f editorField, text string) string {
	if e.focus == f {
		return style.TaskTitleStyle.Render("> " + text)
	}
	return style.DescriptionStyle.Render("  " + text)
}
