package entity

import (
	"strings"

	"mtodo/internal/domain/valueobject"
)

// Task represents a to-do item owned by the remote Task API
type Task struct {
	id          string
	title       string
	description string
	dueDate     *valueobject.Date
	completed   bool
}

// NewTask creates a new Task entity
func NewTask(id string, title string, description string, dueDate *valueobject.Date, completed bool) (*Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidTaskID
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTaskName
	}

	t := &Task{
		id:          id,
		title:       title,
		description: description,
		completed:   completed,
	}
	if dueDate != nil {
		due := *dueDate
		t.dueDate = &due
	}
	return t, nil
}

// ID returns the task ID
func (t *Task) ID() string {
	return t.id
}

// Title returns the task title
func (t *Task) Title() string {
	return t.title
}

// Description returns the task description
func (t *Task) Description() string {
	return t.description
}

// DueDate returns the task due date
func (t *Task) DueDate() *valueobject.Date {
	if t.dueDate == nil {
		return nil
	}
	dueCopy := *t.dueDate
	return &dueCopy
}

// Completed reports whether the task is done
func (t *Task) Completed() bool {
	return t.completed
}

// IsOverdue checks if the task is overdue on the given calendar day
func (t *Task) IsOverdue(today valueobject.Date) bool {
	if t.dueDate == nil || t.completed {
		return false
	}
	return t.dueDate.Before(today)
}

// ValidateTitle trims a title and rejects it when nothing is left
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTaskName
	}
	return trimmed, nil
}
