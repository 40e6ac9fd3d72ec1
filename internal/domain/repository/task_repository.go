package repository

import (
	"context"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// TaskRepository defines the interface for task persistence.
// The production implementation talks to the remote Task API.
type TaskRepository interface {
	// List returns one page of tasks matching the criteria
	List(ctx context.Context, criteria ListCriteria) (*TaskPage, error)

	// Create persists a new task and returns it with its assigned ID
	Create(ctx context.Context, draft TaskDraft) (*entity.Task, error)

	// Update applies a partial update and returns the updated task
	Update(ctx context.Context, id string, patch TaskPatch) (*entity.Task, error)

	// Delete removes a task
	Delete(ctx context.Context, id string) error
}

// ListCriteria selects a page of tasks
type ListCriteria struct {
	Page      int
	Limit     int
	Completed *bool
	Search    string
	DueFrom   *valueobject.Date
	DueTo     *valueobject.Date
}

// TaskPage is one page of a task listing
type TaskPage struct {
	Tasks       []*entity.Task
	CurrentPage int
	TotalPages  int
	TotalTasks  int
}

// TaskDraft holds the fields of a task that does not exist yet
type TaskDraft struct {
	Title       string
	Description string
	DueDate     *valueobject.Date
}

// TaskPatch is a partial update; nil fields are left untouched.
// ClearDueDate removes the due date and wins over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *valueobject.Date
	ClearDueDate bool
	Completed    *bool
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && !p.ClearDueDate && p.Completed == nil
}
