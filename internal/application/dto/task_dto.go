package dto

import (
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// TaskDTO represents a task data transfer object
type TaskDTO struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     *valueobject.Date `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Completed   bool              `json:"completed" yaml:"completed"`
	IsOverdue   bool              `json:"is_overdue" yaml:"is_overdue"`
}

// PaginationDTO describes where a page sits in the full listing
type PaginationDTO struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
	TotalItems  int `json:"total_items" yaml:"total_items"`
}

// TaskPageDTO is one page of tasks
type TaskPageDTO struct {
	Tasks      []TaskDTO     `json:"tasks" yaml:"tasks"`
	Pagination PaginationDTO `json:"pagination" yaml:"pagination"`
}

// CountsDTO holds per-filter task totals
type CountsDTO struct {
	All       int `json:"all" yaml:"all"`
	Pending   int `json:"pending" yaml:"pending"`
	Completed int `json:"completed" yaml:"completed"`
}

// For returns the count shown on a filter tab
func (c CountsDTO) For(f valueobject.Filter) int {
	switch f {
	case valueobject.FilterPending:
		return c.Pending
	case valueobject.FilterCompleted:
		return c.Completed
	default:
		return c.All
	}
}

// ListTasksRequest represents a request for one page of tasks
type ListTasksRequest struct {
	Filter  valueobject.Filter `json:"filter"`
	Search  string             `json:"search,omitempty"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	DueFrom *valueobject.Date  `json:"due_from,omitempty"`
	DueTo   *valueobject.Date  `json:"due_to,omitempty"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	DueDate     *valueobject.Date `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	DueDate      *valueobject.Date `json:"due_date,omitempty"`
	ClearDueDate bool              `json:"clear_due_date,omitempty"`
	Completed    *bool             `json:"completed,omitempty"`
}

// TaskToDTO converts a task entity, judging overdue against today
func TaskToDTO(task *entity.Task, today valueobject.Date) TaskDTO {
	return TaskDTO{
		ID:          task.ID(),
		Title:       task.Title(),
		Description: task.Description(),
		DueDate:     task.DueDate(),
		Completed:   task.Completed(),
		IsOverdue:   task.IsOverdue(today),
	}
}

// TasksToDTO converts a slice of task entities
func TasksToDTO(tasks []*entity.Task, today valueobject.Date) []TaskDTO {
	result := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, TaskToDTO(task, today))
	}
	return result
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
