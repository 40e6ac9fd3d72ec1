package controller

import (
	"context"
	"fmt"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
)

// MutationKind identifies what a Mutation changes
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

// String implements fmt.Stringer
func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	default:
		return fmt.Sprintf("MutationKind(%d)", int(k))
	}
}

// Mutation is a validated change waiting to be sent to the Task API
type Mutation struct {
	Kind   MutationKind
	TaskID string
	Create dto.CreateTaskRequest
	Update dto.UpdateTaskRequest
}

// MutationResult is the outcome of executing a Mutation
type MutationResult struct {
	Mutation Mutation
	Task     *dto.TaskDTO
	Err      error
}

// CreateTask validates a new task
func (c *Controller) CreateTask(req dto.CreateTaskRequest) (Mutation, error) {
	title, err := entity.ValidateTitle(req.Title)
	if err != nil {
		c.mutationErr = err
		return Mutation{}, err
	}
	req.Title = title
	return Mutation{Kind: MutationCreate, Create: req}, nil
}

// UpdateTask validates a partial update of task id
func (c *Controller) UpdateTask(id string, req dto.UpdateTaskRequest) (Mutation, error) {
	if id == "" {
		c.mutationErr = entity.ErrInvalidTaskID
		return Mutation{}, entity.ErrInvalidTaskID
	}
	if req.Title != nil {
		title, err := entity.ValidateTitle(*req.Title)
		if err != nil {
			c.mutationErr = err
			return Mutation{}, err
		}
		req.Title = &title
	}
	return Mutation{Kind: MutationUpdate, TaskID: id, Update: req}, nil
}

// DeleteTask prepares the removal of task id. The caller is responsible for
// having asked the user first.
func (c *Controller) DeleteTask(id string) (Mutation, error) {
	if id == "" {
		c.mutationErr = entity.ErrInvalidTaskID
		return Mutation{}, entity.ErrInvalidTaskID
	}
	return Mutation{Kind: MutationDelete, TaskID: id}, nil
}

// ToggleComplete flips the completed flag of a task on the current page
func (c *Controller) ToggleComplete(id string) (Mutation, error) {
	current, ok := c.findTask(id)
	if !ok {
		c.mutationErr = entity.ErrTaskNotFound
		return Mutation{}, entity.ErrTaskNotFound
	}
	return c.UpdateTask(id, dto.UpdateTaskRequest{Completed: dto.BoolPtr(!current.Completed)})
}

// Execute sends a mutation to the Task API
func (c *Controller) Execute(ctx context.Context, m Mutation) MutationResult {
	result := MutationResult{Mutation: m}

	switch m.Kind {
	case MutationCreate:
		result.Task, result.Err = c.createTask.Execute(ctx, m.Create)
	case MutationUpdate:
		result.Task, result.Err = c.updateTask.Execute(ctx, m.TaskID, m.Update)
	case MutationDelete:
		result.Err = c.deleteTask.Execute(ctx, m.TaskID)
	default:
		result.Err = fmt.Errorf("unknown mutation %s", m.Kind)
	}
	return result
}

// Settle records a mutation outcome. A failure becomes the transient
// mutation error and leaves the list alone; a success clears it and returns
// the refresh of the current query.
func (c *Controller) Settle(r MutationResult) (Fetch, bool) {
	if r.Err != nil {
		c.mutationErr = r.Err
		return Fetch{}, false
	}
	c.mutationErr = nil
	return c.Reload()
}

// ClearMutationError dismisses the transient mutation error
func (c *Controller) ClearMutationError() {
	c.mutationErr = nil
}

func (c *Controller) findTask(id string) (dto.TaskDTO, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return dto.TaskDTO{}, false
}
