package task

import (
	"context"
	"fmt"
	"strings"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
)

// UpdateTaskUseCase handles partial task updates
type UpdateTaskUseCase struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewUpdateTaskUseCase creates a new UpdateTaskUseCase
func NewUpdateTaskUseCase(taskRepo repository.TaskRepository, clock Clock) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// Execute applies the update to the task with the given ID
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, id string, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrInvalidTaskID
	}

	patch := repository.TaskPatch{
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Completed:    req.Completed,
	}
	if req.Title != nil {
		title, err := entity.ValidateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.ClearDueDate {
		patch.DueDate = nil
	}
	if patch.IsEmpty() {
		return nil, entity.ErrNoChanges
	}

	task, err := uc.taskRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	result := dto.TaskToDTO(task, uc.clock.today())
	return &result, nil
}
