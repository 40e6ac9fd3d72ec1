package task

import (
	"context"
	"fmt"
	"strings"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
)

// DeleteTaskUseCase handles deleting a task
type DeleteTaskUseCase struct {
	taskRepo repository.TaskRepository
}

// NewDeleteTaskUseCase creates a new DeleteTaskUseCase
func NewDeleteTaskUseCase(taskRepo repository.TaskRepository) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{taskRepo: taskRepo}
}

// Execute deletes the task with the given ID
func (uc *DeleteTaskUseCase) Execute(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.ErrInvalidTaskID
	}

	if err := uc.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
