package task

import (
	"context"
	"fmt"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
)

// CreateTaskUseCase handles creating a new task
type CreateTaskUseCase struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewCreateTaskUseCase creates a new CreateTaskUseCase
func NewCreateTaskUseCase(taskRepo repository.TaskRepository, clock Clock) *CreateTaskUseCase {
	return &CreateTaskUseCase{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// Execute validates the request and creates the task
func (uc *CreateTaskUseCase) Execute(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	title, err := entity.ValidateTitle(req.Title)
	if err != nil {
		return nil, err
	}

	task, err := uc.taskRepo.Create(ctx, repository.TaskDraft{
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := dto.TaskToDTO(task, uc.clock.today())
	return &result, nil
}
