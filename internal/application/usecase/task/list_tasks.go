package task

import (
	"context"
	"fmt"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
)

// maxExportPages bounds ExecuteAll against an API that never reports a last page
const maxExportPages = 1000

// ListTasksUseCase handles listing one page of tasks
type ListTasksUseCase struct {
	taskRepo repository.TaskRepository
	clock    Clock
}

// NewListTasksUseCase creates a new ListTasksUseCase
func NewListTasksUseCase(taskRepo repository.TaskRepository, clock Clock) *ListTasksUseCase {
	return &ListTasksUseCase{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// Execute fetches the requested page
func (uc *ListTasksUseCase) Execute(ctx context.Context, req dto.ListTasksRequest) (*dto.TaskPageDTO, error) {
	if req.Page < 1 {
		return nil, entity.ErrInvalidPage
	}
	if req.Limit < 1 {
		return nil, entity.ErrInvalidPageSize
	}

	page, err := uc.taskRepo.List(ctx, criteriaFor(req))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &dto.TaskPageDTO{
		Tasks: dto.TasksToDTO(page.Tasks, uc.clock.today()),
		Pagination: dto.PaginationDTO{
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
			TotalItems:  page.TotalTasks,
		},
	}, nil
}

// ExecuteAll walks every page matching the request, starting at page 1
func (uc *ListTasksUseCase) ExecuteAll(ctx context.Context, req dto.ListTasksRequest) ([]dto.TaskDTO, error) {
	req.Page = 1
	if req.Limit < 1 {
		return nil, entity.ErrInvalidPageSize
	}

	result := make([]dto.TaskDTO, 0)
	for req.Page <= maxExportPages {
		page, err := uc.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		result = append(result, page.Tasks...)

		if len(page.Tasks) == 0 || req.Page >= page.Pagination.TotalPages {
			break
		}
		req.Page++
	}

	return result, nil
}

func criteriaFor(req dto.ListTasksRequest) repository.ListCriteria {
	return repository.ListCriteria{
		Page:      req.Page,
		Limit:     req.Limit,
		Completed: req.Filter.Completed(),
		Search:    req.Search,
		DueFrom:   req.DueFrom,
		DueTo:     req.DueTo,
	}
}
