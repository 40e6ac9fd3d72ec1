package task

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/valueobject"
)

// CountTasksUseCase computes the per-filter totals shown on the filter tabs.
// Each total is its own count-only request, so the three are not an atomic
// snapshot. Search is deliberately not applied.
type CountTasksUseCase struct {
	taskRepo repository.TaskRepository
}

// NewCountTasksUseCase creates a new CountTasksUseCase
func NewCountTasksUseCase(taskRepo repository.TaskRepository) *CountTasksUseCase {
	return &CountTasksUseCase{taskRepo: taskRepo}
}

// Execute issues the three count queries concurrently
func (uc *CountTasksUseCase) Execute(ctx context.Context) (dto.CountsDTO, error) {
	var counts dto.CountsDTO
	g, gctx := errgroup.WithContext(ctx)

	targets := map[valueobject.Filter]*int{
		valueobject.FilterAll:       &counts.All,
		valueobject.FilterPending:   &counts.Pending,
		valueobject.FilterCompleted: &counts.Completed,
	}
	for filter, dst := range targets {
		filter, dst := filter, dst
		g.Go(func() error {
			page, err := uc.taskRepo.List(gctx, repository.ListCriteria{
				Page:      1,
				Limit:     1,
				Completed: filter.Completed(),
			})
			if err != nil {
				return fmt.Errorf("failed to count %s tasks: %w", filter, err)
			}
			*dst = page.TotalTasks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dto.CountsDTO{}, err
	}
	return counts, nil
}
