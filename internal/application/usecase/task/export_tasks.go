package task

import (
	"context"
	"fmt"

	"mtodo/internal/application/dto"
)

// TaskExporter renders tasks as a document
type TaskExporter interface {
	Export(tasks []dto.TaskDTO, format string) ([]byte, error)
}

// ExportTasksUseCase renders every task matching a listing request
type ExportTasksUseCase struct {
	listTasks *ListTasksUseCase
	exporter  TaskExporter
}

// NewExportTasksUseCase creates a new ExportTasksUseCase
func NewExportTasksUseCase(listTasks *ListTasksUseCase, exporter TaskExporter) *ExportTasksUseCase {
	return &ExportTasksUseCase{
		listTasks: listTasks,
		exporter:  exporter,
	}
}

// Execute collects all matching tasks and renders them in format.
// It returns the document and the number of tasks in it.
func (uc *ExportTasksUseCase) Execute(ctx context.Context, req dto.ListTasksRequest, format string) ([]byte, int, error) {
	tasks, err := uc.listTasks.ExecuteAll(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	data, err := uc.exporter.Export(tasks, format)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to export tasks: %w", err)
	}
	return data, len(tasks), nil
}
