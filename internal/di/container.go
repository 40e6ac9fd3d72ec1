package di

import (
	"mtodo/internal/application/controller"
	"mtodo/internal/application/usecase/task"
	"mtodo/internal/domain/repository"
	"mtodo/internal/infrastructure/config"
	"mtodo/internal/infrastructure/logging"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *logging.Logger

	// Repositories
	TaskRepo repository.TaskRepository

	// Use Cases - Task
	ListTasksUseCase   *task.ListTasksUseCase
	CountTasksUseCase  *task.CountTasksUseCase
	CreateTaskUseCase  *task.CreateTaskUseCase
	UpdateTaskUseCase  *task.UpdateTaskUseCase
	DeleteTaskUseCase  *task.DeleteTaskUseCase
	ExportTasksUseCase *task.ExportTasksUseCase

	// Task list state for the TUI
	Controller *controller.Controller
}
