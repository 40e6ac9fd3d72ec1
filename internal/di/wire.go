//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"mtodo/internal/application/controller"
	"mtodo/internal/application/usecase/task"
	"mtodo/internal/infrastructure/config"
)

// InitializeContainer sets up all dependencies
func InitializeContainer(cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideHTTPClient,
		ProvideTaskRepository,
		ProvideClock,
		ProvideExporter,

		// Use Cases - Task
		task.NewListTasksUseCase,
		task.NewCountTasksUseCase,
		task.NewCreateTaskUseCase,
		task.NewUpdateTaskUseCase,
		task.NewDeleteTaskUseCase,
		task.NewExportTasksUseCase,

		// Controller
		ProvideControllerOptions,
		controller.New,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
