package di

import (
	"context"
	"net/http"
	"time"

	"mtodo/internal/application/controller"
	"mtodo/internal/application/usecase/task"
	"mtodo/internal/domain/repository"
	"mtodo/internal/infrastructure/api"
	"mtodo/internal/infrastructure/config"
	"mtodo/internal/infrastructure/export"
	"mtodo/internal/infrastructure/logging"
)

// Provider functions

func ProvideLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { logger.Close() }, nil
}

func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return api.NewHTTPClient(context.Background(), cfg.API.Token)
}

func ProvideTaskRepository(cfg *config.Config, httpClient *http.Client, logger *logging.Logger) (repository.TaskRepository, error) {
	client, err := api.NewClient(cfg.API.BaseURL, httpClient,
		api.WithTimeout(cfg.API.Timeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func ProvideClock() task.Clock {
	return time.Now
}

func ProvideExporter(cfg *config.Config) task.TaskExporter {
	return export.NewExporter(cfg.Display.DateFormat)
}

func ProvideControllerOptions(cfg *config.Config) controller.Options {
	return controller.Options{
		PageSize:    cfg.List.PageSize,
		SearchDelay: cfg.List.SearchDebounce(),
	}
}
