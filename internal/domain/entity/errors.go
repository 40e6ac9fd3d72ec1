package entity

import "errors"

var (
	// Task errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyTaskName = errors.New("task title cannot be empty")
	ErrInvalidTaskID = errors.New("invalid task ID")

	// Validation errors
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidPage     = errors.New("page must be positive")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrNoChanges       = errors.New("no updates specified")

	// Transport errors
	ErrRequestTimeout = errors.New("request timed out")
	ErrUnauthorized   = errors.New("unauthorized: check api.token")
	ErrAPIUnavailable = errors.New("task API unavailable")
)
