package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"mtodo/internal/domain/entity"
)

// APIError is a non-2xx response from the Task API
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error implements error
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task API returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("task API returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status onto the domain errors callers test with errors.Is
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return entity.ErrTaskNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return entity.ErrUnauthorized
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusGatewayTimeout:
		return entity.ErrRequestTimeout
	case e.StatusCode >= 500:
		return entity.ErrAPIUnavailable
	default:
		return nil
	}
}

// wrapError classifies transport failures
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrRequestTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", entity.ErrRequestTimeout, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", entity.ErrAPIUnavailable, err)
	}

	return err
}
