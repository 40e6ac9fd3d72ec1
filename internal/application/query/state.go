package query

import (
	"mtodo/internal/application/dto"
	"mtodo/internal/domain/valueobject"
)

// DefaultPageSize is used when no page size is configured
const DefaultPageSize = 10

// State is the list query owned by the controller. It is a value: every change
// goes through Reduce and produces a new State.
type State struct {
	Filter   valueobject.Filter
	Search   string
	Page     int
	PageSize int
}

// NewState returns the initial query for the given page size
func NewState(pageSize int) State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return State{
		Filter:   valueobject.FilterAll,
		Page:     1,
		PageSize: pageSize,
	}
}

// Request converts the state to a list request
func (s State) Request() dto.ListTasksRequest {
	return dto.ListTasksRequest{
		Filter: s.Filter,
		Search: s.Search,
		Page:   s.Page,
		Limit:  s.PageSize,
	}
}
