package query

import (
	"strings"

	"mtodo/internal/domain/valueobject"
)

// Action is a user intent that changes the query
type Action interface {
	isAction()
}

// SetFilter switches the filter tab
type SetFilter struct{ Filter valueobject.Filter }

// SetSearch applies a (debounced) search text
type SetSearch struct{ Text string }

// SetPage moves to another page
type SetPage struct{ Page int }

// SetPageSize changes how many tasks a page holds
type SetPageSize struct{ Size int }

// Reload asks for the current query again without changing it
type Reload struct{}

func (SetFilter) isAction()   {}
func (SetSearch) isAction()   {}
func (SetPage) isAction()     {}
func (SetPageSize) isAction() {}
func (Reload) isAction()      {}

// Reduce applies an action and reports whether the result must be fetched.
// Invalid actions (unknown filter, page or size below 1) leave the state as is.
func Reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case SetFilter:
		if !a.Filter.IsValid() {
			return s, false
		}
		s.Filter = a.Filter
		s.Search = ""
		s.Page = 1
		return s, true

	case SetSearch:
		text := strings.TrimSpace(a.Text)
		if text == s.Search && s.Page == 1 {
			return s, false
		}
		s.Search = text
		s.Page = 1
		return s, true

	case SetPage:
		if a.Page < 1 || a.Page == s.Page {
			return s, false
		}
		s.Page = a.Page
		return s, true

	case SetPageSize:
		if a.Size < 1 {
			return s, false
		}
		if a.Size == s.PageSize && s.Page == 1 {
			return s, false
		}
		s.PageSize = a.Size
		s.Page = 1
		return s, true

	case Reload:
		return s, true
	}
	return s, false
}
