package valueobject

import "strings"

// Filter selects tasks by completion state
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in tab order
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter converts a string to a Filter
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "pending", "open", "todo":
		return FilterPending, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, ErrInvalidFilter
	}
}

// IsValid checks if the filter is one of the known values
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	}
	return false
}

// Completed returns the completion state this filter selects, or nil for all tasks
func (f Filter) Completed() *bool {
	var v bool
	switch f {
	case FilterPending:
		v = false
	case FilterCompleted:
		v = true
	default:
		return nil
	}
	return &v
}

// Label returns the tab label
func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next returns the filter after f in tab order, wrapping around
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// String implements fmt.Stringer
func (f Filter) String() string {
	return string(f)
}
