package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// taskJSON is a task as the Task API sends it
type taskJSON struct {
	ID          flexString `json:"id"`
	MongoID     flexString `json:"_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *string    `json:"dueDate"`
}

type paginationJSON struct {
	CurrentPage flexInt `json:"currentPage"`
	TotalPages  flexInt `json:"totalPages"`
	TotalTasks  flexInt `json:"totalTasks"`
}

type listResponse struct {
	Tasks      []taskJSON     `json:"tasks"`
	Pagination paginationJSON `json:"pagination"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// flexInt accepts a JSON number, a numeric string or null
type flexInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	*n = flexInt(f)
	return nil
}

// flexString accepts a JSON string or number, for ids
type flexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a string or number id, got %s", data)
	}
	*s = flexString(num.String())
	return nil
}
