package task

import (
	"time"

	"mtodo/internal/domain/valueobject"
)

// Clock returns the current time. Use cases take one so tests can pin "today".
type Clock func() time.Time

func (c Clock) today() valueobject.Date {
	if c == nil {
		return valueobject.Today(time.Now())
	}
	return valueobject.Today(c())
}
