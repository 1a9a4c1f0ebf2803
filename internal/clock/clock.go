// Package clock abstracts the wall clock so record dates can be pinned in tests.
package clock

import "time"

// DateLayout is the calendar date format used for record dates.
const DateLayout = "2006-01-02"

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the process clock in Location (time.Local when nil).
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// Today formats the clock's current calendar date.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
