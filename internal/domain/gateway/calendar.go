package gateway

import (
	"context"
	"time"
)

// CalendarEventInput describes the calendar entry created for a confirmed booking
type CalendarEventInput struct {
	Title           string
	Description     string
	Start           time.Time
	DurationMinutes int
	AttendeeEmail   string
}

// CalendarClient is the downstream calendar collaborator. Failures are
// best-effort territory: callers log and continue, they never roll back a
// booking transition because a calendar call failed.
type CalendarClient interface {
	CreateEvent(ctx context.Context, input CalendarEventInput) (string, error)
}
