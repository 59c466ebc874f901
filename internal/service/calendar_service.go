package service

import (
	"context"
	"time"

	"go-sportclub-booking/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

const calendarTimeout = 10 * time.Second

// CalendarService pushes confirmed bookings into the club calendar.
// Strictly best-effort: every failure is logged and swallowed, a booking
// transition is never rolled back because the calendar call failed.
type CalendarService struct {
	client gateway.CalendarClient
	log    *logrus.Logger
}

// NewCalendarService accepts a nil client; all calls then become no-ops.
func NewCalendarService(client gateway.CalendarClient, log *logrus.Logger) *CalendarService {
	return &CalendarService{client: client, log: log}
}

// BookingConfirmed creates the calendar entry for a confirmed booking and
// returns the external event id, or nil when the call failed or the
// calendar is not configured.
func (s *CalendarService) BookingConfirmed(ctx context.Context, input gateway.CalendarEventInput) *string {
	if s.client == nil {
		s.log.Debug("Calendar not configured, skipping event creation")
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, calendarTimeout)
	defer cancel()

	eventID, err := s.client.CreateEvent(callCtx, input)
	if err != nil {
		s.log.Warnf("Failed to create calendar event for %q (non-fatal): %+v", input.Title, err)
		return nil
	}

	s.log.Infof("Calendar event created: %s", eventID)
	return &eventID
}
