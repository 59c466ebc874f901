package calendar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go-sportclub-booking/config"
	"go-sportclub-booking/internal/domain/gateway"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements gateway.CalendarClient against the Google Calendar
// API using a service-account credential.
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleClient(ctx context.Context, cfg config.CalendarConfig) (*GoogleClient, error) {
	if !cfg.Enabled() {
		return nil, errors.New("google calendar is not configured")
	}

	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &GoogleClient{svc: svc, calendarID: cfg.CalendarID}, nil
}

func (c *GoogleClient) CreateEvent(ctx context.Context, input gateway.CalendarEventInput) (string, error) {
	end := input.Start.Add(time.Duration(input.DurationMinutes) * time.Minute)

	event := &gcal.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}
	if input.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: input.AttendeeEmail}}
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar event insert: %w", err)
	}

	return created.Id, nil
}
