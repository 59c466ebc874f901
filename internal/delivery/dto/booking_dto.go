package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateEventBookingRequest struct {
	EventID uuid.UUID `json:"event_id" validate:"required"`
}

type CreateCoachBookingRequest struct {
	CoachID         uuid.UUID `json:"coach_id" validate:"required"`
	Date            string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string    `json:"time" validate:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=15,max=240"`
}

// Response DTOs

type EventBookingResponse struct {
	ID                uuid.UUID      `json:"id"`
	EventID           uuid.UUID      `json:"event_id"`
	UserID            uuid.UUID      `json:"user_id"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"payment_status"`
	PaymentSessionRef *string        `json:"payment_session_ref,omitempty"`
	Event             *EventResponse `json:"event,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type CoachBookingResponse struct {
	ID                uuid.UUID      `json:"id"`
	CoachID           uuid.UUID      `json:"coach_id"`
	UserID            uuid.UUID      `json:"user_id"`
	Date              string         `json:"date"`
	Time              string         `json:"time"`
	DurationMinutes   int            `json:"duration_minutes"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"payment_status"`
	PaymentSessionRef *string        `json:"payment_session_ref,omitempty"`
	Coach             *CoachResponse `json:"coach,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type MyBookingsResponse struct {
	EventBookings []EventBookingResponse `json:"event_bookings"`
	CoachBookings []CoachBookingResponse `json:"coach_bookings"`
	Total         int                    `json:"total"`
}

type EventBookingListResponse struct {
	Bookings []EventBookingResponse `json:"bookings"`
	Total    int                    `json:"total"`
}
