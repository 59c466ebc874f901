package repository

import (
	"errors"

	"go-sportclub-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation errors shared by both booking repositories. The implementations
// return these from Reserve so usecases can map them to CONFLICT responses.
var (
	ErrEventFull        = errors.New("event has no remaining spots")
	ErrDuplicateBooking = errors.New("user already has an active booking for this event")
	ErrSlotTaken        = errors.New("coach time slot overlaps an existing booking")
)

// EventBookingRepository persists event bookings. Mutating operations take the
// *gorm.DB so callers control transaction scope; Reserve opens its own
// transaction internally (capacity check + insert as one unit).
type EventBookingRepository interface {
	// Reserve atomically re-checks event capacity and the duplicate-registration
	// rule under a row lock on the event, then inserts the pending booking.
	Reserve(db *gorm.DB, booking *entity.EventBooking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.EventBooking, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.EventBooking, error)
	FindByEventID(db *gorm.DB, eventID uuid.UUID) ([]entity.EventBooking, error)
	CountActive(db *gorm.DB, eventID uuid.UUID) (int64, error)
	// AttachSession sets payment_session_ref only when it is still null.
	// Returns affected rows: 0 means a session was already attached.
	AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error)
	// MarkPaid is the idempotent reconciliation write: a single conditional
	// update guarded on payment_status != 'paid' and status != 'cancelled'.
	// Returns affected rows: 0 means duplicate delivery or cancelled booking.
	MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error)
	SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error
	// Cancel transitions to cancelled unless already cancelled.
	// Returns affected rows: 0 means already cancelled.
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)
}

// CoachBookingRepository persists coach bookings with the same contract as
// EventBookingRepository; Reserve enforces the no-overlap rule instead of
// capacity.
type CoachBookingRepository interface {
	Reserve(db *gorm.DB, booking *entity.CoachBooking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.CoachBooking, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.CoachBooking, error)
	FindActiveByCoachAndDate(db *gorm.DB, coachID uuid.UUID, date string) ([]entity.CoachBooking, error)
	AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error)
	MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error)
	SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)
}
