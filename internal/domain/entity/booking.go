package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment axis of a booking, independent of BookingStatus
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// BookingType discriminates the two booking kinds in checkout metadata
type BookingType string

const (
	BookingTypeEvent BookingType = "event"
	BookingTypeCoach BookingType = "coach"
)

// State transition errors
var (
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrAlreadyPaid       = errors.New("booking is already paid")
	ErrSessionAttached   = errors.New("booking already has a payment session")
	ErrCancelledTerminal = errors.New("cancelled booking cannot transition")
)

// BookingState holds the shared state machine of both booking kinds.
// All transitions go through the methods below; handlers and usecases
// never compare status strings directly.
type BookingState struct {
	Status            BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentSessionRef *string       `gorm:"type:varchar(255);uniqueIndex" json:"payment_session_ref,omitempty"`
	CalendarEventID   *string       `gorm:"type:varchar(255)" json:"calendar_event_id,omitempty"`
}

func (s *BookingState) IsPending() bool {
	return s.Status == BookingStatusPending
}

func (s *BookingState) IsConfirmed() bool {
	return s.Status == BookingStatusConfirmed
}

func (s *BookingState) IsCancelled() bool {
	return s.Status == BookingStatusCancelled
}

func (s *BookingState) IsPaid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// IsActive reports whether the booking still occupies a spot / time slot
func (s *BookingState) IsActive() bool {
	return !s.IsCancelled()
}

// AttachSession records the external checkout session reference.
// The reference is immutable once set.
func (s *BookingState) AttachSession(ref string) error {
	if s.IsCancelled() {
		return ErrCancelledTerminal
	}
	if s.PaymentSessionRef != nil {
		return ErrSessionAttached
	}
	s.PaymentSessionRef = &ref
	return nil
}

// MarkPaid advances both axes together: paid implies confirmed.
// Returns ErrAlreadyPaid on duplicate application (the caller treats it as a
// no-op) and ErrCancelledTerminal when the booking was cancelled meanwhile.
func (s *BookingState) MarkPaid() error {
	if s.IsCancelled() {
		return ErrCancelledTerminal
	}
	if s.IsPaid() {
		return ErrAlreadyPaid
	}
	s.PaymentStatus = PaymentStatusPaid
	s.Status = BookingStatusConfirmed
	return nil
}

// Cancel moves the booking to its terminal state. Both pending and confirmed
// bookings may be cancelled; a second cancel is rejected.
func (s *BookingState) Cancel() error {
	if s.IsCancelled() {
		return ErrAlreadyCancelled
	}
	s.Status = BookingStatusCancelled
	return nil
}

// EventBooking is a member's registration for a club event
type EventBooking struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingState `gorm:"embedded"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (EventBooking) TableName() string {
	return "event_bookings"
}

// CoachBooking is a member's private session with a coach on a concrete time slot
type CoachBooking struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CoachID         uuid.UUID `gorm:"type:uuid;not null;index" json:"coach_id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingDate     time.Time `gorm:"type:date;not null;index" json:"booking_date"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"start_time"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	BookingState    `gorm:"embedded"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Coach Coach `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CoachBooking) TableName() string {
	return "coach_bookings"
}

// Interval returns the slot as minutes since midnight, half-open [start, end)
func (b *CoachBooking) Interval() (start, end int) {
	start, _ = ParseClock(b.StartTime)
	return start, start + b.DurationMinutes
}

// OverlapsWindow tests the half-open interval overlap against a candidate
// slot on the same date. Touching endpoints do not overlap.
func (b *CoachBooking) OverlapsWindow(startMinute, durationMinutes int) bool {
	existingStart, existingEnd := b.Interval()
	candidateEnd := startMinute + durationMinutes
	return existingStart < candidateEnd && startMinute < existingEnd
}

// StartsAt combines the booking date and start time into a single instant (UTC)
func (b *CoachBooking) StartsAt() time.Time {
	minutes, _ := ParseClock(b.StartTime)
	return b.BookingDate.Add(time.Duration(minutes) * time.Minute)
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
