package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubjectStatus applies to bookable subjects (events and coaches)
type SubjectStatus string

const (
	SubjectStatusActive   SubjectStatus = "active"
	SubjectStatusInactive SubjectStatus = "inactive"
)

// Event represents a bookable club event with limited capacity
type Event struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	MaxPlayers  int             `gorm:"not null" json:"max_players"`
	EventDate   time.Time       `gorm:"type:date;not null;index" json:"event_date"`
	StartTime   string          `gorm:"type:varchar(5);not null" json:"start_time"`
	Location    string          `gorm:"type:varchar(255)" json:"location,omitempty"`
	Status      SubjectStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Bookings []EventBooking `gorm:"foreignKey:EventID" json:"bookings,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) IsActive() bool {
	return e.Status == SubjectStatusActive
}

// IsFree reports whether booking the event requires no payment
func (e *Event) IsFree() bool {
	return !e.Price.IsPositive()
}

// AvailableSpots derives remaining capacity from the active booking count
func (e *Event) AvailableSpots(activeBookings int64) int64 {
	return int64(e.MaxPlayers) - activeBookings
}

// StartsAt combines event date and start time into a single instant (UTC)
func (e *Event) StartsAt() time.Time {
	minutes, _ := ParseClock(e.StartTime)
	return e.EventDate.Add(time.Duration(minutes) * time.Minute)
}
