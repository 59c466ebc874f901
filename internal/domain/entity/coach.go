package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coach represents a club coach bookable for private sessions
type Coach struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName   string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Email      string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Specialty  string          `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	Biography  string          `gorm:"type:text" json:"biography,omitempty"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"hourly_rate"`
	Status     SubjectStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Bookings []CoachBooking `gorm:"foreignKey:CoachID" json:"bookings,omitempty"`
}

func (Coach) TableName() string {
	return "coaches"
}

func (c *Coach) IsActive() bool {
	return c.Status == SubjectStatusActive
}

// SessionPrice computes the price of a session of the given length
func (c *Coach) SessionPrice(durationMinutes int) decimal.Decimal {
	return c.HourlyRate.
		Mul(decimal.NewFromInt(int64(durationMinutes))).
		Div(decimal.NewFromInt(60))
}
