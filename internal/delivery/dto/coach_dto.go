package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateCoachRequest struct {
	FullName   string          `json:"full_name" validate:"required,min=2,max=255"`
	Email      string          `json:"email" validate:"required,email"`
	Specialty  string          `json:"specialty"`
	Biography  string          `json:"biography"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type UpdateCoachRequest struct {
	FullName   string          `json:"full_name" validate:"required,min=2,max=255"`
	Email      string          `json:"email" validate:"required,email"`
	Specialty  string          `json:"specialty"`
	Biography  string          `json:"biography"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     string          `json:"status" validate:"required,oneof=active inactive"`
}

// Response DTOs

type CoachResponse struct {
	ID         uuid.UUID       `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Specialty  string          `json:"specialty,omitempty"`
	Biography  string          `json:"biography,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CoachListResponse struct {
	Coaches []CoachResponse `json:"coaches"`
	Total   int64           `json:"total"`
}
