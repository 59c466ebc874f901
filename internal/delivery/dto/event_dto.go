package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateEventRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MaxPlayers  int             `json:"max_players" validate:"required,min=1"`
	EventDate   string          `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string          `json:"start_time" validate:"required,datetime=15:04"`
	Location    string          `json:"location"`
}

type UpdateEventRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MaxPlayers  int             `json:"max_players" validate:"required,min=1"`
	EventDate   string          `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string          `json:"start_time" validate:"required,datetime=15:04"`
	Location    string          `json:"location"`
	Status      string          `json:"status" validate:"required,oneof=active inactive"`
}

// Response DTOs

type EventResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	MaxPlayers     int             `json:"max_players"`
	AvailableSpots *int64          `json:"available_spots,omitempty"`
	EventDate      string          `json:"event_date"`
	StartTime      string          `json:"start_time"`
	Location       string          `json:"location,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int64           `json:"total"`
}
