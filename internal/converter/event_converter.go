package converter

import (
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
)

// EventToResponse converts an Event entity to EventResponse DTO
func EventToResponse(event *entity.Event) *dto.EventResponse {
	if event == nil {
		return nil
	}

	return &dto.EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Price:       event.Price,
		MaxPlayers:  event.MaxPlayers,
		EventDate:   event.EventDate.Format("2006-01-02"),
		StartTime:   event.StartTime,
		Location:    event.Location,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// EventToResponseWithSpots includes the derived remaining capacity
func EventToResponseWithSpots(event *entity.Event, activeBookings int64) *dto.EventResponse {
	response := EventToResponse(event)
	if response == nil {
		return nil
	}
	spots := event.AvailableSpots(activeBookings)
	response.AvailableSpots = &spots
	return response
}

func EventsToResponses(events []entity.Event) []dto.EventResponse {
	responses := make([]dto.EventResponse, len(events))
	for i := range events {
		responses[i] = *EventToResponse(&events[i])
	}
	return responses
}
