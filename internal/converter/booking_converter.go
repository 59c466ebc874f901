package converter

import (
	"github.com/google/uuid"

	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
)

// EventBookingToResponse converts an EventBooking entity to its DTO
func EventBookingToResponse(booking *entity.EventBooking) *dto.EventBookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.EventBookingResponse{
		ID:                booking.ID,
		EventID:           booking.EventID,
		UserID:            booking.UserID,
		Status:            string(booking.Status),
		PaymentStatus:     string(booking.PaymentStatus),
		PaymentSessionRef: booking.PaymentSessionRef,
		CreatedAt:         booking.CreatedAt,
		UpdatedAt:         booking.UpdatedAt,
	}

	// Include event info if preloaded
	if booking.Event.ID != uuid.Nil {
		response.Event = EventToResponse(&booking.Event)
	}

	return response
}

func EventBookingsToResponses(bookings []entity.EventBooking) []dto.EventBookingResponse {
	responses := make([]dto.EventBookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *EventBookingToResponse(&bookings[i])
	}
	return responses
}

// CoachBookingToResponse converts a CoachBooking entity to its DTO
func CoachBookingToResponse(booking *entity.CoachBooking) *dto.CoachBookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.CoachBookingResponse{
		ID:                booking.ID,
		CoachID:           booking.CoachID,
		UserID:            booking.UserID,
		Date:              booking.BookingDate.Format("2006-01-02"),
		Time:              booking.StartTime,
		DurationMinutes:   booking.DurationMinutes,
		Status:            string(booking.Status),
		PaymentStatus:     string(booking.PaymentStatus),
		PaymentSessionRef: booking.PaymentSessionRef,
		CreatedAt:         booking.CreatedAt,
		UpdatedAt:         booking.UpdatedAt,
	}

	if booking.Coach.ID != uuid.Nil {
		response.Coach = CoachToResponse(&booking.Coach)
	}

	return response
}

func CoachBookingsToResponses(bookings []entity.CoachBooking) []dto.CoachBookingResponse {
	responses := make([]dto.CoachBookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *CoachBookingToResponse(&bookings[i])
	}
	return responses
}
