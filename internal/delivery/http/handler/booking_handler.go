package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/delivery/http/middleware"
	"go-sportclub-booking/internal/domain/repository"
	"go-sportclub-booking/internal/usecase"
	"go-sportclub-booking/pkg/response"
	"go-sportclub-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	eventBookingUsecase usecase.EventBookingUsecase
	coachBookingUsecase usecase.CoachBookingUsecase
	validator           *validator.CustomValidator
}

func NewBookingHandler(
	eventBookingUsecase usecase.EventBookingUsecase,
	coachBookingUsecase usecase.CoachBookingUsecase,
	validator *validator.CustomValidator,
) *BookingHandler {
	return &BookingHandler{
		eventBookingUsecase: eventBookingUsecase,
		coachBookingUsecase: coachBookingUsecase,
		validator:           validator,
	}
}

func (h *BookingHandler) CreateEventBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateEventBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.eventBookingUsecase.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			response.NotFound(w, "Event not found")
		case errors.Is(err, usecase.ErrEventNotBookable):
			response.Conflict(w, "Event is not open for booking")
		case errors.Is(err, usecase.ErrEventAlreadyPassed):
			response.BadRequest(w, "Event date has already passed")
		case errors.Is(err, repository.ErrEventFull):
			response.Conflict(w, "Event is fully booked")
		case errors.Is(err, repository.ErrDuplicateBooking):
			response.Conflict(w, "You already have an active booking for this event")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) CreateCoachBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateCoachBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.coachBookingUsecase.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCoachNotFound):
			response.NotFound(w, "Coach not found")
		case errors.Is(err, usecase.ErrCoachNotBookable):
			response.Conflict(w, "Coach is not open for booking")
		case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrInvalidTimeFormat):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrSlotInPast):
			response.BadRequest(w, "Requested time slot is in the past")
		case errors.Is(err, repository.ErrSlotTaken):
			response.Conflict(w, "Time slot overlaps an existing booking")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// GetMyBookings returns both booking kinds for the authenticated member
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	eventBookings, err := h.eventBookingUsecase.GetMyBookings(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	coachBookings, err := h.coachBookingUsecase.GetMyBookings(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", dto.MyBookingsResponse{
		EventBookings: eventBookings,
		CoachBookings: coachBookings,
		Total:         len(eventBookings) + len(coachBookings),
	})
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	switch vars["type"] {
	case "events":
		err = h.eventBookingUsecase.CancelBooking(r.Context(), userID, bookingID)
	case "coaches":
		err = h.coachBookingUsecase.CancelBooking(r.Context(), userID, bookingID)
	default:
		response.BadRequest(w, "Invalid booking type")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotOwned):
			response.Forbidden(w, "Booking belongs to another user")
		case errors.Is(err, usecase.ErrBookingCancelled):
			response.Conflict(w, "Booking is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

// ListEventBookings is the admin view of all bookings on one event
func (h *BookingHandler) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	bookings, err := h.eventBookingUsecase.ListByEvent(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			response.NotFound(w, "Event not found")
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", dto.EventBookingListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	})
}
