package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/usecase"
	"go-sportclub-booking/pkg/response"
	"go-sportclub-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EventHandler struct {
	eventUsecase usecase.EventUsecase
	validator    *validator.CustomValidator
}

func NewEventHandler(eventUsecase usecase.EventUsecase, validator *validator.CustomValidator) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
		validator:    validator,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	event, err := h.eventUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create event")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Event created successfully", event)
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	events, total, err := h.eventUsecase.GetAll(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get events")
		return
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	response.SuccessWithMeta(w, http.StatusOK, "Events retrieved successfully", dto.EventListResponse{
		Events: events,
		Total:  total,
	}, meta)
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	event, err := h.eventUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			response.NotFound(w, "Event not found")
		default:
			response.InternalServerError(w, "Failed to get event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Event retrieved successfully", event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	event, err := h.eventUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			response.NotFound(w, "Event not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Event updated successfully", event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	if err := h.eventUsecase.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			response.NotFound(w, "Event not found")
		default:
			response.InternalServerError(w, "Failed to delete event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Event deleted successfully", nil)
}
