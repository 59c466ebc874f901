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

type CoachHandler struct {
	coachUsecase usecase.CoachUsecase
	validator    *validator.CustomValidator
}

func NewCoachHandler(coachUsecase usecase.CoachUsecase, validator *validator.CustomValidator) *CoachHandler {
	return &CoachHandler{
		coachUsecase: coachUsecase,
		validator:    validator,
	}
}

func (h *CoachHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	coach, err := h.coachUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCoachEmailAlready):
			response.Conflict(w, "Coach with this email already exists")
		default:
			response.InternalServerError(w, "Failed to create coach")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Coach created successfully", coach)
}

func (h *CoachHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	coaches, total, err := h.coachUsecase.GetAll(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get coaches")
		return
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	response.SuccessWithMeta(w, http.StatusOK, "Coaches retrieved successfully", dto.CoachListResponse{
		Coaches: coaches,
		Total:   total,
	}, meta)
}

func (h *CoachHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid coach ID")
		return
	}

	coach, err := h.coachUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCoachNotFound):
			response.NotFound(w, "Coach not found")
		default:
			response.InternalServerError(w, "Failed to get coach")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coach retrieved successfully", coach)
}

func (h *CoachHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid coach ID")
		return
	}

	var req dto.UpdateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	coach, err := h.coachUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCoachNotFound):
			response.NotFound(w, "Coach not found")
		case errors.Is(err, usecase.ErrCoachEmailAlready):
			response.Conflict(w, "Coach with this email already exists")
		default:
			response.InternalServerError(w, "Failed to update coach")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coach updated successfully", coach)
}

func (h *CoachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid coach ID")
		return
	}

	if err := h.coachUsecase.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCoachNotFound):
			response.NotFound(w, "Coach not found")
		default:
			response.InternalServerError(w, "Failed to delete coach")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coach deleted successfully", nil)
}
