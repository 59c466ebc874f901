package converter

import (
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
)

// CoachToResponse converts a Coach entity to CoachResponse DTO
func CoachToResponse(coach *entity.Coach) *dto.CoachResponse {
	if coach == nil {
		return nil
	}

	return &dto.CoachResponse{
		ID:         coach.ID,
		FullName:   coach.FullName,
		Email:      coach.Email,
		Specialty:  coach.Specialty,
		Biography:  coach.Biography,
		HourlyRate: coach.HourlyRate,
		Status:     string(coach.Status),
		CreatedAt:  coach.CreatedAt,
		UpdatedAt:  coach.UpdatedAt,
	}
}

func CoachesToResponses(coaches []entity.Coach) []dto.CoachResponse {
	responses := make([]dto.CoachResponse, len(coaches))
	for i := range coaches {
		responses[i] = *CoachToResponse(&coaches[i])
	}
	return responses
}
