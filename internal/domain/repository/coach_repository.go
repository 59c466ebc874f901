package repository

import (
	"context"

	"go-sportclub-booking/internal/domain/entity"

	"github.com/google/uuid"
)

type CoachRepository interface {
	Create(ctx context.Context, coach *entity.Coach) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.Coach, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error)
	Update(ctx context.Context, coach *entity.Coach) error
	Delete(ctx context.Context, id uuid.UUID) error
}
