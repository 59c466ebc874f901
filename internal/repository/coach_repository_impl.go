package repository

import (
	"context"
	"errors"

	"go-sportclub-booking/internal/domain/entity"
	domainRepo "go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) domainRepo.CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(ctx context.Context, coach *entity.Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}

func (r *coachRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Coach, int64, error) {
	var coaches []entity.Coach
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Coach{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).
		Order("full_name ASC").
		Find(&coaches).Error; err != nil {
		return nil, 0, err
	}

	return coaches, total, nil
}

func (r *coachRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error) {
	var coach entity.Coach
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&coach).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coach, nil
}

func (r *coachRepository) Update(ctx context.Context, coach *entity.Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}

func (r *coachRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Coach{}).
		Where("id = ?", id).
		Update("status", entity.SubjectStatusInactive).Error
}
