package usecase

import (
	"context"
	"errors"

	"go-sportclub-booking/internal/converter"
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCoachNotFound     = errors.New("coach not found")
	ErrCoachEmailAlready = errors.New("coach with this email already exists")
)

type CoachUsecase interface {
	Create(ctx context.Context, req *dto.CreateCoachRequest) (*dto.CoachResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]dto.CoachResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CoachResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCoachRequest) (*dto.CoachResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type coachUsecase struct {
	coachRepo repository.CoachRepository
}

func NewCoachUsecase(coachRepo repository.CoachRepository) CoachUsecase {
	return &coachUsecase{coachRepo: coachRepo}
}

func (u *coachUsecase) Create(ctx context.Context, req *dto.CreateCoachRequest) (*dto.CoachResponse, error) {
	coach := &entity.Coach{
		FullName:   req.FullName,
		Email:      req.Email,
		Specialty:  req.Specialty,
		Biography:  req.Biography,
		HourlyRate: req.HourlyRate,
		Status:     entity.SubjectStatusActive,
	}

	if err := u.coachRepo.Create(ctx, coach); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCoachEmailAlready
		}
		return nil, err
	}

	return converter.CoachToResponse(coach), nil
}

func (u *coachUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.CoachResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	coaches, total, err := u.coachRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return converter.CoachesToResponses(coaches), total, nil
}

func (u *coachUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.CoachResponse, error) {
	coach, err := u.coachRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}

	return converter.CoachToResponse(coach), nil
}

func (u *coachUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCoachRequest) (*dto.CoachResponse, error) {
	coach, err := u.coachRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}

	coach.FullName = req.FullName
	coach.Email = req.Email
	coach.Specialty = req.Specialty
	coach.Biography = req.Biography
	coach.HourlyRate = req.HourlyRate
	coach.Status = entity.SubjectStatus(req.Status)

	if err := u.coachRepo.Update(ctx, coach); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCoachEmailAlready
		}
		return nil, err
	}

	return converter.CoachToResponse(coach), nil
}

func (u *coachUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	coach, err := u.coachRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if coach == nil {
		return ErrCoachNotFound
	}

	return u.coachRepo.Delete(ctx, id)
}
