package usecase

import (
	"context"
	"errors"
	"time"

	"go-sportclub-booking/internal/converter"
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

type EventUsecase interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]dto.EventResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventUsecase struct {
	db          *gorm.DB
	eventRepo   repository.EventRepository
	bookingRepo repository.EventBookingRepository
}

func NewEventUsecase(db *gorm.DB, eventRepo repository.EventRepository, bookingRepo repository.EventBookingRepository) EventUsecase {
	return &eventUsecase{db: db, eventRepo: eventRepo, bookingRepo: bookingRepo}
}

func (u *eventUsecase) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	event := &entity.Event{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MaxPlayers:  req.MaxPlayers,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		Location:    req.Location,
		Status:      entity.SubjectStatusActive,
	}

	if err := u.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return converter.EventToResponse(event), nil
}

func (u *eventUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.EventResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	events, total, err := u.eventRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return converter.EventsToResponses(events), total, nil
}

func (u *eventUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := u.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	activeBookings, err := u.bookingRepo.CountActive(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return converter.EventToResponseWithSpots(event, activeBookings), nil
}

func (u *eventUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := u.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Price = req.Price
	event.MaxPlayers = req.MaxPlayers
	event.EventDate = eventDate
	event.StartTime = req.StartTime
	event.Location = req.Location
	event.Status = entity.SubjectStatus(req.Status)

	if err := u.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return converter.EventToResponse(event), nil
}

func (u *eventUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	event, err := u.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	return u.eventRepo.Delete(ctx, id)
}
