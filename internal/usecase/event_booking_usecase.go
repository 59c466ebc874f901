package usecase

import (
	"context"
	"errors"
	"time"

	"go-sportclub-booking/internal/converter"
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/repository"
	"go-sportclub-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingNotOwned    = errors.New("booking belongs to another user")
	ErrEventNotBookable   = errors.New("event is not open for booking")
	ErrEventAlreadyPassed = errors.New("event date has already passed")
	ErrBookingCancelled   = errors.New("booking is already cancelled")
)

type EventBookingUsecase interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateEventBookingRequest) (*dto.EventBookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]dto.EventBookingResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.EventBookingResponse, error)
}

type eventBookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.EventBookingRepository
	eventRepo    repository.EventRepository
	auditService service.AuditService
}

func NewEventBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.EventBookingRepository,
	eventRepo repository.EventRepository,
	auditService service.AuditService,
) EventBookingUsecase {
	return &eventBookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		auditService: auditService,
	}
}

func (u *eventBookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateEventBookingRequest) (*dto.EventBookingResponse, error) {
	db := u.db.WithContext(ctx)

	// Validate the event before taking any lock
	event, err := u.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !event.IsActive() {
		return nil, ErrEventNotBookable
	}
	if event.StartsAt().Before(time.Now().UTC()) {
		return nil, ErrEventAlreadyPassed
	}

	booking := &entity.EventBooking{
		EventID: event.ID,
		UserID:  userID,
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}

	// Reserve re-checks capacity and the one-booking-per-member rule under a
	// row lock so two concurrent requests cannot both claim the last spot
	if err := u.bookingRepo.Reserve(db, booking); err != nil {
		return nil, err
	}

	u.log.Infof("Event booking created: %s (event=%s user=%s)", booking.ID, event.ID, userID)
	u.auditService.Record(db, &userID, entity.AuditActionBookingCreate, entity.JSON{
		"booking_id":   booking.ID.String(),
		"booking_type": string(entity.BookingTypeEvent),
		"event_id":     event.ID.String(),
	})

	booking.Event = *event
	return converter.EventBookingToResponse(booking), nil
}

func (u *eventBookingUsecase) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]dto.EventBookingResponse, error) {
	bookings, err := u.bookingRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return converter.EventBookingsToResponses(bookings), nil
}

func (u *eventBookingUsecase) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.UserID != userID {
		return ErrBookingNotOwned
	}

	rows, err := u.bookingRepo.Cancel(db, bookingID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingCancelled
	}

	u.log.Infof("Event booking cancelled: %s (user=%s)", bookingID, userID)
	u.auditService.Record(db, &userID, entity.AuditActionBookingCancel, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(entity.BookingTypeEvent),
	})

	return nil
}

func (u *eventBookingUsecase) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.EventBookingResponse, error) {
	db := u.db.WithContext(ctx)

	event, err := u.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	bookings, err := u.bookingRepo.FindByEventID(db, eventID)
	if err != nil {
		return nil, err
	}
	return converter.EventBookingsToResponses(bookings), nil
}
