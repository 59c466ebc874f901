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

const defaultSessionMinutes = 60

var (
	ErrCoachNotBookable  = errors.New("coach is not open for booking")
	ErrSlotInPast        = errors.New("requested time slot is in the past")
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
)

type CoachBookingUsecase interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateCoachBookingRequest) (*dto.CoachBookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]dto.CoachBookingResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error
}

type coachBookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.CoachBookingRepository
	coachRepo    repository.CoachRepository
	auditService service.AuditService
}

func NewCoachBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.CoachBookingRepository,
	coachRepo repository.CoachRepository,
	auditService service.AuditService,
) CoachBookingUsecase {
	return &coachBookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		coachRepo:    coachRepo,
		auditService: auditService,
	}
}

func (u *coachBookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateCoachBookingRequest) (*dto.CoachBookingResponse, error) {
	db := u.db.WithContext(ctx)

	coach, err := u.coachRepo.FindByID(ctx, req.CoachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}
	if !coach.IsActive() {
		return nil, ErrCoachNotBookable
	}

	bookingDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := entity.ParseClock(req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultSessionMinutes
	}

	booking := &entity.CoachBooking{
		CoachID:         coach.ID,
		UserID:          userID,
		BookingDate:     bookingDate,
		StartTime:       req.Time,
		DurationMinutes: duration,
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}

	if booking.StartsAt().Before(time.Now().UTC()) {
		return nil, ErrSlotInPast
	}

	// Reserve locks the coach's bookings for the day and rejects any
	// half-open interval overlap before inserting
	if err := u.bookingRepo.Reserve(db, booking); err != nil {
		return nil, err
	}

	u.log.Infof("Coach booking created: %s (coach=%s user=%s slot=%s %s)", booking.ID, coach.ID, userID, req.Date, req.Time)
	u.auditService.Record(db, &userID, entity.AuditActionBookingCreate, entity.JSON{
		"booking_id":   booking.ID.String(),
		"booking_type": string(entity.BookingTypeCoach),
		"coach_id":     coach.ID.String(),
	})

	booking.Coach = *coach
	return converter.CoachBookingToResponse(booking), nil
}

func (u *coachBookingUsecase) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]dto.CoachBookingResponse, error) {
	bookings, err := u.bookingRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return converter.CoachBookingsToResponses(bookings), nil
}

func (u *coachBookingUsecase) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error {
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

	u.log.Infof("Coach booking cancelled: %s (user=%s)", bookingID, userID)
	u.auditService.Record(db, &userID, entity.AuditActionBookingCancel, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(entity.BookingTypeCoach),
	})

	return nil
}
