package usecase

import (
	"context"
	"fmt"

	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/domain/repository"
	"go-sportclub-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Calendar entries for event registrations block this long; coach sessions
// use their own booked duration.
const eventCalendarMinutes = 120

type WebhookUsecase interface {
	// HandleEvent reconciles a verified provider event against booking state.
	// Everything here is idempotent: duplicate deliveries, unknown event
	// types and malformed metadata all resolve to logged no-ops so the
	// provider receives an acknowledgment and stops retrying.
	HandleEvent(ctx context.Context, event *gateway.WebhookEvent) error
}

type webhookUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	eventBookingRepo repository.EventBookingRepository
	coachBookingRepo repository.CoachBookingRepository
	eventRepo        repository.EventRepository
	coachRepo        repository.CoachRepository
	userRepo         repository.UserRepository
	calendarService  *service.CalendarService
	auditService     service.AuditService
}

func NewWebhookUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	eventBookingRepo repository.EventBookingRepository,
	coachBookingRepo repository.CoachBookingRepository,
	eventRepo repository.EventRepository,
	coachRepo repository.CoachRepository,
	userRepo repository.UserRepository,
	calendarService *service.CalendarService,
	auditService service.AuditService,
) WebhookUsecase {
	return &webhookUsecase{
		db:               db,
		log:              log,
		eventBookingRepo: eventBookingRepo,
		coachBookingRepo: coachBookingRepo,
		eventRepo:        eventRepo,
		coachRepo:        coachRepo,
		userRepo:         userRepo,
		calendarService:  calendarService,
		auditService:     auditService,
	}
}

func (u *webhookUsecase) HandleEvent(ctx context.Context, event *gateway.WebhookEvent) error {
	if event.Type != gateway.EventCheckoutCompleted {
		u.log.Debugf("Ignoring webhook event type %s", event.Type)
		return nil
	}
	if event.Session == nil {
		u.log.Warn("Checkout completed event without session payload, ignoring")
		return nil
	}

	meta := event.Session.Metadata
	rawBookingID := meta[gateway.MetaBookingID]
	rawBookingType := meta[gateway.MetaBookingType]
	if rawBookingID == "" || rawBookingType == "" {
		u.log.Warnf("Webhook session %s has incomplete metadata, ignoring", event.Session.ID)
		return nil
	}

	bookingID, err := uuid.Parse(rawBookingID)
	if err != nil {
		u.log.Warnf("Webhook session %s carries invalid booking id %q, ignoring", event.Session.ID, rawBookingID)
		return nil
	}

	bookingType := entity.BookingType(rawBookingType)
	switch bookingType {
	case entity.BookingTypeEvent:
		return u.reconcileEventBooking(ctx, bookingID, event.Session)
	case entity.BookingTypeCoach:
		return u.reconcileCoachBooking(ctx, bookingID, event.Session)
	default:
		u.log.Warnf("Webhook session %s carries unknown booking type %q, ignoring", event.Session.ID, rawBookingType)
		return nil
	}
}

func (u *webhookUsecase) reconcileEventBooking(ctx context.Context, bookingID uuid.UUID, session *gateway.CheckoutSession) error {
	db := u.db.WithContext(ctx)

	rows, err := u.eventBookingRepo.MarkPaid(db, bookingID)
	if err != nil {
		return fmt.Errorf("mark event booking %s paid: %w", bookingID, err)
	}
	if rows == 0 {
		// Duplicate delivery or a booking cancelled before payment settled;
		// either way there is nothing left to change
		u.log.Infof("Event booking %s already reconciled or cancelled, skipping", bookingID)
		return nil
	}

	booking, err := u.eventBookingRepo.FindByID(db, bookingID)
	if err != nil || booking == nil {
		u.log.Warnf("Reconciled event booking %s but could not reload it: %+v", bookingID, err)
		return nil
	}

	u.log.Infof("Event booking reconciled as paid: %s (session=%s)", bookingID, session.ID)
	u.auditService.Record(db, &booking.UserID, entity.AuditActionBookingReconcile, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(entity.BookingTypeEvent),
		"session_id":   session.ID,
	})

	event, err := u.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil || event == nil {
		u.log.Warnf("Skipping calendar entry for booking %s, event lookup failed: %+v", bookingID, err)
		return nil
	}

	input := eventCalendarInput(event, u.attendeeEmail(db, booking.UserID))
	if calendarEventID := u.calendarService.BookingConfirmed(ctx, input); calendarEventID != nil {
		if err := u.eventBookingRepo.SetCalendarEventID(db, bookingID, *calendarEventID); err != nil {
			u.log.Warnf("Failed to store calendar event id for booking %s: %+v", bookingID, err)
		}
	}

	return nil
}

func (u *webhookUsecase) reconcileCoachBooking(ctx context.Context, bookingID uuid.UUID, session *gateway.CheckoutSession) error {
	db := u.db.WithContext(ctx)

	rows, err := u.coachBookingRepo.MarkPaid(db, bookingID)
	if err != nil {
		return fmt.Errorf("mark coach booking %s paid: %w", bookingID, err)
	}
	if rows == 0 {
		u.log.Infof("Coach booking %s already reconciled or cancelled, skipping", bookingID)
		return nil
	}

	booking, err := u.coachBookingRepo.FindByID(db, bookingID)
	if err != nil || booking == nil {
		u.log.Warnf("Reconciled coach booking %s but could not reload it: %+v", bookingID, err)
		return nil
	}

	u.log.Infof("Coach booking reconciled as paid: %s (session=%s)", bookingID, session.ID)
	u.auditService.Record(db, &booking.UserID, entity.AuditActionBookingReconcile, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(entity.BookingTypeCoach),
		"session_id":   session.ID,
	})

	coach, err := u.coachRepo.FindByID(ctx, booking.CoachID)
	if err != nil || coach == nil {
		u.log.Warnf("Skipping calendar entry for booking %s, coach lookup failed: %+v", bookingID, err)
		return nil
	}

	input := coachCalendarInput(booking, coach, u.attendeeEmail(db, booking.UserID))
	if calendarEventID := u.calendarService.BookingConfirmed(ctx, input); calendarEventID != nil {
		if err := u.coachBookingRepo.SetCalendarEventID(db, bookingID, *calendarEventID); err != nil {
			u.log.Warnf("Failed to store calendar event id for booking %s: %+v", bookingID, err)
		}
	}

	return nil
}

func (u *webhookUsecase) attendeeEmail(db *gorm.DB, userID uuid.UUID) string {
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func eventCalendarInput(event *entity.Event, attendeeEmail string) gateway.CalendarEventInput {
	return gateway.CalendarEventInput{
		Title:           event.Name,
		Description:     event.Description,
		Start:           event.StartsAt(),
		DurationMinutes: eventCalendarMinutes,
		AttendeeEmail:   attendeeEmail,
	}
}

func coachCalendarInput(booking *entity.CoachBooking, coach *entity.Coach, attendeeEmail string) gateway.CalendarEventInput {
	return gateway.CalendarEventInput{
		Title:           fmt.Sprintf("Coaching session with %s", coach.FullName),
		Description:     coach.Specialty,
		Start:           booking.StartsAt(),
		DurationMinutes: booking.DurationMinutes,
		AttendeeEmail:   attendeeEmail,
	}
}
