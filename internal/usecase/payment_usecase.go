package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-sportclub-booking/config"
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/domain/repository"
	"go-sportclub-booking/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCheckoutCancelled     = errors.New("cannot pay for a cancelled booking")
	ErrCheckoutAlreadyPaid   = errors.New("booking is already paid")
	ErrCheckoutSessionExists = errors.New("booking already has a checkout session")
	ErrPriceNotConfigured    = errors.New("subject price is not configured for checkout")
	ErrPaymentUpstream       = errors.New("payment provider request failed")
	ErrSessionNotOwned       = errors.New("checkout session belongs to another user")
)

type PaymentUsecase interface {
	// CreateCheckoutSession opens a hosted payment page for a pending booking.
	// Free subjects skip the provider entirely: the booking is confirmed in
	// place and PaymentRequired is false in the response.
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error)
	GetSessionStatus(ctx context.Context, userID uuid.UUID, sessionID string) (*dto.SessionStatusResponse, error)
}

type paymentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	stripeCfg        config.StripeConfig
	provider         gateway.PaymentProvider
	eventBookingRepo repository.EventBookingRepository
	coachBookingRepo repository.CoachBookingRepository
	eventRepo        repository.EventRepository
	coachRepo        repository.CoachRepository
	userRepo         repository.UserRepository
	calendarService  *service.CalendarService
	auditService     service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	stripeCfg config.StripeConfig,
	provider gateway.PaymentProvider,
	eventBookingRepo repository.EventBookingRepository,
	coachBookingRepo repository.CoachBookingRepository,
	eventRepo repository.EventRepository,
	coachRepo repository.CoachRepository,
	userRepo repository.UserRepository,
	calendarService *service.CalendarService,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:               db,
		log:              log,
		stripeCfg:        stripeCfg,
		provider:         provider,
		eventBookingRepo: eventBookingRepo,
		coachBookingRepo: coachBookingRepo,
		eventRepo:        eventRepo,
		coachRepo:        coachRepo,
		userRepo:         userRepo,
		calendarService:  calendarService,
		auditService:     auditService,
	}
}

// checkoutRedirectURL puts the booking id into a configured redirect URL so
// the client lands back on the right booking. Templates may carry a
// {booking_id} placeholder; without one the id is appended as a query
// parameter.
func checkoutRedirectURL(template string, bookingID uuid.UUID) string {
	if strings.Contains(template, "{booking_id}") {
		return strings.ReplaceAll(template, "{booking_id}", bookingID.String())
	}
	sep := "?"
	if strings.Contains(template, "?") {
		sep = "&"
	}
	return template + sep + "booking_id=" + bookingID.String()
}

// checkoutSubject flattens the per-type lookups into what checkout needs
type checkoutSubject struct {
	state       *entity.BookingState
	subjectID   uuid.UUID
	price       decimal.Decimal
	productName string
	description string
	calendar    gateway.CalendarEventInput
}

func (u *paymentUsecase) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	db := u.db.WithContext(ctx)

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	bookingType := entity.BookingType(req.BookingType)

	subject, err := u.loadSubject(ctx, db, userID, bookingType, bookingID)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	state := subject.state
	switch {
	case state.IsCancelled():
		return nil, ErrCheckoutCancelled
	case state.IsPaid():
		return nil, ErrCheckoutAlreadyPaid
	case state.PaymentSessionRef != nil:
		return nil, ErrCheckoutSessionExists
	}

	// Free subjects never touch the provider
	if !subject.price.IsPositive() {
		return u.confirmFreeBooking(ctx, db, userID, bookingType, bookingID, subject)
	}

	amount := subject.price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if amount <= 0 {
		return nil, ErrPriceNotConfigured
	}

	params := gateway.CheckoutSessionParams{
		Amount:        amount,
		Currency:      u.stripeCfg.Currency,
		ProductName:   subject.productName,
		Description:   subject.description,
		CustomerEmail: user.Email,
		SuccessURL:    checkoutRedirectURL(u.stripeCfg.SuccessURL, bookingID),
		CancelURL:     checkoutRedirectURL(u.stripeCfg.CancelURL, bookingID),
		Metadata: map[string]string{
			gateway.MetaBookingID:   bookingID.String(),
			gateway.MetaBookingType: string(bookingType),
			gateway.MetaSubjectID:   subject.subjectID.String(),
			gateway.MetaUserID:      userID.String(),
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, u.stripeCfg.Timeout)
	defer cancel()

	session, err := u.provider.CreateCheckoutSession(callCtx, params)
	if err != nil {
		u.log.Warnf("Failed to create checkout session for booking %s: %+v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUpstream, err)
	}

	rows, err := u.attachSession(db, bookingType, bookingID, session.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// A concurrent request won the ref; the orphaned provider session
		// expires on its own
		u.log.Warnf("Checkout session %s not attached, booking %s already has one", session.ID, bookingID)
		return nil, ErrCheckoutSessionExists
	}

	u.log.Infof("Checkout session created: %s (booking=%s amount=%d %s)", session.ID, bookingID, amount, params.Currency)
	u.auditService.Record(db, &userID, entity.AuditActionCheckoutCreate, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(bookingType),
		"session_id":   session.ID,
		"amount":       amount,
	})

	return &dto.CheckoutSessionResponse{
		SessionID:       session.ID,
		RedirectURL:     session.URL,
		PaymentRequired: true,
	}, nil
}

// confirmFreeBooking applies the paid transition directly and fires the
// calendar side effect, mirroring what the webhook reconciler does for paid
// subjects.
func (u *paymentUsecase) confirmFreeBooking(ctx context.Context, db *gorm.DB, userID uuid.UUID, bookingType entity.BookingType, bookingID uuid.UUID, subject *checkoutSubject) (*dto.CheckoutSessionResponse, error) {
	rows, err := u.markPaid(db, bookingType, bookingID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrCheckoutAlreadyPaid
	}

	u.log.Infof("Free booking confirmed without checkout: %s", bookingID)
	u.auditService.Record(db, &userID, entity.AuditActionBookingReconcile, entity.JSON{
		"booking_id":   bookingID.String(),
		"booking_type": string(bookingType),
		"free":         true,
	})

	if eventID := u.calendarService.BookingConfirmed(ctx, subject.calendar); eventID != nil {
		if err := u.setCalendarEventID(db, bookingType, bookingID, *eventID); err != nil {
			u.log.Warnf("Failed to store calendar event id for booking %s: %+v", bookingID, err)
		}
	}

	return &dto.CheckoutSessionResponse{PaymentRequired: false}, nil
}

func (u *paymentUsecase) GetSessionStatus(ctx context.Context, userID uuid.UUID, sessionID string) (*dto.SessionStatusResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, u.stripeCfg.Timeout)
	defer cancel()

	session, err := u.provider.RetrieveSession(callCtx, sessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentUpstream, err)
	}

	if session.Metadata[gateway.MetaUserID] != userID.String() {
		return nil, ErrSessionNotOwned
	}

	return &dto.SessionStatusResponse{
		SessionID:     session.ID,
		PaymentStatus: session.PaymentStatus,
		Amount:        session.AmountTotal,
		Currency:      session.Currency,
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}, nil
}

// loadSubject fetches the booking and its bookable subject for either type,
// verifying ownership and that the subject is still active.
func (u *paymentUsecase) loadSubject(ctx context.Context, db *gorm.DB, userID uuid.UUID, bookingType entity.BookingType, bookingID uuid.UUID) (*checkoutSubject, error) {
	switch bookingType {
	case entity.BookingTypeEvent:
		booking, err := u.eventBookingRepo.FindByID(db, bookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}
		if booking.UserID != userID {
			return nil, ErrBookingNotOwned
		}
		event, err := u.eventRepo.FindByID(ctx, booking.EventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		if !event.IsActive() {
			return nil, ErrEventNotBookable
		}
		return &checkoutSubject{
			state:       &booking.BookingState,
			subjectID:   event.ID,
			price:       event.Price,
			productName: event.Name,
			description: fmt.Sprintf("Event registration for %s on %s", event.Name, event.EventDate.Format("2006-01-02")),
			calendar:    eventCalendarInput(event, ""),
		}, nil
	case entity.BookingTypeCoach:
		booking, err := u.coachBookingRepo.FindByID(db, bookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}
		if booking.UserID != userID {
			return nil, ErrBookingNotOwned
		}
		coach, err := u.coachRepo.FindByID(ctx, booking.CoachID)
		if err != nil {
			return nil, err
		}
		if coach == nil {
			return nil, ErrCoachNotFound
		}
		if !coach.IsActive() {
			return nil, ErrCoachNotBookable
		}
		return &checkoutSubject{
			state:       &booking.BookingState,
			subjectID:   coach.ID,
			price:       coach.SessionPrice(booking.DurationMinutes),
			productName: fmt.Sprintf("Coaching session with %s", coach.FullName),
			description: fmt.Sprintf("%d minute session on %s at %s", booking.DurationMinutes, booking.BookingDate.Format("2006-01-02"), booking.StartTime),
			calendar:    coachCalendarInput(booking, coach, ""),
		}, nil
	default:
		return nil, ErrBookingNotFound
	}
}

func (u *paymentUsecase) attachSession(db *gorm.DB, bookingType entity.BookingType, bookingID uuid.UUID, sessionRef string) (int64, error) {
	if bookingType == entity.BookingTypeCoach {
		return u.coachBookingRepo.AttachSession(db, bookingID, sessionRef)
	}
	return u.eventBookingRepo.AttachSession(db, bookingID, sessionRef)
}

func (u *paymentUsecase) markPaid(db *gorm.DB, bookingType entity.BookingType, bookingID uuid.UUID) (int64, error) {
	if bookingType == entity.BookingTypeCoach {
		return u.coachBookingRepo.MarkPaid(db, bookingID)
	}
	return u.eventBookingRepo.MarkPaid(db, bookingID)
}

func (u *paymentUsecase) setCalendarEventID(db *gorm.DB, bookingType entity.BookingType, bookingID uuid.UUID, calendarEventID string) error {
	if bookingType == entity.BookingTypeCoach {
		return u.coachBookingRepo.SetCalendarEventID(db, bookingID, calendarEventID)
	}
	return u.eventBookingRepo.SetCalendarEventID(db, bookingID, calendarEventID)
}
