package usecase

import (
	"context"
	"errors"
	"testing"

	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type webhookFixture struct {
	uc               WebhookUsecase
	eventRepo        *fakeEventRepo
	coachRepo        *fakeCoachRepo
	userRepo         *fakeUserRepo
	eventBookingRepo *fakeEventBookingRepo
	coachBookingRepo *fakeCoachBookingRepo
	calendar         *fakeCalendarClient
	audit            *fakeAuditService
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		eventRepo: newFakeEventRepo(),
		coachRepo: newFakeCoachRepo(),
		userRepo:  newFakeUserRepo(),
		calendar:  &fakeCalendarClient{},
		audit:     &fakeAuditService{},
	}
	f.eventBookingRepo = newFakeEventBookingRepo(f.eventRepo)
	f.coachBookingRepo = newFakeCoachBookingRepo()

	log := newTestLogger()
	f.uc = NewWebhookUsecase(
		testDB(), log,
		f.eventBookingRepo, f.coachBookingRepo,
		f.eventRepo, f.coachRepo, f.userRepo,
		service.NewCalendarService(f.calendar, log),
		f.audit,
	)
	return f
}

func checkoutCompletedEvent(bookingID uuid.UUID, bookingType string) *gateway.WebhookEvent {
	return &gateway.WebhookEvent{
		Type: gateway.EventCheckoutCompleted,
		Session: &gateway.CheckoutSession{
			ID:            "cs_test_evt",
			PaymentStatus: "paid",
			Metadata: map[string]string{
				gateway.MetaBookingID:   bookingID.String(),
				gateway.MetaBookingType: bookingType,
			},
		},
	}
}

func TestHandleEventReconcilesEventBooking(t *testing.T) {
	f := newWebhookFixture()
	event := seedEvent(f.eventRepo, 10, decimal.NewFromInt(20))
	booking := &entity.EventBooking{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  uuid.New(),
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}
	f.eventBookingRepo.bookings[booking.ID] = booking

	if err := f.uc.HandleEvent(context.Background(), checkoutCompletedEvent(booking.ID, "event")); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}

	if !booking.IsPaid() || !booking.IsConfirmed() {
		t.Errorf("booking not reconciled: status=%s payment=%s", booking.Status, booking.PaymentStatus)
	}
	if f.calendar.calls != 1 {
		t.Errorf("calendar called %d times, want 1", f.calendar.calls)
	}
	if booking.CalendarEventID == nil {
		t.Error("calendar event id was not stored")
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionBookingReconcile {
		t.Errorf("audit actions = %v", f.audit.actions)
	}
}

func TestHandleEventReconcilesCoachBooking(t *testing.T) {
	f := newWebhookFixture()
	coach := seedCoach(f.coachRepo, decimal.NewFromInt(80))
	booking := &entity.CoachBooking{
		ID:              uuid.New(),
		CoachID:         coach.ID,
		UserID:          uuid.New(),
		StartTime:       "09:00",
		DurationMinutes: 60,
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}
	f.coachBookingRepo.bookings[booking.ID] = booking

	if err := f.uc.HandleEvent(context.Background(), checkoutCompletedEvent(booking.ID, "coach")); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}

	if !booking.IsPaid() || !booking.IsConfirmed() {
		t.Errorf("booking not reconciled: status=%s payment=%s", booking.Status, booking.PaymentStatus)
	}
	if f.calendar.calls != 1 {
		t.Errorf("calendar called %d times, want 1", f.calendar.calls)
	}
}

func TestHandleEventDuplicateDelivery(t *testing.T) {
	f := newWebhookFixture()
	event := seedEvent(f.eventRepo, 10, decimal.NewFromInt(20))
	booking := &entity.EventBooking{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  uuid.New(),
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}
	f.eventBookingRepo.bookings[booking.ID] = booking

	evt := checkoutCompletedEvent(booking.ID, "event")
	if err := f.uc.HandleEvent(context.Background(), evt); err != nil {
		t.Fatal(err)
	}
	if err := f.uc.HandleEvent(context.Background(), evt); err != nil {
		t.Fatalf("duplicate delivery returned error: %v", err)
	}

	if f.calendar.calls != 1 {
		t.Errorf("calendar called %d times on duplicate delivery, want 1", f.calendar.calls)
	}
	if len(f.audit.actions) != 1 {
		t.Errorf("audit recorded %d times, want 1", len(f.audit.actions))
	}
}

func TestHandleEventCancelledBookingStaysCancelled(t *testing.T) {
	f := newWebhookFixture()
	event := seedEvent(f.eventRepo, 10, decimal.NewFromInt(20))
	booking := &entity.EventBooking{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  uuid.New(),
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusCancelled,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}
	f.eventBookingRepo.bookings[booking.ID] = booking

	if err := f.uc.HandleEvent(context.Background(), checkoutCompletedEvent(booking.ID, "event")); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}

	if !booking.IsCancelled() {
		t.Errorf("cancelled booking was resurrected to %s", booking.Status)
	}
	if booking.IsPaid() {
		t.Error("cancelled booking must not become paid")
	}
	if f.calendar.calls != 0 {
		t.Error("calendar must not be called for a cancelled booking")
	}
}

func TestHandleEventIgnoresMalformedAndForeignEvents(t *testing.T) {
	f := newWebhookFixture()

	tests := []struct {
		name  string
		event *gateway.WebhookEvent
	}{
		{"other event type", &gateway.WebhookEvent{Type: "payment_intent.created"}},
		{"no session", &gateway.WebhookEvent{Type: gateway.EventCheckoutCompleted}},
		{"missing metadata", &gateway.WebhookEvent{
			Type:    gateway.EventCheckoutCompleted,
			Session: &gateway.CheckoutSession{ID: "cs_1", Metadata: map[string]string{}},
		}},
		{"invalid booking id", &gateway.WebhookEvent{
			Type: gateway.EventCheckoutCompleted,
			Session: &gateway.CheckoutSession{ID: "cs_2", Metadata: map[string]string{
				gateway.MetaBookingID:   "not-a-uuid",
				gateway.MetaBookingType: "event",
			}},
		}},
		{"unknown booking type", checkoutCompletedEvent(uuid.New(), "membership")},
		{"unknown booking id", checkoutCompletedEvent(uuid.New(), "event")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.uc.HandleEvent(context.Background(), tt.event); err != nil {
				t.Errorf("HandleEvent() = %v, want nil", err)
			}
		})
	}

	if f.calendar.calls != 0 {
		t.Error("calendar must not be called for ignored events")
	}
	if len(f.audit.actions) != 0 {
		t.Errorf("audit actions = %v, want none", f.audit.actions)
	}
}

func TestHandleEventCalendarFailureIsNonFatal(t *testing.T) {
	f := newWebhookFixture()
	f.calendar.err = errors.New("calendar unavailable")
	event := seedEvent(f.eventRepo, 10, decimal.NewFromInt(20))
	booking := &entity.EventBooking{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  uuid.New(),
		BookingState: entity.BookingState{
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
		},
	}
	f.eventBookingRepo.bookings[booking.ID] = booking

	if err := f.uc.HandleEvent(context.Background(), checkoutCompletedEvent(booking.ID, "event")); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}

	if !booking.IsPaid() {
		t.Error("calendar failure must not block reconciliation")
	}
	if booking.CalendarEventID != nil {
		t.Error("failed calendar call must not store an event id")
	}
}
