package usecase

import (
	"context"
	"io"

	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// testDB returns a gorm handle that supports WithContext but nothing else;
// the fakes below never touch the connection pool. Session cloning needs a
// non-nil Statement.
func testDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeEventRepo

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*entity.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) FindAll(ctx context.Context, limit, offset int) ([]entity.Event, int64, error) {
	var events []entity.Event
	for _, e := range f.events {
		events = append(events, *e)
	}
	return events, int64(len(events)), nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *event
	return &cp, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if event, ok := f.events[id]; ok {
		event.Status = entity.SubjectStatusInactive
	}
	return nil
}

// fakeCoachRepo

type fakeCoachRepo struct {
	coaches map[uuid.UUID]*entity.Coach
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{coaches: make(map[uuid.UUID]*entity.Coach)}
}

func (f *fakeCoachRepo) Create(ctx context.Context, coach *entity.Coach) error {
	if coach.ID == uuid.Nil {
		coach.ID = uuid.New()
	}
	f.coaches[coach.ID] = coach
	return nil
}

func (f *fakeCoachRepo) FindAll(ctx context.Context, limit, offset int) ([]entity.Coach, int64, error) {
	var coaches []entity.Coach
	for _, c := range f.coaches {
		coaches = append(coaches, *c)
	}
	return coaches, int64(len(coaches)), nil
}

func (f *fakeCoachRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error) {
	coach, ok := f.coaches[id]
	if !ok {
		return nil, nil
	}
	cp := *coach
	return &cp, nil
}

func (f *fakeCoachRepo) Update(ctx context.Context, coach *entity.Coach) error {
	f.coaches[coach.ID] = coach
	return nil
}

func (f *fakeCoachRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if coach, ok := f.coaches[id]; ok {
		coach.Status = entity.SubjectStatusInactive
	}
	return nil
}

// fakeUserRepo

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

// fakeEventBookingRepo mimics the real repository's conditional updates and
// the Reserve transaction against the in-memory event catalog.

type fakeEventBookingRepo struct {
	eventRepo *fakeEventRepo
	bookings  map[uuid.UUID]*entity.EventBooking
}

func newFakeEventBookingRepo(eventRepo *fakeEventRepo) *fakeEventBookingRepo {
	return &fakeEventBookingRepo{
		eventRepo: eventRepo,
		bookings:  make(map[uuid.UUID]*entity.EventBooking),
	}
}

func (f *fakeEventBookingRepo) Reserve(db *gorm.DB, booking *entity.EventBooking) error {
	event, ok := f.eventRepo.events[booking.EventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	var active int64
	for _, b := range f.bookings {
		if b.EventID == booking.EventID && b.IsActive() {
			active++
			if b.UserID == booking.UserID {
				return repository.ErrDuplicateBooking
			}
		}
	}
	if event.AvailableSpots(active) <= 0 {
		return repository.ErrEventFull
	}

	booking.ID = uuid.New()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeEventBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.EventBooking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeEventBookingRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.EventBooking, error) {
	var bookings []entity.EventBooking
	for _, b := range f.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeEventBookingRepo) FindByEventID(db *gorm.DB, eventID uuid.UUID) ([]entity.EventBooking, error) {
	var bookings []entity.EventBooking
	for _, b := range f.bookings {
		if b.EventID == eventID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeEventBookingRepo) CountActive(db *gorm.DB, eventID uuid.UUID) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.EventID == eventID && b.IsActive() {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventBookingRepo) AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.PaymentSessionRef != nil || booking.IsCancelled() {
		return 0, nil
	}
	booking.PaymentSessionRef = &sessionRef
	return 1, nil
}

func (f *fakeEventBookingRepo) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.IsPaid() || booking.IsCancelled() {
		return 0, nil
	}
	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.Status = entity.BookingStatusConfirmed
	return 1, nil
}

func (f *fakeEventBookingRepo) SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error {
	if booking, ok := f.bookings[id]; ok {
		booking.CalendarEventID = &calendarEventID
	}
	return nil
}

func (f *fakeEventBookingRepo) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.IsCancelled() {
		return 0, nil
	}
	booking.Status = entity.BookingStatusCancelled
	return 1, nil
}

// fakeCoachBookingRepo

type fakeCoachBookingRepo struct {
	bookings map[uuid.UUID]*entity.CoachBooking
}

func newFakeCoachBookingRepo() *fakeCoachBookingRepo {
	return &fakeCoachBookingRepo{bookings: make(map[uuid.UUID]*entity.CoachBooking)}
}

func (f *fakeCoachBookingRepo) Reserve(db *gorm.DB, booking *entity.CoachBooking) error {
	start, err := entity.ParseClock(booking.StartTime)
	if err != nil {
		return err
	}

	date := booking.BookingDate.Format("2006-01-02")
	for _, b := range f.bookings {
		if b.CoachID != booking.CoachID || !b.IsActive() {
			continue
		}
		if b.BookingDate.Format("2006-01-02") != date {
			continue
		}
		if b.OverlapsWindow(start, booking.DurationMinutes) {
			return repository.ErrSlotTaken
		}
	}

	booking.ID = uuid.New()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeCoachBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.CoachBooking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeCoachBookingRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.CoachBooking, error) {
	var bookings []entity.CoachBooking
	for _, b := range f.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeCoachBookingRepo) FindActiveByCoachAndDate(db *gorm.DB, coachID uuid.UUID, date string) ([]entity.CoachBooking, error) {
	var bookings []entity.CoachBooking
	for _, b := range f.bookings {
		if b.CoachID == coachID && b.IsActive() && b.BookingDate.Format("2006-01-02") == date {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeCoachBookingRepo) AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.PaymentSessionRef != nil || booking.IsCancelled() {
		return 0, nil
	}
	booking.PaymentSessionRef = &sessionRef
	return 1, nil
}

func (f *fakeCoachBookingRepo) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.IsPaid() || booking.IsCancelled() {
		return 0, nil
	}
	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.Status = entity.BookingStatusConfirmed
	return 1, nil
}

func (f *fakeCoachBookingRepo) SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error {
	if booking, ok := f.bookings[id]; ok {
		booking.CalendarEventID = &calendarEventID
	}
	return nil
}

func (f *fakeCoachBookingRepo) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.IsCancelled() {
		return 0, nil
	}
	booking.Status = entity.BookingStatusCancelled
	return 1, nil
}

// fakePaymentProvider

type fakePaymentProvider struct {
	created   []gateway.CheckoutSessionParams
	createErr error
	sessions  map[string]*gateway.CheckoutSession
}

func newFakePaymentProvider() *fakePaymentProvider {
	return &fakePaymentProvider{sessions: make(map[string]*gateway.CheckoutSession)}
}

func (f *fakePaymentProvider) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutSessionParams) (*gateway.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, params)
	session := &gateway.CheckoutSession{
		ID:            "cs_test_" + uuid.New().String()[:8],
		URL:           "https://checkout.example.com/pay",
		PaymentStatus: "unpaid",
		AmountTotal:   params.Amount,
		Currency:      params.Currency,
		CustomerEmail: params.CustomerEmail,
		Metadata:      params.Metadata,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakePaymentProvider) VerifyWebhook(payload []byte, signatureHeader string) (*gateway.WebhookEvent, error) {
	return nil, gateway.ErrInvalidSignature
}

func (f *fakePaymentProvider) RetrieveSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, gateway.ErrSessionNotFound
	}
	return session, nil
}

// fakeCalendarClient

type fakeCalendarClient struct {
	calls  int
	nextID string
	err    error
}

func (f *fakeCalendarClient) CreateEvent(ctx context.Context, input gateway.CalendarEventInput) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.nextID == "" {
		return "cal_event_1", nil
	}
	return f.nextID, nil
}

// fakeAuditService

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) Record(db *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) {
	f.actions = append(f.actions, action)
}
