package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
	"go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func seedCoach(repo *fakeCoachRepo, hourlyRate decimal.Decimal) *entity.Coach {
	coach := &entity.Coach{
		ID:         uuid.New(),
		FullName:   "Alex Morgan",
		Email:      "alex@club.test",
		HourlyRate: hourlyRate,
		Status:     entity.SubjectStatusActive,
	}
	repo.coaches[coach.ID] = coach
	return coach
}

func newCoachBookingFixture() (CoachBookingUsecase, *fakeCoachRepo, *fakeCoachBookingRepo) {
	coachRepo := newFakeCoachRepo()
	bookingRepo := newFakeCoachBookingRepo()
	uc := NewCoachBookingUsecase(testDB(), newTestLogger(), bookingRepo, coachRepo, &fakeAuditService{})
	return uc, coachRepo, bookingRepo
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestCreateCoachBooking(t *testing.T) {
	uc, coachRepo, bookingRepo := newCoachBookingFixture()
	coach := seedCoach(coachRepo, decimal.NewFromInt(80))

	booking, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    futureDate(),
		Time:    "09:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if booking.DurationMinutes != defaultSessionMinutes {
		t.Errorf("duration = %d, want default %d", booking.DurationMinutes, defaultSessionMinutes)
	}
	if booking.Status != string(entity.BookingStatusPending) {
		t.Errorf("status = %s, want pending", booking.Status)
	}

	stored, _ := bookingRepo.FindByID(testDB(), booking.ID)
	if stored == nil {
		t.Fatal("booking was not persisted")
	}
}

func TestCreateCoachBookingOverlap(t *testing.T) {
	uc, coachRepo, _ := newCoachBookingFixture()
	coach := seedCoach(coachRepo, decimal.NewFromInt(80))
	date := futureDate()

	if _, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    date,
		Time:    "09:00",
	}); err != nil {
		t.Fatal(err)
	}

	// 09:30 overlaps the 09:00-10:00 session
	_, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    date,
		Time:    "09:30",
	})
	if !errors.Is(err, repository.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}

	// 10:00 touches the end of the previous slot: allowed
	if _, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    date,
		Time:    "10:00",
	}); err != nil {
		t.Errorf("back-to-back slot rejected: %v", err)
	}
}

func TestCreateCoachBookingCancelledSlotReopens(t *testing.T) {
	uc, coachRepo, _ := newCoachBookingFixture()
	coach := seedCoach(coachRepo, decimal.NewFromInt(80))
	date := futureDate()
	userID := uuid.New()

	booking, err := uc.CreateBooking(context.Background(), userID, &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    date,
		Time:    "09:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.CancelBooking(context.Background(), userID, booking.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: coach.ID,
		Date:    date,
		Time:    "09:00",
	}); err != nil {
		t.Errorf("expected freed slot to be bookable, got %v", err)
	}
}

func TestCreateCoachBookingSameSlotOtherCoach(t *testing.T) {
	uc, coachRepo, _ := newCoachBookingFixture()
	first := seedCoach(coachRepo, decimal.NewFromInt(80))
	second := seedCoach(coachRepo, decimal.NewFromInt(60))
	second.Email = "sam@club.test"
	date := futureDate()

	if _, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: first.ID,
		Date:    date,
		Time:    "09:00",
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.CreateBooking(context.Background(), uuid.New(), &dto.CreateCoachBookingRequest{
		CoachID: second.ID,
		Date:    date,
		Time:    "09:00",
	}); err != nil {
		t.Errorf("overlap must be scoped per coach, got %v", err)
	}
}

func TestCreateCoachBookingRejections(t *testing.T) {
	uc, coachRepo, _ := newCoachBookingFixture()
	coach := seedCoach(coachRepo, decimal.NewFromInt(80))
	inactive := seedCoach(coachRepo, decimal.NewFromInt(80))
	inactive.Email = "inactive@club.test"
	inactive.Status = entity.SubjectStatusInactive

	tests := []struct {
		name    string
		req     dto.CreateCoachBookingRequest
		wantErr error
	}{
		{"unknown coach", dto.CreateCoachBookingRequest{CoachID: uuid.New(), Date: futureDate(), Time: "09:00"}, ErrCoachNotFound},
		{"inactive coach", dto.CreateCoachBookingRequest{CoachID: inactive.ID, Date: futureDate(), Time: "09:00"}, ErrCoachNotBookable},
		{"bad date", dto.CreateCoachBookingRequest{CoachID: coach.ID, Date: "15/09/2026", Time: "09:00"}, ErrInvalidDateFormat},
		{"bad time", dto.CreateCoachBookingRequest{CoachID: coach.ID, Date: futureDate(), Time: "9am"}, ErrInvalidTimeFormat},
		{"past slot", dto.CreateCoachBookingRequest{CoachID: coach.ID, Date: "2020-01-01", Time: "09:00"}, ErrSlotInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateBooking(context.Background(), uuid.New(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBooking() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
