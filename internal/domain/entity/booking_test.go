package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMarkPaidConfirmsBooking(t *testing.T) {
	state := BookingState{
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
	}

	if err := state.MarkPaid(); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if state.Status != BookingStatusConfirmed {
		t.Errorf("expected status confirmed, got %s", state.Status)
	}
	if state.PaymentStatus != PaymentStatusPaid {
		t.Errorf("expected payment status paid, got %s", state.PaymentStatus)
	}
}

func TestMarkPaidTwiceReturnsAlreadyPaid(t *testing.T) {
	state := BookingState{
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
	}

	if err := state.MarkPaid(); err != nil {
		t.Fatalf("first MarkPaid returned error: %v", err)
	}
	if err := state.MarkPaid(); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
	if state.Status != BookingStatusConfirmed {
		t.Errorf("duplicate MarkPaid changed status to %s", state.Status)
	}
}

func TestMarkPaidOnCancelledBooking(t *testing.T) {
	state := BookingState{
		Status:        BookingStatusCancelled,
		PaymentStatus: PaymentStatusPending,
	}

	if err := state.MarkPaid(); !errors.Is(err, ErrCancelledTerminal) {
		t.Errorf("expected ErrCancelledTerminal, got %v", err)
	}
	if state.Status != BookingStatusCancelled {
		t.Errorf("cancelled booking was resurrected to %s", state.Status)
	}
	if state.PaymentStatus == PaymentStatusPaid {
		t.Error("cancelled booking must not become paid")
	}
}

func TestCancelTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		wantErr error
	}{
		{"pending can cancel", BookingStatusPending, nil},
		{"confirmed can cancel", BookingStatusConfirmed, nil},
		{"cancelled cannot cancel again", BookingStatusCancelled, ErrAlreadyCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := BookingState{Status: tt.status}
			err := state.Cancel()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Cancel() = %v, want %v", err, tt.wantErr)
			}
			if state.Status != BookingStatusCancelled {
				t.Errorf("status after Cancel = %s", state.Status)
			}
		})
	}
}

func TestAttachSessionIsImmutable(t *testing.T) {
	state := BookingState{Status: BookingStatusPending}

	if err := state.AttachSession("cs_test_123"); err != nil {
		t.Fatalf("AttachSession returned error: %v", err)
	}
	if err := state.AttachSession("cs_test_456"); !errors.Is(err, ErrSessionAttached) {
		t.Errorf("expected ErrSessionAttached, got %v", err)
	}
	if *state.PaymentSessionRef != "cs_test_123" {
		t.Errorf("session ref was overwritten to %s", *state.PaymentSessionRef)
	}
}

func TestAttachSessionOnCancelledBooking(t *testing.T) {
	state := BookingState{Status: BookingStatusCancelled}

	if err := state.AttachSession("cs_test_123"); !errors.Is(err, ErrCancelledTerminal) {
		t.Errorf("expected ErrCancelledTerminal, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestOverlapsWindow(t *testing.T) {
	// Existing booking occupies 09:00-10:00
	existing := CoachBooking{
		StartTime:       "09:00",
		DurationMinutes: 60,
	}

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"identical slot", "09:00", 60, true},
		{"starts inside", "09:30", 60, true},
		{"ends inside", "08:30", 60, true},
		{"contains existing", "08:00", 180, true},
		{"contained by existing", "09:15", 30, true},
		{"touches end", "10:00", 60, false},
		{"touches start", "08:00", 60, false},
		{"well before", "07:00", 30, false},
		{"well after", "11:00", 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseClock(tt.start)
			if err != nil {
				t.Fatal(err)
			}
			if got := existing.OverlapsWindow(start, tt.duration); got != tt.want {
				t.Errorf("OverlapsWindow(%s, %d) = %v, want %v", tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestCoachBookingStartsAt(t *testing.T) {
	booking := CoachBooking{
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "14:30",
	}

	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	if got := booking.StartsAt(); !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}
}

func TestEventIsFree(t *testing.T) {
	free := Event{Price: decimal.Zero}
	if !free.IsFree() {
		t.Error("zero price event should be free")
	}

	paid := Event{Price: decimal.NewFromFloat(25.50)}
	if paid.IsFree() {
		t.Error("priced event should not be free")
	}
}

func TestCoachSessionPrice(t *testing.T) {
	coach := Coach{HourlyRate: decimal.NewFromInt(80)}

	if got := coach.SessionPrice(60); !got.Equal(decimal.NewFromInt(80)) {
		t.Errorf("SessionPrice(60) = %s, want 80", got)
	}
	if got := coach.SessionPrice(90); !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("SessionPrice(90) = %s, want 120", got)
	}
	if got := coach.SessionPrice(30); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("SessionPrice(30) = %s, want 40", got)
	}
}

func TestEventAvailableSpots(t *testing.T) {
	event := Event{MaxPlayers: 10}

	if got := event.AvailableSpots(7); got != 3 {
		t.Errorf("AvailableSpots(7) = %d, want 3", got)
	}
	if got := event.AvailableSpots(10); got != 0 {
		t.Errorf("AvailableSpots(10) = %d, want 0", got)
	}
}
