package repository

import (
	"errors"

	"go-sportclub-booking/internal/domain/entity"
	domainRepo "go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type coachBookingRepository struct{}

func NewCoachBookingRepository() domainRepo.CoachBookingRepository {
	return &coachBookingRepository{}
}

// Reserve runs the overlap check and the insert as one transaction. Existing
// active bookings for the coach and date are locked FOR UPDATE so concurrent
// requests for overlapping slots serialize.
func (r *coachBookingRepository) Reserve(db *gorm.DB, booking *entity.CoachBooking) error {
	startMinute, err := entity.ParseClock(booking.StartTime)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing []entity.CoachBooking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("coach_id = ? AND booking_date = ? AND status != ?",
				booking.CoachID, booking.BookingDate, entity.BookingStatusCancelled).
			Find(&existing).Error; err != nil {
			return err
		}

		for i := range existing {
			if existing[i].OverlapsWindow(startMinute, booking.DurationMinutes) {
				return domainRepo.ErrSlotTaken
			}
		}

		return tx.Create(booking).Error
	})
}

func (r *coachBookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.CoachBooking, error) {
	var booking entity.CoachBooking
	err := db.Preload("Coach").Preload("User").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *coachBookingRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.CoachBooking, error) {
	var bookings []entity.CoachBooking
	err := db.Preload("Coach").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *coachBookingRepository) FindActiveByCoachAndDate(db *gorm.DB, coachID uuid.UUID, date string) ([]entity.CoachBooking, error) {
	var bookings []entity.CoachBooking
	err := db.Where("coach_id = ? AND booking_date = ? AND status != ?",
		coachID, date, entity.BookingStatusCancelled).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *coachBookingRepository) AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error) {
	result := db.Model(&entity.CoachBooking{}).
		Where("id = ? AND payment_session_ref IS NULL AND status != ?", id, entity.BookingStatusCancelled).
		Update("payment_session_ref", sessionRef)
	return result.RowsAffected, result.Error
}

func (r *coachBookingRepository) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.CoachBooking{}).
		Where("id = ? AND payment_status != ? AND status != ?",
			id, entity.PaymentStatusPaid, entity.BookingStatusCancelled).
		Updates(map[string]interface{}{
			"payment_status": entity.PaymentStatusPaid,
			"status":         entity.BookingStatusConfirmed,
		})
	return result.RowsAffected, result.Error
}

func (r *coachBookingRepository) SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error {
	return db.Model(&entity.CoachBooking{}).
		Where("id = ? AND calendar_event_id IS NULL", id).
		Update("calendar_event_id", calendarEventID).Error
}

func (r *coachBookingRepository) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.CoachBooking{}).
		Where("id = ? AND status != ?", id, entity.BookingStatusCancelled).
		Update("status", entity.BookingStatusCancelled)
	return result.RowsAffected, result.Error
}
