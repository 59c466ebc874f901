package repository

import (
	"errors"

	"go-sportclub-booking/internal/domain/entity"
	domainRepo "go-sportclub-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventBookingRepository struct{}

func NewEventBookingRepository() domainRepo.EventBookingRepository {
	return &eventBookingRepository{}
}

// Reserve runs the capacity check, the duplicate-registration check and the
// insert as one transaction. The event row is locked FOR UPDATE so two
// requests racing for the last spot serialize on the row.
func (r *eventBookingRepository) Reserve(db *gorm.DB, booking *entity.EventBooking) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var event entity.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", booking.EventID).
			First(&event).Error; err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&entity.EventBooking{}).
			Where("event_id = ? AND status != ?", booking.EventID, entity.BookingStatusCancelled).
			Count(&active).Error; err != nil {
			return err
		}
		if event.AvailableSpots(active) <= 0 {
			return domainRepo.ErrEventFull
		}

		var duplicates int64
		if err := tx.Model(&entity.EventBooking{}).
			Where("event_id = ? AND user_id = ? AND status != ?",
				booking.EventID, booking.UserID, entity.BookingStatusCancelled).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return domainRepo.ErrDuplicateBooking
		}

		return tx.Create(booking).Error
	})
}

func (r *eventBookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.EventBooking, error) {
	var booking entity.EventBooking
	err := db.Preload("Event").Preload("User").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *eventBookingRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.EventBooking, error) {
	var bookings []entity.EventBooking
	err := db.Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *eventBookingRepository) FindByEventID(db *gorm.DB, eventID uuid.UUID) ([]entity.EventBooking, error) {
	var bookings []entity.EventBooking
	err := db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *eventBookingRepository) CountActive(db *gorm.DB, eventID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.EventBooking{}).
		Where("event_id = ? AND status != ?", eventID, entity.BookingStatusCancelled).
		Count(&count).Error
	return count, err
}

// AttachSession sets the session reference ONLY while it is still null.
// Returns affected rows: 1 = attached, 0 = a session already exists.
func (r *eventBookingRepository) AttachSession(db *gorm.DB, id uuid.UUID, sessionRef string) (int64, error) {
	result := db.Model(&entity.EventBooking{}).
		Where("id = ? AND payment_session_ref IS NULL AND status != ?", id, entity.BookingStatusCancelled).
		Update("payment_session_ref", sessionRef)
	return result.RowsAffected, result.Error
}

// MarkPaid applies the reconciliation transition as a single conditional
// update, so a duplicate webhook delivery racing a first one cannot
// double-apply. Returns affected rows: 0 = already paid or cancelled.
func (r *eventBookingRepository) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.EventBooking{}).
		Where("id = ? AND payment_status != ? AND status != ?",
			id, entity.PaymentStatusPaid, entity.BookingStatusCancelled).
		Updates(map[string]interface{}{
			"payment_status": entity.PaymentStatusPaid,
			"status":         entity.BookingStatusConfirmed,
		})
	return result.RowsAffected, result.Error
}

func (r *eventBookingRepository) SetCalendarEventID(db *gorm.DB, id uuid.UUID, calendarEventID string) error {
	return db.Model(&entity.EventBooking{}).
		Where("id = ? AND calendar_event_id IS NULL", id).
		Update("calendar_event_id", calendarEventID).Error
}

// Cancel atomically cancels a booking ONLY if it's not already cancelled.
// Returns affected rows: 1 = success, 0 = already cancelled (prevents double-cancel race).
func (r *eventBookingRepository) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.EventBooking{}).
		Where("id = ? AND status != ?", id, entity.BookingStatusCancelled).
		Update("status", entity.BookingStatusCancelled)
	return result.RowsAffected, result.Error
}
