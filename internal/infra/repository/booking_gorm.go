package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) GetSlotByID(
	ctx context.Context,
	id uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// --------------------------------------------------
// Booking (create / claim)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Conditional claim: only one concurrent request can flip the
		// flag, the others see zero rows affected.
		res := tx.Model(&models.TimeSlot{}).
			Where("id = ? AND is_available = ?", b.SlotID, true).
			Update("is_available", false)

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Slot").
		Preload("Slot.Teacher").
		First(&b, id).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TimeSlot{}).
			Where("id = ?", b.SlotID).
			Update("is_available", b.Slot.IsAvailable).Error; err != nil {
			return err
		}

		return tx.Omit("Student", "Slot").Save(b).Error
	})
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, b.ID).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForTeacher(
	ctx context.Context,
	teacherID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Slot").
		Preload("Slot.Teacher").
		Joins("JOIN time_slots ON time_slots.id = bookings.slot_id").
		Where("time_slots.teacher_id = ?", teacherID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForStudent(
	ctx context.Context,
	studentID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Slot").
		Preload("Slot.Teacher").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
