package repository

import (
	"errors"
	"time"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id int64) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Clinic").Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func applyBookingFilter(db *gorm.DB, filter *entity.BookingFilter) *gorm.DB {
	query := db.Model(&entity.Booking{})
	if filter == nil {
		return query
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.ClinicID != nil {
		query = query.Where("clinic_id = ?", *filter.ClinicID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AppointmentType != "" {
		query = query.Where("appointment_type = ?", filter.AppointmentType)
	}
	if filter.StartAt != nil {
		query = query.Where("appointment_datetime >= ?", *filter.StartAt)
	}
	if filter.EndAt != nil {
		query = query.Where("appointment_datetime <= ?", *filter.EndAt)
	}
	return query
}

func (r *bookingRepository) FindWithFilter(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := applyBookingFilter(db, filter)
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := query.Preload("Clinic").
		Order("appointment_datetime DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountWithFilter(db *gorm.DB, filter *entity.BookingFilter) (int64, error) {
	var count int64
	err := applyBookingFilter(db, filter).Count(&count).Error
	return count, err
}

func (r *bookingRepository) Update(db *gorm.DB, booking *entity.Booking) error {
	return db.Omit("User", "Patient", "Doctor", "Clinic").Save(booking).Error
}

func (r *bookingRepository) UpdateStatus(db *gorm.DB, id int64, status entity.BookingStatus) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Booking{})
	return affected.RowsAffected, affected.Error
}

func (r *bookingRepository) CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.BookingStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).
		Where("doctor_id = ? AND appointment_datetime BETWEEN ? AND ?", doctorID, start, end).
		Count(&count).Error
	return count, err
}
