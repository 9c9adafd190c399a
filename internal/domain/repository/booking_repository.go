package repository

import (
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id int64) (*entity.Booking, error)
	FindWithFilter(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error)
	CountWithFilter(db *gorm.DB, filter *entity.BookingFilter) (int64, error)
	Update(db *gorm.DB, booking *entity.Booking) error
	UpdateStatus(db *gorm.DB, id int64, status entity.BookingStatus) (int64, error)
	Delete(db *gorm.DB, id int64) (int64, error)
	CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.BookingStatus) (int64, error)
	CountByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error)
}
