package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.ClinicSchedule) error
	FindByID(db *gorm.DB, id int64) (*entity.ClinicSchedule, error)
	FindByClinicID(db *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error)
	FindActiveByClinicID(db *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error)
	FindByClinicIDAndDay(db *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error)
	FindActiveByClinicIDAndDay(db *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error)
	Update(db *gorm.DB, schedule *entity.ClinicSchedule) error
	Delete(db *gorm.DB, id int64) (int64, error)
	DeleteByClinicID(db *gorm.DB, clinicID int64) (int64, error)
	CountByClinicID(db *gorm.DB, clinicID int64) (int64, error)
	CountActiveByClinicID(db *gorm.DB, clinicID int64) (int64, error)
}
