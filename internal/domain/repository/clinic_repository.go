package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClinicRepository is the read-side clinic store consumed by the scheduling
// core. Clinic records are owned by doctor-facing profile management.
type ClinicRepository interface {
	FindByID(db *gorm.DB, id int64) (*entity.Clinic, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Clinic, error)
	ExistsByID(db *gorm.DB, id int64) (bool, error)
}
