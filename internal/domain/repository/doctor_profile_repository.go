package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	ExistsByUserID(db *gorm.DB, userID uuid.UUID) (bool, error)
}
