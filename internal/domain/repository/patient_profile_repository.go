package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	ExistsByUserID(db *gorm.DB, userID uuid.UUID) (bool, error)
}
