package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository resolves account ids against the identity tables
type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	ExistsByID(db *gorm.DB, id uuid.UUID) (bool, error)
}
