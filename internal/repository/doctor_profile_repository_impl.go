package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) ExistsByUserID(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorProfile{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
