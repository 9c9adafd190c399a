package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) FindByID(db *gorm.DB, id int64) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := db.Where("doctor_id = ?", doctorID).Order("id ASC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) ExistsByID(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&entity.Clinic{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
