package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicScheduleRepository struct{}

func NewClinicScheduleRepository() domainRepo.ClinicScheduleRepository {
	return &clinicScheduleRepository{}
}

func (r *clinicScheduleRepository) Create(db *gorm.DB, schedule *entity.ClinicSchedule) error {
	return db.Create(schedule).Error
}

func (r *clinicScheduleRepository) FindByID(db *gorm.DB, id int64) (*entity.ClinicSchedule, error) {
	var schedule entity.ClinicSchedule
	err := db.Preload("Clinic").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *clinicScheduleRepository) FindByClinicID(db *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error) {
	var schedules []entity.ClinicSchedule
	err := db.Preload("Clinic").
		Where("clinic_id = ?", clinicID).
		Order("day_of_week ASC, open_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *clinicScheduleRepository) FindActiveByClinicID(db *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error) {
	var schedules []entity.ClinicSchedule
	err := db.Preload("Clinic").
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("day_of_week ASC, open_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *clinicScheduleRepository) FindByClinicIDAndDay(db *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error) {
	var schedules []entity.ClinicSchedule
	err := db.Preload("Clinic").
		Where("clinic_id = ? AND day_of_week = ?", clinicID, day).
		Order("open_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *clinicScheduleRepository) FindActiveByClinicIDAndDay(db *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error) {
	var schedules []entity.ClinicSchedule
	err := db.Where("clinic_id = ? AND day_of_week = ? AND is_active = ?", clinicID, day, true).
		Order("open_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *clinicScheduleRepository) Update(db *gorm.DB, schedule *entity.ClinicSchedule) error {
	return db.Omit("Clinic").Save(schedule).Error
}

func (r *clinicScheduleRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ClinicSchedule{})
	return affected.RowsAffected, affected.Error
}

func (r *clinicScheduleRepository) DeleteByClinicID(db *gorm.DB, clinicID int64) (int64, error) {
	affected := db.Where("clinic_id = ?", clinicID).Delete(&entity.ClinicSchedule{})
	return affected.RowsAffected, affected.Error
}

func (r *clinicScheduleRepository) CountByClinicID(db *gorm.DB, clinicID int64) (int64, error) {
	var count int64
	err := db.Model(&entity.ClinicSchedule{}).Where("clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}

func (r *clinicScheduleRepository) CountActiveByClinicID(db *gorm.DB, clinicID int64) (int64, error) {
	var count int64
	err := db.Model(&entity.ClinicSchedule{}).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Count(&count).Error
	return count, err
}
