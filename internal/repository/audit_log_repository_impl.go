package repository

import (
	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindByAction(db *gorm.DB, action string, limit, offset int) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	query := db.Where("action = ?", action).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
