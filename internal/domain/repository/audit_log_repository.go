package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByAction(db *gorm.DB, action string, limit, offset int) ([]entity.AuditLog, error)
}
