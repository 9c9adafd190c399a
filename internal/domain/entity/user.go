package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the account role carried in JWT claims
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleDoctor  UserRole = "doctor"
	UserRolePatient UserRole = "patient"
)

// User represents the centralized account table owned by the identity service
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'patient';index" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
