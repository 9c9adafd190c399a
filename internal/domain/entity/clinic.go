package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsultationMode is the operating mode of a clinic
type ConsultationMode string

const (
	ConsultationModeInClinic ConsultationMode = "IN_CLINIC"
	ConsultationModeOnline   ConsultationMode = "ONLINE"
)

// AllowsOverlap reports whether schedules of a clinic in this mode may
// overlap in time. Physical presence is exclusive; virtual presence is not.
func (m ConsultationMode) AllowsOverlap() bool {
	return m == ConsultationModeOnline
}

// IsValid checks the mode is one of the known values
func (m ConsultationMode) IsValid() bool {
	return m == ConsultationModeInClinic || m == ConsultationModeOnline
}

// Clinic represents a doctor's practice location or virtual consultation channel
type Clinic struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClinicName       string           `gorm:"type:varchar(255);not null" json:"clinic_name"`
	ConsultationMode ConsultationMode `gorm:"type:varchar(20);not null;default:'IN_CLINIC';index" json:"consultation_mode"`
	AddressLine1     string           `gorm:"type:varchar(255)" json:"address_line1,omitempty"`
	AddressLine2     string           `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City             string           `gorm:"type:varchar(100)" json:"city,omitempty"`
	Province         string           `gorm:"type:varchar(100)" json:"province,omitempty"`
	ZipCode          string           `gorm:"type:varchar(20)" json:"zip_code,omitempty"`
	Landmark         string           `gorm:"type:varchar(255)" json:"landmark,omitempty"`
	Description      string           `gorm:"type:text" json:"description,omitempty"`
	Email            string           `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhoneNumber      string           `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	ConsultationFee  decimal.Decimal  `gorm:"type:decimal(10,2)" json:"consultation_fee"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor    DoctorProfile    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Schedules []ClinicSchedule `gorm:"foreignKey:ClinicID" json:"schedules,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
