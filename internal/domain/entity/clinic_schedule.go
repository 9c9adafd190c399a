package entity

import (
	"time"
)

// DayOfWeek is a weekly recurrence day for clinic schedules
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// IsValid checks the day is one of the seven known values
func (d DayOfWeek) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Default slot parameters applied when a schedule request leaves them unset
const (
	DefaultConsultationDurationMinutes = 30
	MinConsultationDurationMinutes     = 15
	DefaultOnlineMaxParallel           = 3
)

// ClinicSchedule represents a recurring weekly availability window for a clinic.
// OpenTime and CloseTime are zero-padded "HH:MM" strings, so lexicographic
// comparison matches chronological order.
type ClinicSchedule struct {
	ID                          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID                    int64     `gorm:"not null;index;uniqueIndex:uniq_clinic_day_open" json:"clinic_id"`
	DayOfWeek                   DayOfWeek `gorm:"type:varchar(10);not null;index;uniqueIndex:uniq_clinic_day_open" json:"day_of_week"`
	OpenTime                    string    `gorm:"type:time;not null;uniqueIndex:uniq_clinic_day_open" json:"open_time"`
	CloseTime                   string    `gorm:"type:time;not null" json:"close_time"`
	ConsultationDurationMinutes int       `gorm:"not null;default:30" json:"consultation_duration_minutes"`
	MaxParallelAppointments     int       `gorm:"not null;default:1" json:"max_parallel_appointments"`
	IsActive                    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt                   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (ClinicSchedule) TableName() string {
	return "clinic_schedules"
}

// Overlaps applies the half-open interval test: [open, close) windows touch
// without conflict when one closes exactly as the other opens.
func (s *ClinicSchedule) Overlaps(openTime, closeTime string) bool {
	return openTime < s.CloseTime && s.OpenTime < closeTime
}
