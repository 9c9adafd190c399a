package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType distinguishes physical and virtual appointments
type AppointmentType string

const (
	AppointmentTypeInClinic AppointmentType = "in_clinic"
	AppointmentTypeOnline   AppointmentType = "online"
)

// IsValid checks the type is one of the known values
func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeInClinic || t == AppointmentTypeOnline
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// IsValid checks the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// Booking represents a scheduled appointment linking a patient, doctor and
// optional clinic. ClinicID is nil for online appointments booked against the
// doctor's implicit virtual clinic.
type Booking struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	PatientID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClinicID            *int64          `gorm:"index" json:"clinic_id,omitempty"`
	AppointmentType     AppointmentType `gorm:"type:varchar(20);not null;default:'in_clinic';index" json:"appointment_type"`
	AppointmentDatetime time.Time       `gorm:"not null;index" json:"appointment_datetime"`
	Reason              string          `gorm:"type:text" json:"reason,omitempty"`
	Status              BookingStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	VideoCallLink       string          `gorm:"type:varchar(512)" json:"video_call_link,omitempty"`
	BookingNotes        string          `gorm:"type:text" json:"booking_notes,omitempty"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User    User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic  *Clinic        `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsOnline checks if the appointment is a tele-consultation
func (b *Booking) IsOnline() bool {
	return b.AppointmentType == AppointmentTypeOnline
}
