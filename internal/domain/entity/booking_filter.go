package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingFilter is a domain-level filter for querying bookings.
// Used by repository layer to avoid coupling with delivery DTOs.
// Zero-valued fields are ignored; pointer fields filter when non-nil.
type BookingFilter struct {
	UserID          *uuid.UUID
	PatientID       *uuid.UUID
	DoctorID        *uuid.UUID
	ClinicID        *int64
	Status          BookingStatus
	AppointmentType AppointmentType
	StartAt         *time.Time // appointment_datetime >= StartAt
	EndAt           *time.Time // appointment_datetime <= EndAt
	Limit           int
	Offset          int
}
