package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	UserID              uuid.UUID `json:"user_id" validate:"required"`
	PatientID           uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID            uuid.UUID `json:"doctor_id" validate:"required"`
	ClinicID            *int64    `json:"clinic_id" validate:"omitempty,min=1"`
	AppointmentType     string    `json:"appointment_type" validate:"omitempty,oneof=in_clinic online"`
	AppointmentDatetime string    `json:"appointment_datetime" validate:"required"` // Format: YYYY-MM-DD HH:MM:SS
	Reason              string    `json:"reason" validate:"omitempty"`
	Status              string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	VideoCallLink       string    `json:"video_call_link" validate:"omitempty,url"`
	BookingNotes        string    `json:"booking_notes" validate:"omitempty"`
}

// UpdateBookingRequest carries partial-update semantics: absent fields leave
// the stored booking untouched.
type UpdateBookingRequest struct {
	UserID              *uuid.UUID `json:"user_id" validate:"omitempty"`
	PatientID           *uuid.UUID `json:"patient_id" validate:"omitempty"`
	DoctorID            *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	ClinicID            *int64     `json:"clinic_id" validate:"omitempty,min=1"`
	AppointmentType     string     `json:"appointment_type" validate:"omitempty,oneof=in_clinic online"`
	AppointmentDatetime string     `json:"appointment_datetime" validate:"omitempty"` // Format: YYYY-MM-DD HH:MM:SS
	Reason              *string    `json:"reason" validate:"omitempty"`
	Status              string     `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	VideoCallLink       *string    `json:"video_call_link" validate:"omitempty"`
	BookingNotes        *string    `json:"booking_notes" validate:"omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed no_show"`
}

// Response DTOs

type BookingResponse struct {
	ID                  int64           `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	PatientID           uuid.UUID       `json:"patient_id"`
	DoctorID            uuid.UUID       `json:"doctor_id"`
	ClinicID            *int64          `json:"clinic_id,omitempty"`
	Clinic              *ClinicResponse `json:"clinic,omitempty"`
	AppointmentType     string          `json:"appointment_type"`
	AppointmentDatetime string          `json:"appointment_datetime"`
	Reason              string          `json:"reason,omitempty"`
	Status              string          `json:"status"`
	VideoCallLink       string          `json:"video_call_link,omitempty"`
	BookingNotes        string          `json:"booking_notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}

type BookingCountResponse struct {
	Count int64 `json:"count"`
}

type ClinicResponse struct {
	ID               int64  `json:"id"`
	ClinicName       string `json:"clinic_name"`
	ConsultationMode string `json:"consultation_mode"`
	AddressLine1     string `json:"address_line1,omitempty"`
	City             string `json:"city,omitempty"`
	Province         string `json:"province,omitempty"`
}
