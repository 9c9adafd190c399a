package service

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
)

var (
	ErrClinicOnlineOnly   = errors.New("this clinic only accepts online consultations")
	ErrClinicInClinicOnly = errors.New("this clinic only accepts in-clinic consultations")
	ErrClinicRequired     = errors.New("clinic id is required for in-clinic appointments")
)

// BookingConflictValidator enforces that a booking's appointment type is
// compatible with its clinic's consultation mode.
type BookingConflictValidator struct{}

func NewBookingConflictValidator() *BookingConflictValidator {
	return &BookingConflictValidator{}
}

// ValidateModeConsistency rejects in-clinic bookings against online-only
// clinics and vice versa. An online booking with no clinic is allowed: the
// doctor's virtual clinic is implicit.
func (v *BookingConflictValidator) ValidateModeConsistency(appointmentType entity.AppointmentType, clinic *entity.Clinic) error {
	if clinic == nil {
		if appointmentType == entity.AppointmentTypeInClinic {
			return ErrClinicRequired
		}
		return nil
	}

	if appointmentType == entity.AppointmentTypeInClinic && clinic.ConsultationMode == entity.ConsultationModeOnline {
		return ErrClinicOnlineOnly
	}
	if appointmentType == entity.AppointmentTypeOnline && clinic.ConsultationMode == entity.ConsultationModeInClinic {
		return ErrClinicInClinicOnly
	}

	return nil
}
