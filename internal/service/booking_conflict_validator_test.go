package service

import (
	"errors"
	"testing"

	"clinic-booking-service/internal/domain/entity"
)

func TestModeConsistency_InClinicAtPhysicalClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	clinic := &entity.Clinic{ID: 1, ConsultationMode: entity.ConsultationModeInClinic}
	if err := v.ValidateModeConsistency(entity.AppointmentTypeInClinic, clinic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModeConsistency_OnlineAtOnlineClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	clinic := &entity.Clinic{ID: 1, ConsultationMode: entity.ConsultationModeOnline}
	if err := v.ValidateModeConsistency(entity.AppointmentTypeOnline, clinic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModeConsistency_InClinicAtOnlineClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	clinic := &entity.Clinic{ID: 1, ConsultationMode: entity.ConsultationModeOnline}
	if err := v.ValidateModeConsistency(entity.AppointmentTypeInClinic, clinic); !errors.Is(err, ErrClinicOnlineOnly) {
		t.Fatalf("got %v, want ErrClinicOnlineOnly", err)
	}
}

func TestModeConsistency_OnlineAtPhysicalClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	clinic := &entity.Clinic{ID: 1, ConsultationMode: entity.ConsultationModeInClinic}
	if err := v.ValidateModeConsistency(entity.AppointmentTypeOnline, clinic); !errors.Is(err, ErrClinicInClinicOnly) {
		t.Fatalf("got %v, want ErrClinicInClinicOnly", err)
	}
}

func TestModeConsistency_InClinicWithoutClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	if err := v.ValidateModeConsistency(entity.AppointmentTypeInClinic, nil); !errors.Is(err, ErrClinicRequired) {
		t.Fatalf("got %v, want ErrClinicRequired", err)
	}
}

func TestModeConsistency_OnlineWithoutClinic(t *testing.T) {
	v := NewBookingConflictValidator()
	if err := v.ValidateModeConsistency(entity.AppointmentTypeOnline, nil); err != nil {
		t.Fatalf("online booking without a clinic must be allowed: %v", err)
	}
}
