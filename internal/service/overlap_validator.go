package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = errors.New("open time must be before close time")
)

// ScheduleConflictError reports an overlap between a candidate window and an
// existing active schedule. ClinicName is set for cross-clinic conflicts.
type ScheduleConflictError struct {
	ScheduleID int64
	ClinicID   int64
	ClinicName string
	DayOfWeek  entity.DayOfWeek
	OpenTime   string
	CloseTime  string
}

func (e *ScheduleConflictError) Error() string {
	if e.ClinicName != "" {
		return fmt.Sprintf("schedule overlaps with existing schedule at clinic '%s' on %s (%s - %s)",
			e.ClinicName, e.DayOfWeek, e.OpenTime, e.CloseTime)
	}
	return fmt.Sprintf("schedule overlaps with existing schedule (id: %d) on %s (%s - %s)",
		e.ScheduleID, e.DayOfWeek, e.OpenTime, e.CloseTime)
}

// OverlapValidator decides whether a candidate availability window may be
// persisted without violating the no-double-presence rules. Clinics in a mode
// that allows overlap (online consultation) are exempt from every check.
type OverlapValidator struct {
	log          *logrus.Logger
	clinicRepo   repository.ClinicRepository
	scheduleRepo repository.ClinicScheduleRepository
}

func NewOverlapValidator(
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	scheduleRepo repository.ClinicScheduleRepository,
) *OverlapValidator {
	return &OverlapValidator{
		log:          log,
		clinicRepo:   clinicRepo,
		scheduleRepo: scheduleRepo,
	}
}

// ValidateTimeRange checks both times are canonical zero-padded HH:MM and the
// window is non-empty. Overlap checks compare times lexicographically, so a
// non-padded value like "9:30" must be rejected here: it parses fine but sorts
// after every "1x:xx" string and would slip past the interval test.
// No business-hours restriction: 24/7 operation allowed.
func (v *OverlapValidator) ValidateTimeRange(openTime, closeTime string) error {
	if err := validateClockTime(openTime); err != nil {
		return err
	}
	if err := validateClockTime(closeTime); err != nil {
		return err
	}
	if openTime >= closeTime {
		return ErrInvalidTimeRange
	}
	return nil
}

func validateClockTime(value string) error {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if t.Format("15:04") != value {
		return ErrInvalidTimeFormat
	}
	return nil
}

// ValidateNoIntraClinicOverlap checks the candidate window against the
// clinic's other active schedules on the same day. excludeScheduleID skips
// the record being edited during updates; pass 0 on create.
func (v *OverlapValidator) ValidateNoIntraClinicOverlap(db *gorm.DB, clinic *entity.Clinic, day entity.DayOfWeek, openTime, closeTime string, excludeScheduleID int64) error {
	if clinic.ConsultationMode.AllowsOverlap() {
		return nil
	}

	schedules, err := v.scheduleRepo.FindActiveByClinicIDAndDay(db, clinic.ID, day)
	if err != nil {
		v.log.Warnf("Failed to load schedules for clinic %d: %+v", clinic.ID, err)
		return err
	}

	for _, existing := range schedules {
		if excludeScheduleID != 0 && existing.ID == excludeScheduleID {
			continue
		}
		if existing.Overlaps(openTime, closeTime) {
			return &ScheduleConflictError{
				ScheduleID: existing.ID,
				ClinicID:   clinic.ID,
				DayOfWeek:  day,
				OpenTime:   existing.OpenTime,
				CloseTime:  existing.CloseTime,
			}
		}
	}

	return nil
}

// ValidateNoCrossClinicOverlap checks the candidate window against active
// schedules of the doctor's other physical clinics on the same day. A doctor
// cannot be physically present at two locations at once; online clinics are
// exempt on both sides.
func (v *OverlapValidator) ValidateNoCrossClinicOverlap(db *gorm.DB, clinic *entity.Clinic, day entity.DayOfWeek, openTime, closeTime string) error {
	if clinic.ConsultationMode.AllowsOverlap() {
		return nil
	}

	clinics, err := v.clinicRepo.FindByDoctorID(db, clinic.DoctorID)
	if err != nil {
		v.log.Warnf("Failed to load clinics for doctor %s: %+v", clinic.DoctorID, err)
		return err
	}

	for _, other := range clinics {
		if other.ID == clinic.ID || other.ConsultationMode.AllowsOverlap() {
			continue
		}

		schedules, err := v.scheduleRepo.FindActiveByClinicIDAndDay(db, other.ID, day)
		if err != nil {
			v.log.Warnf("Failed to load schedules for clinic %d: %+v", other.ID, err)
			return err
		}

		for _, existing := range schedules {
			if existing.Overlaps(openTime, closeTime) {
				return &ScheduleConflictError{
					ScheduleID: existing.ID,
					ClinicID:   other.ID,
					ClinicName: other.ClinicName,
					DayOfWeek:  day,
					OpenTime:   existing.OpenTime,
					CloseTime:  existing.CloseTime,
				}
			}
		}
	}

	return nil
}
