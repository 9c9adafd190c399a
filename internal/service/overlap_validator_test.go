package service

import (
	"errors"
	"io"
	"testing"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// -- Mock repositories --

type mockClinicRepo struct {
	clinics map[int64]*entity.Clinic
}

func newMockClinicRepo() *mockClinicRepo {
	return &mockClinicRepo{clinics: make(map[int64]*entity.Clinic)}
}

func (m *mockClinicRepo) FindByID(_ *gorm.DB, id int64) (*entity.Clinic, error) {
	return m.clinics[id], nil
}

func (m *mockClinicRepo) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.Clinic, error) {
	var result []entity.Clinic
	for _, c := range m.clinics {
		if c.DoctorID == doctorID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClinicRepo) ExistsByID(_ *gorm.DB, id int64) (bool, error) {
	_, ok := m.clinics[id]
	return ok, nil
}

type mockScheduleRepo struct {
	schedules map[int64]*entity.ClinicSchedule
	nextID    int64
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[int64]*entity.ClinicSchedule)}
}

func (m *mockScheduleRepo) Create(_ *gorm.DB, s *entity.ClinicSchedule) error {
	m.nextID++
	s.ID = m.nextID
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepo) FindByID(_ *gorm.DB, id int64) (*entity.ClinicSchedule, error) {
	return m.schedules[id], nil
}

func (m *mockScheduleRepo) FindByClinicID(_ *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error) {
	var result []entity.ClinicSchedule
	for _, s := range m.schedules {
		if s.ClinicID == clinicID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) FindActiveByClinicID(_ *gorm.DB, clinicID int64) ([]entity.ClinicSchedule, error) {
	var result []entity.ClinicSchedule
	for _, s := range m.schedules {
		if s.ClinicID == clinicID && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) FindByClinicIDAndDay(_ *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error) {
	var result []entity.ClinicSchedule
	for _, s := range m.schedules {
		if s.ClinicID == clinicID && s.DayOfWeek == day {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) FindActiveByClinicIDAndDay(_ *gorm.DB, clinicID int64, day entity.DayOfWeek) ([]entity.ClinicSchedule, error) {
	var result []entity.ClinicSchedule
	for _, s := range m.schedules {
		if s.ClinicID == clinicID && s.DayOfWeek == day && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ *gorm.DB, s *entity.ClinicSchedule) error {
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepo) Delete(_ *gorm.DB, id int64) (int64, error) {
	if _, ok := m.schedules[id]; !ok {
		return 0, nil
	}
	delete(m.schedules, id)
	return 1, nil
}

func (m *mockScheduleRepo) DeleteByClinicID(_ *gorm.DB, clinicID int64) (int64, error) {
	var deleted int64
	for id, s := range m.schedules {
		if s.ClinicID == clinicID {
			delete(m.schedules, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockScheduleRepo) CountByClinicID(_ *gorm.DB, clinicID int64) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.ClinicID == clinicID {
			count++
		}
	}
	return count, nil
}

func (m *mockScheduleRepo) CountActiveByClinicID(_ *gorm.DB, clinicID int64) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.ClinicID == clinicID && s.IsActive {
			count++
		}
	}
	return count, nil
}

// -- Helpers --

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestValidator() (*OverlapValidator, *mockClinicRepo, *mockScheduleRepo) {
	clinicRepo := newMockClinicRepo()
	scheduleRepo := newMockScheduleRepo()
	return NewOverlapValidator(testLogger(), clinicRepo, scheduleRepo), clinicRepo, scheduleRepo
}

func physicalClinic(id int64, doctorID uuid.UUID, name string) *entity.Clinic {
	return &entity.Clinic{
		ID:               id,
		DoctorID:         doctorID,
		ClinicName:       name,
		ConsultationMode: entity.ConsultationModeInClinic,
	}
}

func onlineClinic(id int64, doctorID uuid.UUID, name string) *entity.Clinic {
	return &entity.Clinic{
		ID:               id,
		DoctorID:         doctorID,
		ClinicName:       name,
		ConsultationMode: entity.ConsultationModeOnline,
	}
}

func seedSchedule(repo *mockScheduleRepo, clinicID int64, day entity.DayOfWeek, open, close string, active bool) *entity.ClinicSchedule {
	s := &entity.ClinicSchedule{
		ClinicID:  clinicID,
		DayOfWeek: day,
		OpenTime:  open,
		CloseTime: close,
		IsActive:  active,
	}
	repo.Create(nil, s)
	return s
}

// -- ValidateTimeRange --

func TestValidateTimeRange(t *testing.T) {
	v, _, _ := newTestValidator()
	if err := v.ValidateTimeRange("09:00", "17:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTimeRange_MidnightSpan(t *testing.T) {
	v, _, _ := newTestValidator()
	if err := v.ValidateTimeRange("00:00", "23:59"); err != nil {
		t.Fatalf("unexpected error for full-day window: %v", err)
	}
}

func TestValidateTimeRange_BadFormat(t *testing.T) {
	v, _, _ := newTestValidator()
	for _, tc := range [][2]string{
		{"9:00", "17:00"},
		{"09:00", "5pm"},
		{"25:00", "26:00"},
		{"", "17:00"},
	} {
		if err := v.ValidateTimeRange(tc[0], tc[1]); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ValidateTimeRange(%q, %q) = %v, want ErrInvalidTimeFormat", tc[0], tc[1], err)
		}
	}
}

// Times without zero padding would sort after later canonical times ("9:30" >
// "12:00" as strings), so letting them through would defeat the lexicographic
// overlap comparison downstream.
func TestValidateTimeRange_RejectsUnpaddedTimes(t *testing.T) {
	v, _, _ := newTestValidator()
	for _, tc := range [][2]string{
		{"9:30", "9:45"},
		{"09:00", "9:30"},
		{"9:30", "12:00"},
	} {
		if err := v.ValidateTimeRange(tc[0], tc[1]); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ValidateTimeRange(%q, %q) = %v, want ErrInvalidTimeFormat", tc[0], tc[1], err)
		}
	}
}

func TestValidateTimeRange_OpenNotBeforeClose(t *testing.T) {
	v, _, _ := newTestValidator()
	if err := v.ValidateTimeRange("17:00", "09:00"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("reversed window: got %v, want ErrInvalidTimeRange", err)
	}
	if err := v.ValidateTimeRange("09:00", "09:00"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("empty window: got %v, want ErrInvalidTimeRange", err)
	}
}

// -- Intra-clinic overlap --

func TestIntraClinicOverlap_Conflict(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	doctorID := uuid.New()
	clinic := physicalClinic(1, doctorID, "Downtown")
	clinicRepo.clinics[1] = clinic
	seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", true)

	err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Monday, "10:00", "14:00", 0)
	var conflict *ScheduleConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ScheduleConflictError, got %v", err)
	}
	if conflict.ClinicName != "" {
		t.Error("intra-clinic conflict must not carry a clinic name")
	}
}

func TestIntraClinicOverlap_BackToBackAllowed(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinic := physicalClinic(1, uuid.New(), "Downtown")
	clinicRepo.clinics[1] = clinic
	seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Monday, "12:00", "15:00", 0); err != nil {
		t.Fatalf("back-to-back window must be allowed: %v", err)
	}
}

func TestIntraClinicOverlap_DifferentDayAllowed(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinic := physicalClinic(1, uuid.New(), "Downtown")
	clinicRepo.clinics[1] = clinic
	seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Tuesday, "09:00", "12:00", 0); err != nil {
		t.Fatalf("same window on another day must be allowed: %v", err)
	}
}

func TestIntraClinicOverlap_InactiveIgnored(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinic := physicalClinic(1, uuid.New(), "Downtown")
	clinicRepo.clinics[1] = clinic
	seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", false)

	if err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Monday, "10:00", "11:00", 0); err != nil {
		t.Fatalf("inactive schedules must not block: %v", err)
	}
}

func TestIntraClinicOverlap_ExcludesScheduleBeingEdited(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinic := physicalClinic(1, uuid.New(), "Downtown")
	clinicRepo.clinics[1] = clinic
	existing := seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Monday, "09:30", "12:30", existing.ID); err != nil {
		t.Fatalf("a schedule must not conflict with itself during update: %v", err)
	}
}

func TestIntraClinicOverlap_OnlineClinicExempt(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinic := onlineClinic(1, uuid.New(), "Telehealth")
	clinicRepo.clinics[1] = clinic
	seedSchedule(scheduleRepo, 1, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoIntraClinicOverlap(nil, clinic, entity.Monday, "09:00", "12:00", 0); err != nil {
		t.Fatalf("online clinics may overlap their own schedules: %v", err)
	}
}

// -- Cross-clinic overlap --

func TestCrossClinicOverlap_Conflict(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	doctorID := uuid.New()
	clinicA := physicalClinic(1, doctorID, "Downtown")
	clinicB := physicalClinic(2, doctorID, "Uptown")
	clinicRepo.clinics[1] = clinicA
	clinicRepo.clinics[2] = clinicB
	seedSchedule(scheduleRepo, 2, entity.Monday, "09:00", "12:00", true)

	err := v.ValidateNoCrossClinicOverlap(nil, clinicA, entity.Monday, "11:00", "13:00")
	var conflict *ScheduleConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ScheduleConflictError, got %v", err)
	}
	if conflict.ClinicName != "Uptown" {
		t.Errorf("cross-clinic conflict must name the other clinic, got %q", conflict.ClinicName)
	}
}

func TestCrossClinicOverlap_OtherDoctorUnaffected(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	clinicA := physicalClinic(1, uuid.New(), "Downtown")
	clinicB := physicalClinic(2, uuid.New(), "Uptown")
	clinicRepo.clinics[1] = clinicA
	clinicRepo.clinics[2] = clinicB
	seedSchedule(scheduleRepo, 2, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoCrossClinicOverlap(nil, clinicA, entity.Monday, "09:00", "12:00"); err != nil {
		t.Fatalf("another doctor's clinics must not conflict: %v", err)
	}
}

func TestCrossClinicOverlap_OnlineSiblingExempt(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	doctorID := uuid.New()
	clinicA := physicalClinic(1, doctorID, "Downtown")
	clinicB := onlineClinic(2, doctorID, "Telehealth")
	clinicRepo.clinics[1] = clinicA
	clinicRepo.clinics[2] = clinicB
	seedSchedule(scheduleRepo, 2, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoCrossClinicOverlap(nil, clinicA, entity.Monday, "09:00", "12:00"); err != nil {
		t.Fatalf("online sibling clinics must not block physical schedules: %v", err)
	}
}

func TestCrossClinicOverlap_OnlineCandidateExempt(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	doctorID := uuid.New()
	clinicA := onlineClinic(1, doctorID, "Telehealth")
	clinicB := physicalClinic(2, doctorID, "Uptown")
	clinicRepo.clinics[1] = clinicA
	clinicRepo.clinics[2] = clinicB
	seedSchedule(scheduleRepo, 2, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoCrossClinicOverlap(nil, clinicA, entity.Monday, "09:00", "12:00"); err != nil {
		t.Fatalf("online candidate clinic is exempt from cross-clinic checks: %v", err)
	}
}

func TestCrossClinicOverlap_BackToBackAcrossClinics(t *testing.T) {
	v, clinicRepo, scheduleRepo := newTestValidator()
	doctorID := uuid.New()
	clinicA := physicalClinic(1, doctorID, "Downtown")
	clinicB := physicalClinic(2, doctorID, "Uptown")
	clinicRepo.clinics[1] = clinicA
	clinicRepo.clinics[2] = clinicB
	seedSchedule(scheduleRepo, 2, entity.Monday, "09:00", "12:00", true)

	if err := v.ValidateNoCrossClinicOverlap(nil, clinicA, entity.Monday, "12:00", "15:00"); err != nil {
		t.Fatalf("back-to-back windows across clinics must be allowed: %v", err)
	}
}
