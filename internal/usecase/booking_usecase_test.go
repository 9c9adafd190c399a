package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// -- Mock repositories --

type mockBookingRepo struct {
	bookings map[int64]*entity.Booking
	nextID   int64
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[int64]*entity.Booking)}
}

func (m *mockBookingRepo) Create(_ *gorm.DB, b *entity.Booking) error {
	m.nextID++
	b.ID = m.nextID
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *mockBookingRepo) FindByID(_ *gorm.DB, id int64) (*entity.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepo) FindWithFilter(_ *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error) {
	var result []entity.Booking
	for _, b := range m.bookings {
		if matchesFilter(b, filter) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) CountWithFilter(_ *gorm.DB, filter *entity.BookingFilter) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if matchesFilter(b, filter) {
			count++
		}
	}
	return count, nil
}

func matchesFilter(b *entity.Booking, filter *entity.BookingFilter) bool {
	if filter.UserID != nil && b.UserID != *filter.UserID {
		return false
	}
	if filter.DoctorID != nil && b.DoctorID != *filter.DoctorID {
		return false
	}
	if filter.Status != "" && b.Status != filter.Status {
		return false
	}
	if filter.AppointmentType != "" && b.AppointmentType != filter.AppointmentType {
		return false
	}
	return true
}

func (m *mockBookingRepo) Update(_ *gorm.DB, b *entity.Booking) error {
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *mockBookingRepo) UpdateStatus(_ *gorm.DB, id int64, status entity.BookingStatus) (int64, error) {
	b, ok := m.bookings[id]
	if !ok {
		return 0, nil
	}
	b.Status = status
	return 1, nil
}

func (m *mockBookingRepo) Delete(_ *gorm.DB, id int64) (int64, error) {
	if _, ok := m.bookings[id]; !ok {
		return 0, nil
	}
	delete(m.bookings, id)
	return 1, nil
}

func (m *mockBookingRepo) CountByDoctorAndStatus(_ *gorm.DB, doctorID uuid.UUID, status entity.BookingStatus) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.DoctorID == doctorID && b.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) CountByDoctorAndDateRange(_ *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.DoctorID == doctorID && !b.AppointmentDatetime.Before(start) && !b.AppointmentDatetime.After(end) {
			count++
		}
	}
	return count, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (m *mockUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) ExistsByID(_ *gorm.DB, id uuid.UUID) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

type mockPatientRepo struct {
	patients map[uuid.UUID]*entity.PatientProfile
}

func (m *mockPatientRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	return m.patients[userID], nil
}

func (m *mockPatientRepo) ExistsByUserID(_ *gorm.DB, userID uuid.UUID) (bool, error) {
	_, ok := m.patients[userID]
	return ok, nil
}

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func (m *mockDoctorRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return m.doctors[userID], nil
}

func (m *mockDoctorRepo) ExistsByUserID(_ *gorm.DB, userID uuid.UUID) (bool, error) {
	_, ok := m.doctors[userID]
	return ok, nil
}

// -- Fixture --

type bookingFixture struct {
	usecase     BookingUsecase
	bookingRepo *mockBookingRepo
	clinicRepo  *mockClinicRepo

	userID    uuid.UUID
	patientID uuid.UUID
	doctorID  uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	log := testLogger()

	f := &bookingFixture{
		bookingRepo: newMockBookingRepo(),
		clinicRepo:  newMockClinicRepo(),
		userID:      uuid.New(),
		patientID:   uuid.New(),
		doctorID:    uuid.New(),
	}

	userRepo := &mockUserRepo{users: map[uuid.UUID]*entity.User{
		f.userID: {ID: f.userID, Email: "patient@example.com"},
	}}
	patientRepo := &mockPatientRepo{patients: map[uuid.UUID]*entity.PatientProfile{
		f.patientID: {UserID: f.patientID},
	}}
	doctorRepo := &mockDoctorRepo{doctors: map[uuid.UUID]*entity.DoctorProfile{
		f.doctorID: {UserID: f.doctorID},
	}}

	f.usecase = NewBookingUsecase(nil, log, f.bookingRepo, f.clinicRepo, userRepo, patientRepo, doctorRepo,
		service.NewBookingConflictValidator(), noopAuditService{})

	return f
}

func (f *bookingFixture) addClinic(id int64, mode entity.ConsultationMode) *entity.Clinic {
	clinic := &entity.Clinic{
		ID:               id,
		DoctorID:         f.doctorID,
		ClinicName:       "Clinic",
		ConsultationMode: mode,
	}
	f.clinicRepo.clinics[id] = clinic
	return clinic
}

func (f *bookingFixture) createRequest(clinicID *int64, appointmentType string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		UserID:              f.userID,
		PatientID:           f.patientID,
		DoctorID:            f.doctorID,
		ClinicID:            clinicID,
		AppointmentType:     appointmentType,
		AppointmentDatetime: "2026-09-15 10:00:00",
	}
}

// -- CreateBooking --

func TestCreateBooking_Defaults(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	resp, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AppointmentType != string(entity.AppointmentTypeInClinic) {
		t.Errorf("appointment type must default to in_clinic, got %s", resp.AppointmentType)
	}
	if resp.Status != string(entity.BookingStatusPending) {
		t.Errorf("status must default to pending, got %s", resp.Status)
	}
	if resp.AppointmentDatetime != "2026-09-15 10:00:00" {
		t.Errorf("unexpected datetime echo: %s", resp.AppointmentDatetime)
	}
}

func TestCreateBooking_OnlineWithoutClinic(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.usecase.CreateBooking(context.Background(), f.createRequest(nil, "online"))
	if err != nil {
		t.Fatalf("online booking without a clinic must succeed: %v", err)
	}
	if resp.ClinicID != nil {
		t.Error("expected no clinic on a virtual booking")
	}
}

func TestCreateBooking_InClinicWithoutClinic(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CreateBooking(context.Background(), f.createRequest(nil, "in_clinic"))
	if !errors.Is(err, service.ErrClinicRequired) {
		t.Fatalf("got %v, want ErrClinicRequired", err)
	}
}

func TestCreateBooking_InClinicAtOnlineClinic(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeOnline)

	_, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if !errors.Is(err, service.ErrClinicOnlineOnly) {
		t.Fatalf("got %v, want ErrClinicOnlineOnly", err)
	}
}

func TestCreateBooking_OnlineAtPhysicalClinic(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	_, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "online"))
	if !errors.Is(err, service.ErrClinicInClinicOnly) {
		t.Fatalf("got %v, want ErrClinicInClinicOnly", err)
	}
}

func TestCreateBooking_ClinicNotFound(t *testing.T) {
	f := newBookingFixture(t)
	missing := int64(42)

	_, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&missing, "in_clinic"))
	if !errors.Is(err, ErrClinicNotFound) {
		t.Fatalf("got %v, want ErrClinicNotFound", err)
	}
}

func TestCreateBooking_UnknownParticipants(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	req := f.createRequest(&clinic.ID, "in_clinic")
	req.UserID = uuid.New()
	if _, err := f.usecase.CreateBooking(context.Background(), req); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}

	req = f.createRequest(&clinic.ID, "in_clinic")
	req.PatientID = uuid.New()
	if _, err := f.usecase.CreateBooking(context.Background(), req); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("got %v, want ErrPatientNotFound", err)
	}

	req = f.createRequest(&clinic.ID, "in_clinic")
	req.DoctorID = uuid.New()
	if _, err := f.usecase.CreateBooking(context.Background(), req); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("got %v, want ErrDoctorNotFound", err)
	}
}

func TestCreateBooking_InvalidDatetime(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	req := f.createRequest(&clinic.ID, "in_clinic")
	req.AppointmentDatetime = "15/09/2026 10:00"
	if _, err := f.usecase.CreateBooking(context.Background(), req); !errors.Is(err, ErrInvalidDatetimeFormat) {
		t.Fatalf("got %v, want ErrInvalidDatetimeFormat", err)
	}
}

func TestCreateBooking_VideoLinkOnlyForOnline(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	req := f.createRequest(&clinic.ID, "in_clinic")
	req.VideoCallLink = "https://meet.example.com/room"
	resp, err := f.usecase.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.VideoCallLink != "" {
		t.Error("video link must be dropped for in-clinic bookings")
	}

	req = f.createRequest(nil, "online")
	req.VideoCallLink = "https://meet.example.com/room"
	resp, err = f.usecase.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.VideoCallLink != "https://meet.example.com/room" {
		t.Errorf("video link must be kept for online bookings, got %q", resp.VideoCallLink)
	}
}

// -- GetBooking --

func TestGetBooking_IdempotentReads(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	first, err := f.usecase.GetBooking(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := f.usecase.GetBooking(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reads without intervening writes must match:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// -- UpdateBooking --

func TestUpdateBooking_SwitchToOnlineDetachesClinic(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	resp, err := f.usecase.UpdateBooking(context.Background(), created.ID, &dto.UpdateBookingRequest{
		AppointmentType: "online",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ClinicID != nil {
		t.Error("switching to online without a clinic must detach the clinic")
	}
}

func TestUpdateBooking_ModeMismatchRejected(t *testing.T) {
	f := newBookingFixture(t)
	physical := f.addClinic(1, entity.ConsultationModeInClinic)
	online := f.addClinic(2, entity.ConsultationModeOnline)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&physical.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	_, err = f.usecase.UpdateBooking(context.Background(), created.ID, &dto.UpdateBookingRequest{
		ClinicID: &online.ID,
	})
	if !errors.Is(err, service.ErrClinicOnlineOnly) {
		t.Fatalf("got %v, want ErrClinicOnlineOnly", err)
	}
}

func TestUpdateBooking_NotFound(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.usecase.UpdateBooking(context.Background(), 99, &dto.UpdateBookingRequest{})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("got %v, want ErrBookingNotFound", err)
	}
}

// -- UpdateBookingStatus --

func TestUpdateBookingStatus_AnyTransitionAllowed(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// No transition graph: cancelled may move back to confirmed.
	for _, status := range []string{"confirmed", "cancelled", "confirmed", "completed", "no_show"} {
		resp, err := f.usecase.UpdateBookingStatus(context.Background(), created.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if resp.Status != status {
			t.Errorf("got status %s, want %s", resp.Status, status)
		}
	}
}

func TestUpdateBookingStatus_InvalidStatus(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.usecase.UpdateBookingStatus(context.Background(), 1, "rescheduled")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.usecase.UpdateBookingStatus(context.Background(), 99, "confirmed")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("got %v, want ErrBookingNotFound", err)
	}
}

// -- Delete and counts --

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	if err := f.usecase.DeleteBooking(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.usecase.DeleteBooking(context.Background(), created.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("got %v, want ErrBookingNotFound on second delete", err)
	}
}

func TestCountBookingsByDoctorAndStatus(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	if _, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	count, err := f.usecase.CountBookingsByDoctorAndStatus(context.Background(), f.doctorID, "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Count != 2 {
		t.Errorf("expected 2 pending bookings, got %d", count.Count)
	}

	count, err = f.usecase.CountBookingsByDoctorAndStatus(context.Background(), f.doctorID, "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Count != 0 {
		t.Errorf("expected 0 confirmed bookings, got %d", count.Count)
	}
}

func TestListBookings_FilterByStatus(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.addClinic(1, entity.ConsultationModeInClinic)

	created, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := f.usecase.CreateBooking(context.Background(), f.createRequest(&clinic.ID, "in_clinic")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := f.usecase.UpdateBookingStatus(context.Background(), created.ID, "confirmed"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	list, err := f.usecase.ListBookings(context.Background(), &entity.BookingFilter{Status: entity.BookingStatusConfirmed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("expected 1 confirmed booking, got %d", list.Total)
	}
}
