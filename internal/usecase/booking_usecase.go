package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	repoimpl "clinic-booking-service/internal/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrPatientNotFound        = errors.New("patient profile not found")
	ErrDoctorNotFound         = errors.New("doctor profile not found")
	ErrInvalidDatetimeFormat  = errors.New("invalid appointment datetime format, expected YYYY-MM-DD HH:MM:SS")
	ErrInvalidStatus          = errors.New("invalid booking status")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID int64) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error)
	UpdateBooking(ctx context.Context, bookingID int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
	CountBookingsByDoctorAndStatus(ctx context.Context, doctorID uuid.UUID, status string) (*dto.BookingCountResponse, error)
	CountBookingsByDoctorInRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*dto.BookingCountResponse, error)
}

type bookingUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	bookingRepo       repository.BookingRepository
	clinicRepo        repository.ClinicRepository
	userRepo          repository.UserRepository
	patientRepo       repository.PatientProfileRepository
	doctorRepo        repository.DoctorProfileRepository
	conflictValidator *service.BookingConflictValidator
	auditService      service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	conflictValidator *service.BookingConflictValidator,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:                db,
		log:               log,
		bookingRepo:       bookingRepo,
		clinicRepo:        clinicRepo,
		userRepo:          userRepo,
		patientRepo:       patientRepo,
		doctorRepo:        doctorRepo,
		conflictValidator: conflictValidator,
		auditService:      auditService,
	}
}

func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	appointmentType := entity.AppointmentTypeInClinic
	if req.AppointmentType != "" {
		appointmentType = entity.AppointmentType(req.AppointmentType)
		if !appointmentType.IsValid() {
			return nil, ErrInvalidAppointmentType
		}
	}

	appointmentDatetime, err := converter.ParseBookingDatetime(req.AppointmentDatetime)
	if err != nil {
		return nil, ErrInvalidDatetimeFormat
	}

	clinic, err := u.resolveClinic(req.ClinicID)
	if err != nil {
		return nil, err
	}

	if err := u.conflictValidator.ValidateModeConsistency(appointmentType, clinic); err != nil {
		return nil, err
	}

	if err := u.requireParticipants(req.UserID, req.PatientID, req.DoctorID); err != nil {
		return nil, err
	}

	status := entity.BookingStatusPending
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}

	booking := &entity.Booking{
		UserID:              req.UserID,
		PatientID:           req.PatientID,
		DoctorID:            req.DoctorID,
		ClinicID:            req.ClinicID,
		AppointmentType:     appointmentType,
		AppointmentDatetime: appointmentDatetime,
		Reason:              req.Reason,
		Status:              status,
		BookingNotes:        req.BookingNotes,
	}
	// Video links only make sense for virtual consultations.
	if appointmentType == entity.AppointmentTypeOnline {
		booking.VideoCallLink = req.VideoCallLink
	}

	if err := u.bookingRepo.Create(u.db, booking); err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		// The clinic may vanish between validation and insert.
		if repoimpl.IsForeignKeyViolation(err) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &booking.UserID, entity.AuditActionBookingCreate, "booking", auditEntityID(booking.ID), booking)

	booking.Clinic = clinic
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID int64) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) ListBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindWithFilter(u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	total, err := u.bookingRepo.CountWithFilter(u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to count bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    total,
	}, nil
}

func (u *bookingUsecase) UpdateBooking(ctx context.Context, bookingID int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	oldValue := *booking

	if req.UserID != nil {
		booking.UserID = *req.UserID
	}
	if req.PatientID != nil {
		booking.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		booking.DoctorID = *req.DoctorID
	}
	if err := u.requireParticipants(booking.UserID, booking.PatientID, booking.DoctorID); err != nil {
		return nil, err
	}

	if req.AppointmentType != "" {
		appointmentType := entity.AppointmentType(req.AppointmentType)
		if !appointmentType.IsValid() {
			return nil, ErrInvalidAppointmentType
		}
		booking.AppointmentType = appointmentType
		// Switching a physical visit to a virtual one detaches the clinic
		// unless the request pins a new one.
		if appointmentType == entity.AppointmentTypeOnline && req.ClinicID == nil {
			booking.ClinicID = nil
			booking.Clinic = nil
		}
	}
	if req.ClinicID != nil {
		booking.ClinicID = req.ClinicID
	}

	clinic, err := u.resolveClinic(booking.ClinicID)
	if err != nil {
		return nil, err
	}
	if err := u.conflictValidator.ValidateModeConsistency(booking.AppointmentType, clinic); err != nil {
		return nil, err
	}

	if req.AppointmentDatetime != "" {
		appointmentDatetime, err := converter.ParseBookingDatetime(req.AppointmentDatetime)
		if err != nil {
			return nil, ErrInvalidDatetimeFormat
		}
		booking.AppointmentDatetime = appointmentDatetime
	}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		booking.Status = status
	}
	if req.Reason != nil {
		booking.Reason = *req.Reason
	}
	if req.VideoCallLink != nil {
		booking.VideoCallLink = *req.VideoCallLink
	}
	if req.BookingNotes != nil {
		booking.BookingNotes = *req.BookingNotes
	}
	if booking.AppointmentType == entity.AppointmentTypeInClinic {
		booking.VideoCallLink = ""
	}

	if err := u.bookingRepo.Update(u.db, booking); err != nil {
		u.log.Warnf("Failed to update booking %d: %+v", bookingID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &booking.UserID, entity.AuditActionBookingUpdate, "booking", auditEntityID(booking.ID), oldValue, booking)

	booking.Clinic = clinic
	return converter.BookingToResponse(booking), nil
}

// UpdateBookingStatus overwrites the status unconditionally; any valid status
// may follow any other, including moves out of cancelled.
func (u *bookingUsecase) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) (*dto.BookingResponse, error) {
	newStatus := entity.BookingStatus(status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	booking, err := u.bookingRepo.FindByID(u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	oldValue := *booking

	rows, err := u.bookingRepo.UpdateStatus(u.db, bookingID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update booking %d status: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingNotFound
	}

	booking.Status = newStatus

	u.auditService.LogUpdate(ctx, u.db, &booking.UserID, entity.AuditActionBookingStatus, "booking", auditEntityID(booking.ID), oldValue, booking)

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) DeleteBooking(ctx context.Context, bookingID int64) error {
	booking, err := u.bookingRepo.FindByID(u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if _, err := u.bookingRepo.Delete(u.db, bookingID); err != nil {
		u.log.Warnf("Failed to delete booking %d: %+v", bookingID, err)
		return err
	}

	u.auditService.LogDelete(ctx, u.db, &booking.UserID, entity.AuditActionBookingDelete, "booking", auditEntityID(bookingID), booking)

	return nil
}

func (u *bookingUsecase) CountBookingsByDoctorAndStatus(ctx context.Context, doctorID uuid.UUID, status string) (*dto.BookingCountResponse, error) {
	bookingStatus := entity.BookingStatus(status)
	if !bookingStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	count, err := u.bookingRepo.CountByDoctorAndStatus(u.db, doctorID, bookingStatus)
	if err != nil {
		u.log.Warnf("Failed to count bookings for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.BookingCountResponse{Count: count}, nil
}

func (u *bookingUsecase) CountBookingsByDoctorInRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*dto.BookingCountResponse, error) {
	count, err := u.bookingRepo.CountByDoctorAndDateRange(u.db, doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to count bookings for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.BookingCountResponse{Count: count}, nil
}

// resolveClinic loads the clinic when an id is set; a nil id is a virtual
// booking with no clinic attached.
func (u *bookingUsecase) resolveClinic(clinicID *int64) (*entity.Clinic, error) {
	if clinicID == nil {
		return nil, nil
	}
	clinic, err := u.clinicRepo.FindByID(u.db, *clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %d: %+v", *clinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}
	return clinic, nil
}

func (u *bookingUsecase) requireParticipants(userID, patientID, doctorID uuid.UUID) error {
	exists, err := u.userRepo.ExistsByID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to check user %s: %+v", userID, err)
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	exists, err = u.patientRepo.ExistsByUserID(u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", patientID, err)
		return err
	}
	if !exists {
		return ErrPatientNotFound
	}

	exists, err = u.doctorRepo.ExistsByUserID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check doctor %s: %+v", doctorID, err)
		return err
	}
	if !exists {
		return ErrDoctorNotFound
	}

	return nil
}
