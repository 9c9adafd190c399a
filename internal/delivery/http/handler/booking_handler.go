package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBookingFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	bookings, err := h.bookingUsecase.ListBookings(r.Context(), filter)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}
	meta := &response.Meta{
		Page:  page,
		Limit: filter.Limit,
		Total: bookings.Total,
	}
	if filter.Limit > 0 {
		meta.TotalPages = int((bookings.Total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	response.SuccessWithMeta(w, http.StatusOK, "Bookings retrieved successfully", bookings.Bookings, meta)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", booking)
}

func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBookingStatus(r.Context(), bookingID, req.Status)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), bookingID); err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

// CountDoctorBookings returns a booking count for a doctor, filtered either
// by status or by a start/end datetime range.
func (h *BookingHandler) CountDoctorBookings(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := r.URL.Query()
	var count *dto.BookingCountResponse
	if status := query.Get("status"); status != "" {
		count, err = h.bookingUsecase.CountBookingsByDoctorAndStatus(r.Context(), doctorID, status)
	} else {
		var start, end time.Time
		start, err = converter.ParseBookingDatetime(query.Get("start"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid start datetime", nil)
			return
		}
		end, err = converter.ParseBookingDatetime(query.Get("end"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid end datetime", nil)
			return
		}
		count, err = h.bookingUsecase.CountBookingsByDoctorInRange(r.Context(), doctorID, start, end)
	}
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking count retrieved successfully", count)
}

func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrClinicNotFound):
		response.NotFound(w, "Clinic not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient profile not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor profile not found")
	case errors.Is(err, usecase.ErrInvalidDatetimeFormat),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidAppointmentType):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrClinicOnlineOnly),
		errors.Is(err, service.ErrClinicInClinicOnly),
		errors.Is(err, service.ErrClinicRequired):
		response.Conflict(w, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to process booking")
	}
}

func parseBookingFilter(r *http.Request) (*entity.BookingFilter, error) {
	query := r.URL.Query()
	filter := &entity.BookingFilter{}

	for param, target := range map[string]**uuid.UUID{
		"user_id":    &filter.UserID,
		"patient_id": &filter.PatientID,
		"doctor_id":  &filter.DoctorID,
	} {
		if raw := query.Get(param); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, errors.New("invalid " + param)
			}
			*target = &id
		}
	}

	if raw := query.Get("clinic_id"); raw != "" {
		clinicID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || clinicID < 1 {
			return nil, errors.New("invalid clinic_id")
		}
		filter.ClinicID = &clinicID
	}

	if status := query.Get("status"); status != "" {
		if !entity.BookingStatus(status).IsValid() {
			return nil, errors.New("invalid status")
		}
		filter.Status = entity.BookingStatus(status)
	}
	if appointmentType := query.Get("appointment_type"); appointmentType != "" {
		if !entity.AppointmentType(appointmentType).IsValid() {
			return nil, errors.New("invalid appointment_type")
		}
		filter.AppointmentType = entity.AppointmentType(appointmentType)
	}

	if raw := query.Get("start"); raw != "" {
		start, err := converter.ParseBookingDatetime(raw)
		if err != nil {
			return nil, errors.New("invalid start datetime")
		}
		filter.StartAt = &start
	}
	if raw := query.Get("end"); raw != "" {
		end, err := converter.ParseBookingDatetime(raw)
		if err != nil {
			return nil, errors.New("invalid end datetime")
		}
		filter.EndAt = &end
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, errors.New("invalid page")
		}
		page = parsed
	}
	limit := 20
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return nil, errors.New("invalid limit")
		}
		limit = parsed
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	return filter, nil
}
