package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/gorilla/mux"
)

type ClinicScheduleHandler struct {
	scheduleUsecase usecase.ClinicScheduleUsecase
	validator       *validator.CustomValidator
}

func NewClinicScheduleHandler(scheduleUsecase usecase.ClinicScheduleUsecase, validator *validator.CustomValidator) *ClinicScheduleHandler {
	return &ClinicScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *ClinicScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.CreateSchedule(r.Context(), &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

func (h *ClinicScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// GetClinicSchedules lists a clinic's schedules. The optional query params
// active=true and day=<weekday> narrow the listing.
func (h *ClinicScheduleHandler) GetClinicSchedules(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "clinicId")
	if !ok {
		return
	}

	var (
		schedules *dto.ScheduleListResponse
		err       error
	)
	if day := r.URL.Query().Get("day"); day != "" {
		schedules, err = h.scheduleUsecase.GetSchedulesByClinicAndDay(r.Context(), clinicID, day)
	} else if r.URL.Query().Get("active") == "true" {
		schedules, err = h.scheduleUsecase.GetActiveSchedulesByClinic(r.Context(), clinicID)
	} else {
		schedules, err = h.scheduleUsecase.GetSchedulesByClinic(r.Context(), clinicID)
	}
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func (h *ClinicScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSchedule(r.Context(), scheduleID, &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *ClinicScheduleHandler) ToggleScheduleActive(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	var req dto.ToggleScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.ToggleScheduleActive(r.Context(), scheduleID, *req.IsActive)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule toggled successfully", schedule)
}

func (h *ClinicScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	if err := h.scheduleUsecase.DeleteSchedule(r.Context(), scheduleID); err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}

func (h *ClinicScheduleHandler) DeleteClinicSchedules(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "clinicId")
	if !ok {
		return
	}

	if err := h.scheduleUsecase.DeleteAllSchedulesForClinic(r.Context(), clinicID); err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedules deleted successfully", nil)
}

func (h *ClinicScheduleHandler) writeScheduleError(w http.ResponseWriter, err error) {
	var conflict *service.ScheduleConflictError
	if errors.As(err, &conflict) {
		response.Conflict(w, conflict.Error(), conflict)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrClinicNotFound):
		response.NotFound(w, "Clinic not found")
	case errors.Is(err, usecase.ErrScheduleNotFound):
		response.NotFound(w, "Schedule not found")
	case errors.Is(err, usecase.ErrDuplicateSchedule):
		response.Conflict(w, "An identical schedule already exists for this clinic", nil)
	case errors.Is(err, usecase.ErrInvalidDayOfWeek):
		response.Error(w, http.StatusBadRequest, "Invalid day of week", nil)
	case errors.Is(err, service.ErrInvalidTimeFormat):
		response.Error(w, http.StatusBadRequest, "Times must use the HH:MM format", nil)
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.Error(w, http.StatusBadRequest, "Open time must be before close time", nil)
	default:
		response.InternalServerError(w, "Failed to process schedule")
	}
}

func parseIDVar(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
