package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// ScheduleToResponse converts a ClinicSchedule entity to ScheduleResponse DTO.
// The owning clinic's display fields are echoed when the relation is loaded.
func ScheduleToResponse(schedule *entity.ClinicSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:                          schedule.ID,
		ClinicID:                    schedule.ClinicID,
		DayOfWeek:                   string(schedule.DayOfWeek),
		OpenTime:                    schedule.OpenTime,
		CloseTime:                   schedule.CloseTime,
		ConsultationDurationMinutes: schedule.ConsultationDurationMinutes,
		MaxParallelAppointments:     schedule.MaxParallelAppointments,
		IsActive:                    schedule.IsActive,
		CreatedAt:                   schedule.CreatedAt,
		UpdatedAt:                   schedule.UpdatedAt,
	}

	if schedule.Clinic.ID != 0 {
		response.ClinicName = schedule.Clinic.ClinicName
		response.ClinicAddress = schedule.Clinic.AddressLine1
		response.ClinicCity = schedule.Clinic.City
		response.ClinicProvince = schedule.Clinic.Province
		response.ConsultationMode = string(schedule.Clinic.ConsultationMode)
	}

	return response
}

// SchedulesToResponses converts a slice of ClinicSchedule entities to response DTOs
func SchedulesToResponses(schedules []entity.ClinicSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp := ScheduleToResponse(&schedule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
