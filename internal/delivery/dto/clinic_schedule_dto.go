package dto

import "time"

// Request DTOs

type CreateScheduleRequest struct {
	ClinicID                    int64  `json:"clinic_id" validate:"required,min=1"`
	DayOfWeek                   string `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	OpenTime                    string `json:"open_time" validate:"required,len=5"`  // Format: HH:MM, zero-padded
	CloseTime                   string `json:"close_time" validate:"required,len=5"` // Format: HH:MM, zero-padded
	ConsultationDurationMinutes *int   `json:"consultation_duration_minutes" validate:"omitempty,min=15"`
	MaxParallelAppointments     *int   `json:"max_parallel_appointments" validate:"omitempty,min=1"`
	IsActive                    *bool  `json:"is_active" validate:"omitempty"`
}

type UpdateScheduleRequest struct {
	ClinicID                    int64  `json:"clinic_id" validate:"omitempty,min=1"`
	DayOfWeek                   string `json:"day_of_week" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	OpenTime                    string `json:"open_time" validate:"omitempty,len=5"`  // Format: HH:MM, zero-padded
	CloseTime                   string `json:"close_time" validate:"omitempty,len=5"` // Format: HH:MM, zero-padded
	ConsultationDurationMinutes *int   `json:"consultation_duration_minutes" validate:"omitempty,min=15"`
	MaxParallelAppointments     *int   `json:"max_parallel_appointments" validate:"omitempty,min=1"`
	IsActive                    *bool  `json:"is_active" validate:"omitempty"`
}

type ToggleScheduleRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Response DTOs

type ScheduleResponse struct {
	ID                          int64     `json:"id"`
	ClinicID                    int64     `json:"clinic_id"`
	ClinicName                  string    `json:"clinic_name,omitempty"`
	ClinicAddress               string    `json:"clinic_address,omitempty"`
	ClinicCity                  string    `json:"clinic_city,omitempty"`
	ClinicProvince              string    `json:"clinic_province,omitempty"`
	ConsultationMode            string    `json:"consultation_mode,omitempty"`
	DayOfWeek                   string    `json:"day_of_week"`
	OpenTime                    string    `json:"open_time"`
	CloseTime                   string    `json:"close_time"`
	ConsultationDurationMinutes int       `json:"consultation_duration_minutes"`
	MaxParallelAppointments     int       `json:"max_parallel_appointments"`
	IsActive                    bool      `json:"is_active"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
