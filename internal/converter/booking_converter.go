package converter

import (
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// BookingDatetimeFormat is the wire format for appointment datetimes
const BookingDatetimeFormat = "2006-01-02 15:04:05"

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:                  booking.ID,
		UserID:              booking.UserID,
		PatientID:           booking.PatientID,
		DoctorID:            booking.DoctorID,
		ClinicID:            booking.ClinicID,
		AppointmentType:     string(booking.AppointmentType),
		AppointmentDatetime: booking.AppointmentDatetime.Format(BookingDatetimeFormat),
		Reason:              booking.Reason,
		Status:              string(booking.Status),
		VideoCallLink:       booking.VideoCallLink,
		BookingNotes:        booking.BookingNotes,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}

	if booking.Clinic != nil && booking.Clinic.ID != 0 {
		response.Clinic = ClinicToResponse(booking.Clinic)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to response DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ClinicToResponse converts a Clinic entity to its embedded response DTO
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}
	return &dto.ClinicResponse{
		ID:               clinic.ID,
		ClinicName:       clinic.ClinicName,
		ConsultationMode: string(clinic.ConsultationMode),
		AddressLine1:     clinic.AddressLine1,
		City:             clinic.City,
		Province:         clinic.Province,
	}
}

// ParseBookingDatetime parses a wire-format appointment datetime
func ParseBookingDatetime(value string) (time.Time, error) {
	return time.Parse(BookingDatetimeFormat, value)
}
