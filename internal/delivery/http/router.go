package http

import (
	"net/http"

	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	scheduleHandler *handler.ClinicScheduleHandler
	bookingHandler  *handler.BookingHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	scheduleHandler *handler.ClinicScheduleHandler,
	bookingHandler *handler.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		scheduleHandler: scheduleHandler,
		bookingHandler:  bookingHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Schedule management (admin or doctor)
	schedules := api.PathPrefix("").Subrouter()
	schedules.Use(r.authMiddleware.Authenticate)
	schedules.Use(middleware.RequireAdminOrDoctor)
	schedules.HandleFunc("/schedules", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	schedules.HandleFunc("/schedules/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	schedules.HandleFunc("/schedules/{id}/active", r.scheduleHandler.ToggleScheduleActive).Methods(http.MethodPatch)
	schedules.HandleFunc("/schedules/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)
	schedules.HandleFunc("/clinics/{clinicId}/schedules", r.scheduleHandler.DeleteClinicSchedules).Methods(http.MethodDelete)

	// Schedule reads (any authenticated user)
	scheduleReads := api.PathPrefix("").Subrouter()
	scheduleReads.Use(r.authMiddleware.Authenticate)
	scheduleReads.HandleFunc("/schedules/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	scheduleReads.HandleFunc("/clinics/{clinicId}/schedules", r.scheduleHandler.GetClinicSchedules).Methods(http.MethodGet)

	// Booking management (any authenticated user)
	bookings := api.PathPrefix("").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/bookings", r.bookingHandler.ListBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/bookings/{id}", r.bookingHandler.UpdateBooking).Methods(http.MethodPut)
	bookings.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateBookingStatus).Methods(http.MethodPatch)

	// Booking admin operations
	bookingAdmin := api.PathPrefix("").Subrouter()
	bookingAdmin.Use(r.authMiddleware.Authenticate)
	bookingAdmin.Use(middleware.RequireAdminOrDoctor)
	bookingAdmin.HandleFunc("/bookings/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)
	bookingAdmin.HandleFunc("/doctors/{doctorId}/bookings/count", r.bookingHandler.CountDoctorBookings).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
