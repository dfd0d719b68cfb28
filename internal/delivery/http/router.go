package http

import (
	"net/http"

	"clinic-scheduling/internal/delivery/http/handler"
	"clinic-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	absenceHandler      *handler.AbsenceHandler
	shiftHandler        *handler.ShiftHandler
	serviceHandler      *handler.ServiceHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	absenceHandler *handler.AbsenceHandler,
	shiftHandler *handler.ShiftHandler,
	serviceHandler *handler.ServiceHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		absenceHandler:      absenceHandler,
		shiftHandler:        shiftHandler,
		serviceHandler:      serviceHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public browsing: doctors, services and the availability grid
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/services", r.serviceHandler.GetAllServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)
	api.HandleFunc("/shifts", r.shiftHandler.GetAllShifts).Methods(http.MethodGet)
	api.HandleFunc("/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/bookings", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/bookings", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/bookings/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)
	patient.HandleFunc("/patients/me", r.patientHandler.UpdateSelfProfile).Methods(http.MethodPut)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/doctors/me", r.doctorHandler.UpdateSelfProfile).Methods(http.MethodPut)

	// Absence requests (doctor or admin)
	absences := api.PathPrefix("").Subrouter()
	absences.Use(r.authMiddleware.Authenticate)
	absences.Use(middleware.RequireAdminOrDoctor)
	absences.HandleFunc("/absences", r.absenceHandler.CreateAbsence).Methods(http.MethodPost)
	absences.HandleFunc("/doctors/{doctor_id}/absences", r.absenceHandler.GetAbsencesByDoctor).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Shift definition management (admin)
	admin.HandleFunc("/shifts", r.shiftHandler.CreateShift).Methods(http.MethodPost)
	admin.HandleFunc("/shifts", r.shiftHandler.GetAllShifts).Methods(http.MethodGet)
	admin.HandleFunc("/shifts/{id}", r.shiftHandler.GetShift).Methods(http.MethodGet)
	admin.HandleFunc("/shifts/{id}", r.shiftHandler.UpdateShift).Methods(http.MethodPut)
	admin.HandleFunc("/shifts/{id}", r.shiftHandler.DeactivateShift).Methods(http.MethodDelete)

	// Service catalog management (admin)
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)

	// Absence approval workflow (admin)
	admin.HandleFunc("/absences/pending", r.absenceHandler.GetPendingAbsences).Methods(http.MethodGet)
	admin.HandleFunc("/absences/{id}/approve", r.absenceHandler.ApproveAbsence).Methods(http.MethodPost)
	admin.HandleFunc("/absences/{id}/reject", r.absenceHandler.RejectAbsence).Methods(http.MethodPost)

	// Audit logs (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
