package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	Date      string    `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime string    `json:"start_time" validate:"required"` // Format: HH:MM
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	DoctorID  uuid.UUID        `json:"doctor_id"`
	PatientID uuid.UUID        `json:"patient_id"`
	ServiceID uuid.UUID        `json:"service_id"`
	Doctor    *DoctorResponse  `json:"doctor,omitempty"`
	Service   *ServiceResponse `json:"service,omitempty"`
	Date      string           `json:"date"`       // Format: YYYY-MM-DD
	StartTime string           `json:"start_time"` // Format: HH:MM
	EndTime   string           `json:"end_time"`   // Format: HH:MM
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
