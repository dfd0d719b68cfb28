package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAbsenceRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Kind      string    `json:"kind" validate:"required,oneof=full_day multi_day single_shift time_range"`
	DateFrom  string    `json:"date_from" validate:"required"` // Format: YYYY-MM-DD
	DateTo    string    `json:"date_to" validate:"omitempty"`  // Format: YYYY-MM-DD
	ShiftName string    `json:"shift_name" validate:"omitempty,oneof=morning afternoon evening"`
	TimeFrom  string    `json:"time_from" validate:"omitempty"` // Format: HH:MM
	TimeTo    string    `json:"time_to" validate:"omitempty"`   // Format: HH:MM
	Reason    string    `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type AbsenceResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Kind      string    `json:"kind"`
	DateFrom  string    `json:"date_from"`
	DateTo    string    `json:"date_to,omitempty"`
	ShiftName string    `json:"shift_name,omitempty"`
	TimeFrom  string    `json:"time_from,omitempty"`
	TimeTo    string    `json:"time_to,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
	Total    int               `json:"total"`
}

// AbsenceDecisionResponse reports the approval outcome. Appointments already
// booked inside the approved window are left in place; the count lets clinic
// staff follow up on them.
type AbsenceDecisionResponse struct {
	Absence                 AbsenceResponse `json:"absence"`
	ConflictingAppointments int64           `json:"conflicting_appointments"`
}
