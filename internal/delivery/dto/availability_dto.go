package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type SlotResponse struct {
	Time      string `json:"time"` // Format: HH:MM
	ShiftName string `json:"shift_name"`
	State     string `json:"state"`
	Reason    string `json:"reason,omitempty"`
}

type ShiftGroupResponse struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Slots       []SlotResponse `json:"slots"`
}

type AvailabilityResponse struct {
	DoctorID               uuid.UUID            `json:"doctor_id"`
	Date                   string               `json:"date"` // Format: YYYY-MM-DD
	ServiceID              uuid.UUID            `json:"service_id"`
	ServiceDurationMinutes int                  `json:"service_duration_minutes"`
	IntervalMinutes        int                  `json:"interval_minutes"`
	Slots                  []SlotResponse       `json:"slots"`
	Shifts                 []ShiftGroupResponse `json:"shifts"`
}
