package dto

import "time"

// Request DTOs

type CreateShiftRequest struct {
	Name        string `json:"name" validate:"required,oneof=morning afternoon evening"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	StartTime   string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime     string `json:"end_time" validate:"required"`   // Format: HH:MM
	DaysOfWeek  []int  `json:"days_of_week" validate:"required,min=1,dive,gte=0,lte=6"`
}

type UpdateShiftRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	StartTime   string `json:"start_time" validate:"omitempty"` // Format: HH:MM
	EndTime     string `json:"end_time" validate:"omitempty"`   // Format: HH:MM
	DaysOfWeek  []int  `json:"days_of_week" validate:"omitempty,min=1,dive,gte=0,lte=6"`
}

// Response DTOs

type ShiftResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	DaysOfWeek  []int     `json:"days_of_week"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
	Total  int             `json:"total"`
}
