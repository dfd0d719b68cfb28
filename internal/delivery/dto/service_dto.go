package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Description     string `json:"description" validate:"omitempty"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
	Price           string `json:"price" validate:"required"`
}

type UpdateServiceRequest struct {
	Name            string `json:"name" validate:"omitempty,max=255"`
	Description     string `json:"description" validate:"omitempty"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=1"`
	Price           string `json:"price" validate:"omitempty"`
	IsActive        *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           string    `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
