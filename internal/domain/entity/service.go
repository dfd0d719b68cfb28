package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidServiceDuration is returned when a service duration is not positive
var ErrInvalidServiceDuration = errors.New("service duration must be a positive number of minutes")

// Service represents a bookable medical service from the clinic catalog.
// The scheduling engine only consumes DurationMinutes; the rest is
// catalog/presentation data.
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive        *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

// Validate enforces the catalog invariants
func (s *Service) Validate() error {
	if s.DurationMinutes <= 0 {
		return ErrInvalidServiceDuration
	}
	return nil
}
