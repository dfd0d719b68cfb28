package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ShiftName identifies a recurring daily work window
type ShiftName string

const (
	ShiftMorning   ShiftName = "morning"
	ShiftAfternoon ShiftName = "afternoon"
	ShiftEvening   ShiftName = "evening"
)

var (
	ErrInvalidShiftName   = errors.New("shift name must be morning, afternoon or evening")
	ErrInvalidShiftWindow = errors.New("shift start time must be before end time")
	ErrInvalidWeekday     = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// Weekdays is the set of weekdays a shift recurs on, stored as JSONB.
// 0 = Sunday .. 6 = Saturday, matching time.Weekday.
type Weekdays []int

// Value implements driver.Valuer for GORM JSONB support
func (w Weekdays) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for GORM JSONB support
func (w *Weekdays) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, w)
}

// Contains checks whether the set includes the given weekday
func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == int(day) {
			return true
		}
	}
	return false
}

// ShiftDefinition represents a named recurring work window (e.g. morning 07:00-12:00
// on Mon-Sat). At most one active definition may exist per shift name.
type ShiftDefinition struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        ShiftName `gorm:"type:varchar(20);not null;index" json:"name"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	StartTime   string    `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	DaysOfWeek  Weekdays  `gorm:"type:jsonb;not null" json:"days_of_week"`
	IsActive    *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftDefinition) TableName() string {
	return "shift_definitions"
}

// Active reports whether the definition participates in grid generation
func (s *ShiftDefinition) Active() bool {
	return s.IsActive != nil && *s.IsActive
}

// AppliesTo checks whether the shift recurs on the given weekday
func (s *ShiftDefinition) AppliesTo(day time.Weekday) bool {
	return s.DaysOfWeek.Contains(day)
}

// Validate enforces the shift invariants before the definition is persisted
func (s *ShiftDefinition) Validate() error {
	switch s.Name {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
	default:
		return ErrInvalidShiftName
	}

	start, err := MinuteOfDay(s.StartTime)
	if err != nil {
		return err
	}
	end, err := MinuteOfDay(s.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidShiftWindow
	}

	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidWeekday
		}
	}

	return nil
}
