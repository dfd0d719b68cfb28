package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AbsenceKind is the granularity of a doctor leave record
type AbsenceKind string

const (
	AbsenceFullDay     AbsenceKind = "full_day"
	AbsenceMultiDay    AbsenceKind = "multi_day"
	AbsenceSingleShift AbsenceKind = "single_shift"
	AbsenceTimeRange   AbsenceKind = "time_range"
)

// AbsenceStatus is the approval state of a leave request.
// Only approved records affect scheduling.
type AbsenceStatus string

const (
	AbsenceStatusPending  AbsenceStatus = "pending"
	AbsenceStatusApproved AbsenceStatus = "approved"
	AbsenceStatusRejected AbsenceStatus = "rejected"
)

var (
	ErrInvalidAbsenceKind      = errors.New("unknown absence kind")
	ErrAbsenceMissingDateTo    = errors.New("multi-day absence requires date_to on or after date_from")
	ErrAbsenceMissingShift     = errors.New("single-shift absence requires a shift name")
	ErrAbsenceMissingTimeRange = errors.New("time-range absence requires time_from before time_to")
)

// AbsenceRecord represents a doctor leave request at one of four granularities.
// The optional fields form a tagged union keyed by Kind; Validate keeps the
// four-way branch exhaustive.
type AbsenceRecord struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Kind      AbsenceKind   `gorm:"type:varchar(20);not null" json:"kind"`
	DateFrom  time.Time     `gorm:"type:date;not null;index" json:"date_from"`
	DateTo    *time.Time    `gorm:"type:date" json:"date_to,omitempty"`
	ShiftName *ShiftName    `gorm:"type:varchar(20)" json:"shift_name,omitempty"`
	TimeFrom  *string       `gorm:"type:time" json:"time_from,omitempty"` // Format: HH:MM
	TimeTo    *string       `gorm:"type:time" json:"time_to,omitempty"`   // Format: HH:MM
	Reason    string        `gorm:"type:text" json:"reason,omitempty"`
	Status    AbsenceStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AbsenceRecord) TableName() string {
	return "absence_records"
}

// IsApproved checks if the record affects scheduling
func (a *AbsenceRecord) IsApproved() bool {
	return a.Status == AbsenceStatusApproved
}

// Validate enforces the per-kind field requirements
func (a *AbsenceRecord) Validate() error {
	if a.DateFrom.IsZero() {
		return errors.New("absence requires date_from")
	}

	switch a.Kind {
	case AbsenceFullDay:
		return nil
	case AbsenceMultiDay:
		if a.DateTo == nil || a.DateTo.Before(a.DateFrom) {
			return ErrAbsenceMissingDateTo
		}
		return nil
	case AbsenceSingleShift:
		if a.ShiftName == nil || *a.ShiftName == "" {
			return ErrAbsenceMissingShift
		}
		return nil
	case AbsenceTimeRange:
		if a.TimeFrom == nil || a.TimeTo == nil {
			return ErrAbsenceMissingTimeRange
		}
		from, err := MinuteOfDay(*a.TimeFrom)
		if err != nil {
			return fmt.Errorf("time_from: %w", err)
		}
		to, err := MinuteOfDay(*a.TimeTo)
		if err != nil {
			return fmt.Errorf("time_to: %w", err)
		}
		if from >= to {
			return ErrAbsenceMissingTimeRange
		}
		return nil
	default:
		return ErrInvalidAbsenceKind
	}
}

// CoversDate checks whether a full-day or multi-day record contains the given date
func (a *AbsenceRecord) CoversDate(date time.Time) bool {
	from := truncateToDate(a.DateFrom)
	to := from
	if a.Kind == AbsenceMultiDay && a.DateTo != nil {
		to = truncateToDate(*a.DateTo)
	}
	d := truncateToDate(date)
	return !d.Before(from) && !d.After(to)
}

// SameDay checks whether the record's date_from falls on the given date
func (a *AbsenceRecord) SameDay(date time.Time) bool {
	return truncateToDate(a.DateFrom).Equal(truncateToDate(date))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
