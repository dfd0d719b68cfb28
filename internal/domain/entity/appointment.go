package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a confirmed interval of a doctor's time.
// EndTime is computed from the service duration once at booking time and
// persisted; availability never recomputes it.
//
// Invariant: for a fixed doctor and date, non-cancelled appointments have
// pairwise-disjoint [StartTime, EndTime) intervals. Enforced by the booking
// transaction and backstopped by the appointments_no_overlap exclusion
// constraint.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ServiceID uuid.UUID         `gorm:"type:uuid;not null" json:"service_id"`
	Date      time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	StartTime string            `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime   string            `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Service Service        `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment no longer occupies its interval
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// Interval returns the appointment window as minutes since midnight
func (a *Appointment) Interval() (start, end int, err error) {
	start, err = MinuteOfDay(a.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = MinuteOfDay(a.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
