package repository

import (
	"time"

	"clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindNonCancelled(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindNonCancelledForUpdate(tx *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	CountNonCancelledInWindow(db *gorm.DB, doctorID uuid.UUID, dateFrom, dateTo time.Time) (int64, error)
	CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error)
}
