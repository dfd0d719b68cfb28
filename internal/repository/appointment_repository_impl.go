package repository

import (
	"errors"
	"time"

	"clinic-scheduling/internal/domain/entity"
	domainRepo "clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Service").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").Preload("Service").
		Where("patient_id = ?", patientID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindNonCancelled(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND date = ? AND status != ?", doctorID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindNonCancelledForUpdate locks the doctor's appointment rows for the date
// with SELECT ... FOR UPDATE. Concurrent bookings for the same doctor+date
// serialize on these locks; bookings for other doctors or dates do not block.
// Must be called inside a transaction.
func (r *appointmentRepository) FindNonCancelledForUpdate(tx *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND date = ? AND status != ?", doctorID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountNonCancelledInWindow(db *gorm.DB, doctorID uuid.UUID, dateFrom, dateTo time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date >= ? AND date <= ? AND status != ?",
			doctorID, dateFrom.Format("2006-01-02"), dateTo.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

// CancelAppointment atomically cancels an appointment ONLY if it's not already
// cancelled. Returns affected rows: 1 = success, 0 = already cancelled
// (prevents double-cancel race).
func (r *appointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
