package repository

import (
	"errors"
	"time"

	"clinic-scheduling/internal/domain/entity"
	domainRepo "clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type absenceRecordRepository struct{}

func NewAbsenceRecordRepository() domainRepo.AbsenceRecordRepository {
	return &absenceRecordRepository{}
}

func (r *absenceRecordRepository) Create(db *gorm.DB, absence *entity.AbsenceRecord) error {
	return db.Create(absence).Error
}

func (r *absenceRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AbsenceRecord, error) {
	var absence entity.AbsenceRecord
	err := db.Where("id = ?", id).First(&absence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &absence, nil
}

func (r *absenceRecordRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AbsenceRecord, error) {
	var absences []entity.AbsenceRecord
	err := db.Where("doctor_id = ?", doctorID).Order("date_from DESC").Find(&absences).Error
	if err != nil {
		return nil, err
	}
	return absences, nil
}

func (r *absenceRecordRepository) FindByStatus(db *gorm.DB, status entity.AbsenceStatus) ([]entity.AbsenceRecord, error) {
	var absences []entity.AbsenceRecord
	err := db.Preload("Doctor.User").Where("status = ?", status).Order("created_at ASC").Find(&absences).Error
	if err != nil {
		return nil, err
	}
	return absences, nil
}

// FindApprovedForDate returns approved absences that can affect the given date:
// single-day records on the date itself plus multi-day records whose interval
// contains it.
func (r *absenceRecordRepository) FindApprovedForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.AbsenceRecord, error) {
	var absences []entity.AbsenceRecord
	day := date.Format("2006-01-02")
	err := db.
		Where("doctor_id = ? AND status = ?", doctorID, entity.AbsenceStatusApproved).
		Where("date_from = ? OR (kind = ? AND date_from <= ? AND date_to >= ?)",
			day, entity.AbsenceMultiDay, day, day).
		Find(&absences).Error
	if err != nil {
		return nil, err
	}
	return absences, nil
}

func (r *absenceRecordRepository) Update(db *gorm.DB, absence *entity.AbsenceRecord) error {
	return db.Save(absence).Error
}
