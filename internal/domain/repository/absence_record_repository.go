package repository

import (
	"time"

	"clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbsenceRecordRepository interface {
	Create(db *gorm.DB, absence *entity.AbsenceRecord) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AbsenceRecord, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AbsenceRecord, error)
	FindByStatus(db *gorm.DB, status entity.AbsenceStatus) ([]entity.AbsenceRecord, error)
	FindApprovedForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.AbsenceRecord, error)
	Update(db *gorm.DB, absence *entity.AbsenceRecord) error
}
