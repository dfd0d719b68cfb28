package repository

import (
	"clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type ShiftDefinitionRepository interface {
	Create(db *gorm.DB, shift *entity.ShiftDefinition) error
	FindByID(db *gorm.DB, id int) (*entity.ShiftDefinition, error)
	FindAll(db *gorm.DB) ([]entity.ShiftDefinition, error)
	FindActive(db *gorm.DB) ([]entity.ShiftDefinition, error)
	FindActiveByName(db *gorm.DB, name entity.ShiftName) (*entity.ShiftDefinition, error)
	Update(db *gorm.DB, shift *entity.ShiftDefinition) error
}
