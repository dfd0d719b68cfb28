package repository

import (
	"errors"

	"clinic-scheduling/internal/domain/entity"
	domainRepo "clinic-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type shiftDefinitionRepository struct{}

func NewShiftDefinitionRepository() domainRepo.ShiftDefinitionRepository {
	return &shiftDefinitionRepository{}
}

func (r *shiftDefinitionRepository) Create(db *gorm.DB, shift *entity.ShiftDefinition) error {
	return db.Create(shift).Error
}

func (r *shiftDefinitionRepository) FindByID(db *gorm.DB, id int) (*entity.ShiftDefinition, error) {
	var shift entity.ShiftDefinition
	err := db.Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftDefinitionRepository) FindAll(db *gorm.DB) ([]entity.ShiftDefinition, error) {
	var shifts []entity.ShiftDefinition
	err := db.Order("start_time ASC").Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftDefinitionRepository) FindActive(db *gorm.DB) ([]entity.ShiftDefinition, error) {
	var shifts []entity.ShiftDefinition
	err := db.Where("is_active = ?", true).Order("start_time ASC").Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftDefinitionRepository) FindActiveByName(db *gorm.DB, name entity.ShiftName) (*entity.ShiftDefinition, error) {
	var shift entity.ShiftDefinition
	err := db.Where("name = ? AND is_active = ?", name, true).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftDefinitionRepository) Update(db *gorm.DB, shift *entity.ShiftDefinition) error {
	return db.Save(shift).Error
}
