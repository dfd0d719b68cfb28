package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-scheduling/internal/converter"
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/delivery/http/middleware"
	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/domain/repository"
	"clinic-scheduling/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrShiftNotFound     = errors.New("shift definition not found")
	ErrActiveShiftExists = errors.New("an active shift definition with this name already exists")
)

// ShiftUsecase manages the recurring shift definitions the grid is built from.
// At most one active definition may exist per shift name; activation of a new
// window requires deactivating the old one first.
type ShiftUsecase interface {
	CreateShift(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	GetShift(ctx context.Context, shiftID int) (*dto.ShiftResponse, error)
	GetAllShifts(ctx context.Context) (*dto.ShiftListResponse, error)
	UpdateShift(ctx context.Context, shiftID int, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	DeactivateShift(ctx context.Context, shiftID int) error
}

type shiftUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	shiftRepo    repository.ShiftDefinitionRepository
	auditService service.AuditService
	gridCache    *service.GridCacheService
}

func NewShiftUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	shiftRepo repository.ShiftDefinitionRepository,
	auditService service.AuditService,
	gridCache *service.GridCacheService,
) ShiftUsecase {
	return &shiftUsecase{
		db:           db,
		log:          log,
		shiftRepo:    shiftRepo,
		auditService: auditService,
		gridCache:    gridCache,
	}
}

func (u *shiftUsecase) CreateShift(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	active := true
	shift := &entity.ShiftDefinition{
		Name:        entity.ShiftName(req.Name),
		DisplayName: req.DisplayName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DaysOfWeek:  entity.Weekdays(req.DaysOfWeek),
		IsActive:    &active,
	}
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	existing, err := u.shiftRepo.FindActiveByName(u.db.WithContext(ctx), shift.Name)
	if err != nil {
		u.log.Warnf("Failed to check active shift for %s: %+v", shift.Name, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveShiftExists
	}

	if err := u.shiftRepo.Create(u.db.WithContext(ctx), shift); err != nil {
		u.log.Warnf("Failed to create shift: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionShiftCreate, "shift_definition", strconv.Itoa(shift.ID), converter.ShiftToResponse(shift)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.invalidateGrids(ctx)
	return converter.ShiftToResponse(shift), nil
}

func (u *shiftUsecase) GetShift(ctx context.Context, shiftID int) (*dto.ShiftResponse, error) {
	shift, err := u.shiftRepo.FindByID(u.db.WithContext(ctx), shiftID)
	if err != nil {
		u.log.Warnf("Failed to find shift %d: %+v", shiftID, err)
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	return converter.ShiftToResponse(shift), nil
}

func (u *shiftUsecase) GetAllShifts(ctx context.Context) (*dto.ShiftListResponse, error) {
	shifts, err := u.shiftRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find shifts: %+v", err)
		return nil, err
	}

	return &dto.ShiftListResponse{
		Shifts: converter.ShiftsToResponses(shifts),
		Total:  len(shifts),
	}, nil
}

func (u *shiftUsecase) UpdateShift(ctx context.Context, shiftID int, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := u.shiftRepo.FindByID(u.db.WithContext(ctx), shiftID)
	if err != nil {
		u.log.Warnf("Failed to find shift %d: %+v", shiftID, err)
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}

	if req.DisplayName != "" {
		shift.DisplayName = req.DisplayName
	}
	if req.StartTime != "" {
		shift.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		shift.EndTime = req.EndTime
	}
	if req.DaysOfWeek != nil {
		shift.DaysOfWeek = entity.Weekdays(req.DaysOfWeek)
	}
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	if err := u.shiftRepo.Update(u.db.WithContext(ctx), shift); err != nil {
		u.log.Warnf("Failed to update shift %d: %+v", shiftID, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionShiftUpdate, "shift_definition", strconv.Itoa(shift.ID), nil, converter.ShiftToResponse(shift)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.invalidateGrids(ctx)
	return converter.ShiftToResponse(shift), nil
}

func (u *shiftUsecase) DeactivateShift(ctx context.Context, shiftID int) error {
	shift, err := u.shiftRepo.FindByID(u.db.WithContext(ctx), shiftID)
	if err != nil {
		u.log.Warnf("Failed to find shift %d: %+v", shiftID, err)
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}

	inactive := false
	shift.IsActive = &inactive
	if err := u.shiftRepo.Update(u.db.WithContext(ctx), shift); err != nil {
		u.log.Warnf("Failed to deactivate shift %d: %+v", shiftID, err)
		return err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionShiftDeactivate, "shift_definition", strconv.Itoa(shift.ID), true, false); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.invalidateGrids(ctx)
	return nil
}

// Shift windows feed every doctor's grid, so any change drops the whole cache
func (u *shiftUsecase) invalidateGrids(ctx context.Context) {
	if u.gridCache != nil {
		u.gridCache.InvalidateAll(ctx)
	}
}
