package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling/internal/converter"
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/delivery/http/middleware"
	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/domain/repository"
	"clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAbsenceNotFound     = errors.New("absence record not found")
	ErrAbsenceNotPending   = errors.New("absence record is not pending")
	ErrInvalidAbsenceDates = errors.New("invalid absence date format, use YYYY-MM-DD")
)

// AbsenceUsecase manages doctor leave requests. Only approved records reach
// the scheduling engine; approval is the moment a record starts blocking
// slots, so it also invalidates the doctor's cached grids.
type AbsenceUsecase interface {
	CreateAbsence(ctx context.Context, req *dto.CreateAbsenceRequest) (*dto.AbsenceResponse, error)
	GetAbsencesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AbsenceListResponse, error)
	GetPendingAbsences(ctx context.Context) (*dto.AbsenceListResponse, error)
	ApproveAbsence(ctx context.Context, absenceID uuid.UUID) (*dto.AbsenceDecisionResponse, error)
	RejectAbsence(ctx context.Context, absenceID uuid.UUID) (*dto.AbsenceResponse, error)
}

type absenceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	absenceRepo     repository.AbsenceRecordRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	auditService    service.AuditService
	gridCache       *service.GridCacheService
}

func NewAbsenceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	absenceRepo repository.AbsenceRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	gridCache *service.GridCacheService,
) AbsenceUsecase {
	return &absenceUsecase{
		db:              db,
		log:             log,
		absenceRepo:     absenceRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		gridCache:       gridCache,
	}
}

func (u *absenceUsecase) CreateAbsence(ctx context.Context, req *dto.CreateAbsenceRequest) (*dto.AbsenceResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return nil, ErrInvalidAbsenceDates
	}
	var dateTo *time.Time
	if req.DateTo != "" {
		parsed, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, ErrInvalidAbsenceDates
		}
		dateTo = &parsed
	}

	absence := &entity.AbsenceRecord{
		DoctorID: req.DoctorID,
		Kind:     entity.AbsenceKind(req.Kind),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Reason:   req.Reason,
		Status:   entity.AbsenceStatusPending,
	}
	if req.ShiftName != "" {
		name := entity.ShiftName(req.ShiftName)
		absence.ShiftName = &name
	}
	if req.TimeFrom != "" {
		absence.TimeFrom = &req.TimeFrom
	}
	if req.TimeTo != "" {
		absence.TimeTo = &req.TimeTo
	}

	// Malformed records are rejected before they can ever reach the grid
	if err := absence.Validate(); err != nil {
		return nil, err
	}

	if err := u.absenceRepo.Create(u.db.WithContext(ctx), absence); err != nil {
		u.log.Warnf("Failed to create absence: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionAbsenceCreate, "absence_record", absence.ID.String(), converter.AbsenceToResponse(absence)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.AbsenceToResponse(absence), nil
}

func (u *absenceUsecase) GetAbsencesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AbsenceListResponse, error) {
	absences, err := u.absenceRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find absences for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AbsenceListResponse{
		Absences: converter.AbsencesToResponses(absences),
		Total:    len(absences),
	}, nil
}

func (u *absenceUsecase) GetPendingAbsences(ctx context.Context) (*dto.AbsenceListResponse, error) {
	absences, err := u.absenceRepo.FindByStatus(u.db.WithContext(ctx), entity.AbsenceStatusPending)
	if err != nil {
		u.log.Warnf("Failed to find pending absences: %+v", err)
		return nil, err
	}

	return &dto.AbsenceListResponse{
		Absences: converter.AbsencesToResponses(absences),
		Total:    len(absences),
	}, nil
}

// ApproveAbsence marks a pending record approved. Appointments that already
// exist inside the window are left untouched; the response carries their count
// so clinic staff can reschedule them explicitly.
func (u *absenceUsecase) ApproveAbsence(ctx context.Context, absenceID uuid.UUID) (*dto.AbsenceDecisionResponse, error) {
	absence, err := u.setStatus(ctx, absenceID, entity.AbsenceStatusApproved, entity.AuditActionAbsenceApprove)
	if err != nil {
		return nil, err
	}

	windowEnd := absence.DateFrom
	if absence.DateTo != nil {
		windowEnd = *absence.DateTo
	}
	conflicting, err := u.appointmentRepo.CountNonCancelledInWindow(u.db.WithContext(ctx), absence.DoctorID, absence.DateFrom, windowEnd)
	if err != nil {
		u.log.Warnf("Failed to count conflicting appointments for absence %s: %+v", absenceID, err)
		conflicting = 0
	}

	if u.gridCache != nil {
		u.gridCache.InvalidateDoctor(ctx, absence.DoctorID)
	}

	return &dto.AbsenceDecisionResponse{
		Absence:                 *converter.AbsenceToResponse(absence),
		ConflictingAppointments: conflicting,
	}, nil
}

func (u *absenceUsecase) RejectAbsence(ctx context.Context, absenceID uuid.UUID) (*dto.AbsenceResponse, error) {
	absence, err := u.setStatus(ctx, absenceID, entity.AbsenceStatusRejected, entity.AuditActionAbsenceReject)
	if err != nil {
		return nil, err
	}
	return converter.AbsenceToResponse(absence), nil
}

func (u *absenceUsecase) setStatus(ctx context.Context, absenceID uuid.UUID, status entity.AbsenceStatus, auditAction string) (*entity.AbsenceRecord, error) {
	absence, err := u.absenceRepo.FindByID(u.db.WithContext(ctx), absenceID)
	if err != nil {
		u.log.Warnf("Failed to find absence %s: %+v", absenceID, err)
		return nil, err
	}
	if absence == nil {
		return nil, ErrAbsenceNotFound
	}
	if absence.Status != entity.AbsenceStatusPending {
		return nil, ErrAbsenceNotPending
	}

	// Approval re-runs the kind validation: a record that predates a rule
	// change must not slip into the grid malformed
	if status == entity.AbsenceStatusApproved {
		if err := absence.Validate(); err != nil {
			return nil, err
		}
	}

	oldStatus := absence.Status
	absence.Status = status
	if err := u.absenceRepo.Update(u.db.WithContext(ctx), absence); err != nil {
		u.log.Warnf("Failed to update absence %s: %+v", absenceID, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &userID, auditAction, "absence_record", absence.ID.String(), string(oldStatus), string(status)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return absence, nil
}
