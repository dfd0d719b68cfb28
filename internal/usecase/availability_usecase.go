package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling/internal/converter"
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/repository"
	"clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound         = errors.New("service not found")
	ErrSchedulingNotConfigured = errors.New("scheduling not configured")
)

// AvailabilityUsecase computes the slot grid offered to patients for a doctor,
// date and service. This is the only read entry point for availability: it is
// side-effect free and re-derives everything from persisted state, so results
// may be cached and requests retried freely.
type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	shiftRepo       repository.ShiftDefinitionRepository
	absenceRepo     repository.AbsenceRecordRepository
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	doctorRepo      repository.DoctorProfileRepository
	gridCache       *service.GridCacheService
	intervalMinutes int
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	shiftRepo repository.ShiftDefinitionRepository,
	absenceRepo repository.AbsenceRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorProfileRepository,
	gridCache *service.GridCacheService,
	intervalMinutes int,
) AvailabilityUsecase {
	if intervalMinutes <= 0 {
		intervalMinutes = service.DefaultSlotIntervalMinutes
	}
	return &availabilityUsecase{
		db:              db,
		log:             log,
		shiftRepo:       shiftRepo,
		absenceRepo:     absenceRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		doctorRepo:      doctorRepo,
		gridCache:       gridCache,
		intervalMinutes: intervalMinutes,
	}
}

// GetAvailability orchestrates the read path in fixed precedence order:
// shift calendar, then absences, then occupancy. The grouped result reflects
// persisted state at the moment of the snapshot reads; the booking path never
// trusts it and revalidates under its own transaction.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if u.gridCache != nil {
		var cached dto.AvailabilityResponse
		if u.gridCache.Get(ctx, doctorID, date, serviceID, &cached) {
			return &cached, nil
		}
	}

	shifts, err := u.shiftRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load shift definitions: %+v", err)
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, ErrSchedulingNotConfigured
	}

	absences, err := u.absenceRepo.FindApprovedForDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load absences for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindNonCancelled(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	grid, err := service.GenerateGrid(day, shifts, u.intervalMinutes)
	if err != nil {
		u.log.Warnf("Failed to generate slot grid: %+v", err)
		return nil, err
	}
	grid, err = service.ApplyAbsences(grid, day, absences)
	if err != nil {
		u.log.Warnf("Failed to apply absences to slot grid: %+v", err)
		return nil, err
	}
	grid, err = service.ApplyOccupancy(grid, appointments)
	if err != nil {
		u.log.Warnf("Failed to apply occupancy to slot grid: %+v", err)
		return nil, err
	}

	response := &dto.AvailabilityResponse{
		DoctorID:               doctorID,
		Date:                   day.Format("2006-01-02"),
		ServiceID:              serviceID,
		ServiceDurationMinutes: svc.DurationMinutes,
		IntervalMinutes:        u.intervalMinutes,
		Slots:                  converter.SlotsToResponses(grid),
		Shifts:                 converter.SlotsToShiftGroups(grid, shifts),
	}

	if u.gridCache != nil {
		u.gridCache.Store(ctx, doctorID, date, serviceID, response)
	}

	return response, nil
}
