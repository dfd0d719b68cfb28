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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeFormat           = errors.New("invalid time format, use HH:MM")
	ErrDateInPast                  = errors.New("cannot book a past date")
	ErrSlotAlreadyBooked           = errors.New("slot is already booked")
	ErrSlotLocked                  = errors.New("slot overlaps an appointment still in progress")
	ErrDoctorOnLeave               = errors.New("doctor is on approved leave")
	ErrOutsideShiftHours           = errors.New("requested time is outside the doctor's shift hours")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
)

// BookingUsecase is the only component permitted to create appointments. A
// booking request is revalidated from scratch inside a single transaction: the
// doctor's appointment rows for the date are locked, the slot grid is
// re-derived, and the insert happens under the same locks. A grid computed
// earlier by the availability path is never trusted, since it can go stale
// between display and submission.
type BookingUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) error
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	shiftRepo       repository.ShiftDefinitionRepository
	absenceRepo     repository.AbsenceRecordRepository
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	doctorRepo      repository.DoctorProfileRepository
	auditService    service.AuditService
	gridCache       *service.GridCacheService
	intervalMinutes int
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	shiftRepo repository.ShiftDefinitionRepository,
	absenceRepo repository.AbsenceRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	gridCache *service.GridCacheService,
	intervalMinutes int,
) BookingUsecase {
	if intervalMinutes <= 0 {
		intervalMinutes = service.DefaultSlotIntervalMinutes
	}
	return &bookingUsecase{
		db:              db,
		log:             log,
		shiftRepo:       shiftRepo,
		absenceRepo:     absenceRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		gridCache:       gridCache,
		intervalMinutes: intervalMinutes,
	}
}

// Book attempts to create an appointment for the logged-in patient.
//
// Flow:
//  1. Validate date/time formats and look up doctor and service
//  2. Run the booking transaction: lock doctor+date appointment rows,
//     re-derive the slot grid, verify the full requested interval, insert
//  3. On a serialization conflict or exclusion-constraint violation, retry
//     once with fresh reads; a second conflict means another request won the
//     same interval, surfaced as ErrSlotAlreadyBooked
//  4. Invalidate the cached grids for the doctor+date
func (u *bookingUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	startMinute, err := entity.MinuteOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, ErrDateInPast
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	appointment, err := u.tryBook(ctx, patientID, req.DoctorID, svc, day, startMinute)
	if isBookingConflictError(err) {
		u.log.Infof("Booking conflict for doctor %s on %s, retrying with fresh reads", req.DoctorID, req.Date)
		appointment, err = u.tryBook(ctx, patientID, req.DoctorID, svc, day, startMinute)
		if isBookingConflictError(err) {
			// Two conflicts in a row means another request committed the same
			// interval between our reads.
			err = ErrSlotAlreadyBooked
		}
	}
	if err != nil {
		return nil, err
	}

	if u.gridCache != nil {
		u.gridCache.InvalidateDoctorDate(ctx, req.DoctorID, req.Date)
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, start=%s",
		appointment.ID, req.DoctorID, req.Date, req.StartTime)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// tryBook performs one validate-and-insert attempt under a single transaction.
// The row locks taken by FindNonCancelledForUpdate serialize concurrent
// attempts for the same doctor+date; attempts for other doctors or dates
// proceed in parallel.
func (u *bookingUsecase) tryBook(ctx context.Context, patientID, doctorID uuid.UUID, svc *entity.Service, day time.Time, startMinute int) (*entity.Appointment, error) {
	var created *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shifts, err := u.shiftRepo.FindActive(tx)
		if err != nil {
			return err
		}
		if len(shifts) == 0 {
			return ErrSchedulingNotConfigured
		}

		appointments, err := u.appointmentRepo.FindNonCancelledForUpdate(tx, doctorID, day)
		if err != nil {
			return err
		}
		absences, err := u.absenceRepo.FindApprovedForDate(tx, doctorID, day)
		if err != nil {
			return err
		}

		grid, err := service.GenerateGrid(day, shifts, u.intervalMinutes)
		if err != nil {
			return err
		}
		grid, err = service.ApplyAbsences(grid, day, absences)
		if err != nil {
			return err
		}
		grid, err = service.ApplyOccupancy(grid, appointments)
		if err != nil {
			return err
		}

		endMinute := startMinute + svc.DurationMinutes
		if err := validateBookingInterval(grid, appointments, absences, shifts, day, startMinute, endMinute); err != nil {
			return err
		}

		created = &entity.Appointment{
			DoctorID:  doctorID,
			PatientID: patientID,
			ServiceID: svc.ID,
			Date:      day,
			StartTime: entity.FormatMinuteOfDay(startMinute),
			EndTime:   entity.FormatMinuteOfDay(endMinute),
			Status:    entity.AppointmentStatusPending,
		}
		if err := u.appointmentRepo.Create(tx, created); err != nil {
			return err
		}

		if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", created.ID.String(), converter.AppointmentToResponse(created)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
			// Don't fail the transaction for audit log errors
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetMyAppointments returns all appointments for the logged-in patient
func (u *bookingUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Cancel marks an appointment cancelled, freeing its interval for new
// bookings. Uses a conditional update so a double-cancel race cannot release
// the interval twice.
func (u *bookingUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}

	affected, err := u.appointmentRepo.CancelAppointment(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &patientID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), string(appointment.Status), string(entity.AppointmentStatusCancelled)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if u.gridCache != nil {
		u.gridCache.InvalidateDoctorDate(ctx, appointment.DoctorID, appointment.Date.Format("2006-01-02"))
	}

	u.log.Infof("Appointment cancelled: id=%s, doctor=%s", appointmentID, appointment.DoctorID)
	return nil
}

// validateBookingInterval checks a requested [startMinute, endMinute) interval
// against the derived grid and the raw records it was derived from. The start
// slot state decides the primary rejection; the start slot being free is not
// enough, since a long service can run into a later appointment, a later
// absence window, or past the end of the shift.
func validateBookingInterval(grid []entity.Slot, appointments []entity.Appointment, absences []entity.AbsenceRecord, shifts []entity.ShiftDefinition, day time.Time, startMinute, endMinute int) error {
	slot := findSlot(grid, entity.FormatMinuteOfDay(startMinute))
	if slot == nil {
		return ErrOutsideShiftHours
	}
	switch slot.State {
	case entity.SlotStateUnavailable:
		return ErrDoctorOnLeave
	case entity.SlotStateBooked:
		return ErrSlotAlreadyBooked
	case entity.SlotStateLocked:
		return ErrSlotLocked
	}

	for _, existing := range appointments {
		if existing.IsCancelled() {
			continue
		}
		s, e, err := existing.Interval()
		if err != nil {
			return err
		}
		if startMinute < e && endMinute > s {
			return ErrSlotAlreadyBooked
		}
	}

	blocked, err := overlapsAbsenceWindow(absences, shifts, day, startMinute, endMinute)
	if err != nil {
		return err
	}
	if blocked {
		return ErrDoctorOnLeave
	}

	fits, err := intervalFitsShift(shifts, day, startMinute, endMinute)
	if err != nil {
		return err
	}
	if !fits {
		return ErrOutsideShiftHours
	}

	return nil
}

func findSlot(grid []entity.Slot, clock string) *entity.Slot {
	for i := range grid {
		if grid[i].Time == clock {
			return &grid[i]
		}
	}
	return nil
}

// intervalFitsShift reports whether the interval fits inside a single active
// shift window on the given weekday. Rejects bookings whose tail would run
// past the shift end even when nothing else occupies that time.
func intervalFitsShift(shifts []entity.ShiftDefinition, day time.Time, startMinute, endMinute int) (bool, error) {
	for _, shift := range shifts {
		if !shift.Active() || !shift.AppliesTo(day.Weekday()) {
			continue
		}
		s, err := entity.MinuteOfDay(shift.StartTime)
		if err != nil {
			return false, err
		}
		e, err := entity.MinuteOfDay(shift.EndTime)
		if err != nil {
			return false, err
		}
		if startMinute >= s && endMinute <= e {
			return true, nil
		}
	}
	return false, nil
}

// overlapsAbsenceWindow checks the requested interval against every approved
// absence window on the date. Full-day and multi-day records block the whole
// day; single-shift records block that shift's window; time-range records
// block their [from, to) interval.
func overlapsAbsenceWindow(absences []entity.AbsenceRecord, shifts []entity.ShiftDefinition, day time.Time, startMinute, endMinute int) (bool, error) {
	for _, absence := range absences {
		if !absence.IsApproved() {
			continue
		}
		switch absence.Kind {
		case entity.AbsenceFullDay, entity.AbsenceMultiDay:
			if absence.CoversDate(day) {
				return true, nil
			}
		case entity.AbsenceSingleShift:
			if !absence.SameDay(day) || absence.ShiftName == nil {
				continue
			}
			for _, shift := range shifts {
				if shift.Name != *absence.ShiftName || !shift.Active() {
					continue
				}
				s, err := entity.MinuteOfDay(shift.StartTime)
				if err != nil {
					return false, err
				}
				e, err := entity.MinuteOfDay(shift.EndTime)
				if err != nil {
					return false, err
				}
				if startMinute < e && endMinute > s {
					return true, nil
				}
			}
		case entity.AbsenceTimeRange:
			if !absence.SameDay(day) || absence.TimeFrom == nil || absence.TimeTo == nil {
				continue
			}
			s, err := entity.MinuteOfDay(*absence.TimeFrom)
			if err != nil {
				return false, err
			}
			e, err := entity.MinuteOfDay(*absence.TimeTo)
			if err != nil {
				return false, err
			}
			if startMinute < e && endMinute > s {
				return true, nil
			}
		}
	}
	return false, nil
}

// isBookingConflictError checks for a PostgreSQL serialization failure (40001)
// or exclusion-constraint violation (23P01). Both mean a concurrent booking
// raced us for the same interval.
func isBookingConflictError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "23P01"
	}
	return false
}
