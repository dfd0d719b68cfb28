package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// testDB builds a gorm handle that is never used to issue queries; the mocked
// repositories ignore it. It only has to survive WithContext.
func testDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockDoctorProfileRepository struct {
	findByUserIDFunc func(userID uuid.UUID) (*entity.DoctorProfile, error)
}

func (m *mockDoctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return nil
}

func (m *mockDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockDoctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	return nil, nil
}

func (m *mockDoctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return nil
}

func (m *mockDoctorProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) error {
	return nil
}

type mockServiceRepository struct {
	findByIDFunc func(id uuid.UUID) (*entity.Service, error)
}

func (m *mockServiceRepository) Create(db *gorm.DB, service *entity.Service) error { return nil }

func (m *mockServiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, nil
}

func (m *mockServiceRepository) FindAll(db *gorm.DB) ([]entity.Service, error) { return nil, nil }

func (m *mockServiceRepository) Update(db *gorm.DB, service *entity.Service) error { return nil }

func (m *mockServiceRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) { return 0, nil }

type mockShiftDefinitionRepository struct {
	findActiveFunc func() ([]entity.ShiftDefinition, error)
}

func (m *mockShiftDefinitionRepository) Create(db *gorm.DB, shift *entity.ShiftDefinition) error {
	return nil
}

func (m *mockShiftDefinitionRepository) FindByID(db *gorm.DB, id int) (*entity.ShiftDefinition, error) {
	return nil, nil
}

func (m *mockShiftDefinitionRepository) FindAll(db *gorm.DB) ([]entity.ShiftDefinition, error) {
	return nil, nil
}

func (m *mockShiftDefinitionRepository) FindActive(db *gorm.DB) ([]entity.ShiftDefinition, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc()
	}
	return nil, nil
}

func (m *mockShiftDefinitionRepository) FindActiveByName(db *gorm.DB, name entity.ShiftName) (*entity.ShiftDefinition, error) {
	return nil, nil
}

func (m *mockShiftDefinitionRepository) Update(db *gorm.DB, shift *entity.ShiftDefinition) error {
	return nil
}

type mockAbsenceRecordRepository struct {
	findApprovedForDateFunc func(doctorID uuid.UUID, date time.Time) ([]entity.AbsenceRecord, error)
}

func (m *mockAbsenceRecordRepository) Create(db *gorm.DB, absence *entity.AbsenceRecord) error {
	return nil
}

func (m *mockAbsenceRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AbsenceRecord, error) {
	return nil, nil
}

func (m *mockAbsenceRecordRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AbsenceRecord, error) {
	return nil, nil
}

func (m *mockAbsenceRecordRepository) FindByStatus(db *gorm.DB, status entity.AbsenceStatus) ([]entity.AbsenceRecord, error) {
	return nil, nil
}

func (m *mockAbsenceRecordRepository) FindApprovedForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.AbsenceRecord, error) {
	if m.findApprovedForDateFunc != nil {
		return m.findApprovedForDateFunc(doctorID, date)
	}
	return nil, nil
}

func (m *mockAbsenceRecordRepository) Update(db *gorm.DB, absence *entity.AbsenceRecord) error {
	return nil
}

type mockAppointmentRepository struct {
	findNonCancelledFunc func(doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
}

func (m *mockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (m *mockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) FindNonCancelled(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	if m.findNonCancelledFunc != nil {
		return m.findNonCancelledFunc(doctorID, date)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindNonCancelledForUpdate(tx *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) CountNonCancelledInWindow(db *gorm.DB, doctorID uuid.UUID, dateFrom, dateTo time.Time) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

func testShiftDefinitions() []entity.ShiftDefinition {
	active := true
	return []entity.ShiftDefinition{
		{Name: entity.ShiftMorning, DisplayName: "Morning Shift", StartTime: "07:00", EndTime: "12:00", DaysOfWeek: entity.Weekdays{1, 2, 3, 4, 5, 6}, IsActive: &active},
		{Name: entity.ShiftAfternoon, DisplayName: "Afternoon Shift", StartTime: "13:00", EndTime: "17:00", DaysOfWeek: entity.Weekdays{1, 2, 3, 4, 5, 6}, IsActive: &active},
		{Name: entity.ShiftEvening, DisplayName: "Evening Shift", StartTime: "18:00", EndTime: "21:00", DaysOfWeek: entity.Weekdays{1, 2, 3, 4, 5}, IsActive: &active},
	}
}

func newAvailabilityFixture(
	doctorRepo *mockDoctorProfileRepository,
	serviceRepo *mockServiceRepository,
	shiftRepo *mockShiftDefinitionRepository,
	absenceRepo *mockAbsenceRecordRepository,
	appointmentRepo *mockAppointmentRepository,
) AvailabilityUsecase {
	return NewAvailabilityUsecase(testDB(), testLogger(), shiftRepo, absenceRepo, appointmentRepo, serviceRepo, doctorRepo, nil, 30)
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	uc := newAvailabilityFixture(&mockDoctorProfileRepository{}, &mockServiceRepository{}, &mockShiftDefinitionRepository{}, &mockAbsenceRecordRepository{}, &mockAppointmentRepository{})

	_, err := uc.GetAvailability(context.Background(), uuid.New(), "05-01-2026", uuid.New())
	if err != ErrInvalidDateFormat {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestGetAvailability_DoctorNotFound(t *testing.T) {
	uc := newAvailabilityFixture(&mockDoctorProfileRepository{}, &mockServiceRepository{}, &mockShiftDefinitionRepository{}, &mockAbsenceRecordRepository{}, &mockAppointmentRepository{})

	_, err := uc.GetAvailability(context.Background(), uuid.New(), "2026-01-05", uuid.New())
	if err != ErrDoctorNotFound {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestGetAvailability_ServiceNotFound(t *testing.T) {
	doctorID := uuid.New()
	doctorRepo := &mockDoctorProfileRepository{
		findByUserIDFunc: func(userID uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: userID}, nil
		},
	}
	uc := newAvailabilityFixture(doctorRepo, &mockServiceRepository{}, &mockShiftDefinitionRepository{}, &mockAbsenceRecordRepository{}, &mockAppointmentRepository{})

	_, err := uc.GetAvailability(context.Background(), doctorID, "2026-01-05", uuid.New())
	if err != ErrServiceNotFound {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestGetAvailability_NoActiveShifts(t *testing.T) {
	active := true
	doctorRepo := &mockDoctorProfileRepository{
		findByUserIDFunc: func(userID uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: userID}, nil
		},
	}
	serviceRepo := &mockServiceRepository{
		findByIDFunc: func(id uuid.UUID) (*entity.Service, error) {
			return &entity.Service{ID: id, Name: "Consultation", DurationMinutes: 30, Price: decimal.NewFromInt(100), IsActive: &active}, nil
		},
	}
	uc := newAvailabilityFixture(doctorRepo, serviceRepo, &mockShiftDefinitionRepository{}, &mockAbsenceRecordRepository{}, &mockAppointmentRepository{})

	_, err := uc.GetAvailability(context.Background(), uuid.New(), "2026-01-05", uuid.New())
	if err != ErrSchedulingNotConfigured {
		t.Fatalf("expected ErrSchedulingNotConfigured, got %v", err)
	}
}

func TestGetAvailability_FullGrid(t *testing.T) {
	doctorID := uuid.New()
	serviceID := uuid.New()
	active := true

	doctorRepo := &mockDoctorProfileRepository{
		findByUserIDFunc: func(userID uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: userID, Specialization: "General"}, nil
		},
	}
	serviceRepo := &mockServiceRepository{
		findByIDFunc: func(id uuid.UUID) (*entity.Service, error) {
			return &entity.Service{ID: id, Name: "Extended Consultation", DurationMinutes: 45, Price: decimal.NewFromInt(150), IsActive: &active}, nil
		},
	}
	shiftRepo := &mockShiftDefinitionRepository{
		findActiveFunc: func() ([]entity.ShiftDefinition, error) {
			return testShiftDefinitions(), nil
		},
	}
	afternoon := entity.ShiftAfternoon
	absenceRepo := &mockAbsenceRecordRepository{
		findApprovedForDateFunc: func(id uuid.UUID, date time.Time) ([]entity.AbsenceRecord, error) {
			return []entity.AbsenceRecord{
				{DoctorID: id, Kind: entity.AbsenceSingleShift, DateFrom: date, ShiftName: &afternoon, Status: entity.AbsenceStatusApproved},
			}, nil
		},
	}
	appointmentRepo := &mockAppointmentRepository{
		findNonCancelledFunc: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return []entity.Appointment{
				{DoctorID: id, Date: date, StartTime: "07:00", EndTime: "07:45", Status: entity.AppointmentStatusConfirmed},
			}, nil
		},
	}

	uc := newAvailabilityFixture(doctorRepo, serviceRepo, shiftRepo, absenceRepo, appointmentRepo)

	// 2026-01-05 is a Monday
	resp, err := uc.GetAvailability(context.Background(), doctorID, "2026-01-05", serviceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.DoctorID != doctorID || resp.ServiceID != serviceID {
		t.Error("response should echo doctor and service IDs")
	}
	if resp.Date != "2026-01-05" {
		t.Errorf("expected date 2026-01-05, got %s", resp.Date)
	}
	if resp.ServiceDurationMinutes != 45 {
		t.Errorf("expected service duration 45, got %d", resp.ServiceDurationMinutes)
	}
	if resp.IntervalMinutes != 30 {
		t.Errorf("expected interval 30, got %d", resp.IntervalMinutes)
	}
	if len(resp.Slots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(resp.Slots))
	}

	states := make(map[string]string, len(resp.Slots))
	for _, s := range resp.Slots {
		states[s.Time] = s.State
	}
	if states["07:00"] != string(entity.SlotStateBooked) {
		t.Errorf("07:00 should be booked, got %s", states["07:00"])
	}
	if states["07:30"] != string(entity.SlotStateLocked) {
		t.Errorf("07:30 should be locked by the running 45-minute service, got %s", states["07:30"])
	}
	if states["08:00"] != string(entity.SlotStateAvailable) {
		t.Errorf("08:00 should be available, got %s", states["08:00"])
	}
	if states["13:00"] != string(entity.SlotStateUnavailable) {
		t.Errorf("13:00 should be unavailable during the afternoon leave, got %s", states["13:00"])
	}

	if len(resp.Shifts) != 3 {
		t.Fatalf("expected 3 shift groups, got %d", len(resp.Shifts))
	}
	if resp.Shifts[0].Name != string(entity.ShiftMorning) {
		t.Errorf("first group should be morning, got %s", resp.Shifts[0].Name)
	}
}

func TestGetAvailability_InvalidServiceDuration(t *testing.T) {
	active := true
	doctorRepo := &mockDoctorProfileRepository{
		findByUserIDFunc: func(userID uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: userID}, nil
		},
	}
	serviceRepo := &mockServiceRepository{
		findByIDFunc: func(id uuid.UUID) (*entity.Service, error) {
			return &entity.Service{ID: id, Name: "Broken", DurationMinutes: 0, IsActive: &active}, nil
		},
	}
	uc := newAvailabilityFixture(doctorRepo, serviceRepo, &mockShiftDefinitionRepository{}, &mockAbsenceRecordRepository{}, &mockAppointmentRepository{})

	_, err := uc.GetAvailability(context.Background(), uuid.New(), "2026-01-05", uuid.New())
	if err != entity.ErrInvalidServiceDuration {
		t.Fatalf("expected ErrInvalidServiceDuration, got %v", err)
	}
}
