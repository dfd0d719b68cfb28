package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/usecase"

	"github.com/google/uuid"
)

type mockAvailabilityUsecase struct {
	getAvailabilityFunc func(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID) (*dto.AvailabilityResponse, error)
}

func (m *mockAvailabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID) (*dto.AvailabilityResponse, error) {
	if m.getAvailabilityFunc != nil {
		return m.getAvailabilityFunc(ctx, doctorID, date, serviceID)
	}
	return nil, nil
}

func availabilityRequest(date string) *http.Request {
	return httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?doctor_id="+uuid.NewString()+"&service_id="+uuid.NewString()+"&date="+date, nil)
}

func TestGetAvailability_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"doctor not found", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"service not found", usecase.ErrServiceNotFound, http.StatusNotFound},
		{"scheduling not configured", usecase.ErrSchedulingNotConfigured, http.StatusNotFound},
		{"invalid date format", usecase.ErrInvalidDateFormat, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAvailabilityHandler(&mockAvailabilityUsecase{
				getAvailabilityFunc: func(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID) (*dto.AvailabilityResponse, error) {
					return nil, tt.usecaseErr
				},
			})

			rr := httptest.NewRecorder()
			h.GetAvailability(rr, availabilityRequest("2026-01-05"))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetAvailability_MissingParams(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityUsecase{})

	rr := httptest.NewRecorder()
	h.GetAvailability(rr, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-01-05", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing doctor_id should be a bad request, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.GetAvailability(rr, availabilityRequest(""))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing date should be a bad request, got %d", rr.Code)
	}
}
