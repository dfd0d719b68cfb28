package handler

import (
	"net/http"

	"clinic-scheduling/internal/usecase"
	"clinic-scheduling/pkg/response"

	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability handles the slot grid query
// @Summary Get doctor availability
// @Description Get the slot availability grid for a doctor, date and service
// @Tags Availability
// @Produce json
// @Param doctor_id query string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_id query string true "Service ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := uuid.Parse(query.Get("doctor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	serviceID, err := uuid.Parse(query.Get("service_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	date := query.Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Date is required", nil)
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID, date, serviceID)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrSchedulingNotConfigured:
			response.NotFound(w, "No active shift definitions configured")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
