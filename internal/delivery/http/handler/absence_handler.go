package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/usecase"
	"clinic-scheduling/pkg/response"
	"clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AbsenceHandler struct {
	absenceUsecase usecase.AbsenceUsecase
	validator      *validator.CustomValidator
}

func NewAbsenceHandler(absenceUsecase usecase.AbsenceUsecase, validator *validator.CustomValidator) *AbsenceHandler {
	return &AbsenceHandler{
		absenceUsecase: absenceUsecase,
		validator:      validator,
	}
}

func (h *AbsenceHandler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	absence, err := h.absenceUsecase.CreateAbsence(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidAbsenceDates):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case isAbsenceValidationError(err):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create absence")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Absence request created successfully", absence)
}

func (h *AbsenceHandler) GetAbsencesByDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctor_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	absences, err := h.absenceUsecase.GetAbsencesByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get absences")
		return
	}

	response.Success(w, http.StatusOK, "Absences retrieved successfully", absences)
}

func (h *AbsenceHandler) GetPendingAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.absenceUsecase.GetPendingAbsences(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pending absences")
		return
	}

	response.Success(w, http.StatusOK, "Pending absences retrieved successfully", absences)
}

func (h *AbsenceHandler) ApproveAbsence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid absence ID", nil)
		return
	}

	decision, err := h.absenceUsecase.ApproveAbsence(r.Context(), absenceID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAbsenceNotFound):
			response.NotFound(w, "Absence record not found")
		case errors.Is(err, usecase.ErrAbsenceNotPending):
			response.Error(w, http.StatusConflict, "Absence record is not pending", nil)
		case isAbsenceValidationError(err):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to approve absence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Absence approved successfully", decision)
}

func (h *AbsenceHandler) RejectAbsence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid absence ID", nil)
		return
	}

	absence, err := h.absenceUsecase.RejectAbsence(r.Context(), absenceID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAbsenceNotFound):
			response.NotFound(w, "Absence record not found")
		case errors.Is(err, usecase.ErrAbsenceNotPending):
			response.Error(w, http.StatusConflict, "Absence record is not pending", nil)
		default:
			response.InternalServerError(w, "Failed to reject absence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Absence rejected successfully", absence)
}

// isAbsenceValidationError reports whether the error came from the per-kind
// field validation on an absence record.
func isAbsenceValidationError(err error) bool {
	return errors.Is(err, entity.ErrInvalidAbsenceKind) ||
		errors.Is(err, entity.ErrAbsenceMissingDateTo) ||
		errors.Is(err, entity.ErrAbsenceMissingShift) ||
		errors.Is(err, entity.ErrAbsenceMissingTimeRange) ||
		errors.Is(err, entity.ErrInvalidShiftName) ||
		errors.Is(err, entity.ErrInvalidTimeOfDay)
}
