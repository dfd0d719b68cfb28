package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/usecase"
	"clinic-scheduling/pkg/response"
	"clinic-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type ShiftHandler struct {
	shiftUsecase usecase.ShiftUsecase
	validator    *validator.CustomValidator
}

func NewShiftHandler(shiftUsecase usecase.ShiftUsecase, validator *validator.CustomValidator) *ShiftHandler {
	return &ShiftHandler{
		shiftUsecase: shiftUsecase,
		validator:    validator,
	}
}

func (h *ShiftHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.shiftUsecase.CreateShift(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrActiveShiftExists):
			response.Error(w, http.StatusConflict, "An active shift with this name already exists", nil)
		case isShiftValidationError(err):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create shift")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Shift created successfully", shift)
}

func (h *ShiftHandler) GetShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := parseShiftID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid shift ID", nil)
		return
	}

	shift, err := h.shiftUsecase.GetShift(r.Context(), shiftID)
	if err != nil {
		switch err {
		case usecase.ErrShiftNotFound:
			response.NotFound(w, "Shift not found")
		default:
			response.InternalServerError(w, "Failed to get shift")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift retrieved successfully", shift)
}

func (h *ShiftHandler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftUsecase.GetAllShifts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get shifts")
		return
	}

	response.Success(w, http.StatusOK, "Shifts retrieved successfully", shifts)
}

func (h *ShiftHandler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := parseShiftID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid shift ID", nil)
		return
	}

	var req dto.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.shiftUsecase.UpdateShift(r.Context(), shiftID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrShiftNotFound):
			response.NotFound(w, "Shift not found")
		case isShiftValidationError(err):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update shift")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift updated successfully", shift)
}

func (h *ShiftHandler) DeactivateShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := parseShiftID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid shift ID", nil)
		return
	}

	if err := h.shiftUsecase.DeactivateShift(r.Context(), shiftID); err != nil {
		switch err {
		case usecase.ErrShiftNotFound:
			response.NotFound(w, "Shift not found")
		default:
			response.InternalServerError(w, "Failed to deactivate shift")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift deactivated successfully", nil)
}

func parseShiftID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func isShiftValidationError(err error) bool {
	return errors.Is(err, entity.ErrInvalidShiftName) ||
		errors.Is(err, entity.ErrInvalidShiftWindow) ||
		errors.Is(err, entity.ErrInvalidWeekday) ||
		errors.Is(err, entity.ErrInvalidTimeOfDay)
}
