package converter

import (
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/entity"
)

// ShiftToResponse converts a ShiftDefinition entity to ShiftResponse DTO
func ShiftToResponse(shift *entity.ShiftDefinition) *dto.ShiftResponse {
	if shift == nil {
		return nil
	}

	return &dto.ShiftResponse{
		ID:          shift.ID,
		Name:        string(shift.Name),
		DisplayName: shift.DisplayName,
		StartTime:   shift.StartTime,
		EndTime:     shift.EndTime,
		DaysOfWeek:  []int(shift.DaysOfWeek),
		IsActive:    shift.Active(),
		CreatedAt:   shift.CreatedAt,
		UpdatedAt:   shift.UpdatedAt,
	}
}

// ShiftsToResponses converts a slice of ShiftDefinition entities to slice of ShiftResponse DTOs
func ShiftsToResponses(shifts []entity.ShiftDefinition) []dto.ShiftResponse {
	responses := make([]dto.ShiftResponse, len(shifts))
	for i, shift := range shifts {
		resp := ShiftToResponse(&shift)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
