package converter

import (
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/entity"
)

// AbsenceToResponse converts an AbsenceRecord entity to AbsenceResponse DTO
func AbsenceToResponse(absence *entity.AbsenceRecord) *dto.AbsenceResponse {
	if absence == nil {
		return nil
	}

	response := &dto.AbsenceResponse{
		ID:        absence.ID,
		DoctorID:  absence.DoctorID,
		Kind:      string(absence.Kind),
		DateFrom:  absence.DateFrom.Format("2006-01-02"),
		Reason:    absence.Reason,
		Status:    string(absence.Status),
		CreatedAt: absence.CreatedAt,
		UpdatedAt: absence.UpdatedAt,
	}

	if absence.DateTo != nil {
		response.DateTo = absence.DateTo.Format("2006-01-02")
	}
	if absence.ShiftName != nil {
		response.ShiftName = string(*absence.ShiftName)
	}
	if absence.TimeFrom != nil {
		response.TimeFrom = *absence.TimeFrom
	}
	if absence.TimeTo != nil {
		response.TimeTo = *absence.TimeTo
	}

	return response
}

// AbsencesToResponses converts a slice of AbsenceRecord entities to slice of AbsenceResponse DTOs
func AbsencesToResponses(absences []entity.AbsenceRecord) []dto.AbsenceResponse {
	responses := make([]dto.AbsenceResponse, len(absences))
	for i, absence := range absences {
		resp := AbsenceToResponse(&absence)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
