package converter

import (
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/domain/entity"
)

// SlotsToResponses converts computed grid slots to SlotResponse DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Time:      slot.Time,
			ShiftName: string(slot.ShiftName),
			State:     string(slot.State),
			Reason:    slot.Reason,
		}
	}
	return responses
}

// SlotsToShiftGroups groups grid slots by shift for presentation. Groups
// follow the definitions' order (sorted by start time), so identical inputs
// always produce identical output.
func SlotsToShiftGroups(slots []entity.Slot, definitions []entity.ShiftDefinition) []dto.ShiftGroupResponse {
	groups := make([]dto.ShiftGroupResponse, 0, len(definitions))
	for _, def := range definitions {
		group := dto.ShiftGroupResponse{
			Name:        string(def.Name),
			DisplayName: def.DisplayName,
			Slots:       make([]dto.SlotResponse, 0),
		}
		for _, slot := range slots {
			if slot.ShiftName != def.Name {
				continue
			}
			group.Slots = append(group.Slots, dto.SlotResponse{
				Time:      slot.Time,
				ShiftName: string(slot.ShiftName),
				State:     string(slot.State),
				Reason:    slot.Reason,
			})
		}
		if len(group.Slots) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
