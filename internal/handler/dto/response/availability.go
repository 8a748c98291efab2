package response

import (
	"github.com/google/uuid"

	"court-reserve/internal/usecase/queries"
)

type ConflictResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        string    `json:"status"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type SlotAvailabilityResponse struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BatchAvailabilityResponse maps court id -> "HH:MM-HH:MM" -> slot state.
type BatchAvailabilityResponse map[string]map[string]SlotAvailabilityResponse

func FromAvailabilityResult(result *queries.AvailabilityResult) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			ReservationID: c.ReservationID,
			StartTime:     c.StartTime,
			EndTime:       c.EndTime,
			Status:        c.Status,
		})
	}
	return &AvailabilityResponse{
		Available: result.Available,
		Conflicts: conflicts,
	}
}

func FromBatchAvailability(batch queries.BatchAvailability) BatchAvailabilityResponse {
	resp := make(BatchAvailabilityResponse, len(batch))
	for courtID, slots := range batch {
		courtSlots := make(map[string]SlotAvailabilityResponse, len(slots))
		for key, slot := range slots {
			courtSlots[key] = SlotAvailabilityResponse{
				Available: slot.Available,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			}
		}
		resp[courtID.String()] = courtSlots
	}
	return resp
}
