package request

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
)

var ErrNoSlots = errors.New("at least one slot is required")

// CheckAvailabilityRequest is bound from query parameters. The ids bind as
// strings because gin's form binder cannot fill uuid.UUID fields; the handler
// parses them.
type CheckAvailabilityRequest struct {
	CourtID   string `form:"court_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
	// ExcludeID skips one reservation when rechecking a slot during a move.
	ExcludeID string `form:"exclude_id"`
}

func (r CheckAvailabilityRequest) ParseSlot() (time.Time, schedule.Minute, schedule.Minute, error) {
	return parseSlot(r.Date, r.StartTime, r.EndTime)
}

type SlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type BatchAvailabilityRequest struct {
	Date  string        `json:"date" binding:"required"`
	Slots []SlotRequest `json:"slots" binding:"required"`
	// CourtIDs limits the sweep; empty means every active court.
	CourtIDs []uuid.UUID `json:"court_ids,omitempty"`
}

// ParseSlots validates each slot against the operating window; an invalid
// slot fails the whole batch before any store access.
func (r BatchAvailabilityRequest) ParseSlots(win schedule.Window) (time.Time, []schedule.Interval, error) {
	if len(r.Slots) == 0 {
		return time.Time{}, nil, ErrNoSlots
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, nil, ErrInvalidDate
	}

	intervals := make([]schedule.Interval, 0, len(r.Slots))
	for _, slot := range r.Slots {
		start, err := schedule.ParseClock(slot.StartTime)
		if err != nil {
			return time.Time{}, nil, err
		}
		end, err := schedule.ParseClock(slot.EndTime)
		if err != nil {
			return time.Time{}, nil, err
		}
		iv, err := schedule.NewInterval(date, start, end, win)
		if err != nil {
			return time.Time{}, nil, err
		}
		intervals = append(intervals, iv)
	}
	return date, intervals, nil
}
