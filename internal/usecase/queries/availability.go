package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/errs"
)

var ErrAvailabilityLookupFailed = errs.New("availability lookup failed")

// OccupancyRow is the minimal projection of a stored reservation needed for
// conflict detection.
type OccupancyRow struct {
	ID          uuid.UUID
	CourtID     uuid.UUID
	Date        time.Time
	StartMinute int
	EndMinute   int
	Status      string
}

// AvailabilityReadStore fetches occupancy scoped by court and date; it never
// scans beyond the requested day.
type AvailabilityReadStore interface {
	ActiveByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]OccupancyRow, error)
	ActiveByDate(ctx context.Context, date time.Time, courtIDs []uuid.UUID) ([]OccupancyRow, error)
	ActiveCourtIDs(ctx context.Context) ([]uuid.UUID, error)
}

type AvailabilityQueries interface {
	Check(ctx context.Context, courtID uuid.UUID, interval schedule.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error)
	// CheckBatch answers many (court, interval) pairs from one store round
	// trip. Element-wise it returns exactly what Check would for each pair.
	CheckBatch(ctx context.Context, date time.Time, intervals []schedule.Interval, courtIDs []uuid.UUID) (BatchAvailability, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, courtID uuid.UUID, interval schedule.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error) {
	rows, err := q.store.ActiveByCourtDate(ctx, courtID, interval.Date(), excludeID)
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityLookupFailed)
	}
	return resolveConflicts(interval, rows), nil
}

func (q *availabilityQueriesImpl) CheckBatch(ctx context.Context, date time.Time, intervals []schedule.Interval, courtIDs []uuid.UUID) (BatchAvailability, error) {
	if len(courtIDs) == 0 {
		ids, err := q.store.ActiveCourtIDs(ctx)
		if err != nil {
			return nil, errs.Mark(err, ErrAvailabilityLookupFailed)
		}
		courtIDs = ids
	}

	rows, err := q.store.ActiveByDate(ctx, date, courtIDs)
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityLookupFailed)
	}

	byCourt := make(map[uuid.UUID][]OccupancyRow, len(courtIDs))
	for _, row := range rows {
		byCourt[row.CourtID] = append(byCourt[row.CourtID], row)
	}

	result := make(BatchAvailability, len(courtIDs))
	for _, courtID := range courtIDs {
		slots := make(map[string]SlotAvailability, len(intervals))
		for _, iv := range intervals {
			res := resolveConflicts(iv, byCourt[courtID])
			slots[iv.Key()] = SlotAvailability{
				Available: res.Available,
				StartTime: iv.Start().String(),
				EndTime:   iv.End().String(),
			}
		}
		result[courtID] = slots
	}
	return result, nil
}

// resolveConflicts is the single conflict predicate shared by the single and
// batch paths, which keeps the two element-wise identical. All conflicting
// reservations are returned, not just the first.
func resolveConflicts(requested schedule.Interval, rows []OccupancyRow) *AvailabilityResult {
	result := &AvailabilityResult{Available: true, Conflicts: []ConflictView{}}
	for _, row := range rows {
		existing := schedule.ReconstructInterval(row.Date, schedule.Minute(row.StartMinute), schedule.Minute(row.EndMinute))
		if schedule.Overlaps(requested, existing) {
			result.Available = false
			result.Conflicts = append(result.Conflicts, ConflictView{
				ReservationID: row.ID,
				StartTime:     existing.Start().String(),
				EndTime:       existing.End().String(),
				Status:        row.Status,
			})
		}
	}
	return result
}
