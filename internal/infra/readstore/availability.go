package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
	"court-reserve/internal/usecase/queries"
)

type AvailabilityReadStore struct {
	dbtx db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{dbtx: dbtx}
}

const activeByCourtDateQuery = `
SELECT id, court_id, date, start_minute, end_minute, status
FROM reservations
WHERE court_id = $1 AND date = $2 AND status <> 'cancelled'
  AND ($3::uuid IS NULL OR id <> $3)
ORDER BY start_minute`

func (s *AvailabilityReadStore) ActiveByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]queries.OccupancyRow, error) {
	rows, err := s.dbtx.Query(ctx, activeByCourtDateQuery,
		pgconv.UUIDToPgtype(courtID), date, pgconv.UUIDPtrToPgtype(excludeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupancy for court", err)
	}
	defer rows.Close()
	return scanOccupancyRows(rows)
}

const activeByDateQuery = `
SELECT id, court_id, date, start_minute, end_minute, status
FROM reservations
WHERE date = $1 AND status <> 'cancelled'
  AND court_id = ANY($2::uuid[])
ORDER BY court_id, start_minute`

func (s *AvailabilityReadStore) ActiveByDate(ctx context.Context, date time.Time, courtIDs []uuid.UUID) ([]queries.OccupancyRow, error) {
	rows, err := s.dbtx.Query(ctx, activeByDateQuery, date, courtIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupancy for date", err)
	}
	defer rows.Close()
	return scanOccupancyRows(rows)
}

const activeCourtIDsQuery = `
SELECT id FROM courts WHERE active ORDER BY name`

func (s *AvailabilityReadStore) ActiveCourtIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.dbtx.Query(ctx, activeCourtIDsQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active courts", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list active courts", err)
	}
	return ids, nil
}

func scanOccupancyRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]queries.OccupancyRow, error) {
	var result []queries.OccupancyRow
	for rows.Next() {
		var (
			row         queries.OccupancyRow
			startMinute int32
			endMinute   int32
		)
		if err := rows.Scan(&row.ID, &row.CourtID, &row.Date, &startMinute, &endMinute, &row.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy row", err)
		}
		row.StartMinute = int(startMinute)
		row.EndMinute = int(endMinute)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupancy rows", err)
	}
	return result, nil
}

func minuteString(m int32) string {
	return schedule.Minute(m).String()
}
