package readstore

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
	"court-reserve/internal/usecase/shared"
)

type CourtReadStore struct {
	dbtx db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{dbtx: dbtx}
}

const findCourtQuery = `
SELECT id, name, active FROM courts WHERE id = $1`

func (s *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	var court shared.CourtSnapshot
	err := s.dbtx.QueryRow(ctx, findCourtQuery, pgconv.UUIDToPgtype(id)).
		Scan(&court.ID, &court.Name, &court.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court", err)
	}
	return &court, nil
}

const listCourtsQuery = `
SELECT id, name, active FROM courts ORDER BY name`

func (s *CourtReadStore) List(ctx context.Context) ([]shared.CourtSnapshot, error) {
	rows, err := s.dbtx.Query(ctx, listCourtsQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	defer rows.Close()

	var courts []shared.CourtSnapshot
	for rows.Next() {
		var court shared.CourtSnapshot
		if err := rows.Scan(&court.ID, &court.Name, &court.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court", err)
		}
		courts = append(courts, court)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	return courts, nil
}
