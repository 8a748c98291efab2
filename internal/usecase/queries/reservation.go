package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/infra"
	"court-reserve/internal/pkg/errs"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*ReservationListItem, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*ReservationListItem, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*ReservationListItem, error) {
	return q.repo.FindByCourtDate(ctx, courtID, date)
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByCustomer(ctx, customerID, int32(limit), 0)
}
