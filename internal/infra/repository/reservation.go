package repository

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/infra"
	"court-reserve/internal/infra/converter"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationQuery = `
INSERT INTO reservations (
	id, court_id, customer_id, date, start_minute, end_minute,
	status, payment_status,
	base_price, discount, final_price, amount_paid,
	segments, promo_code_id, payment_ref
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
)
RETURNING id`

// Create relies on the store's exclusion constraint as the final word on
// double bookings: a violation surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *booking.Reservation) (uuid.UUID, error) {
	segments, err := converter.SegmentsToJSON(res.Segments())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode price segments", err)
	}

	iv := res.Interval()
	var id uuid.UUID
	err = dbtx.QueryRow(ctx, createReservationQuery,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.CourtID()),
		pgconv.UUIDPtrToPgtype(res.CustomerID()),
		iv.Date(),
		int32(iv.Start()),
		int32(iv.End()),
		res.Status().String(),
		res.PaymentStatus().String(),
		res.BasePrice().Halalas(),
		res.Discount().Halalas(),
		res.FinalPrice().Halalas(),
		res.AmountPaid().Halalas(),
		segments,
		pgconv.UUIDPtrToPgtype(res.PromoCodeID()),
		res.PaymentRef(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

const updateReservationStatusQuery = `
UPDATE reservations
SET status = $2, payment_status = $3, amount_paid = $4, updated_at = now()
WHERE id = $1`

func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, res *booking.Reservation) error {
	tag, err := dbtx.Exec(ctx, updateReservationStatusQuery,
		pgconv.UUIDToPgtype(res.ID()),
		res.Status().String(),
		res.PaymentStatus().String(),
		res.AmountPaid().Halalas(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
