package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/infra"
	"court-reserve/internal/infra/converter"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
	"court-reserve/internal/usecase/queries"
)

type ReservationReadStore struct {
	dbtx db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{dbtx: dbtx}
}

const findReservationViewQuery = `
SELECT r.id, r.court_id, c.name, r.customer_id, r.date, r.start_minute, r.end_minute,
       r.status, r.payment_status,
       r.base_price, r.discount, r.final_price, r.amount_paid,
       r.segments, p.code, r.payment_ref, r.created_at, r.updated_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
LEFT JOIN promo_codes p ON p.id = r.promo_code_id
WHERE r.id = $1`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view        queries.ReservationView
		customerID  pgtype.UUID
		startMinute int32
		endMinute   int32
		segments    []byte
		promoCode   pgtype.Text
		paymentRef  pgtype.Text
	)
	err := s.dbtx.QueryRow(ctx, findReservationViewQuery, pgconv.UUIDToPgtype(id)).Scan(
		&view.ID, &view.CourtID, &view.CourtName, &customerID, &view.Date,
		&startMinute, &endMinute,
		&view.Status, &view.PaymentStatus,
		&view.BasePrice, &view.Discount, &view.FinalPrice, &view.AmountPaid,
		&segments, &promoCode, &paymentRef, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	view.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	view.StartTime = minuteString(startMinute)
	view.EndTime = minuteString(endMinute)
	view.PromoCode = pgconv.StringPtrFromPgtype(promoCode)
	view.PaymentRef = pgconv.StringPtrFromPgtype(paymentRef)

	parsed, err := converter.SegmentsFromJSON(segments)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode price segments", err)
	}
	view.Segments = toSegmentViews(parsed)
	return &view, nil
}

const listByCourtDateQuery = `
SELECT r.id, r.court_id, c.name, r.date, r.start_minute, r.end_minute,
       r.status, r.final_price, r.created_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.court_id = $1 AND r.date = $2
ORDER BY r.start_minute`

func (s *ReservationReadStore) FindByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := s.dbtx.Query(ctx, listByCourtDateQuery, pgconv.UUIDToPgtype(courtID), date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by court", err)
	}
	defer rows.Close()
	return scanListItems(rows)
}

const listByCustomerQuery = `
SELECT r.id, r.court_id, c.name, r.date, r.start_minute, r.end_minute,
       r.status, r.final_price, r.created_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.customer_id = $1
ORDER BY r.date DESC, r.start_minute DESC
LIMIT $2 OFFSET $3`

func (s *ReservationReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.dbtx.Query(ctx, listByCustomerQuery, pgconv.UUIDToPgtype(customerID), limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by customer", err)
	}
	defer rows.Close()
	return scanListItems(rows)
}

const findReservationEntityQuery = `
SELECT id, court_id, customer_id, date, start_minute, end_minute,
       status, payment_status,
       base_price, discount, final_price, amount_paid,
       segments, promo_code_id, payment_ref, created_at, updated_at
FROM reservations
WHERE id = $1`

// FindEntityByID loads the full aggregate for command-side transitions. Run
// inside the transaction so the transition sees committed state.
func (s *ReservationReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	row, err := s.scanEntityRow(s.dbtx.QueryRow(ctx, findReservationEntityQuery, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return row, nil
}

const findIDByPaymentRefQuery = `
SELECT id FROM reservations WHERE payment_ref = $1`

func (s *ReservationReadStore) FindIDByPaymentRef(ctx context.Context, ref string) (*uuid.UUID, error) {
	var id uuid.UUID
	err := s.dbtx.QueryRow(ctx, findIDByPaymentRefQuery, ref).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to look up payment reference", err)
	}
	return &id, nil
}

const findEntitiesByCourtDateQuery = `
SELECT id, court_id, customer_id, date, start_minute, end_minute,
       status, payment_status,
       base_price, discount, final_price, amount_paid,
       segments, promo_code_id, payment_ref, created_at, updated_at
FROM reservations
WHERE court_id = $1 AND date = $2 AND status <> 'cancelled'
  AND ($3::uuid IS NULL OR id <> $3)
ORDER BY start_minute`

func (s *ReservationReadStore) FindEntitiesByCourtDate(ctx context.Context, courtID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*booking.Reservation, error) {
	rows, err := s.dbtx.Query(ctx, findEntitiesByCourtDateQuery,
		pgconv.UUIDToPgtype(courtID), date, pgconv.UUIDPtrToPgtype(excludeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservations for slot", err)
	}
	defer rows.Close()

	var result []*booking.Reservation
	for rows.Next() {
		entity, err := s.scanEntityRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load reservations for slot", err)
	}
	return result, nil
}

const findPendingEntitiesQuery = `
SELECT id, court_id, customer_id, date, start_minute, end_minute,
       status, payment_status,
       base_price, discount, final_price, amount_paid,
       segments, promo_code_id, payment_ref, created_at, updated_at
FROM reservations
WHERE status = 'pending'
ORDER BY created_at`

func (s *ReservationReadStore) FindPendingEntities(ctx context.Context) ([]*booking.Reservation, error) {
	rows, err := s.dbtx.Query(ctx, findPendingEntitiesQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load pending reservations", err)
	}
	defer rows.Close()

	var result []*booking.Reservation
	for rows.Next() {
		entity, err := s.scanEntityRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load pending reservations", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *ReservationReadStore) scanEntityRow(row rowScanner) (*booking.Reservation, error) {
	var (
		rec         converter.ReservationRow
		customerID  pgtype.UUID
		promoCodeID pgtype.UUID
		paymentRef  pgtype.Text
	)
	err := row.Scan(
		&rec.ID, &rec.CourtID, &customerID, &rec.Date,
		&rec.StartMinute, &rec.EndMinute,
		&rec.Status, &rec.PaymentStatus,
		&rec.BasePrice, &rec.Discount, &rec.FinalPrice, &rec.AmountPaid,
		&rec.Segments, &promoCodeID, &paymentRef, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	rec.PromoCodeID = pgconv.UUIDPtrFromPgtype(promoCodeID)
	rec.PaymentRef = pgconv.StringPtrFromPgtype(paymentRef)
	return converter.ToReservationEntity(rec)
}

type listItemScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanListItems(rows listItemScanner) ([]*queries.ReservationListItem, error) {
	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item        queries.ReservationListItem
			startMinute int32
			endMinute   int32
		)
		if err := rows.Scan(
			&item.ID, &item.CourtID, &item.CourtName, &item.Date,
			&startMinute, &endMinute,
			&item.Status, &item.FinalPrice, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		item.StartTime = minuteString(startMinute)
		item.EndTime = minuteString(endMinute)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list", err)
	}
	return result, nil
}

func toSegmentViews(segments []pricing.Segment) []queries.PriceSegmentView {
	views := make([]queries.PriceSegmentView, 0, len(segments))
	for _, s := range segments {
		views = append(views, queries.PriceSegmentView{
			Label:      s.Label,
			DayBucket:  string(s.DayBucket),
			TimeBucket: string(s.TimeBucket),
			Rate:       s.Rate,
			Minutes:    s.Minutes,
			Amount:     s.Amount,
		})
	}
	return views
}
