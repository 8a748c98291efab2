package converter

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/errs"
)

// segmentRecord is the stored shape of a price segment. The column format is
// decoupled from the domain struct so either can evolve independently.
type segmentRecord struct {
	Label      string `json:"label"`
	DayBucket  string `json:"day_bucket"`
	TimeBucket string `json:"time_bucket"`
	Rate       int64  `json:"rate"`
	Minutes    int    `json:"minutes"`
	Amount     int64  `json:"amount"`
}

func SegmentsToJSON(segments []pricing.Segment) ([]byte, error) {
	records := make([]segmentRecord, 0, len(segments))
	for _, s := range segments {
		records = append(records, segmentRecord{
			Label:      s.Label,
			DayBucket:  string(s.DayBucket),
			TimeBucket: string(s.TimeBucket),
			Rate:       s.Rate,
			Minutes:    s.Minutes,
			Amount:     s.Amount,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal price segments")
	}
	return data, nil
}

func SegmentsFromJSON(data []byte) ([]pricing.Segment, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []segmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal price segments")
	}
	segments := make([]pricing.Segment, 0, len(records))
	for _, r := range records {
		segments = append(segments, pricing.Segment{
			Label:      r.Label,
			DayBucket:  pricing.DayBucket(r.DayBucket),
			TimeBucket: pricing.TimeBucket(r.TimeBucket),
			Rate:       r.Rate,
			Minutes:    r.Minutes,
			Amount:     r.Amount,
		})
	}
	return segments, nil
}

// ReservationRow is the scan target shared by the write-side re-reads and the
// read-side stores.
type ReservationRow struct {
	ID            uuid.UUID
	CourtID       uuid.UUID
	CustomerID    *uuid.UUID
	Date          time.Time
	StartMinute   int32
	EndMinute     int32
	Status        string
	PaymentStatus string
	BasePrice     int64
	Discount      int64
	FinalPrice    int64
	AmountPaid    int64
	Segments      []byte
	PromoCodeID   *uuid.UUID
	PaymentRef    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ToReservationEntity(row ReservationRow) (*booking.Reservation, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := booking.ParsePaymentStatus(row.PaymentStatus)
	if err != nil {
		return nil, err
	}
	segments, err := SegmentsFromJSON(row.Segments)
	if err != nil {
		return nil, err
	}

	interval := schedule.ReconstructInterval(row.Date,
		schedule.Minute(row.StartMinute), schedule.Minute(row.EndMinute))

	return booking.ReconstructReservation(
		row.ID, row.CourtID, row.CustomerID,
		interval, status, paymentStatus,
		booking.MustMoney(row.BasePrice),
		booking.MustMoney(row.Discount),
		booking.MustMoney(row.FinalPrice),
		booking.MustMoney(row.AmountPaid),
		segments,
		row.PromoCodeID,
		row.PaymentRef,
		row.CreatedAt, row.UpdatedAt,
	), nil
}
