//go:build unit || e2e

package builder

import (
	"time"

	reqdto "court-reserve/internal/handler/dto/request"
	"court-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	CourtID       uuid.UUID
	CourtName     string
	CustomerID    uuid.UUID
	Date          time.Time
	StartTime     string
	EndTime       string
	Status        string
	PaymentStatus string
	BasePrice     int64
	Discount      int64
	PromoCode     *string
	PaymentRef    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		CourtID:       uuid.New(),
		CourtName:     "Court 1",
		CustomerID:    uuid.New(),
		Date:          time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "12:00",
		Status:        "pending",
		PaymentStatus: "pending",
		BasePrice:     20000,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CourtID:    r.CourtID,
		Date:       r.Date.Format("2006-01-02"),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PromoCode:  r.PromoCode,
		PaymentRef: r.PaymentRef,
	}
}

func (r *ReservationBuilder) BuildBlockRequestDTO() reqdto.CreateBlockRequest {
	return reqdto.CreateBlockRequest{
		CourtID:   r.CourtID,
		Date:      r.Date.Format("2006-01-02"),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

func (r *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	cid := r.CustomerID
	return &queries.ReservationView{
		ID:            uuid.New(),
		CourtID:       r.CourtID,
		CourtName:     r.CourtName,
		CustomerID:    &cid,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		BasePrice:     r.BasePrice,
		Discount:      r.Discount,
		FinalPrice:    r.BasePrice - r.Discount,
		Segments: []queries.PriceSegmentView{
			{Label: "10:00-11:00", DayBucket: "thu", TimeBucket: "day", Rate: 10000, Minutes: 60, Amount: 10000},
			{Label: "11:00-12:00", DayBucket: "thu", TimeBucket: "day", Rate: 10000, Minutes: 60, Amount: 10000},
		},
		PromoCode:  r.PromoCode,
		PaymentRef: r.PaymentRef,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItemQuery() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:         uuid.New(),
		CourtID:    r.CourtID,
		CourtName:  r.CourtName,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Status:     r.Status,
		FinalPrice: r.BasePrice - r.Discount,
		CreatedAt:  r.CreatedAt,
	}
}
