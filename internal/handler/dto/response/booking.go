package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"court-reserve/internal/usecase/queries"
)

type ReservationResponse struct {
	ID            uuid.UUID             `json:"id"`
	CourtID       uuid.UUID             `json:"courtId"`
	CourtName     string                `json:"courtName"`
	CustomerID    *uuid.UUID            `json:"customerId,omitempty"`
	Date          time.Time             `json:"date"`
	StartTime     string                `json:"startTime"`
	EndTime       string                `json:"endTime"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"paymentStatus"`
	BasePrice     int64                 `json:"basePrice"`
	Discount      int64                 `json:"discount"`
	FinalPrice    int64                 `json:"finalPrice"`
	AmountPaid    int64                 `json:"amountPaid"`
	Segments      []PriceSegment        `json:"segments"`
	PromoCode     *string               `json:"promoCode,omitempty"`
	PaymentRef    *string               `json:"paymentRef,omitempty"`
	Replayed      bool                  `json:"replayed,omitempty"`
	PromoWarning  *PromoWarningResponse `json:"promoWarning,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

type PriceSegment struct {
	Label      string `json:"label"`
	DayBucket  string `json:"dayBucket"`
	TimeBucket string `json:"timeBucket"`
	Rate       int64  `json:"rate"`
	Minutes    int    `json:"minutes"`
	Amount     int64  `json:"amount"`
}

// PromoWarningResponse reports a promo code that was refused while the
// booking itself went through at full price.
type PromoWarningResponse struct {
	Reason string `json:"reason"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"courtId"`
	CourtName  string    `json:"courtName"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	FinalPrice int64     `json:"finalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Field names line up with the read model on purpose.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromCreateResult(view *queries.ReservationView, replayed bool, promoRejection string) *ReservationResponse {
	resp := FromReservationView(view)
	resp.Replayed = replayed
	if promoRejection != "" {
		resp.PromoWarning = &PromoWarningResponse{Reason: promoRejection}
	}
	return resp
}

func FromReservationListItem(item *queries.ReservationListItem) *ReservationListResponse {
	var resp ReservationListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}
