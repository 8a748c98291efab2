package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID          `json:"id"`
	CourtID       uuid.UUID          `json:"court_id"`
	CourtName     string             `json:"court_name"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	Date          time.Time          `json:"date"`
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	BasePrice     int64              `json:"base_price"`
	Discount      int64              `json:"discount"`
	FinalPrice    int64              `json:"final_price"`
	AmountPaid    int64              `json:"amount_paid"`
	Segments      []PriceSegmentView `json:"segments"`
	PromoCode     *string            `json:"promo_code,omitempty"`
	PaymentRef    *string            `json:"payment_ref,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type PriceSegmentView struct {
	Label      string `json:"label"`
	DayBucket  string `json:"day_bucket"`
	TimeBucket string `json:"time_bucket"`
	Rate       int64  `json:"rate"`
	Minutes    int    `json:"minutes"`
	Amount     int64  `json:"amount"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	CourtName  string    `json:"court_name"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	FinalPrice int64     `json:"final_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type ConflictView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
}

type AvailabilityResult struct {
	Available bool           `json:"available"`
	Conflicts []ConflictView `json:"conflicts"`
}

type SlotAvailability struct {
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BatchAvailability maps court id -> normalized interval key -> slot state.
type BatchAvailability map[uuid.UUID]map[string]SlotAvailability

type QuoteView struct {
	Total    int64              `json:"total"`
	Segments []PriceSegmentView `json:"segments"`
}

type RuleView struct {
	ID           uuid.UUID `json:"id"`
	DayBucket    string    `json:"day_bucket"`
	TimeBucket   string    `json:"time_bucket"`
	Category     string    `json:"category"`
	PricePerHour int64     `json:"price_per_hour"`
	Active       bool      `json:"active"`
}
