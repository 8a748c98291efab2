package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

type CreateReservationRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	PromoCode *string   `json:"promo_code,omitempty"`
	// PaymentRef is the external payment authority's reference. Resubmitting
	// the same reference returns the original reservation.
	PaymentRef *string `json:"payment_ref,omitempty"`
}

func (r CreateReservationRequest) GetPromoCode() *string {
	return trimmedPtr(r.PromoCode)
}

func (r CreateReservationRequest) GetPaymentRef() *string {
	return trimmedPtr(r.PaymentRef)
}

// ParseSlot converts the wire date and HH:MM strings exactly once at the
// boundary; everything downstream operates on minute offsets.
func (r CreateReservationRequest) ParseSlot() (time.Time, schedule.Minute, schedule.Minute, error) {
	return parseSlot(r.Date, r.StartTime, r.EndTime)
}

type CreateBlockRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
}

func (r CreateBlockRequest) ParseSlot() (time.Time, schedule.Minute, schedule.Minute, error) {
	return parseSlot(r.Date, r.StartTime, r.EndTime)
}

type ConfirmPaymentRequest struct {
	AmountPaid int64 `json:"amount_paid" binding:"required,min=0"`
}

type SweepStaleRequest struct {
	OlderThanMinutes int `json:"older_than_minutes" binding:"required,min=1"`
}

func parseSlot(date, startTime, endTime string) (time.Time, schedule.Minute, schedule.Minute, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidDate
	}
	start, err := schedule.ParseClock(startTime)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	end, err := schedule.ParseClock(endTime)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	return d, start, end, nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
