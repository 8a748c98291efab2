package request

import (
	"time"

	"court-reserve/internal/domain/schedule"
)

// QuoteRequest is bound from query parameters (price preview, no reservation).
type QuoteRequest struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

func (r QuoteRequest) ParseSlot() (time.Time, schedule.Minute, schedule.Minute, error) {
	return parseSlot(r.Date, r.StartTime, r.EndTime)
}

type UpsertPricingRuleRequest struct {
	DayBucket    string `json:"day_bucket" binding:"required"`
	TimeBucket   string `json:"time_bucket" binding:"required"`
	PricePerHour int64  `json:"price_per_hour" binding:"required,min=0"`
}
