package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"court-reserve/internal/usecase/queries"
)

type QuoteResponse struct {
	Total    int64          `json:"total"`
	Segments []PriceSegment `json:"segments"`
}

type PricingRuleResponse struct {
	ID           uuid.UUID `json:"id"`
	DayBucket    string    `json:"dayBucket"`
	TimeBucket   string    `json:"timeBucket"`
	Category     string    `json:"category"`
	PricePerHour int64     `json:"pricePerHour"`
	Active       bool      `json:"active"`
}

func FromQuoteView(view *queries.QuoteView) *QuoteResponse {
	var resp QuoteResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromRuleViews(views []queries.RuleView) []PricingRuleResponse {
	resp := make([]PricingRuleResponse, 0, len(views))
	for _, v := range views {
		var item PricingRuleResponse
		_ = copier.Copy(&item, &v)
		resp = append(resp, item)
	}
	return resp
}
