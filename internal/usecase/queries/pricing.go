package queries

import (
	"context"
	"time"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/errs"
)

var (
	ErrPricingConfigurationMissing = errs.New("pricing configuration missing for bucket pair")
	ErrRuleLookupFailed            = errs.New("pricing rule lookup failed")
)

type RuleReadStore interface {
	ActiveRules(ctx context.Context) ([]pricing.Rule, error)
	AllRules(ctx context.Context) ([]pricing.Rule, error)
}

type PricingQueries interface {
	// Quote prices an interval without reserving it (price preview).
	Quote(ctx context.Context, date time.Time, start, end schedule.Minute) (*QuoteView, error)
	ListRules(ctx context.Context) ([]RuleView, error)
}

type pricingQueriesImpl struct {
	store  RuleReadStore
	engine *pricing.Engine
}

func NewPricingQueries(store RuleReadStore, engine *pricing.Engine) PricingQueries {
	return &pricingQueriesImpl{store: store, engine: engine}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, date time.Time, start, end schedule.Minute) (*QuoteView, error) {
	ruleSet, err := q.loadRuleSet(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := q.engine.Price(ruleSet, date, start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrPricingConfigurationMissing)
	}

	view := &QuoteView{Total: quote.Total, Segments: make([]PriceSegmentView, 0, len(quote.Segments))}
	for _, seg := range quote.Segments {
		view.Segments = append(view.Segments, PriceSegmentView{
			Label:      seg.Label,
			DayBucket:  string(seg.DayBucket),
			TimeBucket: string(seg.TimeBucket),
			Rate:       seg.Rate,
			Minutes:    seg.Minutes,
			Amount:     seg.Amount,
		})
	}
	return view, nil
}

func (q *pricingQueriesImpl) ListRules(ctx context.Context) ([]RuleView, error) {
	rules, err := q.store.AllRules(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrRuleLookupFailed)
	}
	views := make([]RuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, RuleView{
			ID:           r.ID(),
			DayBucket:    string(r.DayBucket()),
			TimeBucket:   string(r.TimeBucket()),
			Category:     r.Category(),
			PricePerHour: r.PricePerHour(),
			Active:       r.Active(),
		})
	}
	return views, nil
}

func (q *pricingQueriesImpl) loadRuleSet(ctx context.Context) (pricing.RuleSet, error) {
	rules, err := q.store.ActiveRules(ctx)
	if err != nil {
		return pricing.RuleSet{}, errs.Mark(err, ErrRuleLookupFailed)
	}
	ruleSet, err := pricing.NewRuleSet(rules)
	if err != nil {
		return pricing.RuleSet{}, errs.Mark(err, ErrPricingConfigurationMissing)
	}
	return ruleSet, nil
}
