package readstore

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/usecase/shared"
)

type PricingRuleReadStore struct {
	dbtx db.DBTX
}

func NewPricingRuleReadStore(dbtx db.DBTX) *PricingRuleReadStore {
	return &PricingRuleReadStore{dbtx: dbtx}
}

const activeRulesQuery = `
SELECT id, day_bucket, time_bucket, price_per_hour, active
FROM pricing_rules
WHERE active
ORDER BY day_bucket, time_bucket`

const allRulesQuery = `
SELECT id, day_bucket, time_bucket, price_per_hour, active
FROM pricing_rules
ORDER BY day_bucket, time_bucket, created_at DESC`

func (s *PricingRuleReadStore) ActiveRules(ctx context.Context) ([]pricing.Rule, error) {
	return s.queryRules(ctx, activeRulesQuery)
}

func (s *PricingRuleReadStore) AllRules(ctx context.Context) ([]pricing.Rule, error) {
	return s.queryRules(ctx, allRulesQuery)
}

// ActiveSnapshots is the write-side shape of the same projection.
func (s *PricingRuleReadStore) ActiveSnapshots(ctx context.Context) ([]shared.RuleSnapshot, error) {
	rules, err := s.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]shared.RuleSnapshot, 0, len(rules))
	for _, r := range rules {
		snapshots = append(snapshots, shared.RuleSnapshot{
			ID:           r.ID(),
			DayBucket:    string(r.DayBucket()),
			TimeBucket:   string(r.TimeBucket()),
			PricePerHour: r.PricePerHour(),
			Active:       r.Active(),
		})
	}
	return snapshots, nil
}

func (s *PricingRuleReadStore) queryRules(ctx context.Context, query string) ([]pricing.Rule, error) {
	rows, err := s.dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load pricing rules", err)
	}
	defer rows.Close()

	var rules []pricing.Rule
	for rows.Next() {
		var (
			id           uuid.UUID
			dayBucket    string
			timeBucket   string
			pricePerHour int64
			active       bool
		)
		if err := rows.Scan(&id, &dayBucket, &timeBucket, &pricePerHour, &active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing rule", err)
		}
		rule, err := pricing.NewRule(id, pricing.DayBucket(dayBucket), pricing.TimeBucket(timeBucket), pricePerHour, active)
		if err != nil {
			return nil, infra.WrapRepoErr("stored pricing rule is invalid", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pricing rules", err)
	}
	return rules, nil
}
