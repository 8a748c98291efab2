package repository

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/usecase/shared"
)

type PricingRuleRepository struct{}

func NewPricingRuleRepository() *PricingRuleRepository {
	return &PricingRuleRepository{}
}

const deactivateRuleQuery = `
UPDATE pricing_rules
SET active = false, updated_at = now()
WHERE day_bucket = $1 AND time_bucket = $2 AND active`

const insertRuleQuery = `
INSERT INTO pricing_rules (day_bucket, time_bucket, price_per_hour, active)
VALUES ($1, $2, $3, true)
RETURNING id`

// Upsert keeps rule history: the previous rule is deactivated, never
// overwritten. The caller runs this inside a transaction so the bucket pair
// always has exactly one active rule.
func (r *PricingRuleRepository) Upsert(ctx context.Context, dbtx db.DBTX, rule shared.RuleSnapshot) (uuid.UUID, error) {
	if _, err := dbtx.Exec(ctx, deactivateRuleQuery, rule.DayBucket, rule.TimeBucket); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to deactivate previous pricing rule", err)
	}

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, insertRuleQuery,
		rule.DayBucket, rule.TimeBucket, rule.PricePerHour,
	).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert pricing rule", err)
	}
	return id, nil
}
