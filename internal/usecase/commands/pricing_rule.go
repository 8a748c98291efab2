package commands

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/shared"
)

var ErrInvalidPricingRule = errs.New("invalid pricing rule")

type UpsertPricingRuleInput struct {
	DayBucket    string
	TimeBucket   string
	PricePerHour int64
}

type PricingRuleCommands interface {
	// Upsert replaces the active rule for a bucket pair. The store swap is
	// transactional so the one-active-rule invariant holds at every point.
	Upsert(ctx context.Context, in UpsertPricingRuleInput) (uuid.UUID, error)
}

type pricingRuleCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPricingRuleCommands(uow shared.UnitOfWork) PricingRuleCommands {
	return &pricingRuleCommandsImpl{uow: uow}
}

func (p *pricingRuleCommandsImpl) Upsert(ctx context.Context, in UpsertPricingRuleInput) (uuid.UUID, error) {
	rule, err := pricing.NewRule(uuid.New(), pricing.DayBucket(in.DayBucket), pricing.TimeBucket(in.TimeBucket), in.PricePerHour, true)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPricingRule)
	}

	var id uuid.UUID
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.PricingRules().Upsert(ctx, tx.DB(), shared.RuleSnapshot{
			ID:           rule.ID(),
			DayBucket:    string(rule.DayBucket()),
			TimeBucket:   string(rule.TimeBucket()),
			PricePerHour: rule.PricePerHour(),
			Active:       true,
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
