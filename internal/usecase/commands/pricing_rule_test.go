//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/commands"
)

func TestUpsertPricingRule(t *testing.T) {
	in := commands.UpsertPricingRuleInput{DayBucket: "thu", TimeBucket: "night", PricePerHour: 15000}

	t.Run("replaces the active rule for the pair", func(t *testing.T) {
		f := newCommandFixture(t)
		rules := commands.NewPricingRuleCommands(&fakeUoW{state: f.state})

		id, err := rules.Upsert(context.Background(), in)
		require.NoError(t, err)

		var active int
		for _, r := range f.state.rules {
			if r.DayBucket == "thu" && r.TimeBucket == "night" && r.Active {
				active++
				assert.Equal(t, id, r.ID)
				assert.Equal(t, int64(15000), r.PricePerHour)
			}
		}
		assert.Equal(t, 1, active)
	})

	t.Run("previous rule is kept inactive for history", func(t *testing.T) {
		f := newCommandFixture(t)
		rules := commands.NewPricingRuleCommands(&fakeUoW{state: f.state})

		_, err := rules.Upsert(context.Background(), in)
		require.NoError(t, err)

		var inactive int
		for _, r := range f.state.rules {
			if r.DayBucket == "thu" && r.TimeBucket == "night" && !r.Active {
				inactive++
			}
		}
		assert.Equal(t, 1, inactive)
	})

	t.Run("invalid buckets rejected", func(t *testing.T) {
		f := newCommandFixture(t)
		rules := commands.NewPricingRuleCommands(&fakeUoW{state: f.state})

		_, err := rules.Upsert(context.Background(), commands.UpsertPricingRuleInput{DayBucket: "monday", TimeBucket: "day", PricePerHour: 100})
		assert.True(t, errs.Is(err, commands.ErrInvalidPricingRule))

		_, err = rules.Upsert(context.Background(), commands.UpsertPricingRuleInput{DayBucket: "thu", TimeBucket: "evening", PricePerHour: 100})
		assert.True(t, errs.Is(err, commands.ErrInvalidPricingRule))
	})

	t.Run("negative price rejected", func(t *testing.T) {
		f := newCommandFixture(t)
		rules := commands.NewPricingRuleCommands(&fakeUoW{state: f.state})

		_, err := rules.Upsert(context.Background(), commands.UpsertPricingRuleInput{DayBucket: "thu", TimeBucket: "day", PricePerHour: -1})
		assert.True(t, errs.Is(err, commands.ErrInvalidPricingRule))
		assert.ErrorIs(t, err, pricing.ErrNegativeRate)
	})
}
