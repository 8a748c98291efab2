package components

import (
	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/clock"
	"court-reserve/internal/pkg/config"
	"court-reserve/internal/usecase/commands"
	"court-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	pricing.NewEngine,
	booking.NewFactory,
	NewOperatingWindow,
)

// NewOperatingWindow builds the venue operating window from configuration;
// every interval validation flows through it.
func NewOperatingWindow(cfg config.Config) (schedule.Window, error) {
	return schedule.NewWindow(cfg.Booking.OpeningTime, cfg.Booking.ClosingTime)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewStatusCommands,
		commands.NewPricingRuleCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewReservationQueries,
	),
)
