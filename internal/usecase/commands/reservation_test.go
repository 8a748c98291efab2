//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/promo"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/clock"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/commands"
	"court-reserve/internal/usecase/shared"
)

var (
	cmdDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	cmdNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

const testPhone = "966512345678"

type commandFixture struct {
	state    *fakeState
	cmds     commands.ReservationCommands
	status   commands.StatusCommands
	courtID  uuid.UUID
	customer uuid.UUID
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()
	state := newFakeState()
	state.flatRules(10000)

	courtID := uuid.New()
	state.courts[courtID] = shared.CourtSnapshot{ID: courtID, Name: "Court 1", Active: true}

	customerID := uuid.New()
	state.idsByPhone[testPhone] = []uuid.UUID{customerID}

	uow := &fakeUoW{state: state}
	factory := booking.NewFactory(clock.NewMockClock(cmdNow), pricing.NewEngine())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &commandFixture{
		state: state,
		cmds: commands.NewReservationCommands(
			uow, factory, &fakeReservationQueries{state: state},
			clock.NewMockClock(cmdNow), schedule.DefaultWindow(), logger,
		),
		status:   commands.NewStatusCommands(uow, clock.NewMockClock(cmdNow)),
		courtID:  courtID,
		customer: customerID,
	}
}

func (f *commandFixture) input(start, end string) commands.CreateReservationInput {
	s, _ := schedule.ParseClock(start)
	e, _ := schedule.ParseClock(end)
	return commands.CreateReservationInput{
		CourtID:    f.courtID,
		Date:       cmdDate,
		Start:      s,
		End:        e,
		CustomerID: f.customer,
		Phone:      "0512345678",
	}
}

func (f *commandFixture) addActivePromo(code string, percentOff float64) shared.PromoSnapshot {
	snap := shared.PromoSnapshot{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  string(promo.DiscountPercentage),
		DiscountValue: percentOff,
		Active:        true,
		ExpiresAt:     cmdNow.Add(24 * time.Hour),
	}
	f.state.addPromo(snap)
	return snap
}

func TestCreateReservation(t *testing.T) {
	t.Run("success without promo", func(t *testing.T) {
		f := newCommandFixture(t)

		result, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Empty(t, result.PromoRejection)
		assert.Equal(t, int64(20000), result.Reservation.FinalPrice)

		require.Len(t, f.state.reservations, 1)
		require.Len(t, f.state.jobs, 1)
		assert.Equal(t, "email", f.state.jobs[0].kind)
		assert.Equal(t, "reservation_created", f.state.jobs[0].topic)
	})

	t.Run("invalid interval rejected before store access", func(t *testing.T) {
		f := newCommandFixture(t)
		in := f.input("10:00", "10:30")

		_, err := f.cmds.CreateReservation(context.Background(), in)
		assert.True(t, errs.Is(err, commands.ErrInvalidInterval))
		assert.ErrorIs(t, err, schedule.ErrTooShort)
		assert.Empty(t, f.state.reservations)
	})

	t.Run("past date rejected before store access", func(t *testing.T) {
		f := newCommandFixture(t)
		in := f.input("10:00", "12:00")
		in.Date = cmdNow.AddDate(0, 0, -1)

		_, err := f.cmds.CreateReservation(context.Background(), in)
		assert.True(t, errs.Is(err, commands.ErrInvalidInterval))
		assert.ErrorIs(t, err, schedule.ErrDateInPast)
		assert.Empty(t, f.state.reservations)
	})

	t.Run("same-day booking allowed", func(t *testing.T) {
		f := newCommandFixture(t)
		in := f.input("23:00", "02:00")
		in.Date = cmdNow

		_, err := f.cmds.CreateReservation(context.Background(), in)
		assert.NoError(t, err)
	})

	t.Run("unknown court", func(t *testing.T) {
		f := newCommandFixture(t)
		in := f.input("10:00", "12:00")
		in.CourtID = uuid.New()

		_, err := f.cmds.CreateReservation(context.Background(), in)
		assert.ErrorIs(t, err, commands.ErrCourtNotFound)
	})

	t.Run("inactive court", func(t *testing.T) {
		f := newCommandFixture(t)
		f.state.courts[f.courtID] = shared.CourtSnapshot{ID: f.courtID, Name: "Court 1", Active: false}

		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		assert.ErrorIs(t, err, commands.ErrCourtInactive)
	})

	t.Run("overlapping reservation conflicts", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.cmds.CreateReservation(context.Background(), f.input("11:00", "13:00"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
		assert.Len(t, f.state.reservations, 1)
	})

	t.Run("midnight crossing conflicts with early morning booking", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateReservation(context.Background(), f.input("23:00", "02:00"))
		require.NoError(t, err)

		_, err = f.cmds.CreateReservation(context.Background(), f.input("01:00", "03:00"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.cmds.CreateReservation(context.Background(), f.input("12:00", "14:00"))
		assert.NoError(t, err)
	})

	t.Run("missing pricing rules", func(t *testing.T) {
		f := newCommandFixture(t)
		f.state.rules = nil

		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		assert.ErrorIs(t, err, commands.ErrPricingConfigurationMissing)
		assert.Empty(t, f.state.reservations)
	})
}

func TestCreateReservationPromo(t *testing.T) {
	code := "SAVE25"

	t.Run("valid promo discounts and consumes", func(t *testing.T) {
		f := newCommandFixture(t)
		f.addActivePromo(code, 25)
		in := f.input("10:00", "12:00")
		in.PromoCode = &code

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, result.PromoRejection)
		assert.Equal(t, int64(20000), result.Reservation.BasePrice)
		assert.Equal(t, int64(5000), result.Reservation.Discount)
		assert.Equal(t, int64(15000), result.Reservation.FinalPrice)

		assert.Equal(t, 1, f.state.consumeCalls)
		assert.Contains(t, f.state.promos[code].UsedBy, f.customer)
	})

	t.Run("lowercase input matches stored code", func(t *testing.T) {
		f := newCommandFixture(t)
		f.addActivePromo(code, 25)
		lower := "save25"
		in := f.input("10:00", "12:00")
		in.PromoCode = &lower

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Reservation.Discount)
	})

	t.Run("unknown code books undiscounted silently", func(t *testing.T) {
		f := newCommandFixture(t)
		unknown := "NOSUCH"
		in := f.input("10:00", "12:00")
		in.PromoCode = &unknown

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, result.PromoRejection)
		assert.Zero(t, result.Reservation.Discount)
		assert.Zero(t, f.state.consumeCalls)
	})

	t.Run("expired code books undiscounted with reason", func(t *testing.T) {
		f := newCommandFixture(t)
		snap := shared.PromoSnapshot{
			ID: uuid.New(), Code: code, DiscountType: string(promo.DiscountPercentage),
			DiscountValue: 25, Active: true, ExpiresAt: cmdNow.Add(-time.Hour),
		}
		f.state.addPromo(snap)
		in := f.input("10:00", "12:00")
		in.PromoCode = &code

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, promo.ErrExpired.Error(), result.PromoRejection)
		assert.Zero(t, result.Reservation.Discount)
		assert.Zero(t, f.state.consumeCalls)
	})

	t.Run("code used by a sibling record is refused", func(t *testing.T) {
		f := newCommandFixture(t)
		sibling := uuid.New()
		f.state.idsByPhone[testPhone] = []uuid.UUID{f.customer, sibling}
		f.addActivePromo(code, 25)
		f.state.promos[code].UsedBy = []uuid.UUID{sibling}
		in := f.input("10:00", "12:00")
		in.PromoCode = &code

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, promo.ErrAlreadyUsedByCustomer.Error(), result.PromoRejection)
		assert.Zero(t, result.Reservation.Discount)
	})

	t.Run("lost consume race retries without discount", func(t *testing.T) {
		f := newCommandFixture(t)
		f.addActivePromo(code, 25)
		f.state.failNextConsume = 1
		in := f.input("10:00", "12:00")
		in.PromoCode = &code

		result, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, promo.ErrAlreadyUsedByCustomer.Error(), result.PromoRejection)
		assert.Zero(t, result.Reservation.Discount)
		assert.Equal(t, int64(20000), result.Reservation.FinalPrice)

		// First attempt rolled back; only the undiscounted booking persisted.
		assert.Len(t, f.state.reservations, 1)
		assert.Equal(t, 1, f.state.consumeCalls)
		assert.Empty(t, f.state.promos[code].UsedBy)
	})
}

func TestCreateReservationReplay(t *testing.T) {
	ref := "pay_abc123"

	t.Run("same payment ref replays the original", func(t *testing.T) {
		f := newCommandFixture(t)
		in := f.input("10:00", "12:00")
		in.PaymentRef = &ref

		first, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, first.IsReplayed)

		// Resubmission, even with a different slot, returns the original.
		again := f.input("13:00", "15:00")
		again.PaymentRef = &ref
		second, err := f.cmds.CreateReservation(context.Background(), again)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
		assert.Equal(t, "10:00", second.Reservation.StartTime)
		assert.Len(t, f.state.reservations, 1)
	})

	t.Run("empty ref never replays", func(t *testing.T) {
		f := newCommandFixture(t)
		empty := ""
		in := f.input("10:00", "12:00")
		in.PaymentRef = &empty

		_, err := f.cmds.CreateReservation(context.Background(), in)
		require.NoError(t, err)

		in2 := f.input("13:00", "15:00")
		in2.PaymentRef = &empty
		_, err = f.cmds.CreateReservation(context.Background(), in2)
		require.NoError(t, err)
		assert.Len(t, f.state.reservations, 2)
	})
}

func TestCreateBlock(t *testing.T) {
	parse := func(s string) schedule.Minute {
		m, _ := schedule.ParseClock(s)
		return m
	}

	t.Run("blocks the slot", func(t *testing.T) {
		f := newCommandFixture(t)

		view, err := f.cmds.CreateBlock(context.Background(), f.courtID, cmdDate, parse("10:00"), parse("12:00"))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusBlocked.String(), view.Status)
		assert.Nil(t, view.CustomerID)
		assert.Zero(t, view.FinalPrice)

		_, err = f.cmds.CreateReservation(context.Background(), f.input("11:00", "13:00"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("block respects existing bookings", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.cmds.CreateBlock(context.Background(), f.courtID, cmdDate, parse("11:00"), parse("13:00"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("invalid interval", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateBlock(context.Background(), f.courtID, cmdDate, parse("10:00"), parse("10:30"))
		assert.True(t, errs.Is(err, commands.ErrInvalidInterval))
	})

	t.Run("past date rejected", func(t *testing.T) {
		f := newCommandFixture(t)
		_, err := f.cmds.CreateBlock(context.Background(), f.courtID, cmdNow.AddDate(0, 0, -1), parse("10:00"), parse("12:00"))
		assert.True(t, errs.Is(err, commands.ErrInvalidInterval))
		assert.ErrorIs(t, err, schedule.ErrDateInPast)
	})
}
