//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/commands"
)

// book creates a pending reservation through the command path and returns
// its id.
func (f *commandFixture) book(t *testing.T, start, end string, promoCode *string) uuid.UUID {
	t.Helper()
	in := f.input(start, end)
	in.PromoCode = promoCode
	result, err := f.cmds.CreateReservation(context.Background(), in)
	require.NoError(t, err)
	return result.Reservation.ID
}

// seedPending plants a persisted-looking pending reservation directly in the
// store, with a creation time the sweep can age against.
func (f *commandFixture) seedPending(t *testing.T, start, end string, createdAt time.Time, promoID *uuid.UUID) uuid.UUID {
	t.Helper()
	s, err := schedule.ParseClock(start)
	require.NoError(t, err)
	e, err := schedule.ParseClock(end)
	require.NoError(t, err)

	id := uuid.New()
	f.state.reservations[id] = booking.ReconstructReservation(
		id, f.courtID, &f.customer, schedule.ReconstructInterval(cmdDate, s, e),
		booking.StatusPending, booking.PaymentPending,
		booking.MustMoney(20000), booking.Money{}, booking.MustMoney(20000), booking.Money{},
		nil, promoID, nil,
		createdAt, createdAt,
	)
	return id
}

func TestConfirmPayment(t *testing.T) {
	t.Run("full payment", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))
		res := f.state.reservations[id]
		assert.Equal(t, booking.StatusConfirmed, res.Status())
		assert.Equal(t, booking.PaymentPaid, res.PaymentStatus())
	})

	t.Run("partial payment", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 5000))
		assert.Equal(t, booking.PaymentPartial, f.state.reservations[id].PaymentStatus())
	})

	t.Run("negative amount", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		err := f.status.ConfirmPayment(context.Background(), id, -1)
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newCommandFixture(t)
		err := f.status.ConfirmPayment(context.Background(), uuid.New(), 20000)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("double confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))
		err := f.status.ConfirmPayment(context.Background(), id, 20000)
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancel frees the slot", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.Cancel(context.Background(), id))
		assert.Equal(t, booking.StatusCancelled, f.state.reservations[id].Status())

		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		assert.NoError(t, err)
	})

	t.Run("idempotent", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.Cancel(context.Background(), id))
		require.NoError(t, f.status.Cancel(context.Background(), id))
	})

	t.Run("releases a held promo usage", func(t *testing.T) {
		f := newCommandFixture(t)
		code := "SAVE25"
		f.addActivePromo(code, 25)
		id := f.book(t, "10:00", "12:00", &code)
		require.Contains(t, f.state.promos[code].UsedBy, f.customer)

		require.NoError(t, f.status.Cancel(context.Background(), id))
		assert.Equal(t, 1, f.state.releaseCalls)
		assert.Empty(t, f.state.promos[code].UsedBy)

		// The code is usable again after the release.
		next := f.input("13:00", "15:00")
		next.PromoCode = &code
		result, err := f.cmds.CreateReservation(context.Background(), next)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Reservation.Discount)
	})

	t.Run("undiscounted booking releases nothing", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		require.NoError(t, f.status.Cancel(context.Background(), id))
		assert.Zero(t, f.state.releaseCalls)
	})

	t.Run("completed reservation cannot be cancelled", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)
		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))
		require.NoError(t, f.status.Complete(context.Background(), id))

		err := f.status.Cancel(context.Background(), id)
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newCommandFixture(t)
		err := f.status.Cancel(context.Background(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestReleaseStale(t *testing.T) {
	ttl := 30 * time.Minute

	t.Run("cancels stale pending and keeps fresh ones", func(t *testing.T) {
		f := newCommandFixture(t)
		stale := f.seedPending(t, "10:00", "12:00", cmdNow.Add(-time.Hour), nil)
		fresh := f.seedPending(t, "13:00", "15:00", cmdNow.Add(-10*time.Minute), nil)

		released, err := f.status.ReleaseStale(context.Background(), ttl)
		require.NoError(t, err)
		assert.Equal(t, 1, released)
		assert.Equal(t, booking.StatusCancelled, f.state.reservations[stale].Status())
		assert.Equal(t, booking.StatusPending, f.state.reservations[fresh].Status())
	})

	t.Run("released slot becomes bookable again", func(t *testing.T) {
		f := newCommandFixture(t)
		f.seedPending(t, "10:00", "12:00", cmdNow.Add(-time.Hour), nil)

		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		require.ErrorIs(t, err, commands.ErrReservationConflict)

		_, err = f.status.ReleaseStale(context.Background(), ttl)
		require.NoError(t, err)

		_, err = f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		assert.NoError(t, err)
	})

	t.Run("stale discounted booking returns the promo usage", func(t *testing.T) {
		f := newCommandFixture(t)
		snap := f.addActivePromo("SAVE25", 25)
		f.state.promos[snap.Code].UsedBy = []uuid.UUID{f.customer}
		f.seedPending(t, "10:00", "12:00", cmdNow.Add(-time.Hour), &snap.ID)

		released, err := f.status.ReleaseStale(context.Background(), ttl)
		require.NoError(t, err)
		assert.Equal(t, 1, released)
		assert.Equal(t, 1, f.state.releaseCalls)
		assert.Empty(t, f.state.promos[snap.Code].UsedBy)
	})

	t.Run("confirmed reservations are never swept", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)
		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))

		released, err := f.status.ReleaseStale(context.Background(), ttl)
		require.NoError(t, err)
		assert.Zero(t, released)
		assert.Equal(t, booking.StatusConfirmed, f.state.reservations[id].Status())
	})

	t.Run("nothing pending is a no-op", func(t *testing.T) {
		f := newCommandFixture(t)
		released, err := f.status.ReleaseStale(context.Background(), ttl)
		require.NoError(t, err)
		assert.Zero(t, released)
	})
}

func TestCompleteAndMarkNoShow(t *testing.T) {
	t.Run("complete after confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)
		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))

		require.NoError(t, f.status.Complete(context.Background(), id))
		assert.Equal(t, booking.StatusCompleted, f.state.reservations[id].Status())
	})

	t.Run("complete from pending is invalid", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)

		err := f.status.Complete(context.Background(), id)
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
	})

	t.Run("no show after confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		id := f.book(t, "10:00", "12:00", nil)
		require.NoError(t, f.status.ConfirmPayment(context.Background(), id, 20000))

		require.NoError(t, f.status.MarkNoShow(context.Background(), id))
		assert.Equal(t, booking.StatusNoShow, f.state.reservations[id].Status())

		// A no-show still occupies its slot; the court stays unavailable.
		_, err := f.cmds.CreateReservation(context.Background(), f.input("10:00", "12:00"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})
}
