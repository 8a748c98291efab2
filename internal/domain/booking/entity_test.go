//go:build unit

package booking_test

import (
	"testing"
	"time"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

func testQuote() pricing.Quote {
	return pricing.Quote{
		Segments: []pricing.Segment{
			{Label: "10:00-11:00", DayBucket: pricing.DayThu, TimeBucket: pricing.TimeDay, Rate: 9000, Minutes: 60, Amount: 9000},
			{Label: "11:00-12:00", DayBucket: pricing.DayThu, TimeBucket: pricing.TimeDay, Rate: 9000, Minutes: 60, Amount: 9000},
		},
		Total: 18000,
	}
}

func testInterval(t *testing.T) schedule.Interval {
	t.Helper()
	start, _ := schedule.ParseClock("10:00")
	end, _ := schedule.ParseClock("12:00")
	iv, err := schedule.NewInterval(bookingDate, start, end, schedule.DefaultWindow())
	require.NoError(t, err)
	return iv
}

func newPending(t *testing.T) *booking.Reservation {
	t.Helper()
	res, err := booking.NewReservation(uuid.New(), uuid.New(), testInterval(t), testQuote(), booking.MustMoney(3000), nil, nil)
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	res := newPending(t)

	assert.Equal(t, booking.StatusPending, res.Status())
	assert.Equal(t, booking.PaymentPending, res.PaymentStatus())
	assert.Equal(t, int64(18000), res.BasePrice().Halalas())
	assert.Equal(t, int64(3000), res.Discount().Halalas())
	assert.Equal(t, int64(15000), res.FinalPrice().Halalas())
	assert.Len(t, res.Segments(), 2)
	assert.NotEqual(t, uuid.Nil, res.ID())
}

func TestNewReservationRequiresCustomer(t *testing.T) {
	_, err := booking.NewReservation(uuid.New(), uuid.Nil, testInterval(t), testQuote(), booking.Money{}, nil, nil)
	assert.ErrorIs(t, err, booking.ErrMissingCustomer)
}

func TestNewBlock(t *testing.T) {
	block := booking.NewBlock(uuid.New(), testInterval(t))

	assert.Equal(t, booking.StatusBlocked, block.Status())
	assert.Nil(t, block.CustomerID())
	assert.True(t, block.BasePrice().IsZero())
	assert.False(t, block.HoldsPromo())
}

func TestConfirm(t *testing.T) {
	t.Run("full payment", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(booking.MustMoney(15000)))
		assert.Equal(t, booking.StatusConfirmed, res.Status())
		assert.Equal(t, booking.PaymentPaid, res.PaymentStatus())
	})

	t.Run("partial payment", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(booking.MustMoney(5000)))
		assert.Equal(t, booking.PaymentPartial, res.PaymentStatus())
	})

	t.Run("only from pending", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(booking.MustMoney(15000)))
		assert.ErrorIs(t, res.Confirm(booking.MustMoney(15000)), booking.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	t.Run("from pending", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Cancel())
		assert.Equal(t, booking.StatusCancelled, res.Status())
	})

	t.Run("idempotent", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Cancel())
		// Cancelling a cancelled reservation is a no-op, not an error.
		require.NoError(t, res.Cancel())
		assert.Equal(t, booking.StatusCancelled, res.Status())
	})

	t.Run("refunds paid reservation", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(booking.MustMoney(15000)))
		require.NoError(t, res.Cancel())
		assert.Equal(t, booking.PaymentRefunded, res.PaymentStatus())
	})

	t.Run("blocked slot can be lifted", func(t *testing.T) {
		block := booking.NewBlock(uuid.New(), testInterval(t))
		require.NoError(t, block.Cancel())
	})

	t.Run("not from completed", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(booking.MustMoney(15000)))
		require.NoError(t, res.Complete())
		assert.ErrorIs(t, res.Cancel(), booking.ErrAlreadyTerminal)
	})
}

func TestCompleteAndNoShow(t *testing.T) {
	res := newPending(t)
	assert.ErrorIs(t, res.Complete(), booking.ErrInvalidTransition)
	assert.ErrorIs(t, res.MarkNoShow(), booking.ErrInvalidTransition)

	require.NoError(t, res.Confirm(booking.MustMoney(15000)))
	require.NoError(t, res.Complete())
	assert.Equal(t, booking.StatusCompleted, res.Status())

	other := newPending(t)
	require.NoError(t, other.Confirm(booking.MustMoney(15000)))
	require.NoError(t, other.MarkNoShow())
	assert.Equal(t, booking.StatusNoShow, other.Status())
}

func TestStatusOccupies(t *testing.T) {
	for _, s := range []booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusCompleted, booking.StatusNoShow, booking.StatusBlocked} {
		assert.True(t, s.Occupies(), string(s))
	}
	assert.False(t, booking.StatusCancelled.Occupies())
}

func TestMoney(t *testing.T) {
	_, err := booking.NewMoney(-1)
	assert.ErrorIs(t, err, booking.ErrNegativeMoney)

	m := booking.MustMoney(15050)
	assert.Equal(t, 150.50, m.SAR())

	// Sub clamps at zero so a discount can never push a price negative.
	assert.Equal(t, int64(0), booking.MustMoney(100).Sub(booking.MustMoney(500)).Halalas())
	assert.Equal(t, int64(300), booking.MustMoney(100).Add(booking.MustMoney(200)).Halalas())
}

func TestStaleAt(t *testing.T) {
	res := booking.ReconstructReservation(
		uuid.New(), uuid.New(), nil, testInterval(t),
		booking.StatusPending, booking.PaymentPending,
		booking.Money{}, booking.Money{}, booking.Money{}, booking.Money{},
		nil, nil, nil,
		bookingDate, bookingDate,
	)
	assert.True(t, res.StaleAt(bookingDate.Add(2*time.Hour), time.Hour))
	assert.False(t, res.StaleAt(bookingDate.Add(30*time.Minute), time.Hour))
}
