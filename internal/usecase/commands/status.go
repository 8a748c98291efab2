package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/infra"
	"court-reserve/internal/pkg/clock"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/shared"
)

type StatusCommands interface {
	// ConfirmPayment moves pending -> confirmed once the payment authority
	// reports completion.
	ConfirmPayment(ctx context.Context, reservationID uuid.UUID, amountPaid int64) error
	// Cancel is idempotent; cancelling an already cancelled reservation is a
	// no-op. A held promo usage is released in the same transaction.
	Cancel(ctx context.Context, reservationID uuid.UUID) error
	Complete(ctx context.Context, reservationID uuid.UUID) error
	MarkNoShow(ctx context.Context, reservationID uuid.UUID) error
	// ReleaseStale cancels unpaid pending reservations older than ttl and
	// returns how many it released. Run by operators to free slots held by
	// abandoned checkouts.
	ReleaseStale(ctx context.Context, ttl time.Duration) (int, error)
}

type statusCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewStatusCommands(uow shared.UnitOfWork, clk clock.Clock) StatusCommands {
	return &statusCommandsImpl{uow: uow, clock: clk}
}

func (s *statusCommandsImpl) ConfirmPayment(ctx context.Context, reservationID uuid.UUID, amountPaid int64) error {
	paid, err := booking.NewMoney(amountPaid)
	if err != nil {
		return errs.Mark(err, ErrInvalidTransition)
	}
	return s.transition(ctx, reservationID, func(res *booking.Reservation) error {
		return res.Confirm(paid)
	})
}

func (s *statusCommandsImpl) Cancel(ctx context.Context, reservationID uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if res.IsCancelled() {
			return nil
		}
		return cancelLoaded(ctx, tx, res)
	})
}

// ReleaseStale sweeps pending reservations whose checkout was abandoned. The
// store narrows to pending rows; the aggregate decides staleness so the TTL
// rule lives in one place.
func (s *statusCommandsImpl) ReleaseStale(ctx context.Context, ttl time.Duration) (int, error) {
	now := s.clock.Now()
	released := 0
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pending, err := tx.Reads().PendingReservations(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, res := range pending {
			if !res.StaleAt(now, ttl) {
				continue
			}
			if err := cancelLoaded(ctx, tx, res); err != nil {
				return err
			}
			released++
		}
		return nil
	})
	if err != nil {
		released = 0
	}
	return released, err
}

// cancelLoaded applies the cancellation to an already-loaded aggregate and
// releases any held promo usage in the same transaction.
func cancelLoaded(ctx context.Context, tx shared.Tx, res *booking.Reservation) error {
	holdsPromo := res.HoldsPromo()
	if err := res.Cancel(); err != nil {
		return errs.Mark(err, ErrInvalidTransition)
	}
	if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if holdsPromo {
		// Release is idempotent at the store: a missing membership is
		// not an error.
		if err := tx.Promos().Release(ctx, tx.DB(), *res.PromoCodeID(), *res.CustomerID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (s *statusCommandsImpl) Complete(ctx context.Context, reservationID uuid.UUID) error {
	return s.transition(ctx, reservationID, func(res *booking.Reservation) error {
		return res.Complete()
	})
}

func (s *statusCommandsImpl) MarkNoShow(ctx context.Context, reservationID uuid.UUID) error {
	return s.transition(ctx, reservationID, func(res *booking.Reservation) error {
		return res.MarkNoShow()
	})
}

func (s *statusCommandsImpl) transition(ctx context.Context, reservationID uuid.UUID, apply func(*booking.Reservation) error) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := apply(res); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
