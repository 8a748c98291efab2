package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/domain/customer"
	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/promo"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/infra"
	"court-reserve/internal/pkg/clock"
	"court-reserve/internal/pkg/errs"
	"court-reserve/internal/usecase/queries"
	"court-reserve/internal/usecase/shared"
)

var (
	ErrCourtNotFound               = errs.New("court not found")
	ErrCourtInactive               = errs.New("court is not active")
	ErrInvalidInterval             = errs.New("invalid booking interval")
	ErrReservationConflict         = errs.New("reservation conflict")
	ErrPricingConfigurationMissing = errs.New("pricing configuration missing")
	ErrReservationNotFound         = errs.New("reservation not found")
	ErrInvalidTransition           = errs.New("invalid status transition")
	ErrDatabaseOperationFailed     = errs.New("database operation failed")
	ErrStoreTimeout                = errs.New("store operation timed out")

	// errPromoLostRace aborts the creating transaction when a concurrent
	// request consumed the promo between validation and consumption; the
	// whole creation is retried without the discount.
	errPromoLostRace = errs.New("promo consumed concurrently")
)

type CreateReservationInput struct {
	CourtID    uuid.UUID
	Date       time.Time
	Start      schedule.Minute
	End        schedule.Minute
	CustomerID uuid.UUID
	Phone      string
	PromoCode  *string
	// PaymentRef is the external payment authority's reference; resubmitting
	// the same reference replays the original reservation.
	PaymentRef *string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
	// PromoRejection is set when a supplied code was refused and the booking
	// proceeded without the discount.
	PromoRejection string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	CreateBlock(ctx context.Context, courtID uuid.UUID, date time.Time, start, end schedule.Minute) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	factory            *booking.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	window             schedule.Window
	logger             *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
	window schedule.Window,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		factory:            factory,
		reservationQueries: reservationQueries,
		clock:              clk,
		window:             window,
		logger:             logger,
	}
}

func (r *reservationCommandsImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	if in.PaymentRef != nil && *in.PaymentRef != "" {
		replayed, err := r.findReplay(ctx, *in.PaymentRef)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
		}
	}

	// Interval validation happens before any store access.
	interval, err := schedule.NewInterval(in.Date, in.Start, in.End, r.window)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}
	if interval.InPast(r.clock.Now()) {
		return nil, errs.Mark(schedule.ErrDateInPast, ErrInvalidInterval)
	}

	result, err := r.createWithPromo(ctx, in, interval, in.PromoCode)
	if errors.Is(err, errPromoLostRace) {
		// Lost the race on a single-use code: book without the discount
		// rather than failing the reservation.
		result, err = r.createWithPromo(ctx, in, interval, nil)
		if err == nil {
			result.PromoRejection = promo.ErrAlreadyUsedByCustomer.Error()
		}
	}
	return result, err
}

func (r *reservationCommandsImpl) createWithPromo(
	ctx context.Context,
	in CreateReservationInput,
	interval schedule.Interval,
	promoCode *string,
) (*CreateReservationResult, error) {
	var (
		reservationID  uuid.UUID
		promoRejection string
	)

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		court, err := reads.CourtByID(ctx, in.CourtID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCourtNotFound
			}
			return r.markStoreErr(err)
		}
		if !court.Active {
			return ErrCourtInactive
		}

		// Final authority on availability: re-read inside the transaction
		// immediately before the write, never a value cached from an earlier
		// client-side check.
		existing, err := reads.ReservationsForSlot(ctx, in.CourtID, interval.Date(), nil)
		if err != nil {
			return r.markStoreErr(err)
		}
		for _, res := range existing {
			if schedule.Overlaps(interval, res.Interval()) {
				return ErrReservationConflict
			}
		}

		ruleSet, err := r.loadRuleSet(ctx, reads)
		if err != nil {
			return err
		}

		promoEntity, identityIDs, err := r.resolvePromo(ctx, reads, promoCode, in.Phone)
		if err != nil {
			return err
		}

		created, err := r.factory.CreateReservation(ruleSet, booking.CreateSpec{
			CourtID:     in.CourtID,
			CustomerID:  in.CustomerID,
			IdentityIDs: identityIDs,
			Interval:    interval,
			Promo:       promoEntity,
			PaymentRef:  in.PaymentRef,
		})
		if err != nil {
			if errors.Is(err, pricing.ErrRuleNotConfigured) {
				r.logger.Error("no active pricing rule for requested slot; rule table is incomplete",
					"court_id", in.CourtID.String(), "date", interval.Date().Format("2006-01-02"), "slot", interval.Key())
				return ErrPricingConfigurationMissing
			}
			return errs.Mark(err, ErrInvalidInterval)
		}
		if created.PromoReason != nil {
			promoRejection = created.PromoReason.Error()
		}

		reservation := created.Reservation
		id, err := tx.Reservations().Create(ctx, tx.DB(), reservation)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrReservationConflict
			}
			return r.markStoreErr(err)
		}
		reservationID = id

		// Consume only after the reservation write succeeded; both live or
		// die with the same transaction.
		if reservation.HoldsPromo() {
			if err := tx.Promos().Consume(ctx, tx.DB(), *reservation.PromoCodeID(), in.CustomerID); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errPromoLostRace
				}
				return r.markStoreErr(err)
			}
		}

		return r.enqueueConfirmationEmail(ctx, tx, reservationID)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateReservationResult{Reservation: view, PromoRejection: promoRejection}, nil
}

func (r *reservationCommandsImpl) CreateBlock(ctx context.Context, courtID uuid.UUID, date time.Time, start, end schedule.Minute) (*queries.ReservationView, error) {
	interval, err := schedule.NewInterval(date, start, end, r.window)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}
	if interval.InPast(r.clock.Now()) {
		return nil, errs.Mark(schedule.ErrDateInPast, ErrInvalidInterval)
	}

	var blockID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().ReservationsForSlot(ctx, courtID, interval.Date(), nil)
		if err != nil {
			return r.markStoreErr(err)
		}
		for _, res := range existing {
			if schedule.Overlaps(interval, res.Interval()) {
				return ErrReservationConflict
			}
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), booking.NewBlock(courtID, interval))
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrReservationConflict
			}
			return r.markStoreErr(err)
		}
		blockID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.reservationQueries.GetByID(ctx, blockID)
}

func (r *reservationCommandsImpl) findReplay(ctx context.Context, paymentRef string) (*queries.ReservationView, error) {
	id, err := r.uow.CommandReads().ReservationIDByPaymentRef(ctx, paymentRef)
	if err != nil {
		return nil, r.markStoreErr(err)
	}
	if id == nil {
		return nil, nil
	}
	return r.reservationQueries.GetByID(ctx, *id)
}

func (r *reservationCommandsImpl) loadRuleSet(ctx context.Context, reads shared.CommandReads) (pricing.RuleSet, error) {
	snapshots, err := reads.ActiveRules(ctx)
	if err != nil {
		return pricing.RuleSet{}, r.markStoreErr(err)
	}
	rules := make([]pricing.Rule, 0, len(snapshots))
	for _, s := range snapshots {
		rule, err := pricing.NewRule(s.ID, pricing.DayBucket(s.DayBucket), pricing.TimeBucket(s.TimeBucket), s.PricePerHour, s.Active)
		if err != nil {
			return pricing.RuleSet{}, errs.Mark(err, ErrPricingConfigurationMissing)
		}
		rules = append(rules, rule)
	}
	ruleSet, err := pricing.NewRuleSet(rules)
	if err != nil {
		return pricing.RuleSet{}, errs.Mark(err, ErrPricingConfigurationMissing)
	}
	return ruleSet, nil
}

// resolvePromo loads the code and all customer records sharing the caller's
// phone. A missing or malformed code is not fatal; the factory records the
// rejection reason and the booking proceeds undiscounted.
func (r *reservationCommandsImpl) resolvePromo(
	ctx context.Context,
	reads shared.CommandReads,
	promoCode *string,
	phone string,
) (*promo.PromoCode, []uuid.UUID, error) {
	if promoCode == nil || *promoCode == "" {
		return nil, nil, nil
	}

	code, err := promo.NewCode(*promoCode)
	if err != nil {
		return nil, nil, nil
	}

	snapshot, err := reads.PromoByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil
		}
		return nil, nil, r.markStoreErr(err)
	}

	discount, err := promo.NewDiscount(promo.DiscountType(snapshot.DiscountType), snapshot.DiscountValue)
	if err != nil {
		return nil, nil, nil
	}

	var identityIDs []uuid.UUID
	if identity, idErr := customer.NewContactIdentity(phone); idErr == nil {
		identityIDs, err = reads.CustomerIDsByPhone(ctx, identity.Phone())
		if err != nil {
			return nil, nil, r.markStoreErr(err)
		}
	}

	entity := promo.ReconstructPromoCode(
		snapshot.ID,
		promo.Code(snapshot.Code),
		discount,
		snapshot.MaxTotalUses,
		snapshot.UsedBy,
		snapshot.Active,
		snapshot.ExpiresAt,
	)
	return entity, identityIDs, nil
}

func (r *reservationCommandsImpl) enqueueConfirmationEmail(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) error {
	// Delivery is out-of-band; the booking never blocks on the mailer.
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           "reservation_created",
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", "reservation_created", payload, r.clock.Now()); err != nil {
		return r.markStoreErr(err)
	}
	return nil
}

func (r *reservationCommandsImpl) markStoreErr(err error) error {
	if infra.IsKind(err, infra.KindTimeout) {
		return errs.Mark(err, ErrStoreTimeout)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
