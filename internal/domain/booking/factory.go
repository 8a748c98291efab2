package booking

import (
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/promo"
	"court-reserve/internal/domain/schedule"
	"court-reserve/internal/pkg/clock"
)

type Factory struct {
	Clock  clock.Clock
	Engine *pricing.Engine
}

func NewFactory(clk clock.Clock, engine *pricing.Engine) *Factory {
	return &Factory{Clock: clk, Engine: engine}
}

type CreateSpec struct {
	CourtID     uuid.UUID
	CustomerID  uuid.UUID
	IdentityIDs []uuid.UUID // all customer records sharing the caller's phone
	Interval    schedule.Interval
	Promo       *promo.PromoCode
	PaymentRef  *string
}

type CreateResult struct {
	Reservation *Reservation
	// PromoReason carries the rejection reason when the supplied promo was
	// invalid and the booking proceeded undiscounted.
	PromoReason error
}

// CreateReservation prices the interval and assembles the aggregate. An
// invalid promo never blocks the booking: the reservation is built without
// the discount and the rejection reason is returned alongside for the caller
// to surface.
func (f *Factory) CreateReservation(rules pricing.RuleSet, spec CreateSpec) (*CreateResult, error) {
	quote, err := f.Engine.Price(rules, spec.Interval.Date(), spec.Interval.Start(), spec.Interval.End())
	if err != nil {
		return nil, err
	}

	discount := Money{}
	var promoID *uuid.UUID
	var promoReason error
	if spec.Promo != nil {
		promoReason = spec.Promo.ValidateUsage(f.Clock.Now(), spec.IdentityIDs)
		if promoReason == nil {
			discount = MustMoney(spec.Promo.Discount().AmountOff(quote.Total))
			id := spec.Promo.ID()
			promoID = &id
		}
	}

	res, err := NewReservation(spec.CourtID, spec.CustomerID, spec.Interval, quote, discount, promoID, spec.PaymentRef)
	if err != nil {
		return nil, err
	}
	return &CreateResult{Reservation: res, PromoReason: promoReason}, nil
}

// StaleAt reports whether an unpaid pending reservation can be garbage
// collected by an operator sweep.
func (r *Reservation) StaleAt(now time.Time, ttl time.Duration) bool {
	return r.status == StatusPending && !r.createdAt.IsZero() && now.Sub(r.createdAt) > ttl
}
