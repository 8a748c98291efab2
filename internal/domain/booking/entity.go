package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"
)

var (
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("invalid reservation status transition")
	ErrAlreadyTerminal      = errors.New("reservation is in a terminal state")
	ErrBlockedHasNoCustomer = errors.New("blocked reservation cannot carry a customer or price")
	ErrMissingCustomer      = errors.New("reservation requires a customer")
)

// Reservation is the aggregate persisted by the reservation transaction.
// Monetary fields and the segment breakdown are fixed at creation; later
// mutations are status and payment transitions only. Reservations are never
// deleted.
type Reservation struct {
	id            uuid.UUID
	courtID       uuid.UUID
	customerID    *uuid.UUID
	interval      schedule.Interval
	status        Status
	paymentStatus PaymentStatus
	basePrice     Money
	discount      Money
	finalPrice    Money
	amountPaid    Money
	segments      []pricing.Segment
	promoCodeID   *uuid.UUID
	paymentRef    *string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	courtID uuid.UUID,
	customerID uuid.UUID,
	interval schedule.Interval,
	quote pricing.Quote,
	discount Money,
	promoCodeID *uuid.UUID,
	paymentRef *string,
) (*Reservation, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}

	base := MustMoney(quote.Total)
	cid := customerID
	return &Reservation{
		id:            uuid.New(),
		courtID:       courtID,
		customerID:    &cid,
		interval:      interval,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		basePrice:     base,
		discount:      discount,
		finalPrice:    base.Sub(discount),
		segments:      quote.Segments,
		promoCodeID:   promoCodeID,
		paymentRef:    paymentRef,
	}, nil
}

// NewBlock creates an administrative hold: no customer, no price, not part of
// the payment lifecycle.
func NewBlock(courtID uuid.UUID, interval schedule.Interval) *Reservation {
	return &Reservation{
		id:            uuid.New(),
		courtID:       courtID,
		interval:      interval,
		status:        StatusBlocked,
		paymentStatus: PaymentPending,
	}
}

func ReconstructReservation(
	id, courtID uuid.UUID,
	customerID *uuid.UUID,
	interval schedule.Interval,
	status Status,
	paymentStatus PaymentStatus,
	basePrice, discount, finalPrice, amountPaid Money,
	segments []pricing.Segment,
	promoCodeID *uuid.UUID,
	paymentRef *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		courtID:       courtID,
		customerID:    customerID,
		interval:      interval,
		status:        status,
		paymentStatus: paymentStatus,
		basePrice:     basePrice,
		discount:      discount,
		finalPrice:    finalPrice,
		amountPaid:    amountPaid,
		segments:      segments,
		promoCodeID:   promoCodeID,
		paymentRef:    paymentRef,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) CourtID() uuid.UUID           { return r.courtID }
func (r *Reservation) CustomerID() *uuid.UUID       { return r.customerID }
func (r *Reservation) Interval() schedule.Interval  { return r.interval }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) BasePrice() Money             { return r.basePrice }
func (r *Reservation) Discount() Money              { return r.discount }
func (r *Reservation) FinalPrice() Money            { return r.finalPrice }
func (r *Reservation) AmountPaid() Money            { return r.amountPaid }
func (r *Reservation) Segments() []pricing.Segment  { return r.segments }
func (r *Reservation) PromoCodeID() *uuid.UUID      { return r.promoCodeID }
func (r *Reservation) PaymentRef() *string          { return r.paymentRef }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// Confirm marks payment completion.
func (r *Reservation) Confirm(amountPaid Money) error {
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	r.status = StatusConfirmed
	r.amountPaid = amountPaid
	if amountPaid.Halalas() >= r.finalPrice.Halalas() {
		r.paymentStatus = PaymentPaid
	} else if !amountPaid.IsZero() {
		r.paymentStatus = PaymentPartial
	}
	return nil
}

// Cancel is a terminal, idempotent transition: cancelling an already
// cancelled reservation is a no-op, not an error.
func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return nil
	}
	if r.status != StatusPending && r.status != StatusConfirmed && r.status != StatusBlocked {
		return ErrAlreadyTerminal
	}
	r.status = StatusCancelled
	if r.paymentStatus == PaymentPaid || r.paymentStatus == PaymentPartial {
		r.paymentStatus = PaymentRefunded
	}
	return nil
}

func (r *Reservation) Complete() error {
	if r.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) MarkNoShow() error {
	if r.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	r.status = StatusNoShow
	return nil
}

// HoldsPromo reports whether cancelling this reservation must release a promo
// usage.
func (r *Reservation) HoldsPromo() bool {
	return r.promoCodeID != nil && r.customerID != nil
}
