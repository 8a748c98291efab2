package promo

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCode            = errors.New("invalid promo code format")
	ErrInactive               = errors.New("promo code is not active")
	ErrExpired                = errors.New("promo code has expired")
	ErrUsageCapReached        = errors.New("promo code usage cap reached")
	ErrAlreadyUsedByCustomer  = errors.New("promo code already used by this customer")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrDiscountUnspecified    = errors.New("discount must be either fixed amount or percentage")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// DefaultValidity applies when a code is created without an explicit expiry.
const DefaultValidity = 7 * 24 * time.Hour

// Code is stored normalized-upper; lookups are case-insensitive.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	fixedOff   *int64 // halalas
	percentOff *float64
}

func NewFixedDiscount(halalasOff int64) (Discount, error) {
	if halalasOff < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{fixedOff: &halalasOff}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(dt DiscountType, value float64) (Discount, error) {
	switch dt {
	case DiscountFixed:
		return NewFixedDiscount(int64(value))
	case DiscountPercentage:
		return NewPercentageDiscount(value)
	default:
		return Discount{}, ErrDiscountUnspecified
	}
}

func (d Discount) Type() DiscountType {
	if d.percentOff != nil {
		return DiscountPercentage
	}
	return DiscountFixed
}

func (d Discount) Value() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	if d.fixedOff != nil {
		return float64(*d.fixedOff)
	}
	return 0
}

// AmountOff computes the discount in halalas for a given base amount,
// clamped so the final price never goes negative.
func (d Discount) AmountOff(base int64) int64 {
	var off int64
	switch {
	case d.percentOff != nil:
		off = int64(math.Round(float64(base) * *d.percentOff / 100.0))
	case d.fixedOff != nil:
		off = *d.fixedOff
	}
	if off > base {
		off = base
	}
	if off < 0 {
		off = 0
	}
	return off
}

type PromoCode struct {
	id           uuid.UUID
	code         Code
	discount     Discount
	maxTotalUses *int32
	usedBy       []uuid.UUID
	active       bool
	expiresAt    time.Time
}

func NewPromoCode(
	id uuid.UUID,
	code string,
	discount Discount,
	maxTotalUses *int32,
	expiresAt *time.Time,
	now time.Time,
) (*PromoCode, error) {
	normalized, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	exp := now.Add(DefaultValidity)
	if expiresAt != nil {
		exp = *expiresAt
	}
	return &PromoCode{
		id:           id,
		code:         normalized,
		discount:     discount,
		maxTotalUses: maxTotalUses,
		active:       true,
		expiresAt:    exp,
	}, nil
}

func ReconstructPromoCode(
	id uuid.UUID,
	code Code,
	discount Discount,
	maxTotalUses *int32,
	usedBy []uuid.UUID,
	active bool,
	expiresAt time.Time,
) *PromoCode {
	return &PromoCode{
		id:           id,
		code:         code,
		discount:     discount,
		maxTotalUses: maxTotalUses,
		usedBy:       usedBy,
		active:       active,
		expiresAt:    expiresAt,
	}
}

func (p *PromoCode) ID() uuid.UUID        { return p.id }
func (p *PromoCode) Code() Code           { return p.code }
func (p *PromoCode) Discount() Discount   { return p.discount }
func (p *PromoCode) MaxTotalUses() *int32 { return p.maxTotalUses }
func (p *PromoCode) UsedBy() []uuid.UUID  { return p.usedBy }
func (p *PromoCode) Active() bool         { return p.active }
func (p *PromoCode) ExpiresAt() time.Time { return p.expiresAt }

func (p *PromoCode) UsedByCustomer(customerID uuid.UUID) bool {
	for _, id := range p.usedBy {
		if id == customerID {
			return true
		}
	}
	return false
}

// ValidateUsage runs the short-circuiting check sequence. identityCustomerIDs
// are all customer records sharing the caller's contact identity: a guest may
// hold several records for one phone number, and the code is single-use
// across all of them.
func (p *PromoCode) ValidateUsage(now time.Time, identityCustomerIDs []uuid.UUID) error {
	if !p.active {
		return ErrInactive
	}
	if now.After(p.expiresAt) {
		return ErrExpired
	}
	for _, id := range identityCustomerIDs {
		if p.UsedByCustomer(id) {
			return ErrAlreadyUsedByCustomer
		}
	}
	if p.maxTotalUses != nil && int32(len(p.usedBy)) >= *p.maxTotalUses {
		return ErrUsageCapReached
	}
	return nil
}

// Consume appends the customer to the usage set; duplicates are rejected as a
// double-consumption defense. The store-level counterpart performs the same
// check-and-append as one conditional write.
func (p *PromoCode) Consume(customerID uuid.UUID) error {
	if p.UsedByCustomer(customerID) {
		return ErrAlreadyUsedByCustomer
	}
	p.usedBy = append(p.usedBy, customerID)
	return nil
}

// Release removes the customer from the usage set after a cancellation.
// Missing membership is not an error.
func (p *PromoCode) Release(customerID uuid.UUID) {
	for i, id := range p.usedBy {
		if id == customerID {
			p.usedBy = append(p.usedBy[:i], p.usedBy[i+1:]...)
			return
		}
	}
}
