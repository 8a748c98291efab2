package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/infra/db"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Promos() PromoRepository
	PricingRules() PricingRuleRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	PromoByCode(ctx context.Context, code string) (*PromoSnapshot, error)
	ActiveRules(ctx context.Context) ([]RuleSnapshot, error)
	CustomerIDsByPhone(ctx context.Context, phone string) ([]uuid.UUID, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	ReservationIDByPaymentRef(ctx context.Context, ref string) (*uuid.UUID, error)
	// ReservationsForSlot returns every non-cancelled reservation occupying
	// the court on the date, optionally excluding one id (move flows).
	ReservationsForSlot(ctx context.Context, courtID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*booking.Reservation, error)
	// PendingReservations returns every reservation still awaiting payment,
	// for the stale-checkout sweep.
	PendingReservations(ctx context.Context) ([]*booking.Reservation, error)
}

// Write-side snapshots prevent dependency on read-side query types
type CourtSnapshot struct {
	ID     uuid.UUID
	Name   string
	Active bool
}

type PromoSnapshot struct {
	ID            uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue float64
	MaxTotalUses  *int32
	UsedBy        []uuid.UUID
	Active        bool
	ExpiresAt     time.Time
}

type RuleSnapshot struct {
	ID           uuid.UUID
	DayBucket    string
	TimeBucket   string
	PricePerHour int64
	Active       bool
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *booking.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, res *booking.Reservation) error
}

type PromoRepository interface {
	// Consume is one atomic conditional update: the membership check and the
	// append happen in a single statement.
	Consume(ctx context.Context, dbtx db.DBTX, promoID, customerID uuid.UUID) error
	Release(ctx context.Context, dbtx db.DBTX, promoID, customerID uuid.UUID) error
}

type PricingRuleRepository interface {
	// Upsert deactivates any previous active rule for the bucket pair before
	// inserting, preserving the one-active-rule invariant.
	Upsert(ctx context.Context, dbtx db.DBTX, rule RuleSnapshot) (uuid.UUID, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
