package repository

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
)

type PromoRepository struct{}

func NewPromoRepository() *PromoRepository {
	return &PromoRepository{}
}

// The membership check, the capacity check and the append happen in one
// statement so two racing transactions can never both take the last use.
const consumePromoQuery = `
UPDATE promo_codes
SET used_by = array_append(used_by, $2)
WHERE id = $1
  AND active
  AND NOT (used_by @> ARRAY[$2]::uuid[])
  AND (max_total_uses IS NULL OR cardinality(used_by) < max_total_uses)`

func (r *PromoRepository) Consume(ctx context.Context, dbtx db.DBTX, promoID, customerID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, consumePromoQuery,
		pgconv.UUIDToPgtype(promoID),
		pgconv.UUIDToPgtype(customerID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to consume promo code", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promo code no longer available", nil, infra.KindConflict)
	}
	return nil
}

const releasePromoQuery = `
UPDATE promo_codes
SET used_by = array_remove(used_by, $2)
WHERE id = $1`

// Release is idempotent: removing an absent customer id affects the row
// without changing it, which is fine.
func (r *PromoRepository) Release(ctx context.Context, dbtx db.DBTX, promoID, customerID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, releasePromoQuery,
		pgconv.UUIDToPgtype(promoID),
		pgconv.UUIDToPgtype(customerID),
	); err != nil {
		return infra.WrapRepoErr("failed to release promo code", err)
	}
	return nil
}
