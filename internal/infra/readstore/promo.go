package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/pgconv"
	"court-reserve/internal/usecase/shared"
)

type PromoReadStore struct {
	dbtx db.DBTX
}

func NewPromoReadStore(dbtx db.DBTX) *PromoReadStore {
	return &PromoReadStore{dbtx: dbtx}
}

const findPromoByCodeQuery = `
SELECT id, code, discount_type, discount_value, max_total_uses, used_by, active, expires_at
FROM promo_codes
WHERE code = $1`

func (s *PromoReadStore) FindByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error) {
	var (
		snapshot     shared.PromoSnapshot
		maxTotalUses pgtype.Int4
		usedBy       []uuid.UUID
	)
	err := s.dbtx.QueryRow(ctx, findPromoByCodeQuery, code).Scan(
		&snapshot.ID, &snapshot.Code, &snapshot.DiscountType, &snapshot.DiscountValue,
		&maxTotalUses, &usedBy, &snapshot.Active, &snapshot.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promo code", err)
	}
	snapshot.MaxTotalUses = pgconv.Int32PtrFromPgtype(maxTotalUses)
	snapshot.UsedBy = usedBy
	return &snapshot, nil
}
