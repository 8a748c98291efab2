package readstore

import (
	"context"

	"github.com/google/uuid"

	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
)

type CustomerReadStore struct {
	dbtx db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{dbtx: dbtx}
}

const customerIDsByPhoneQuery = `
SELECT id FROM customers WHERE phone = $1`

// IDsByPhone returns every customer account registered under a phone number.
// Promo single-use checks treat all of them as one identity.
func (s *CustomerReadStore) IDsByPhone(ctx context.Context, phone string) ([]uuid.UUID, error) {
	rows, err := s.dbtx.Query(ctx, customerIDsByPhoneQuery, phone)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find customers by phone", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find customers by phone", err)
	}
	return ids, nil
}
