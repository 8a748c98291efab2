//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestCourt(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	courtID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO courts (id, name, active) VALUES ($1, $2, true) ON CONFLICT (name) DO NOTHING", courtID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM courts WHERE name = $1", name).Scan(&courtID)
	}

	return courtID
}

func DeactivateCourt(t *testing.T, db DBLike, courtID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE courts SET active = false WHERE id = $1", courtID)
	require.NoError(t, err)
}

// CreateTestCustomer inserts a customer account. The phone must already be in
// the normalized digits-only international form (9665XXXXXXXX) because the
// customers table stores spellings after normalization.
func CreateTestCustomer(t *testing.T, db DBLike, name, phone string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO customers (id, name, phone) VALUES ($1, $2, $3)", customerID, name, phone)
	require.NoError(t, err)

	return customerID
}

func CreateTestPromo(t *testing.T, db DBLike, code, discountType string, discountValue float64, maxTotalUses *int32, expiresAt time.Time) uuid.UUID {
	t.Helper()

	promoID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, max_total_uses, active, expires_at)
		VALUES ($1, $2, $3, $4, $5, true, $6)
		ON CONFLICT (code) DO NOTHING`,
		promoID, code, discountType, discountValue, maxTotalUses, expiresAt)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM promo_codes WHERE code = $1", code).Scan(&promoID)
	}

	return promoID
}

func PromoUsedBy(t *testing.T, db DBLike, promoID uuid.UUID) []uuid.UUID {
	t.Helper()

	var usedBy []uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT used_by FROM promo_codes WHERE id = $1", promoID).Scan(&usedBy)
	require.NoError(t, err)

	return usedBy
}

// inserts basic reference data needed by tests: one active pricing rule per
// day/time bucket pair so any slot can be quoted.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO pricing_rules (day_bucket, time_bucket, price_per_hour, active) VALUES
		    ('sun_wed', 'day',   8000,  true),
		    ('sun_wed', 'night', 12000, true),
		    ('thu',     'day',   10000, true),
		    ('thu',     'night', 15000, true),
		    ('fri',     'day',   12000, true),
		    ('fri',     'night', 18000, true),
		    ('sat',     'day',   12000, true),
		    ('sat',     'night', 16000, true)
		ON CONFLICT (day_bucket, time_bucket) WHERE active DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
