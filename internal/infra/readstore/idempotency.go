package readstore

import (
	"context"
	"time"

	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyReadStore struct {
	now func() time.Time
}

func NewIdempotencyReadStore(now func() time.Time) *IdempotencyReadStore {
	if now == nil {
		now = time.Now
	}
	return &IdempotencyReadStore{now: now}
}

// Get returns KindNotFound for missing and expired keys alike.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record    shared.IdempotencyRecord
		resultID  pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, `
SELECT key, user_id, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`, key, userID).
		Scan(&record.Key, &record.UserID, &record.Status, &record.RequestHash, &resultID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record.ResultOrderID = pgconv.UUIDPtrFromPgtype(resultID)
	record.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)

	if r.now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return &record, nil
}
