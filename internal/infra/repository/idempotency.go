package repository

import (
	"context"
	"time"

	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert reports whether the key was created; an existing key is left untouched.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, orderID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_order_id = $4
WHERE key = $1 AND user_id = $2`,
		key, userID, pgconv.StringToPgtype(responseBodyHash), pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// ClaimExpired resets an expired key for a new request and reports whether it won the claim.
func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
UPDATE idempotency_keys
SET status = 'processing', request_hash = $3, expires_at = $4,
    response_body_hash = NULL, result_order_id = NULL
WHERE key = $1 AND user_id = $2 AND expires_at < now()`,
		key, userID, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

// Release drops an unfinished key so the client may retry with it.
func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
DELETE FROM idempotency_keys
WHERE key = $1 AND user_id = $2 AND status = 'processing'`, key, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
