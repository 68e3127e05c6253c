package shared

import (
	"context"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/domain/order"
	"store-pickup/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Idempotency() IdempotencyRepository
	PaymentMethods() PaymentMethodRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	StoreByID(ctx context.Context, id uuid.UUID) (*cart.StoreRef, error)
	StoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*cart.Product, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	PaymentMethodByID(ctx context.Context, id uuid.UUID) (*PaymentMethodSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	// UpdateStatus writes only when the stored status still equals prev.
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, prev, next order.Status, updatedAt time.Time) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, orderID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	Release(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error
}

type PaymentMethodRepository interface {
	SetDefault(ctx context.Context, tx db.DBTX, userID, id uuid.UUID) error
}
