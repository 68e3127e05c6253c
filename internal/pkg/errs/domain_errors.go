package errs

import "errors"

// Cross-layer sentinels shared by usecase and handler layers
var (
	// Catalog errors
	ErrStoreNotFound   = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")

	// Order errors
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderAccess   = errors.New("order access denied")

	// Payment errors
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
