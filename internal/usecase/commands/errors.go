package commands

import (
	"fmt"

	"store-pickup/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput          = errs.New("invalid input")
	ErrCartLineNotFound      = errs.New("cart line not found")
	ErrCartConflict          = errs.New("cart was modified concurrently")
	ErrEmptyCart             = errs.New("cart is empty")
	ErrNoStoreSelected       = errs.New("no store selected")
	ErrPaymentMethodNotFound = errs.New("payment method not found")

	ErrDuplicateCheckout      = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress  = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")

	ErrOrderPersistence                = errs.New("order persistence failed")
	ErrPaymentCapturedOrderNotRecorded = errs.New("payment captured but order not recorded")

	ErrOrderStatusConflict = errs.New("order status changed concurrently")
	ErrInvalidTransition   = errs.New("order status transition not allowed")
	ErrForbidden           = errs.New("operation not permitted")
)

// OrderNotRecordedError reports a successful capture whose order could not be
// stored. The payment reference is needed for compensation.
type OrderNotRecordedError struct {
	PaymentRef string
	OrderID    uuid.UUID
	Err        error
}

func (e *OrderNotRecordedError) Error() string {
	return fmt.Sprintf("payment %s captured but order %s not recorded: %v", e.PaymentRef, e.OrderID, e.Err)
}

func (e *OrderNotRecordedError) Unwrap() error { return e.Err }

func (e *OrderNotRecordedError) Is(target error) bool {
	return target == ErrPaymentCapturedOrderNotRecorded
}
