package api

import (
	"errors"
	"net/http"

	reqdto "store-pickup/internal/handler/dto/request"
	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errors.New("invalid idempotency key format")

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Checkout
// @Description Captures payment for the current cart and places the order. Retrying with the same Idempotency-Key replays the first result.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.OrderResponse
// @Success 200 {object} resdto.OrderResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	key, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		return
	}

	result, err := h.cmds.Checkout(c.Request.Context(), userID, params, key)
	if err != nil {
		abortCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader(idempotencyKeyHeader)
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errInvalidIdempotencyKey
	}
	return key, nil
}

func abortCheckoutError(c *gin.Context, err error) {
	var notRecorded *commands.OrderNotRecordedError
	switch {
	case errors.As(err, &notRecorded):
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			"Payment was captured but the order could not be recorded",
			gin.H{"payment_ref": notRecorded.PaymentRef, "order_id": notRecorded.OrderID})
	case errors.Is(err, commands.ErrEmptyCart):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
	case errors.Is(err, commands.ErrNoStoreSelected):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Select a store first", nil)
	case errors.Is(err, commands.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid checkout request", nil)
	case errors.Is(err, commands.ErrPaymentMethodNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Payment method not found", nil)
	case errors.Is(err, errs.ErrPaymentDeclined):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment declined", nil)
	case errors.Is(err, errs.ErrPaymentUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment provider unavailable, retry later", nil)
	case errors.Is(err, commands.ErrDuplicateCheckout):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate checkout request with different parameters", nil)
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Checkout request is currently being processed", nil)
	case errors.Is(err, commands.ErrCartConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cart was modified concurrently, retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
	}
}
