package api

import (
	"errors"
	"net/http"

	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/usecase/commands"
	"store-pickup/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentMethodHandler struct {
	cmds commands.PaymentMethodCommands
	q    queries.PaymentMethodQueries
}

func NewPaymentMethodHandler(cmds commands.PaymentMethodCommands, q queries.PaymentMethodQueries) *PaymentMethodHandler {
	return &PaymentMethodHandler{cmds: cmds, q: q}
}

// @Summary List payment methods
// @Tags payment-methods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PaymentMethodResponse
// @Router /payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	methods, err := h.q.List(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load payment methods", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentMethodViews(methods))
}

// @Summary Set default payment method
// @Tags payment-methods
// @Security BearerAuth
// @Param id path string true "Payment method ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payment-methods/{id}/default [put]
func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.SetDefault(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, commands.ErrPaymentMethodNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment method not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update payment method", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
