package api

import (
	"errors"
	"net/http"

	reqdto "store-pickup/internal/handler/dto/request"
	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/commands"
	"store-pickup/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or a single status"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	p, ok := parseListParams(c)
	if !ok {
		return
	}

	views, next, err := h.q.ListByUser(c.Request.Context(), actor, p.filter, p.cursor, p.limit)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewOrderListResponse(views, next))
}

// @Summary List a store's orders
// @Description Operators see the store they operate; admins see any store
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param status query string false "active or a single status"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /stores/{storeId}/orders [get]
func (h *OrderHandler) ListByStore(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	storeID, ok := pathUUID(c, "storeId")
	if !ok {
		return
	}
	p, ok := parseListParams(c)
	if !ok {
		return
	}

	views, next, err := h.q.ListByStore(c.Request.Context(), actor, storeID, p.filter, p.cursor, p.limit)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewOrderListResponse(views, next))
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Advance order status
// @Description Moves an order one step along placed, preparing, ready, completed
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Next status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	next, err := req.ToStatus()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown order status", nil)
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), actor, id, next)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func abortOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errors.Is(err, errs.ErrOrderAccess), errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Status change not allowed", nil)
	case errors.Is(err, commands.ErrOrderStatusConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order was updated concurrently, reload and retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Order operation failed", nil)
	}
}
