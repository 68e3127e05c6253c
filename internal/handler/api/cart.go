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
)

type CartHandler struct {
	cmds commands.CartCommands
}

func NewCartHandler(cmds commands.CartCommands) *CartHandler {
	return &CartHandler{cmds: cmds}
}

// @Summary Get cart
// @Description Current cart priced against today's deals at the selected store
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.cmds.GetCart(c.Request.Context(), userID)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Select pickup store
// @Description Attaches the cart to a store and reprices its lines; lines the store does not sell are removed
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SelectStoreRequest true "Store"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/store [put]
func (h *CartHandler) SelectStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.SelectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.SelectStore(c.Request.Context(), userID, req.StoreID)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Clear pickup store
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /cart/store [delete]
func (h *CartHandler) ClearStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.cmds.ClearStore(c.Request.Context(), userID)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add item
// @Description Adds one unit of a product at the selected store's price
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Product"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.AddItem(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Change quantity
// @Description Adjusts a line by delta; a line reaching zero is removed
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param request body reqdto.ChangeQuantityRequest true "Delta"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{productId} [patch]
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}
	var req reqdto.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.ChangeQuantity(c.Request.Context(), userID, productID, req.Delta)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Remove item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}
	view, err := h.cmds.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

func abortCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrStoreNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Store not found", nil)
	case errors.Is(err, errs.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrCartLineNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not in cart", nil)
	case errors.Is(err, commands.ErrNoStoreSelected):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Select a store first", nil)
	case errors.Is(err, commands.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid item", nil)
	case errors.Is(err, commands.ErrCartConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cart was modified concurrently, retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cart operation failed", nil)
	}
}
