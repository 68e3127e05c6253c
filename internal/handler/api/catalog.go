package api

import (
	"errors"
	"net/http"

	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	q     queries.CatalogQueries
	deals queries.DealResolver
}

func NewCatalogHandler(q queries.CatalogQueries, deals queries.DealResolver) *CatalogHandler {
	return &CatalogHandler{q: q, deals: deals}
}

// @Summary List stores
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StoreResponse
// @Router /stores [get]
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.q.ListStores(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load stores", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStoreViews(stores))
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CategoryResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.q.ListCategories(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load categories", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryViews(categories))
}

// @Summary List products at a store
// @Description Products with the store's price and availability, optionally narrowed to one category
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param category_id query string false "Category ID"
// @Success 200 {array} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /stores/{storeId}/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	storeID, ok := pathUUID(c, "storeId")
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category_id", nil)
			return
		}
		categoryID = &id
	}

	products, err := h.q.ListProducts(c.Request.Context(), storeID, categoryID)
	if err != nil {
		abortStoreLookup(c, err, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(products))
}

// @Summary List active deals at a store
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Success 200 {array} resdto.DealResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /stores/{storeId}/deals [get]
func (h *CatalogHandler) ListDeals(c *gin.Context) {
	storeID, ok := pathUUID(c, "storeId")
	if !ok {
		return
	}

	deals, err := h.deals.ListStoreDeals(c.Request.Context(), storeID)
	if err != nil {
		abortStoreLookup(c, err, "Failed to load deals")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDealViews(deals))
}

func abortStoreLookup(c *gin.Context, err error, msg string) {
	if errors.Is(err, errs.ErrStoreNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Store not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
}
