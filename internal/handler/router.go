package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"store-pickup/internal/handler/api"
	"store-pickup/internal/handler/middleware"
	"store-pickup/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Catalog       *api.CatalogHandler
	Cart          *api.CartHandler
	Checkout      *api.CheckoutHandler
	Order         *api.OrderHandler
	Stream        *api.StreamHandler
	PaymentMethod *api.PaymentMethodHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, logger *slog.Logger) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	staff := []gin.HandlerFunc{authMiddleware.RequireStaff()}
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/categories", Handler: h.Catalog.ListCategories},
			{Method: http.MethodGet, Path: "/stores", Handler: h.Catalog.ListStores},
			{Method: http.MethodGet, Path: "/stores/:storeId/products", Handler: h.Catalog.ListProducts},
			{Method: http.MethodGet, Path: "/stores/:storeId/deals", Handler: h.Catalog.ListDeals},
			{Method: http.MethodGet, Path: "/stores/:storeId/orders", Handler: h.Order.ListByStore, Mw: staff},
			{Method: http.MethodGet, Path: "/stores/:storeId/orders/stream", Handler: h.Stream.StreamStoreOrders, Mw: staff},
		})

		cart := apiGroup.Group("/cart")
		addRoutes(cart, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
			{Method: http.MethodPut, Path: "/store", Handler: h.Cart.SelectStore},
			{Method: http.MethodDelete, Path: "/store", Handler: h.Cart.ClearStore},
			{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
			{Method: http.MethodPatch, Path: "/items/:productId", Handler: h.Cart.ChangeQuantity},
			{Method: http.MethodDelete, Path: "/items/:productId", Handler: h.Cart.RemoveItem},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Checkout},
		})

		orders := apiGroup.Group("/orders")
		addRoutes(orders, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Order.ListMine},
			{Method: http.MethodGet, Path: "/stream", Handler: h.Stream.StreamMyOrders},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
			{Method: http.MethodGet, Path: "/:id/stream", Handler: h.Stream.StreamOrder},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Order.UpdateStatus, Mw: staff},
		})

		paymentMethods := apiGroup.Group("/payment-methods")
		addRoutes(paymentMethods, []route{
			{Method: http.MethodGet, Path: "", Handler: h.PaymentMethod.List},
			{Method: http.MethodPut, Path: "/:id/default", Handler: h.PaymentMethod.SetDefault},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
