package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/infrastructure/auth"
	"github.com/kopitoko/backend/internal/infrastructure/logger"
	"github.com/kopitoko/backend/internal/interfaces/http/handler"
	"github.com/kopitoko/backend/internal/interfaces/http/middleware"
)

// Handlers groups the HTTP handlers wired into the router
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Address  *handler.AddressHandler
}

// Config holds router dependencies
type Config struct {
	Handlers    Handlers
	JWTService  *auth.JWTService
	Logger      *zap.Logger
	CORSOrigins []string
}

// New builds the gin engine with middleware and all routes registered.
//
// Route layout:
//
//	/health, /ready            liveness and readiness
//	/api/v1/...                public storefront routes
//	/api/v1/... (auth)         customer routes
//	/api/v1/admin/... (admin)  catalog and order management
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithOrigins(cfg.CORSOrigins))

	h := cfg.Handlers

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	// Public storefront routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.GetByID)
	api.GET("/categories", h.Category.List)

	api.GET("/shipping/couriers", h.Checkout.Couriers)
	api.GET("/shipping/quote", h.Checkout.QuoteShipping)

	// Customer routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWTService, cfg.Logger))
	{
		authed.GET("/profile", h.Auth.Profile)
		authed.PUT("/profile", h.Auth.UpdateProfile)
		authed.POST("/profile/password", h.Auth.ChangePassword)

		authed.GET("/cart", h.Cart.Get)
		authed.POST("/cart/items", h.Cart.AddItem)
		authed.PUT("/cart/items/:productId", h.Cart.UpdateItem)
		authed.DELETE("/cart/items/:productId", h.Cart.RemoveItem)
		authed.DELETE("/cart", h.Cart.Clear)

		authed.POST("/checkout", h.Checkout.PlaceOrder)
		authed.POST("/checkout/buy-now", h.Checkout.BuyNow)

		authed.GET("/orders", h.Order.ListMine)
		authed.GET("/orders/:id", h.Order.GetMine)
		authed.POST("/orders/:id/cancel", h.Order.CancelMine)

		authed.GET("/addresses", h.Address.List)
		authed.POST("/addresses", h.Address.Create)
		authed.PUT("/addresses/:id", h.Address.Update)
		authed.DELETE("/addresses/:id", h.Address.Delete)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(cfg.JWTService, cfg.Logger), middleware.RequireAdmin())
	{
		admin.GET("/products", h.Product.ListAll)
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.PUT("/products/:id/stock", h.Product.AdjustStock)
		admin.POST("/products/:id/activate", h.Product.Activate)
		admin.POST("/products/:id/deactivate", h.Product.Deactivate)
		admin.DELETE("/products/:id", h.Product.Delete)

		admin.POST("/categories", h.Category.Create)
		admin.PUT("/categories/:id", h.Category.Rename)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.GET("/orders", h.Order.ListAll)
		admin.POST("/orders/:id/ship", h.Order.Ship)
		admin.POST("/orders/:id/complete", h.Order.Complete)
		admin.POST("/orders/:id/cancel", h.Order.Cancel)

		admin.GET("/orders/:id/payment", h.Order.GetPayment)
		admin.POST("/orders/:id/payment/confirm", h.Order.ConfirmPayment)
		admin.POST("/orders/:id/payment/reject", h.Order.RejectPayment)
		admin.POST("/orders/:id/payment/reset", h.Order.ResetPayment)
	}

	return engine
}
