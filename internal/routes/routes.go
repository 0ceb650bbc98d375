// Package routes wires handlers and middleware into the gin engine.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/config"
	"github.com/01moynul/storefront-api/internal/handlers"
	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/response"
)

// Options carries the router's non-handler dependencies.
type Options struct {
	Tokens middleware.TokenValidator
	Logger *zap.Logger
	CORS   config.CORSConfig
	Debug  bool
	// Health reports whether the database is reachable.
	Health func(ctx context.Context) error
}

// corsMiddleware allows the configured frontends to call the API with the
// Authorization header.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()

	// --- Global Middleware ---
	// CORS comes first so preflight requests never reach auth.
	router.Use(
		corsMiddleware(opts.CORS),
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(),
		middleware.Diagnostics(opts.Debug),
	)
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "Route not found", nil)
	})

	// --- Health Check ---
	router.GET("/healthz", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health(c.Request.Context()); err != nil {
				response.Fail(c, http.StatusServiceUnavailable, "Database unavailable", err)
				return
			}
		}
		response.OK(c, http.StatusOK, "ok", nil)
	})

	requireAuth := middleware.AuthMiddleware(opts.Tokens)
	adminOnly := middleware.AdminOnly()

	api := router.Group("/api")
	{
		// --- Auth Routes ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.GET("/auth/profile", requireAuth, h.Me)

		// --- Product Routes ---
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", requireAuth, adminOnly, h.CreateProduct)
		api.PUT("/products/:id", requireAuth, adminOnly, h.UpdateProduct)
		api.DELETE("/products/:id", requireAuth, adminOnly, h.DeleteProduct)

		// --- Cart Routes ---
		cart := api.Group("/cart", requireAuth)
		{
			cart.GET("", h.GetCart)
			cart.POST("", h.AddToCart)
			cart.DELETE("", h.ClearCart)
			cart.PUT("/:itemId", h.UpdateCartItem)
			cart.DELETE("/:itemId", h.RemoveCartItem)
		}

		// --- Order Routes ---
		registerOrderRoutes(api.Group("/orders", requireAuth), h, adminOnly)

		// --- User Routes ---
		u := api.Group("/users", requireAuth)
		{
			u.GET("", adminOnly, h.ListCustomers)
			u.GET("/:id", h.GetUser)
			u.PUT("/:id", h.UpdateUser)
			u.DELETE("/:id", adminOnly, h.DeleteCustomer)
			u.PUT("/:id/password", h.ChangePassword)
			u.GET("/:id/addresses", h.ListAddresses)
			u.POST("/:id/addresses", h.AddAddress)
			u.PUT("/:id/addresses/:addressId", h.UpdateAddress)
			u.DELETE("/:id/addresses/:addressId", h.DeleteAddress)
		}

		// --- Admin Routes ---
		admin := api.Group("/admin", requireAuth, adminOnly)
		{
			admin.GET("/products", h.AdminListProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/stock", h.AdjustStock)

			admin.GET("/orders", h.AdminListOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/customers", h.ListCustomers)
			admin.DELETE("/customers/:id", h.DeleteCustomer)

			admin.GET("/dashboard-stats", h.GetDashboardStats)
		}
	}

	// Older clients post orders without the /api prefix.
	registerOrderRoutes(router.Group("/orders", requireAuth), h, adminOnly)

	return router
}

func registerOrderRoutes(g *gin.RouterGroup, h *handlers.Handlers, adminOnly gin.HandlerFunc) {
	g.POST("", h.PlaceOrder)
	g.GET("", h.ListOrders)
	g.GET("/:id", h.GetOrder)
	g.PUT("/:id", adminOnly, h.UpdateOrderStatus)
	g.DELETE("/:id", h.CancelOrder)
}
