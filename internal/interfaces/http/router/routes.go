package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/interfaces/http/handler"
	"github.com/hoshop/backend/internal/interfaces/http/middleware"
)

// Handlers are the endpoint handlers of the shop API
type Handlers struct {
	Health   *handler.HealthHandler
	Orders   *handler.OrderHandler
	Finance  *handler.FinanceHandler
	Products *handler.ProductHandler
}

// Guards are the per-route middleware the shop API applies
type Guards struct {
	// Auth requires a valid identity token
	Auth gin.HandlerFunc
	// OptionalAuth attaches the identity when one is presented
	OptionalAuth gin.HandlerFunc
	// Idempotency deduplicates checkout retries
	Idempotency gin.HandlerFunc
}

// ShopRoutes builds the route groups of the shop API
func ShopRoutes(h Handlers, g Guards) []RouteRegistrar {
	staff := middleware.RequireStaff()

	health := NewDomainGroup("health", "").
		GET("/health", h.Health.Health)

	orders := NewDomainGroup("orders", "/orders").
		POST("", g.OptionalAuth, g.Idempotency, h.Orders.Create).
		GET("", g.Auth, h.Orders.ListMine).
		GET("/admin/all", g.Auth, staff, h.Orders.ListAll).
		GET("/:id", g.OptionalAuth, h.Orders.Get).
		PATCH("/:id/status", g.Auth, staff, h.Orders.UpdateStatus).
		PATCH("/:id/receive", g.OptionalAuth, h.Orders.Receive).
		POST("/:id/rating", g.OptionalAuth, h.Orders.Rate)

	finance := NewDomainGroup("finance", "/finance").
		Use(g.Auth, staff).
		GET("/stats", h.Finance.Stats).
		GET("/transactions", h.Finance.Transactions).
		POST("/transactions", h.Finance.CreateTransaction).
		GET("/daily-reports", h.Finance.DailyReports).
		POST("/daily-reports/close", h.Finance.CloseDailyReport).
		GET("/expense-categories", h.Finance.ExpenseCategories).
		POST("/expense-categories", h.Finance.CreateExpenseCategory).
		GET("/inventory", h.Finance.Inventory).
		DELETE("/reset", middleware.RequireRoles(shared.RoleOwner, shared.RoleAdmin), h.Finance.Reset)

	products := NewDomainGroup("products", "/products").
		GET("", h.Products.List).
		GET("/:id", h.Products.Get).
		GET("/:id/reviews", h.Products.Reviews).
		POST("", g.Auth, staff, h.Products.Create)

	return []RouteRegistrar{health, orders, finance, products}
}
