package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/server/handlers"
)

// Handlers groups the HTTP adapters. Webhook is nil when WhatsApp is not configured.
type Handlers struct {
	Inventory *handlers.InventoryHandler
	Recipes   *handlers.RecipeHandler
	Orders    *handlers.OrderHandler
	Finance   *handlers.FinanceHandler
	Reports   *handlers.ReportHandler
	Webhook   *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	ingredients := api.Group("/ingredients")
	ingredients.GET("", h.Inventory.List)
	ingredients.POST("", h.Inventory.Create)
	ingredients.GET("/low-stock", h.Inventory.LowStock)
	ingredients.GET("/:id", h.Inventory.Get)
	ingredients.PUT("/:id", h.Inventory.Update)
	ingredients.DELETE("/:id", h.Inventory.Delete)

	recipes := api.Group("/recipes")
	recipes.GET("", h.Recipes.List)
	recipes.POST("", h.Recipes.Create)
	recipes.POST("/quote", h.Recipes.Quote)
	recipes.POST("/advice", h.Recipes.Advice)
	recipes.GET("/suggestions", h.Recipes.Suggestions)
	recipes.GET("/:id", h.Recipes.Get)
	recipes.DELETE("/:id", h.Recipes.Delete)

	orders := api.Group("/orders")
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
	orders.PUT("/:id", h.Orders.Update)
	orders.PATCH("/:id/status", h.Orders.UpdateStatus)
	orders.DELETE("/:id", h.Orders.Delete)

	fin := api.Group("/finance")
	fin.GET("/config", h.Finance.GetConfig)
	fin.PUT("/config", h.Finance.UpdateConfig)
	fin.GET("/summary", h.Finance.Summary)
	fin.GET("/fixed-costs", h.Finance.ListFixedCosts)
	fin.POST("/fixed-costs", h.Finance.CreateFixedCost)
	fin.DELETE("/fixed-costs/:id", h.Finance.DeleteFixedCost)
	fin.GET("/assets", h.Finance.ListAssets)
	fin.POST("/assets", h.Finance.CreateAsset)
	fin.DELETE("/assets/:id", h.Finance.DeleteAsset)
	fin.GET("/asset-categories", h.Finance.AssetCategories)
	fin.GET("/variable-expenses", h.Finance.ListVariableExpenses)
	fin.POST("/variable-expenses", h.Finance.CreateVariableExpense)
	fin.DELETE("/variable-expenses/:id", h.Finance.DeleteVariableExpense)

	reports := api.Group("/reports")
	reports.GET("/profit-composition", h.Reports.ProfitComposition)
	reports.GET("/dashboard", h.Reports.Dashboard)
	reports.POST("/export", h.Reports.Export)
	reports.POST("/snapshots", h.Reports.Snapshot)

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Bool("webhook", h.Webhook != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
