package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	orderControllers "github.com/imanmaris99/amimum-api/controllers/order"
	"github.com/imanmaris99/amimum-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cacheStore *cache.Store, cfg config.Config) {
	orders := r.Group("/orders")
	{
		auth := middleware.RequireAuth(cfg.SecretKey)

		// Create a new order from the active cart
		orders.POST("/create", auth, orderControllers.CreateOrderHandler(db, cacheStore))

		// Fetch the caller's orders
		orders.GET("/my-orders", auth, orderControllers.MyOrdersHandler(db, cacheStore))

		// Fetch one order
		orders.GET("/:order_id", auth, orderControllers.OrderDetailHandler(db, cacheStore))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}

	// Admin export (API-key-protected)
	r.GET("/admin/orders/export",
		middleware.RequireAPIKey(cfg.AdminAPIKey),
		orderControllers.ExportOrdersToExcel(db),
	)
}
