package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	"github.com/imanmaris99/amimum-api/midtrans"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cacheStore *cache.Store, gateway *midtrans.Client, cfg config.Config) {
	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db, cacheStore, cfg)

	// Shipping routes (JWT-protected)
	SetupShippingRoutes(r, db, cacheStore, cfg)

	// Order routes
	SetupOrderRoutes(r, db, cacheStore, cfg)

	// Payment routes
	SetupPaymentRoutes(r, db, cacheStore, gateway, cfg)
}
