package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	shippingControllers "github.com/imanmaris99/amimum-api/controllers/shipping"
	"github.com/imanmaris99/amimum-api/middleware"
)

func SetupShippingRoutes(r *gin.Engine, db *gorm.DB, cacheStore *cache.Store, cfg config.Config) {
	auth := middleware.RequireAuth(cfg.SecretKey)

	r.GET("/shipment-addresses", auth, shippingControllers.ListAddressesHandler(db, cacheStore))
	r.GET("/shipments/active", auth, shippingControllers.ActiveShipmentHandler(db))
	r.GET("/shipping-cost", auth, shippingControllers.ShippingCostHandler(db, cacheStore))
}
