package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	paymentControllers "github.com/imanmaris99/amimum-api/controllers/payment"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/midtrans"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, cacheStore *cache.Store, gateway *midtrans.Client, cfg config.Config) {
	store := paymentControllers.NewGormStore(db)

	payments := r.Group("/payments", middleware.RateLimit(rate.Limit(5), 10))
	{
		auth := middleware.RequireAuth(cfg.SecretKey)

		// Start a gateway transaction for a pending order
		payments.POST("/create", auth, paymentControllers.CreatePaymentHandler(store, gateway, cacheStore))

		// Refresh one order's payment state on demand
		payments.POST("/notifications", auth, paymentControllers.NotificationHandler(store, gateway, cacheStore))

		// Raw gateway webhook; signature-checked, never trusted as truth
		payments.POST("/handler-notifications",
			paymentControllers.GatewayNotificationHandler(store, gateway, cacheStore, cfg.MidtransServerKey))
	}
}
