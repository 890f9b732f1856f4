package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	cartControllers "github.com/imanmaris99/amimum-api/controllers/cart"
	"github.com/imanmaris99/amimum-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cacheStore *cache.Store, cfg config.Config) {
	carts := r.Group("/carts", middleware.RequireAuth(cfg.SecretKey))
	{
		carts.POST("", cartControllers.AddCartItemHandler(db, cacheStore))
		carts.GET("", cartControllers.ListCartHandler(db, cacheStore))
		carts.GET("/count", cartControllers.CountCartHandler(db, cacheStore))
		carts.PUT("/:id", cartControllers.UpdateCartItemHandler(db, cacheStore))
		carts.DELETE("/:id", cartControllers.DeleteCartItemHandler(db, cacheStore))
	}
}
