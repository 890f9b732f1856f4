package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/config"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/routes"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "main").Logger()

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PackType{},
		&models.CartProduct{},
		&models.ShipmentAddress{},
		&models.Courier{},
		&models.Shipment{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate failed")
	}

	cacheStore := cache.NewStore(initRedis(cfg))
	gateway := midtrans.NewClient(cfg.MidtransAPIURL, cfg.MidtransSnapURL, cfg.MidtransServerKey)

	// Gin setup
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cacheStore, gateway, cfg)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// initDatabase sets up the GORM DB connection and its pool.
func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to access database pool")
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(15)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("database ping failed")
	}
	return db
}

// initRedis connects the shared cache client. A missing or unreachable redis
// is not fatal; the system runs uncached.
func initRedis(cfg config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		logger.Warn().Msg("REDIS_HOST not set, running without cache")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, running without cache")
		return nil
	}
	return rdb
}
