package shippingControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

type costQuote struct {
	CourierName       string          `json:"courier_name"`
	ServiceType       string          `json:"service_type"`
	Cost              decimal.Decimal `json:"cost"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}

// GET /shipments/active
func ActiveShipmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		shipment, err := ActiveShipment(db, userID)
		if err != nil {
			web.Fail(c, err)
			return
		}
		if shipment == nil {
			web.Fail(c, apperrors.New(apperrors.KindNotFound, "No active shipment"))
			return
		}
		web.OK(c, http.StatusOK, "Active shipment fetched", shipment)
	}
}

// GET /shipping-cost?origin=&destination=&weight=&courier=
//
// Quotes are cached by a hash of their inputs; the courier table is the
// fallback source.
func ShippingCostHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		origin := c.Query("origin")
		destination := c.Query("destination")
		courierName := c.Query("courier")
		weight, _ := strconv.Atoi(c.DefaultQuery("weight", "0"))
		if courierName == "" {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, "courier is required"))
			return
		}
		ctx := c.Request.Context()

		key := cache.ShippingCostKey(origin, destination, weight, courierName)
		var cached costQuote
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Shipping cost fetched", cached)
			return
		}

		var courier models.Courier
		err := db.Where("user_id = ? AND courier_name = ?", userID, courierName).
			Order("updated_at DESC").
			First(&courier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			web.Fail(c, apperrors.New(apperrors.KindNotFound, "No cost known for this courier"))
			return
		}
		if err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to fetch shipping cost", err))
			return
		}

		cost := courier.Cost
		if cost.IsNegative() {
			cost = decimal.Zero
		}
		quote := costQuote{
			CourierName:       courier.CourierName,
			ServiceType:       courier.ServiceType,
			Cost:              cost,
			EstimatedDelivery: courier.EstimatedDelivery,
		}
		cacheStore.SetJSON(ctx, key, quote, cache.TTLShippingCost)
		web.OK(c, http.StatusOK, "Shipping cost fetched", quote)
	}
}
