package shippingControllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "shipping").Logger()

// ActiveShipment returns the customer's currently active shipment, or nil
// when none exists. Duplicate active shipments are an upstream invariant
// violation; the most recently updated one wins and a warning is logged.
func ActiveShipment(db *gorm.DB, customerID string) (*models.Shipment, error) {
	var shipments []models.Shipment
	err := db.Preload("Courier").Preload("Address").
		Where("user_id = ? AND is_active = ?", customerID, true).
		Order("updated_at DESC").
		Find(&shipments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load shipment", err)
	}
	if len(shipments) == 0 {
		return nil, nil
	}
	if len(shipments) > 1 {
		logger.Warn().Str("user_id", customerID).Int("count", len(shipments)).
			Msg("multiple active shipments, picking most recently updated")
	}
	return &shipments[0], nil
}

// Cost returns the shipping cost of a shipment's courier. Missing or invalid
// costs coerce to zero.
func Cost(shipment *models.Shipment) decimal.Decimal {
	if shipment == nil || shipment.Courier.Cost.IsNegative() {
		return decimal.Zero
	}
	return shipment.Courier.Cost
}

// PickLatest selects the winner among active shipments by UpdatedAt.
// Exposed for the selector's unit tests; ActiveShipment relies on the query
// ordering for the same rule.
func PickLatest(shipments []models.Shipment) *models.Shipment {
	if len(shipments) == 0 {
		return nil
	}
	best := &shipments[0]
	for i := range shipments[1:] {
		s := &shipments[i+1]
		if s.UpdatedAt.After(best.UpdatedAt) {
			best = s
		}
	}
	return best
}

// GET /shipment-addresses
func ListAddressesHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}
		ctx := c.Request.Context()

		page := 1
		limit := 10
		key := cache.AddressListKey(userID, page, limit)
		var cached []models.ShipmentAddress
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Addresses fetched", cached)
			return
		}

		var addresses []models.ShipmentAddress
		if err := db.Where("user_id = ?", userID).
			Order("updated_at DESC").
			Limit(limit).
			Find(&addresses).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to fetch addresses", err))
			return
		}

		cacheStore.SetJSON(ctx, key, addresses, cache.TTLAddresses)
		web.OK(c, http.StatusOK, "Addresses fetched", addresses)
	}
}
