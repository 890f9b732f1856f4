package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/cache"
	cartControllers "github.com/imanmaris99/amimum-api/controllers/cart"
	shippingControllers "github.com/imanmaris99/amimum-api/controllers/shipping"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "order").Logger()

// -------- Request Structs --------

type CreateOrderRequest struct {
	DeliveryType string  `json:"delivery_type" binding:"required,oneof=delivery pickup"`
	Notes        string  `json:"notes"`
	ShipmentID   *string `json:"shipment_id"`
}

// -------- Core Logic --------

// BuildOrder assembles an Order and its items from a cart snapshot and the
// resolved shipment. It is pure: validation and money math only, no I/O.
// For pickup orders shipment must be nil; for delivery it must be the
// customer's active shipment, already validated by the caller.
func BuildOrder(customerID string, snapshot *cartControllers.Snapshot, shipment *models.Shipment, req CreateOrderRequest, now time.Time) (*models.Order, error) {
	deliveryType := models.DeliveryType(req.DeliveryType)

	if deliveryType == models.DeliveryTypePickup && req.Notes == "" {
		return nil, apperrors.New(apperrors.KindMissingNotes, "pickup orders require notes")
	}
	if deliveryType == models.DeliveryTypeDelivery && shipment == nil {
		return nil, apperrors.New(apperrors.KindInvalidShipment, "delivery orders require an active shipment")
	}

	shippingCost := decimal.Zero
	var shipmentID *string
	if deliveryType == models.DeliveryTypeDelivery {
		shippingCost = shippingControllers.Cost(shipment)
		id := shipment.ID
		shipmentID = &id
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		UserID:       customerID,
		Status:       models.OrderStatusPending,
		TotalPrice:   snapshot.Totals.Net.Add(shippingCost),
		ShipmentID:   shipmentID,
		DeliveryType: deliveryType,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, line := range snapshot.Lines {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			PackTypeID:   line.PackTypeID,
			Quantity:     line.Quantity,
			PricePerItem: line.UnitPrice,
			TotalPrice:   line.Net,
			CreatedAt:    now,
		})
	}
	return order, nil
}

// CreateOrder turns the customer's active cart into a persisted order. The
// snapshot read, order insert, item inserts and cart clear share one
// transaction: any failure leaves no trace.
func CreateOrder(db *gorm.DB, cacheStore *cache.Store, customerID string, req CreateOrderRequest) (*models.Order, error) {
	// Cheap validation before opening a transaction.
	deliveryType := models.DeliveryType(req.DeliveryType)
	if deliveryType == models.DeliveryTypePickup && req.Notes == "" {
		return nil, apperrors.New(apperrors.KindMissingNotes, "pickup orders require notes")
	}
	if deliveryType == models.DeliveryTypeDelivery && (req.ShipmentID == nil || *req.ShipmentID == "") {
		return nil, apperrors.New(apperrors.KindInvalidShipment, "delivery orders require shipment_id")
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		snapshot, err := cartControllers.GetSnapshot(tx, customerID)
		if err != nil {
			return err
		}

		var shipment *models.Shipment
		if deliveryType == models.DeliveryTypeDelivery {
			var s models.Shipment
			err := tx.Preload("Courier").
				Where("id = ? AND user_id = ? AND is_active = ?", *req.ShipmentID, customerID, true).
				First(&s).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindInvalidShipment, "shipment missing, not owned, or inactive")
			}
			if err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to load shipment", err)
			}
			shipment = &s
		}

		order, err = BuildOrder(customerID, snapshot, shipment, req, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Wrap(apperrors.KindDBConflict, "conflicting order write", err)
			}
			return apperrors.Wrap(apperrors.KindInternal, "failed to create order", err)
		}

		// Invariant: after a successful checkout the customer has no
		// active cart lines.
		return cartControllers.ClearActive(tx, customerID)
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Internal(err)
	}

	cacheStore.InvalidateCustomerOrders(context.Background(), customerID)
	BroadcastOrder(order)
	logger.Info().Str("order_id", order.ID).Str("user_id", customerID).
		Str("delivery_type", string(order.DeliveryType)).Msg("order created")
	return order, nil
}

// -------- Handlers --------

// POST /orders/create
func CreateOrderHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, err.Error()))
			return
		}

		order, err := CreateOrder(db, cacheStore, userID, req)
		if err != nil {
			web.Fail(c, err)
			return
		}
		web.OK(c, http.StatusCreated, "Order created successfully", order)
	}
}

// GET /orders/my-orders
func MyOrdersHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 10
		}
		ctx := c.Request.Context()

		key := cache.OrderListKey(userID, page, limit)
		var cached []models.Order
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Orders fetched", cached)
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to fetch orders", err))
			return
		}

		cacheStore.SetJSON(ctx, key, orders, cache.TTLOrderList)
		web.OK(c, http.StatusOK, "Orders fetched", orders)
	}
}

// GET /orders/:order_id
func OrderDetailHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}
		orderID := c.Param("order_id")
		ctx := c.Request.Context()

		key := cache.OrderDetailKey(userID, orderID)
		var cached models.Order
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Order fetched", cached)
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Fail(c, apperrors.New(apperrors.KindOrderNotFound, "order not found"))
				return
			}
			web.Fail(c, apperrors.Internal(err))
			return
		}

		cacheStore.SetJSON(ctx, key, order, cache.TTLOrderDetail)
		web.OK(c, http.StatusOK, "Order fetched", order)
	}
}
