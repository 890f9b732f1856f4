package paymentControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanmaris99/amimum-api/apperrors"
	orderControllers "github.com/imanmaris99/amimum-api/controllers/order"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

type NotificationByIDRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// GatewayNotification is the raw webhook payload. It is a trigger only; the
// reconciler always fetches the authoritative state from the gateway.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
}

// OrderStatusFor maps a gateway transaction status onto the order status.
// The mapping is total: anything unmapped comes out as unknown. A distinct
// refunded order status would change only the refund arm here.
func OrderStatusFor(ts models.TransactionStatus, fraud models.FraudStatus) models.OrderStatus {
	switch ts {
	case models.TransactionStatusSettlement:
		return models.OrderStatusPaid
	case models.TransactionStatusCapture:
		if fraud == models.FraudStatusAccept {
			return models.OrderStatusPaid
		}
		return models.OrderStatusUnknown
	case models.TransactionStatusExpire, models.TransactionStatusCancel,
		models.TransactionStatusDeny, models.TransactionStatusRefund:
		return models.OrderStatusFailed
	case models.TransactionStatusPending:
		return models.OrderStatusPending
	default:
		return models.OrderStatusUnknown
	}
}

// ReconcileByOrderID brings the payment and order for orderID into agreement
// with the gateway. customerID, when non-empty, enforces ownership.
func ReconcileByOrderID(ctx context.Context, store Store, gw Gateway, inv Invalidator, orderID, customerID string) (*models.Payment, error) {
	payment, err := store.FindPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		// Distinguish an order that never existed from one that was never
		// paid for.
		order, err := store.FindOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperrors.New(apperrors.KindOrderNotFound, "order not found")
		}
	}
	return reconcile(ctx, store, gw, inv, payment, customerID)
}

// ReconcileByTransactionID is the same logic keyed by transaction id, used
// for retries and reconciliation jobs.
func ReconcileByTransactionID(ctx context.Context, store Store, gw Gateway, inv Invalidator, transactionID, customerID string) (*models.Payment, error) {
	payment, err := store.FindPaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return reconcile(ctx, store, gw, inv, payment, customerID)
}

func reconcile(ctx context.Context, store Store, gw Gateway, inv Invalidator, payment *models.Payment, customerID string) (*models.Payment, error) {
	if payment == nil {
		return nil, apperrors.New(apperrors.KindPaymentNotFound, "payment not found")
	}

	order, err := store.FindOrder(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.New(apperrors.KindOrderNotFound, "order not found")
	}
	if customerID != "" && order.UserID != customerID {
		return nil, apperrors.New(apperrors.KindForbidden, "order belongs to another customer")
	}

	// The gateway status endpoint is keyed by order id.
	status, err := gw.Status(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	fetched := models.TransactionStatus(status.TransactionStatus)

	// Notifications may arrive out of order; a terminal payment never moves
	// back to pending on stale gateway data.
	if payment.TransactionStatus.IsTerminal() && fetched == models.TransactionStatusPending {
		logger.Warn().Str("order_id", order.ID).
			Str("stored", string(payment.TransactionStatus)).
			Msg("gateway reported pending for terminal payment, skipping update")
		return payment, nil
	}

	fraud := models.FraudStatus(status.FraudStatus)
	if fraud == "" {
		fraud = models.FraudStatusAccept
	}

	payment.TransactionStatus = fetched
	payment.FraudStatus = fraud
	payment.PaymentType = status.PaymentType
	payment.GatewayResponse = string(status.Raw)
	if status.TransactionID != "" {
		payment.TransactionID = status.TransactionID
	}
	order.Status = OrderStatusFor(fetched, fraud)

	if err := store.SavePaymentAndOrder(ctx, payment, order); err != nil {
		return nil, err
	}

	inv.InvalidateCustomerOrders(ctx, order.UserID)
	orderControllers.BroadcastOrder(order)
	logger.Info().Str("order_id", order.ID).
		Str("transaction_status", string(fetched)).
		Str("order_status", string(order.Status)).
		Msg("payment reconciled")
	return payment, nil
}

// POST /payments/notifications
func NotificationHandler(store Store, gw Gateway, inv Invalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		var req NotificationByIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, err.Error()))
			return
		}

		payment, err := ReconcileByOrderID(c.Request.Context(), store, gw, inv, req.OrderID, userID)
		if err != nil {
			web.Fail(c, err)
			return
		}
		web.OK(c, http.StatusOK, "Payment status refreshed", payment)
	}
}

// GatewayNotificationHandler accepts the raw gateway webhook. The route is
// unauthenticated, so the signature is mandatory: a payload without a valid
// signature never reaches the reconciler. The payload itself is never trusted
// beyond identifying the order.
func GatewayNotificationHandler(store Store, gw Gateway, inv Invalidator, serverKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var notif GatewayNotification
		if err := c.ShouldBindJSON(&notif); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, "invalid notification payload"))
			return
		}
		if notif.OrderID == "" && notif.TransactionID == "" {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, "notification missing order_id and transaction_id"))
			return
		}

		if notif.StatusCode == "" ||
			!midtrans.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, serverKey, notif.SignatureKey) {
			logger.Warn().Str("order_id", notif.OrderID).Msg("notification signature mismatch")
			web.Fail(c, apperrors.New(apperrors.KindForbidden, "invalid notification signature"))
			return
		}

		ctx := c.Request.Context()
		var payment *models.Payment
		var err error
		if notif.OrderID != "" {
			payment, err = ReconcileByOrderID(ctx, store, gw, inv, notif.OrderID, "")
		} else {
			payment, err = ReconcileByTransactionID(ctx, store, gw, inv, notif.TransactionID, "")
		}
		if err != nil {
			// The gateway retries on non-2xx; surface the mapped status.
			web.Fail(c, err)
			return
		}
		web.OK(c, http.StatusOK, "Notification processed", gin.H{
			"order_id":           payment.OrderID,
			"transaction_status": payment.TransactionStatus,
		})
	}
}
