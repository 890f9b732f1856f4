package paymentControllers

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "payment").Logger()

type CreatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// InitiateResult is what the client needs to send the user to the gateway UI.
type InitiateResult struct {
	RedirectURL       string                   `json:"redirect_url"`
	Token             string                   `json:"token"`
	TransactionStatus models.TransactionStatus `json:"transaction_status"`
}

// Initiate starts a gateway transaction for one pending order and persists
// the shadow Payment row. An existing Payment short-circuits before any
// gateway call is made.
func Initiate(ctx context.Context, store Store, gw Gateway, inv Invalidator, customerID, orderID string) (*InitiateResult, error) {
	order, err := store.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != customerID {
		return nil, apperrors.New(apperrors.KindOrderNotFound, "order not found")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.New(apperrors.KindOrderNotPayable, "order is not payable")
	}

	existing, err := store.FindPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindPaymentExists, "payment already exists for this order")
	}

	user, err := store.FindUser(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindInternal, "order owner not found")
	}

	charge, err := gw.CreateTransaction(ctx, midtrans.ChargeRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     order.ID,
			GrossAmount: midtrans.NewAmount(order.TotalPrice),
		},
		CustomerDetails: midtrans.CustomerDetails{
			FirstName: user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
		},
		CreditCard: midtrans.CreditCardOptions{Secure: true},
	})
	if err != nil {
		return nil, err
	}

	// Snap does not return a transaction id; the token stands in until the
	// first authoritative status fetch supplies one.
	payment := &models.Payment{
		ID:                uuid.NewString(),
		OrderID:           order.ID,
		TransactionID:     charge.Token,
		GrossAmount:       order.TotalPrice,
		TransactionStatus: models.TransactionStatusPending,
		FraudStatus:       models.FraudStatusAccept,
		GatewayResponse:   string(charge.Raw),
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	inv.InvalidateCustomerOrders(ctx, customerID)
	logger.Info().Str("order_id", order.ID).Str("payment_id", payment.ID).Msg("payment initiated")

	return &InitiateResult{
		RedirectURL:       charge.RedirectURL,
		Token:             charge.Token,
		TransactionStatus: models.TransactionStatusPending,
	}, nil
}

// POST /payments/create
func CreatePaymentHandler(store Store, gw Gateway, inv Invalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, err.Error()))
			return
		}

		result, err := Initiate(c.Request.Context(), store, gw, inv, userID, req.OrderID)
		if err != nil {
			web.Fail(c, err)
			return
		}
		web.OK(c, http.StatusCreated, "Payment initiated", result)
	}
}
