package paymentControllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
)

func reconcilable(store *fakeStore) {
	store.orders["order-1"] = &models.Order{
		ID:     "order-1",
		UserID: "user-1",
		Status: models.OrderStatusPending,
	}
	store.payments["pay-1"] = &models.Payment{
		ID:                "pay-1",
		OrderID:           "order-1",
		TransactionID:     "snap-token",
		TransactionStatus: models.TransactionStatusPending,
		FraudStatus:       models.FraudStatusAccept,
	}
}

func settlementStatus() *midtrans.TransactionStatus {
	return &midtrans.TransactionStatus{
		TransactionID:     "trx-123",
		OrderID:           "order-1",
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
		PaymentType:       "qris",
		GrossAmount:       "65000.00",
		StatusCode:        "200",
		Raw:               []byte(`{"transaction_status":"settlement"}`),
	}
}

func TestOrderStatusFor_IsTotal(t *testing.T) {
	cases := []struct {
		ts    models.TransactionStatus
		fraud models.FraudStatus
		want  models.OrderStatus
	}{
		{models.TransactionStatusSettlement, models.FraudStatusAccept, models.OrderStatusPaid},
		{models.TransactionStatusCapture, models.FraudStatusAccept, models.OrderStatusPaid},
		{models.TransactionStatusCapture, models.FraudStatusChallenge, models.OrderStatusUnknown},
		{models.TransactionStatusCapture, models.FraudStatusDeny, models.OrderStatusUnknown},
		{models.TransactionStatusExpire, models.FraudStatusAccept, models.OrderStatusFailed},
		{models.TransactionStatusCancel, models.FraudStatusAccept, models.OrderStatusFailed},
		{models.TransactionStatusDeny, models.FraudStatusAccept, models.OrderStatusFailed},
		{models.TransactionStatusRefund, models.FraudStatusAccept, models.OrderStatusFailed},
		{models.TransactionStatusPending, models.FraudStatusAccept, models.OrderStatusPending},
		{models.TransactionStatus("partial_refund"), models.FraudStatusAccept, models.OrderStatusUnknown},
		{models.TransactionStatus(""), models.FraudStatusAccept, models.OrderStatusUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, OrderStatusFor(tc.ts, tc.fraud), "status %q fraud %q", tc.ts, tc.fraud)
	}
}

func TestReconcile_Settlement(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	gw := &fakeGateway{statusResp: settlementStatus()}
	inv := &fakeInvalidator{}

	payment, err := ReconcileByOrderID(context.Background(), store, gw, inv, "order-1", "")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusSettlement, payment.TransactionStatus)
	// The authoritative transaction id replaces the token stand-in.
	assert.Equal(t, "trx-123", payment.TransactionID)
	assert.Equal(t, "qris", payment.PaymentType)

	order, _ := store.FindOrder(context.Background(), "order-1")
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, []string{"user-1"}, inv.customers)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	gw := &fakeGateway{statusResp: settlementStatus()}
	inv := &fakeInvalidator{}

	_, err := ReconcileByOrderID(context.Background(), store, gw, inv, "order-1", "")
	require.NoError(t, err)
	_, err = ReconcileByOrderID(context.Background(), store, gw, inv, "order-1", "")
	require.NoError(t, err)

	order, _ := store.FindOrder(context.Background(), "order-1")
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	// Still exactly one payment row.
	count := 0
	for range store.payments {
		count++
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, gw.statusCalls)
}

func TestReconcile_ByTransactionID(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	gw := &fakeGateway{statusResp: settlementStatus()}

	payment, err := ReconcileByTransactionID(context.Background(), store, gw, &fakeInvalidator{}, "snap-token", "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSettlement, payment.TransactionStatus)
}

func TestReconcile_NoTerminalDowngrade(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	store.payments["pay-1"].TransactionStatus = models.TransactionStatusSettlement
	store.orders["order-1"].Status = models.OrderStatusPaid

	stale := settlementStatus()
	stale.TransactionStatus = "pending"
	gw := &fakeGateway{statusResp: stale}

	payment, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "")
	require.NoError(t, err)

	// Stale pending from the gateway leaves everything untouched.
	assert.Equal(t, models.TransactionStatusSettlement, payment.TransactionStatus)
	order, _ := store.FindOrder(context.Background(), "order-1")
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Zero(t, store.saves)
}

func TestReconcile_NonexistentOrder(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{}

	_, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "")
	assert.True(t, apperrors.Is(err, apperrors.KindOrderNotFound))
	assert.Zero(t, gw.statusCalls)
	assert.Zero(t, store.saves)
}

func TestReconcile_PaymentNotFound(t *testing.T) {
	// The order exists but payment was never initiated.
	store := newFakeStore()
	store.orders["order-1"] = &models.Order{ID: "order-1", UserID: "user-1", Status: models.OrderStatusPending}
	gw := &fakeGateway{}

	_, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "")
	assert.True(t, apperrors.Is(err, apperrors.KindPaymentNotFound))
	assert.Zero(t, gw.statusCalls)
}

func TestReconcile_OrderNotFound(t *testing.T) {
	store := newFakeStore()
	store.payments["pay-1"] = &models.Payment{ID: "pay-1", OrderID: "gone", TransactionID: "t"}

	_, err := ReconcileByOrderID(context.Background(), store, &fakeGateway{}, &fakeInvalidator{}, "gone", "")
	assert.True(t, apperrors.Is(err, apperrors.KindOrderNotFound))
}

func TestReconcile_Forbidden(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	gw := &fakeGateway{statusResp: settlementStatus()}

	_, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "intruder")
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	// Ownership is checked before the gateway is consulted.
	assert.Zero(t, gw.statusCalls)
	assert.Zero(t, store.saves)
}

func TestReconcile_GatewayErrorPropagates(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	gw := &fakeGateway{statusErr: apperrors.New(apperrors.KindTransactionNotFound, "transaction not found at gateway")}

	_, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "")
	assert.True(t, apperrors.Is(err, apperrors.KindTransactionNotFound))
	assert.Zero(t, store.saves)
}

func TestReconcile_DefaultsFraudToAccept(t *testing.T) {
	store := newFakeStore()
	reconcilable(store)
	status := settlementStatus()
	status.FraudStatus = ""
	gw := &fakeGateway{statusResp: status}

	payment, err := ReconcileByOrderID(context.Background(), store, gw, &fakeInvalidator{}, "order-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.FraudStatusAccept, payment.FraudStatus)

	order, _ := store.FindOrder(context.Background(), "order-1")
	assert.Equal(t, models.OrderStatusPaid, order.Status)
}
