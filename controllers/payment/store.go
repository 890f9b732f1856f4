package paymentControllers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/midtrans"
	"github.com/imanmaris99/amimum-api/models"
)

// Gateway is the slice of the midtrans client the payment pipeline uses.
// *midtrans.Client satisfies it; tests substitute a stub.
type Gateway interface {
	CreateTransaction(ctx context.Context, req midtrans.ChargeRequest) (*midtrans.ChargeResponse, error)
	Status(ctx context.Context, orderID string) (*midtrans.TransactionStatus, error)
}

// Invalidator is the cache surface the pipeline needs after a commit.
type Invalidator interface {
	InvalidateCustomerOrders(ctx context.Context, customerID string)
}

// Store abstracts the rows the payment pipeline reads and writes. Lookups
// return (nil, nil) when the row does not exist; errors are infrastructure
// failures only.
type Store interface {
	FindOrder(ctx context.Context, orderID string) (*models.Order, error)
	FindUser(ctx context.Context, userID string) (*models.User, error)
	FindPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	// SavePaymentAndOrder persists both rows in one transaction.
	SavePaymentAndOrder(ctx context.Context, p *models.Payment, o *models.Order) error
}

// GormStore is the production Store.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) FindOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load order", err)
	}
	return &order, nil
}

func (s *GormStore) FindUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	return &user, nil
}

func (s *GormStore) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load payment", err)
	}
	return &payment, nil
}

func (s *GormStore) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load payment", err)
	}
	return &payment, nil
}

func (s *GormStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.KindPaymentExists, "payment already exists for this order", err)
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to create payment", err)
	}
	return nil
}

func (s *GormStore) SavePaymentAndOrder(ctx context.Context, p *models.Payment, o *models.Order) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"transaction_id":     p.TransactionID,
			"transaction_status": p.TransactionStatus,
			"fraud_status":       p.FraudStatus,
			"payment_type":       p.PaymentType,
			"gateway_response":   p.GatewayResponse,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", o.ID).
			Update("status", o.Status).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to save payment state", err)
	}
	return nil
}
