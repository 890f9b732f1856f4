package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string
type FraudStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusSettlement TransactionStatus = "settlement"
	TransactionStatusCapture    TransactionStatus = "capture"
	TransactionStatusExpire     TransactionStatus = "expire"
	TransactionStatusCancel     TransactionStatus = "cancel"
	TransactionStatusDeny       TransactionStatus = "deny"
	TransactionStatusRefund     TransactionStatus = "refund"

	FraudStatusAccept    FraudStatus = "accept"
	FraudStatusChallenge FraudStatus = "challenge"
	FraudStatusDeny      FraudStatus = "deny"
)

// IsTerminal reports whether a status can no longer move back to pending.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusSettlement, TransactionStatusExpire,
		TransactionStatusCancel, TransactionStatusDeny, TransactionStatusRefund:
		return true
	}
	return false
}

// Payment shadows one gateway transaction per order. The unique constraints
// on OrderID and TransactionID are what prevent double-pay.
type Payment struct {
	ID                string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID           string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_id"`
	TransactionID     string            `gorm:"uniqueIndex;not null" json:"transaction_id"`
	PaymentType       string            `json:"payment_type"`
	GrossAmount       decimal.Decimal   `gorm:"type:numeric(16,2);not null" json:"gross_amount"`
	TransactionStatus TransactionStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"transaction_status"`
	FraudStatus       FraudStatus       `gorm:"type:VARCHAR(20);default:'accept'" json:"fraud_status"`
	GatewayResponse   string            `gorm:"type:jsonb" json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
