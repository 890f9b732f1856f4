package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type DeliveryType string

const (
	OrderStatusPending OrderStatus = "pending" // awaiting payment
	OrderStatusPaid    OrderStatus = "paid"    // gateway settled the transaction
	OrderStatusFailed  OrderStatus = "failed"  // expired, cancelled, denied or refunded
	OrderStatusUnknown OrderStatus = "unknown" // gateway reported something unmapped

	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Order is immutable once created except for Status and UpdatedAt. Item
// prices are snapshotted at checkout; later catalog changes never touch them.
type Order struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string          `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Status       OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"total_price"`
	ShipmentID   *string         `gorm:"type:varchar(36)" json:"shipment_id"` // nil for pickup
	DeliveryType DeliveryType    `gorm:"type:VARCHAR(20);not null" json:"delivery_type"`
	Notes        string          `json:"notes"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderItem is one order line, snapshotted at checkout.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      string          `gorm:"type:varchar(36);index;not null" json:"order_id"`
	ProductID    uint            `gorm:"not null" json:"product_id"`
	PackTypeID   uint            `gorm:"not null" json:"pack_type_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PricePerItem decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"price_per_item"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"total_price"`
	CreatedAt    time.Time
}
