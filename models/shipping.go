package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentAddress is a customer-owned delivery address.
type ShipmentAddress struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	RecipientName string `gorm:"not null" json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	ZipCode       string `json:"zip_code"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Courier is a customer's courier selection with the cost quoted for it.
type Courier struct {
	ID                uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string          `gorm:"type:varchar(36);index;not null" json:"user_id"`
	CourierName       string          `gorm:"not null" json:"courier_name"`
	Weight            int             `json:"weight"`
	ServiceType       string          `json:"service_type"`
	Cost              decimal.Decimal `gorm:"type:numeric(16,2);default:0" json:"cost"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Shipment binds one address and one courier for one customer. At most one
// shipment per customer should be active at checkout time.
type Shipment struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	AddressID    uint   `gorm:"not null" json:"address_id"`
	CourierID    uint   `gorm:"not null" json:"courier_id"`
	TrackingCode string `json:"tracking_code"`
	IsActive     bool   `gorm:"default:false;index" json:"is_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Address ShipmentAddress `gorm:"foreignKey:AddressID" json:"address"`
	Courier Courier         `gorm:"foreignKey:CourierID" json:"courier"`
}
