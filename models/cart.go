package models

import "time"

// CartProduct is one active line a customer intends to buy. Lines are
// independent: the same product/variant pair may appear more than once.
// Only lines with IsActive = true participate in totals and checkout.
type CartProduct struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	ProductID  uint   `gorm:"not null" json:"product_id"`
	PackTypeID uint   `gorm:"not null" json:"pack_type_id"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
