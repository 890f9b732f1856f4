package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is read-only for the checkout pipeline; the catalog subsystem owns
// writes.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"price"`
	Image       string          `json:"image"`
	BrandID     uint            `json:"brand_id"`
	PackTypes   []PackType      `gorm:"foreignKey:ProductID" json:"pack_types"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PackType is a product variant: one package size with its own stock and
// discount percentage.
type PackType struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Stock     int             `json:"stock"`
	Discount  decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"discount"` // percent, 0..100
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitDiscount derives the per-unit discount amount from the variant's
// percentage and the product's base price.
func (p PackType) UnitDiscount(basePrice decimal.Decimal) decimal.Decimal {
	if p.Discount.IsZero() {
		return decimal.Zero
	}
	return basePrice.Mul(p.Discount).Div(decimal.NewFromInt(100))
}
