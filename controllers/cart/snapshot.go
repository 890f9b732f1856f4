package cartControllers

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/models"
)

// Line is the checkout read model for one active cart line, resolved against
// the product and variant in a single join. Downstream components consume
// this record; they never walk ORM relationships.
type Line struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	PackTypeID  uint            `json:"pack_type_id"`
	ProductName string          `json:"product_name"`
	PackName    string          `json:"pack_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"` // percent from the variant
	Gross       decimal.Decimal `json:"gross"`
	DiscountAmt decimal.Decimal `json:"discount_amount"`
	Net         decimal.Decimal `json:"net"`
}

// Totals are the money sums over all active lines, computed in fixed-point
// decimal with no intermediate rounding.
type Totals struct {
	Gross    decimal.Decimal `json:"gross"`
	Discount decimal.Decimal `json:"discount"`
	Net      decimal.Decimal `json:"net"`
}

// Snapshot is what the order builder checks out.
type Snapshot struct {
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}

type lineRow struct {
	ID          uint
	ProductID   uint
	PackTypeID  uint
	ProductName string
	PackName    string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// BuildLine computes the per-line amounts from a resolved row. Per-line net
// is floored at zero so an oversized discount can never go negative.
func BuildLine(row Line) Line {
	qty := decimal.NewFromInt(int64(row.Quantity))
	row.Gross = row.UnitPrice.Mul(qty)
	unitDiscount := decimal.Zero
	if !row.Discount.IsZero() {
		unitDiscount = row.UnitPrice.Mul(row.Discount).Div(decimal.NewFromInt(100))
	}
	row.DiscountAmt = unitDiscount.Mul(qty)
	row.Net = row.Gross.Sub(row.DiscountAmt)
	if row.Net.IsNegative() {
		row.Net = decimal.Zero
	}
	return row
}

// SumTotals folds per-line amounts into the snapshot totals. Line order must
// not affect the result.
func SumTotals(lines []Line) Totals {
	t := Totals{Gross: decimal.Zero, Discount: decimal.Zero, Net: decimal.Zero}
	for _, l := range lines {
		t.Gross = t.Gross.Add(l.Gross)
		t.Discount = t.Discount.Add(l.DiscountAmt)
		t.Net = t.Net.Add(l.Net)
	}
	return t
}

// GetSnapshot produces the checkout snapshot for a customer: all active cart
// lines with resolved prices and discounts, plus totals.
func GetSnapshot(db *gorm.DB, customerID string) (*Snapshot, error) {
	var rows []lineRow
	err := db.Table("cart_products").
		Select("cart_products.id, cart_products.product_id, cart_products.pack_type_id, cart_products.quantity, "+
			"products.name AS product_name, products.price AS unit_price, "+
			"pack_types.name AS pack_name, pack_types.discount").
		Joins("JOIN products ON products.id = cart_products.product_id").
		Joins("JOIN pack_types ON pack_types.id = cart_products.pack_type_id").
		Where("cart_products.user_id = ? AND cart_products.is_active = ?", customerID, true).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load cart", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.KindEmptyCart, "no active items in cart")
	}

	lines := make([]Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, BuildLine(Line{
			ID:          r.ID,
			ProductID:   r.ProductID,
			PackTypeID:  r.PackTypeID,
			ProductName: r.ProductName,
			PackName:    r.PackName,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Discount:    r.Discount,
		}))
	}
	return &Snapshot{Lines: lines, Totals: SumTotals(lines)}, nil
}

// ClearActive deletes all active cart lines of a customer. It is only called
// from inside the order-creation transaction.
func ClearActive(tx *gorm.DB, customerID string) error {
	return tx.Where("user_id = ? AND is_active = ?", customerID, true).
		Delete(&models.CartProduct{}).Error
}
