package models

import "github.com/shopspring/decimal"

// CartItem is one (product, unit) line within a cart. Price is frozen at add
// time; later catalog price changes never touch existing lines. At most one
// line may exist per (cart, product, unit) triple -- repeated adds merge.
type CartItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CartID    int64           `gorm:"column:cart_id;not null;uniqueIndex:idx_cart_items_line"`
	ProductID int64           `gorm:"column:product_id;not null;uniqueIndex:idx_cart_items_line"`
	Quantity  int             `gorm:"column:quantity;not null;default:1"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsCarton  bool            `gorm:"column:is_carton;not null;default:false;uniqueIndex:idx_cart_items_line"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
}

// Pieces converts the line quantity into stock pieces.
func (i CartItem) Pieces(pcsPerCarton int) int {
	if i.IsCarton {
		return i.Quantity * pcsPerCarton
	}
	return i.Quantity
}
