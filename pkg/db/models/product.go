package models

import "github.com/shopspring/decimal"

// Product is a catalog listing priced per piece and per carton. Stock is
// denominated in pieces and only mutated through the catalog's
// stock-adjustment primitives.
type Product struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;not null"`
	Description  *string         `gorm:"column:description"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock        int             `gorm:"column:stock;not null;default:0"`
	Category     string          `gorm:"column:category;not null"`
	ImageURL     *string         `gorm:"column:image_url"`
	PcsPerCarton int             `gorm:"column:pcs_per_carton;not null;default:10"`
	CartonPrice  decimal.Decimal `gorm:"column:carton_price;type:numeric(10,2);not null"`
}

// InStock derives availability from the piece count.
func (p Product) InStock() bool {
	return p.Stock > 0
}
