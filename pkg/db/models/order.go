package models

import (
	"time"

	"github.com/rmarchetti/posplus-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is the immutable financial record created exactly once when a cart is
// confirmed.
type Order struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	CartID        int64               `gorm:"column:cart_id;not null;uniqueIndex"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex"`
	Subtotal      decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Tax           decimal.Decimal     `gorm:"column:tax;type:numeric(10,2);not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:'cash'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
