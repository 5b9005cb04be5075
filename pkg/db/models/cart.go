package models

import (
	"time"

	"github.com/rmarchetti/posplus-backend/pkg/enums"
)

// Cart ties one customer and one employee to a set of line items. Only
// active carts accept mutations; confirmed and rejected carts are read-only.
type Cart struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64            `gorm:"column:customer_id;not null"`
	EmployeeID int64            `gorm:"column:employee_id;not null"`
	Status     enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	Customer   *Customer        `gorm:"foreignKey:CustomerID"`
	Items      []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
