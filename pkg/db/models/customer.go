package models

// Customer is created once per cart and owned by it; there is no dedup or
// lookup by phone number.
type Customer struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;not null"`
	PhoneNumber string `gorm:"column:phone_number;not null"`
	IsWholesale bool   `gorm:"column:is_wholesale;not null;default:false"`
}
