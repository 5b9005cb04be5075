package models

// Employee is a POS operator. The password is a plain equality check used by
// the login screen, not a security mechanism.
type Employee struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string `gorm:"column:employee_id;not null;uniqueIndex"`
	Name       string `gorm:"column:name;not null"`
	Password   string `gorm:"column:password;not null"`
}
