package seed

import (
	"context"
	"fmt"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Set is an explicit, injectable seed dataset. Tests build their own sets;
// the api binary applies Demo() when POSPLUS_SEED_DEMO_DATA is enabled.
type Set struct {
	Employees []models.Employee
	Products  []models.Product
}

// Validate reports every problem in the set at once.
func (s Set) Validate() error {
	var err error
	for i, emp := range s.Employees {
		if emp.EmployeeID == "" {
			err = multierr.Append(err, fmt.Errorf("employee %d: login handle is required", i))
		}
		if emp.Name == "" {
			err = multierr.Append(err, fmt.Errorf("employee %d: name is required", i))
		}
	}
	for i, p := range s.Products {
		if p.Name == "" {
			err = multierr.Append(err, fmt.Errorf("product %d: name is required", i))
		}
		if p.Stock < 0 {
			err = multierr.Append(err, fmt.Errorf("product %d: stock must not be negative", i))
		}
		if p.PcsPerCarton < 1 {
			err = multierr.Append(err, fmt.Errorf("product %d: pcs per carton must be >= 1", i))
		}
		if p.Price.IsNegative() || p.CartonPrice.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("product %d: prices must not be negative", i))
		}
	}
	return err
}

// Apply inserts the set. It is not idempotent; callers seed a fresh store.
func Apply(ctx context.Context, db *gorm.DB, set Set) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("invalid seed set: %w", err)
	}
	tx := db.WithContext(ctx)
	if len(set.Employees) > 0 {
		if err := tx.Create(&set.Employees).Error; err != nil {
			return fmt.Errorf("seeding employees: %w", err)
		}
	}
	if len(set.Products) > 0 {
		if err := tx.Create(&set.Products).Error; err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
	}
	return nil
}

// ApplyIfEmpty seeds only when no employees exist yet, so a persistent
// store is not re-seeded on every boot.
func ApplyIfEmpty(ctx context.Context, db *gorm.DB, set Set) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return fmt.Errorf("checking for existing seed data: %w", err)
	}
	if count > 0 {
		return nil
	}
	return Apply(ctx, db, set)
}

// Demo returns the walk-in demo dataset the POS ships with.
func Demo() Set {
	return Set{
		Employees: []models.Employee{
			{EmployeeID: "EMP001", Name: "John Doe", Password: "demo123"},
		},
		Products: []models.Product{
			product("Coca Cola", "Classic cola drink", "1.99", 24, "drinks",
				"https://images.unsplash.com/photo-1629203851122-3726ecdf080e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 24, "35.99"),
			product("Potato Chips", "Crispy original flavor", "2.49", 15, "snacks",
				"https://images.unsplash.com/photo-1566478989037-eec170784d0b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 12, "24.99"),
			product("Tomato Soup", "Campbell's classic tomato", "1.79", 32, "canned",
				"https://images.unsplash.com/photo-1544025162-d76694265947?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 12, "18.99"),
			product("Red Apples", "Fresh, crisp apples (per lb)", "3.99", 45, "fresh",
				"https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 20, "69.99"),
			product("Fresh Milk", "Whole milk 1 gallon", "3.49", 18, "dairy",
				"https://images.unsplash.com/photo-1550583724-b2692b85b150?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 6, "18.99"),
			product("Orange Juice", "Fresh squeezed 32oz", "4.99", 12, "drinks",
				"https://images.unsplash.com/photo-1600271886742-f049cd451bba?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 12, "49.99"),
			product("Chocolate Bar", "Premium dark chocolate", "2.99", 28, "snacks",
				"https://images.unsplash.com/photo-1606312619070-d48b4c652a52?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 24, "59.99"),
			product("Green Beans", "Cut green beans 14.5oz", "1.29", 40, "canned",
				"https://images.unsplash.com/photo-1584308972272-9e4e7685e80f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", 12, "13.99"),
		},
	}
}

func product(name, description, price string, stock int, category, imageURL string, pcsPerCarton int, cartonPrice string) models.Product {
	desc := description
	img := imageURL
	return models.Product{
		Name:         name,
		Description:  &desc,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		Category:     category,
		ImageURL:     &img,
		PcsPerCarton: pcsPerCarton,
		CartonPrice:  decimal.RequireFromString(cartonPrice),
	}
}
