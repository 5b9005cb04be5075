package cart

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/enums"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// Store covers cart records and their line items. FindWithDetails loads the
// customer and every line with its product so callers can build a full view
// without extra round trips.
type Store interface {
	WithTx(tx *gorm.DB) Store
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindByID(ctx context.Context, id int64) (*models.Cart, error)
	FindWithDetails(ctx context.Context, id int64) (*models.Cart, error)
	ListActiveByEmployee(ctx context.Context, employeeID int64) ([]models.Cart, error)
	ListCompletedByEmployee(ctx context.Context, employeeID int64) ([]models.Cart, error)
	UpdateStatus(ctx context.Context, id int64, status enums.CartStatus) error

	FindLines(ctx context.Context, cartID, productID int64) ([]models.CartItem, error)
	ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error
	DeleteItemsForCart(ctx context.Context, cartID int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Store {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Store {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "create cart")
	}
	return cart, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "cart not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find cart")
	}
	return &cart, nil
}

func (r *repository) FindWithDetails(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		First(&cart, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "cart not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find cart with details")
	}
	return &cart, nil
}

func (r *repository) listByStatus(ctx context.Context, employeeID int64, statuses ...enums.CartStatus) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("employee_id = ? AND status IN ?", employeeID, statuses).
		Order("id DESC").
		Find(&carts).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list carts")
	}
	return carts, nil
}

func (r *repository) ListActiveByEmployee(ctx context.Context, employeeID int64) ([]models.Cart, error) {
	return r.listByStatus(ctx, employeeID, enums.CartStatusActive)
}

// ListCompletedByEmployee returns the employee's settled carts, confirmed and
// rejected alike, newest first.
func (r *repository) ListCompletedByEmployee(ctx context.Context, employeeID int64) ([]models.Cart, error) {
	return r.listByStatus(ctx, employeeID, enums.CartStatusConfirmed, enums.CartStatusRejected)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status enums.CartStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "update cart status")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "cart not found")
	}
	return nil
}

func (r *repository) FindLines(ctx context.Context, cartID, productID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "find cart lines")
	}
	return items, nil
}

func (r *repository) ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list cart items")
	}
	return items, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "create cart item")
	}
	return nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "update cart item quantity")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, itemID int64) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "delete cart item")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (r *repository) DeleteItemsForCart(ctx context.Context, cartID int64) error {
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "delete cart items")
	}
	return nil
}
