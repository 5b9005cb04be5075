package orders

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// Store persists the immutable order ledger. The unique cart_id column is
// the last line of defense against double confirmation.
type Store interface {
	WithTx(tx *gorm.DB) Store
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByCartID(ctx context.Context, cartID int64) (*models.Order, error)
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

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "create order")
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find order")
	}
	return &order, nil
}

func (r *repository) FindByCartID(ctx context.Context, cartID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&order).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find order by cart")
	}
	return &order, nil
}
