package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// Store persists walk-in customers captured at the till. Customers are
// created alongside their cart and read back through the cart preloads, so
// there is no standalone lookup here.
type Store interface {
	WithTx(tx *gorm.DB) Store
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
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

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "create customer")
	}
	return customer, nil
}
