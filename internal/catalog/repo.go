package catalog

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// Store exposes product reads plus the two stock primitives every cart
// mutation is built on. ConsumeStock is the guarded decrement, AdjustStock
// the unconditional accumulator used to hand stock back.
type Store interface {
	WithTx(tx *gorm.DB) Store
	ListAll(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	ConsumeStock(ctx context.Context, id int64, pieces int) error
	AdjustStock(ctx context.Context, id int64, deltaPieces int) error
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

func (r *repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list products")
	}
	return products, nil
}

func (r *repository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list products by category")
	}
	return products, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find product")
	}
	return &product, nil
}

// ConsumeStock decrements the product's piece count by pieces, but only if
// enough stock remains. The guard lives in the WHERE clause so two
// concurrent consumers can never drive stock negative.
func (r *repository) ConsumeStock(ctx context.Context, id int64, pieces int) error {
	if pieces <= 0 {
		return errors.New(errors.CodeValidation, "pieces must be positive")
	}

	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, pieces).
		UpdateColumn("stock", gorm.Expr("stock - ?", pieces))
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "consume stock")
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(errors.CodeInternal, err, "consume stock")
		}
		if count == 0 {
			return errors.New(errors.CodeNotFound, "product not found")
		}
		return errors.New(errors.CodeInsufficientStock, "insufficient stock")
	}
	return nil
}

// AdjustStock applies deltaPieces without a floor check. Callers returning
// stock to the shelf use a positive delta; admin corrections may go either way.
func (r *repository) AdjustStock(ctx context.Context, id int64, deltaPieces int) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", deltaPieces))
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "adjust stock")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "product not found")
	}
	return nil
}
