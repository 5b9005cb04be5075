package employees

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// Store is the persistence surface the login service consumes.
type Store interface {
	WithTx(tx *gorm.DB) Store
	FindByCredentials(ctx context.Context, employeeID, password string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
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

func (r *repository) FindByCredentials(ctx context.Context, employeeID, password string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND password = ?", employeeID, password).
		First(&employee).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "find employee by credentials")
	}
	return &employee, nil
}

func (r *repository) Create(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "create employee")
	}
	return nil
}
