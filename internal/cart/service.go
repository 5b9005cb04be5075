package cart

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/internal/catalog"
	"github.com/rmarchetti/posplus-backend/internal/customers"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CustomerInput is the walk-in customer captured when a cart is opened.
type CustomerInput struct {
	Name        string
	PhoneNumber string
	IsWholesale bool
}

// AddItemInput adds quantity units of a product. IsCarton selects the carton
// line and the carton price; retail and carton lines of the same product
// stay separate.
type AddItemInput struct {
	ProductID int64
	Quantity  int
	IsCarton  bool
}

type Service interface {
	CreateCart(ctx context.Context, employeeID int64, input CustomerInput) (*CartView, error)
	GetCart(ctx context.Context, cartID int64) (*CartView, error)
	ListActive(ctx context.Context, employeeID int64) ([]CartView, error)
	AddItem(ctx context.Context, cartID int64, input AddItemInput) (*CartView, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int, isCarton *bool) (*CartView, error)
	RemoveItem(ctx context.Context, cartID, productID int64, isCarton *bool) (*CartView, error)
}

type service struct {
	tx        txRunner
	carts     Store
	products  catalog.Store
	customers customers.Store
	log       *logger.Logger
}

func NewService(tx txRunner, carts Store, products catalog.Store, custs customers.Store, log *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("cart: tx runner is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart: cart store is required")
	}
	if products == nil {
		return nil, fmt.Errorf("cart: product store is required")
	}
	if custs == nil {
		return nil, fmt.Errorf("cart: customer store is required")
	}
	if log == nil {
		return nil, fmt.Errorf("cart: logger is required")
	}
	return &service{tx: tx, carts: carts, products: products, customers: custs, log: log}, nil
}

func (s *service) CreateCart(ctx context.Context, employeeID int64, input CustomerInput) (*CartView, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "customer name is required")
	}

	var view *CartView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		customer, err := s.customers.WithTx(tx).Create(ctx, &models.Customer{
			Name:        input.Name,
			PhoneNumber: strings.TrimSpace(input.PhoneNumber),
			IsWholesale: input.IsWholesale,
		})
		if err != nil {
			return err
		}

		created, err := carts.Create(ctx, &models.Cart{
			CustomerID: customer.ID,
			EmployeeID: employeeID,
		})
		if err != nil {
			return err
		}

		view, err = s.loadView(ctx, carts, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, fmt.Sprintf("cart %d opened for customer %q", view.ID, input.Name))
	return view, nil
}

func (s *service) GetCart(ctx context.Context, cartID int64) (*CartView, error) {
	return s.loadView(ctx, s.carts, cartID)
}

func (s *service) ListActive(ctx context.Context, employeeID int64) ([]CartView, error) {
	carts, err := s.carts.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	views := make([]CartView, 0, len(carts))
	for i := range carts {
		view, err := NewCartView(&carts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *service) AddItem(ctx context.Context, cartID int64, input AddItemInput) (*CartView, error) {
	if input.Quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	var view *CartView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)

		if err := s.requireActive(ctx, carts, cartID); err != nil {
			return err
		}

		product, err := products.FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		unitPieces, price := 1, product.Price
		if input.IsCarton {
			unitPieces, price = product.PcsPerCarton, product.CartonPrice
		}

		// Consuming first keeps the guard authoritative; a later failure
		// rolls the decrement back with the rest of the transaction.
		if err := products.ConsumeStock(ctx, product.ID, input.Quantity*unitPieces); err != nil {
			return err
		}

		lines, err := carts.FindLines(ctx, cartID, product.ID)
		if err != nil {
			return err
		}
		var existing *models.CartItem
		for i := range lines {
			if lines[i].IsCarton == input.IsCarton {
				existing = &lines[i]
				break
			}
		}

		if existing != nil {
			if err := carts.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+input.Quantity); err != nil {
				return err
			}
		} else {
			item := &models.CartItem{
				CartID:    cartID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Price:     price,
				IsCarton:  input.IsCarton,
			}
			if err := carts.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		view, err = s.loadView(ctx, carts, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int, isCarton *bool) (*CartView, error) {
	if quantity < 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must not be negative")
	}

	var view *CartView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)

		if err := s.requireActive(ctx, carts, cartID); err != nil {
			return err
		}

		line, err := s.selectLine(ctx, carts, cartID, productID, isCarton)
		if err != nil {
			return err
		}

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			if errors.As(err) != nil && errors.As(err).Code() == errors.CodeNotFound {
				return errors.New(errors.CodeDataIntegrity, "cart references missing product")
			}
			return err
		}

		unitPieces := 1
		if line.IsCarton {
			unitPieces = product.PcsPerCarton
		}
		diff := (quantity - line.Quantity) * unitPieces
		switch {
		case diff > 0:
			if err := products.ConsumeStock(ctx, productID, diff); err != nil {
				return err
			}
		case diff < 0:
			if err := products.AdjustStock(ctx, productID, -diff); err != nil {
				return err
			}
		}

		if quantity == 0 {
			if err := carts.DeleteItem(ctx, line.ID); err != nil {
				return err
			}
		} else if err := carts.UpdateItemQuantity(ctx, line.ID, quantity); err != nil {
			return err
		}

		view, err = s.loadView(ctx, carts, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) RemoveItem(ctx context.Context, cartID, productID int64, isCarton *bool) (*CartView, error) {
	var view *CartView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)

		if err := s.requireActive(ctx, carts, cartID); err != nil {
			return err
		}

		line, err := s.selectLine(ctx, carts, cartID, productID, isCarton)
		if err != nil {
			return err
		}

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			if errors.As(err) != nil && errors.As(err).Code() == errors.CodeNotFound {
				return errors.New(errors.CodeDataIntegrity, "cart references missing product")
			}
			return err
		}

		if err := products.AdjustStock(ctx, productID, line.Pieces(product.PcsPerCarton)); err != nil {
			return err
		}
		if err := carts.DeleteItem(ctx, line.ID); err != nil {
			return err
		}

		view, err = s.loadView(ctx, carts, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) requireActive(ctx context.Context, carts Store, cartID int64) error {
	cart, err := carts.FindByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart.Status.IsTerminal() {
		return errors.New(errors.CodeStateConflict, fmt.Sprintf("cart is %s and no longer accepts changes", cart.Status))
	}
	return nil
}

// selectLine resolves the (product, unit) line a mutation targets. When the
// caller omits the unit and both a retail and a carton line exist, the
// request is ambiguous and rejected.
func (s *service) selectLine(ctx context.Context, carts Store, cartID, productID int64, isCarton *bool) (*models.CartItem, error) {
	lines, err := carts.FindLines(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}

	if isCarton != nil {
		for i := range lines {
			if lines[i].IsCarton == *isCarton {
				return &lines[i], nil
			}
		}
		return nil, errors.New(errors.CodeNotFound, "item not found in cart")
	}

	switch len(lines) {
	case 0:
		return nil, errors.New(errors.CodeNotFound, "item not found in cart")
	case 1:
		return &lines[0], nil
	default:
		return nil, errors.New(errors.CodeValidation, "unit is required when both retail and carton lines exist")
	}
}

func (s *service) loadView(ctx context.Context, carts Store, cartID int64) (*CartView, error) {
	full, err := carts.FindWithDetails(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return NewCartView(full)
}
