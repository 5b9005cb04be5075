package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/rmarchetti/posplus-backend/internal/cart"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// OrderDTO is the financial record created at confirmation. Amounts are
// fixed two-decimal strings.
type OrderDTO struct {
	ID            int64     `json:"id"`
	CartID        int64     `json:"cartId"`
	OrderNumber   string    `json:"orderNumber"`
	Subtotal      string    `json:"subtotal"`
	Tax           string    `json:"tax"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderWithCart pairs an order with the cart it settled.
type OrderWithCart struct {
	Order OrderDTO       `json:"order"`
	Cart  *cart.CartView `json:"cart"`
}

// Service is the read side of the ledger: order lookups and the transaction
// history views the till's reports are built from.
type Service interface {
	GetOrder(ctx context.Context, id int64) (*OrderWithCart, error)
	GetTransaction(ctx context.Context, cartID int64) (*cart.CartView, error)
	ListCompleted(ctx context.Context, employeeID int64) ([]cart.CartView, error)
}

type service struct {
	orders Store
	carts  cart.Store
}

func NewService(orders Store, carts cart.Store) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders: order store is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("orders: cart store is required")
	}
	return &service{orders: orders, carts: carts}, nil
}

func (s *service) GetOrder(ctx context.Context, id int64) (*OrderWithCart, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	full, err := s.carts.FindWithDetails(ctx, order.CartID)
	if err != nil {
		return nil, err
	}
	view, err := cart.NewCartView(full)
	if err != nil {
		return nil, err
	}

	return &OrderWithCart{Order: NewOrderDTO(order), Cart: view}, nil
}

// GetTransaction returns a settled cart. Active carts are not transactions
// yet and read as missing.
func (s *service) GetTransaction(ctx context.Context, cartID int64) (*cart.CartView, error) {
	full, err := s.carts.FindWithDetails(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !full.Status.IsTerminal() {
		return nil, errors.New(errors.CodeNotFound, "transaction not found")
	}
	return cart.NewCartView(full)
}

// ListCompleted returns the employee's transaction history: every settled
// cart, whether the sale went through or was handed back.
func (s *service) ListCompleted(ctx context.Context, employeeID int64) ([]cart.CartView, error) {
	carts, err := s.carts.ListCompletedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	views := make([]cart.CartView, 0, len(carts))
	for i := range carts {
		view, err := cart.NewCartView(&carts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func NewOrderDTO(order *models.Order) OrderDTO {
	return OrderDTO{
		ID:            order.ID,
		CartID:        order.CartID,
		OrderNumber:   order.OrderNumber,
		Subtotal:      order.Subtotal.StringFixed(2),
		Tax:           order.Tax.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		PaymentMethod: order.PaymentMethod.String(),
		CreatedAt:     order.CreatedAt,
	}
}
