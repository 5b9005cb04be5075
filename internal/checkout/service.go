package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/internal/cart"
	"github.com/rmarchetti/posplus-backend/internal/catalog"
	"github.com/rmarchetti/posplus-backend/internal/orders"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/enums"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
	"github.com/rmarchetti/posplus-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ConfirmResult is what the till renders on a completed sale.
type ConfirmResult struct {
	Order orders.OrderDTO `json:"order"`
	Cart  cart.CartView   `json:"cart"`
}

// Service settles active carts. Confirm freezes the sale into an order;
// Reject hands every reserved piece back to the shelf.
type Service interface {
	Confirm(ctx context.Context, cartID int64) (*ConfirmResult, error)
	Reject(ctx context.Context, cartID int64) (*cart.CartView, error)
}

type service struct {
	tx       txRunner
	carts    cart.Store
	products catalog.Store
	orders   orders.Store
	numbers  *OrderNumberGenerator
	metrics  *metrics.CheckoutMetrics
	taxRate  decimal.Decimal
	log      *logger.Logger
}

// NewService wires the checkout flow. taxRatePercent is e.g. "8.25" for an
// 8.25% sales tax.
func NewService(
	tx txRunner,
	carts cart.Store,
	products catalog.Store,
	orderStore orders.Store,
	checkoutMetrics *metrics.CheckoutMetrics,
	taxRatePercent string,
	log *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("checkout: tx runner is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("checkout: cart store is required")
	}
	if products == nil {
		return nil, fmt.Errorf("checkout: product store is required")
	}
	if orderStore == nil {
		return nil, fmt.Errorf("checkout: order store is required")
	}
	if log == nil {
		return nil, fmt.Errorf("checkout: logger is required")
	}
	rate, err := decimal.NewFromString(taxRatePercent)
	if err != nil {
		return nil, fmt.Errorf("checkout: invalid tax rate %q: %w", taxRatePercent, err)
	}
	return &service{
		tx:       tx,
		carts:    carts,
		products: products,
		orders:   orderStore,
		numbers:  NewOrderNumberGenerator(),
		metrics:  checkoutMetrics,
		taxRate:  rate.Div(decimal.NewFromInt(100)),
		log:      log,
	}, nil
}

func (s *service) Confirm(ctx context.Context, cartID int64) (*ConfirmResult, error) {
	var result *ConfirmResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		full, err := carts.FindWithDetails(ctx, cartID)
		if err != nil {
			return err
		}
		if full.Status.IsTerminal() {
			conflict := errors.New(errors.CodeStateConflict, fmt.Sprintf("cart is already %s", full.Status))
			if full.Status == enums.CartStatusConfirmed {
				// Tell the stale till which order already settled this cart.
				if existing, findErr := s.orders.WithTx(tx).FindByCartID(ctx, cartID); findErr == nil {
					conflict = conflict.WithDetails(map[string]string{"orderNumber": existing.OrderNumber})
				}
			}
			return conflict
		}
		if len(full.Items) == 0 {
			return errors.New(errors.CodeValidation, "cannot confirm an empty cart")
		}

		subtotal := decimal.Zero
		for _, item := range full.Items {
			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		tax := subtotal.Mul(s.taxRate).Round(2)
		total := subtotal.Add(tax).Round(2)

		// Stock stays untouched here; every piece was already consumed when
		// the lines were added.
		order, err := s.orders.WithTx(tx).Create(ctx, &models.Order{
			CartID:        cartID,
			OrderNumber:   s.numbers.Next(cartID),
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			PaymentMethod: enums.PaymentMethodCash,
		})
		if err != nil {
			return err
		}
		if err := carts.UpdateStatus(ctx, cartID, enums.CartStatusConfirmed); err != nil {
			return err
		}

		confirmed, err := carts.FindWithDetails(ctx, cartID)
		if err != nil {
			return err
		}
		view, err := cart.NewCartView(confirmed)
		if err != nil {
			return err
		}
		result = &ConfirmResult{Order: orders.NewOrderDTO(order), Cart: *view}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f, err := decimal.NewFromString(result.Order.Total); err == nil {
		s.metrics.IncConfirmed(f.InexactFloat64())
	}
	s.log.Info(ctx, fmt.Sprintf("cart %d confirmed as order %s (total %s)", cartID, result.Order.OrderNumber, result.Order.Total))
	return result, nil
}

func (s *service) Reject(ctx context.Context, cartID int64) (*cart.CartView, error) {
	var view *cart.CartView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)

		current, err := carts.FindByID(ctx, cartID)
		if err != nil {
			return err
		}
		if current.Status.IsTerminal() {
			return errors.New(errors.CodeStateConflict, fmt.Sprintf("cart is already %s", current.Status))
		}

		items, err := carts.ListItems(ctx, cartID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.Product == nil {
				return errors.New(errors.CodeDataIntegrity, "cart references missing product")
			}
			if err := products.AdjustStock(ctx, item.ProductID, item.Pieces(item.Product.PcsPerCarton)); err != nil {
				return err
			}
		}
		if err := carts.DeleteItemsForCart(ctx, cartID); err != nil {
			return err
		}
		if err := carts.UpdateStatus(ctx, cartID, enums.CartStatusRejected); err != nil {
			return err
		}

		rejected, err := carts.FindWithDetails(ctx, cartID)
		if err != nil {
			return err
		}
		view, err = cart.NewCartView(rejected)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRejected()
	s.log.Info(ctx, fmt.Sprintf("cart %d rejected, stock restored", cartID))
	return view, nil
}
