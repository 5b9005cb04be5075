package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/internal/cart"
	"github.com/rmarchetti/posplus-backend/internal/catalog"
	"github.com/rmarchetti/posplus-backend/internal/customers"
	"github.com/rmarchetti/posplus-backend/internal/orders"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
	"github.com/rmarchetti/posplus-backend/pkg/metrics"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fixture struct {
	db       *gorm.DB
	carts    cart.Service
	checkout Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.New(logger.Options{ServiceName: "test"})
	tx := gormTxRunner{db: db}
	cartStore := cart.NewRepository(db)
	productStore := catalog.NewRepository(db)

	cartSvc, err := cart.NewService(tx, cartStore, productStore, customers.NewRepository(db), log)
	require.NoError(t, err)

	checkoutSvc, err := NewService(
		tx, cartStore, productStore, orders.NewRepository(db),
		metrics.NewCheckoutMetrics(prometheus.NewRegistry()),
		"8.25", log,
	)
	require.NoError(t, err)

	return &fixture{db: db, carts: cartSvc, checkout: checkoutSvc}
}

func (f *fixture) seedProduct(t *testing.T, price string, stock, pcsPerCarton int, cartonPrice string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:         "Product " + uuid.NewString()[:8],
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		Category:     "drinks",
		PcsPerCarton: pcsPerCarton,
		CartonPrice:  decimal.RequireFromString(cartonPrice),
	}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	var p models.Product
	if err := f.db.First(&p, id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Stock
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.seedProduct(t, "1.99", 24, 24, "35.99")

	opened, err := f.carts.CreateCart(ctx, 1, cart.CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, opened.ID, cart.AddItemInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, 19, f.stock(t, p.ID))

	result, err := f.checkout.Confirm(ctx, opened.ID)
	require.NoError(t, err)

	assert.Equal(t, "9.95", result.Order.Subtotal)
	assert.Equal(t, "0.82", result.Order.Tax)
	assert.Equal(t, "10.77", result.Order.Total)
	assert.Equal(t, "cash", result.Order.PaymentMethod)
	assert.True(t, strings.HasPrefix(result.Order.OrderNumber, "POS-"))
	assert.Equal(t, "confirmed", result.Cart.Status)
	assert.Len(t, result.Cart.Items, 1, "confirmed carts keep their lines")

	assert.Equal(t, 19, f.stock(t, p.ID), "confirm must not touch stock")

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConfirmTaxRounding(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// 5 x 2.89 = 14.45; 14.45 * 0.0825 = 1.192125 -> 1.19; total 15.64.
	p := f.seedProduct(t, "2.89", 50, 12, "30.00")

	opened, err := f.carts.CreateCart(ctx, 1, cart.CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, opened.ID, cart.AddItemInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)

	result, err := f.checkout.Confirm(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, "14.45", result.Order.Subtotal)
	assert.Equal(t, "1.19", result.Order.Tax)
	assert.Equal(t, "15.64", result.Order.Total)
}

func TestConfirmGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.seedProduct(t, "1.99", 24, 24, "35.99")

	t.Run("unknown cart", func(t *testing.T) {
		_, err := f.checkout.Confirm(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
	})

	t.Run("empty cart", func(t *testing.T) {
		opened, err := f.carts.CreateCart(ctx, 1, cart.CustomerInput{Name: "Jane"})
		require.NoError(t, err)
		_, err = f.checkout.Confirm(ctx, opened.ID)
		require.Error(t, err)
		assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
	})

	t.Run("already confirmed", func(t *testing.T) {
		opened, err := f.carts.CreateCart(ctx, 1, cart.CustomerInput{Name: "Jane"})
		require.NoError(t, err)
		_, err = f.carts.AddItem(ctx, opened.ID, cart.AddItemInput{ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
		first, err := f.checkout.Confirm(ctx, opened.ID)
		require.NoError(t, err)

		_, err = f.checkout.Confirm(ctx, opened.ID)
		require.Error(t, err)
		conflict := errors.As(err)
		assert.Equal(t, errors.CodeStateConflict, conflict.Code())
		details, ok := conflict.Details().(map[string]string)
		require.True(t, ok, "conflict should carry the settling order")
		assert.Equal(t, first.Order.OrderNumber, details["orderNumber"])

		var count int64
		require.NoError(t, f.db.Model(&models.Order{}).Where("cart_id = ?", opened.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count, "exactly one order per cart")
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	retail := f.seedProduct(t, "1.99", 24, 24, "35.99")
	carton := f.seedProduct(t, "2.49", 15, 12, "24.99")

	opened, err := f.carts.CreateCart(ctx, 1, cart.CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, opened.ID, cart.AddItemInput{ProductID: retail.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, opened.ID, cart.AddItemInput{ProductID: carton.ID, Quantity: 1, IsCarton: true})
	require.NoError(t, err)
	require.Equal(t, 21, f.stock(t, retail.ID))
	require.Equal(t, 3, f.stock(t, carton.ID))

	view, err := f.checkout.Reject(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", view.Status)
	assert.Empty(t, view.Items)
	assert.Equal(t, 24, f.stock(t, retail.ID), "retail pieces restored")
	assert.Equal(t, 15, f.stock(t, carton.ID), "carton restored as pieces, not units")

	_, err = f.checkout.Reject(ctx, opened.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeStateConflict, errors.As(err).Code())
	assert.Equal(t, 15, f.stock(t, carton.ID), "double reject must not restore twice")
}

func TestOrderNumberUniqueness(t *testing.T) {
	gen := NewOrderNumberGenerator()
	gen.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := gen.Next(42)
		if seen[n] {
			t.Fatalf("duplicate order number %s", n)
		}
		seen[n] = true
	}
	assert.True(t, strings.HasPrefix(gen.Next(7), "POS-20260831120000-"))
}
