package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rmarchetti/posplus-backend/internal/catalog"
	"github.com/rmarchetti/posplus-backend/internal/customers"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/enums"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:cart_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Cart{}, &models.CartItem{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(
		gormTxRunner{db: db},
		NewRepository(db),
		catalog.NewRepository(db),
		customers.NewRepository(db),
		logger.New(logger.Options{ServiceName: "test"}),
	)
	require.NoError(t, err)
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, stock, pcsPerCarton int, cartonPrice string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		Category:     "drinks",
		PcsPerCarton: pcsPerCarton,
		CartonPrice:  decimal.RequireFromString(cartonPrice),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func productStock(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var p models.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Stock
}

func boolPtr(b bool) *bool { return &b }

func TestCreateCart(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)

	view, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane", PhoneNumber: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "active", view.Status)
	assert.Equal(t, "Jane", view.Customer.Name)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, "0.00", view.Total)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = svc.CreateCart(ctx, 1, CustomerInput{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestAddItemRetailFlow(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Coca Cola", "1.99", 24, 24, "35.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)

	view, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 21, productStock(t, db, p.ID))
	assert.Equal(t, "5.97", view.Total)
	assert.Equal(t, 3, view.ItemCount)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "1.99", view.Items[0].Price)

	// Same product and unit again merges into the one line.
	view, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 19, productStock(t, db, p.ID))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, "9.95", view.Total)
	assert.Equal(t, 5, view.ItemCount)
}

func TestAddItemCartonFlow(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Potato Chips", "2.49", 15, 12, "24.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)

	view, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 1, IsCarton: true})
	require.NoError(t, err)
	assert.Equal(t, 3, productStock(t, db, p.ID), "a carton consumes piecesPerCarton pieces")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "24.99", view.Items[0].Price, "carton lines freeze the carton price")

	// A second carton needs 12 pieces but only 3 remain.
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 1, IsCarton: true})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientStock, errors.As(err).Code())
	assert.Equal(t, 3, productStock(t, db, p.ID))

	// Retail and carton lines of the same product stay separate.
	view, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 1, productStock(t, db, p.ID))
	assert.Equal(t, 3, view.ItemCount)
}

func TestAddItemGuards(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Coca Cola", "1.99", 24, 24, "35.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)

	t.Run("unknown cart", func(t *testing.T) {
		_, err := svc.AddItem(ctx, 9999, AddItemInput{ProductID: p.ID, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: 9999, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 0})
		require.Error(t, err)
		assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
	})

	t.Run("terminal cart", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("status", enums.CartStatusConfirmed).Error)
		_, err := svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, errors.CodeStateConflict, errors.As(err).Code())
		assert.Equal(t, 24, productStock(t, db, p.ID))
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Tomato Soup", "1.79", 32, 12, "18.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, 28, productStock(t, db, p.ID))

	t.Run("raising consumes the difference", func(t *testing.T) {
		view, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 6, nil)
		require.NoError(t, err)
		assert.Equal(t, 26, productStock(t, db, p.ID))
		assert.Equal(t, 6, view.Items[0].Quantity)
	})

	t.Run("lowering returns the difference", func(t *testing.T) {
		view, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, 30, productStock(t, db, p.ID))
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("raising past stock fails atomically", func(t *testing.T) {
		_, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 100, nil)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInsufficientStock, errors.As(err).Code())
		assert.Equal(t, 30, productStock(t, db, p.ID))
	})

	t.Run("zero deletes the line and returns all pieces", func(t *testing.T) {
		view, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 0, nil)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, 32, productStock(t, db, p.ID))
	})

	t.Run("missing line", func(t *testing.T) {
		_, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 1, nil)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
	})
}

func TestUpdateCartonQuantityNormalizesPieces(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Red Apples", "3.99", 45, 20, "69.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 2, IsCarton: true})
	require.NoError(t, err)
	require.Equal(t, 5, productStock(t, db, p.ID))

	// Dropping one carton must hand back 20 pieces, not 1.
	view, err := svc.UpdateItemQuantity(ctx, cart.ID, p.ID, 1, boolPtr(true))
	require.NoError(t, err)
	assert.Equal(t, 25, productStock(t, db, p.ID))
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Fresh Milk", "3.49", 18, 6, "18.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 1, IsCarton: true})
	require.NoError(t, err)
	require.Equal(t, 12, productStock(t, db, p.ID))

	view, err := svc.RemoveItem(ctx, cart.ID, p.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 18, productStock(t, db, p.ID), "add then remove restores stock exactly")

	_, err = svc.RemoveItem(ctx, cart.ID, p.ID, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestAmbiguousUnitRequiresIsCarton(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	p := seedProduct(t, db, "Orange Juice", "4.99", 40, 12, "49.99")

	cart, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, AddItemInput{ProductID: p.ID, Quantity: 1, IsCarton: true})
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, cart.ID, p.ID, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())

	// Explicit unit disambiguates.
	view, err := svc.RemoveItem(ctx, cart.ID, p.ID, boolPtr(true))
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.False(t, view.Items[0].IsCarton)
	assert.Equal(t, 38, productStock(t, db, p.ID))
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)

	first, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.CreateCart(ctx, 2, CustomerInput{Name: "Bill"})
	require.NoError(t, err)
	second, err := svc.CreateCart(ctx, 1, CustomerInput{Name: "Ann"})
	require.NoError(t, err)

	views, err := svc.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID, "newest cart first")
	assert.Equal(t, first.ID, views[1].ID)

	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", first.ID).
		Update("status", enums.CartStatusRejected).Error)
	views, err = svc.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
