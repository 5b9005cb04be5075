package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmarchetti/posplus-backend/internal/catalog"
	"github.com/rmarchetti/posplus-backend/pkg/db/models"
	"github.com/rmarchetti/posplus-backend/pkg/errors"
)

// CustomerDTO mirrors the customer captured when the cart was opened.
type CustomerDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	IsWholesale bool   `json:"isWholesale"`
}

// ItemView is one cart line joined with its product snapshot. Price is the
// frozen add-time unit price, not the current catalog price.
type ItemView struct {
	ID        int64              `json:"id"`
	ProductID int64              `json:"productId"`
	Quantity  int                `json:"quantity"`
	Price     string             `json:"price"`
	IsCarton  bool               `json:"isCarton"`
	Product   catalog.ProductDTO `json:"product"`
}

// CartView is the full cart read model served after every cart operation.
type CartView struct {
	ID        int64       `json:"id"`
	Status    string      `json:"status"`
	Customer  CustomerDTO `json:"customer"`
	Items     []ItemView  `json:"items"`
	ItemCount int         `json:"itemCount"`
	Total     string      `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewCartView assembles the read model from a cart loaded with details.
// A line pointing at a vanished product is a data fault, not a user error.
func NewCartView(cart *models.Cart) (*CartView, error) {
	if cart.Customer == nil {
		return nil, errors.New(errors.CodeNotFound, "customer not found")
	}

	items := make([]ItemView, 0, len(cart.Items))
	itemCount := 0
	total := decimal.Zero
	for i := range cart.Items {
		item := cart.Items[i]
		if item.Product == nil {
			return nil, errors.New(errors.CodeDataIntegrity, "cart references missing product")
		}
		items = append(items, ItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
			IsCarton:  item.IsCarton,
			Product:   catalog.NewProductDTO(item.Product),
		})
		itemCount += item.Quantity
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &CartView{
		ID:     cart.ID,
		Status: cart.Status.String(),
		Customer: CustomerDTO{
			ID:          cart.Customer.ID,
			Name:        cart.Customer.Name,
			PhoneNumber: cart.Customer.PhoneNumber,
			IsWholesale: cart.Customer.IsWholesale,
		},
		Items:     items,
		ItemCount: itemCount,
		Total:     total.StringFixed(2),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}
