package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmarchetti/posplus-backend/pkg/db/models"
)

// ProductDTO is the catalog shape served to the till. Prices are fixed to
// two decimals as strings so clients never see float artifacts.
type ProductDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Price        string  `json:"price"`
	Stock        int     `json:"stock"`
	Category     string  `json:"category"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	PcsPerCarton int     `json:"pcsPerCarton"`
	CartonPrice  string  `json:"cartonPrice"`
	InStock      bool    `json:"inStock"`
}

type Service interface {
	List(ctx context.Context, category string) ([]ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
}

type service struct {
	store Store
}

func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog: store is required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	category = strings.TrimSpace(category)

	var (
		products []models.Product
		err      error
	)
	if category == "" || strings.EqualFold(category, "all") {
		products, err = s.store.ListAll(ctx)
	} else {
		products, err = s.store.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, NewProductDTO(&products[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewProductDTO(product)
	return &dto, nil
}

func NewProductDTO(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.StringFixed(2),
		Stock:        p.Stock,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		PcsPerCarton: p.PcsPerCarton,
		CartonPrice:  p.CartonPrice.StringFixed(2),
		InStock:      p.InStock(),
	}
}
