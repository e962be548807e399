package catalog

import (
	"context"
	"fmt"

	"github.com/pos2025/pos-backend/pkg/db/models"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/pagination"
	"github.com/pos2025/pos-backend/pkg/types"
)

// VariationDTO is one purchasable variation row.
type VariationDTO struct {
	ID          int64             `json:"id"`
	Label       string            `json:"label"`
	SKU         string            `json:"sku"`
	Price       string            `json:"price"`
	StockStatus enums.StockStatus `json:"stockStatus"`
	ImageURL    string            `json:"imageUrl,omitempty"`
}

// ProductDTO is the search result shape served to selection surfaces.
type ProductDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	SKU         string            `json:"sku"`
	Price       string            `json:"price"`
	Type        enums.ProductType `json:"type"`
	StockStatus enums.StockStatus `json:"stockStatus"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	Variations  []VariationDTO    `json:"variations,omitempty"`
}

// SearchRepository is the read surface the service needs.
type SearchRepository interface {
	Search(ctx context.Context, query string, params pagination.Params) ([]models.Product, error)
}

// Service serves product search for the register's selection surface.
type Service interface {
	Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[ProductDTO], error)
}

type service struct {
	repo     SearchRepository
	decimals int
}

// NewService builds the catalog search service. decimals controls price
// presentation rounding.
func NewService(repo SearchRepository, decimals int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if decimals < 0 {
		decimals = types.DefaultCurrencyDecimals
	}
	return &service{repo: repo, decimals: decimals}, nil
}

func (s *service) Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[ProductDTO], error) {
	rows, err := s.repo.Search(ctx, query, params)
	if err != nil {
		return pagination.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "searching products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, s.toDTO(row))
	}
	return pagination.NewPage(dtos, params), nil
}

func (s *service) toDTO(product models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		SKU:         product.SKU,
		Price:       types.FormatAmount(product.Price, s.decimals),
		Type:        product.Type,
		StockStatus: product.StockStatus,
		ImageURL:    product.ImageURL,
	}
	for _, variation := range product.Variations {
		dto.Variations = append(dto.Variations, VariationDTO{
			ID:          variation.ID,
			Label:       variation.Label,
			SKU:         variation.SKU,
			Price:       types.FormatAmount(variation.Price, s.decimals),
			StockStatus: variation.StockStatus,
			ImageURL:    variation.ImageURL,
		})
	}
	return dto
}
