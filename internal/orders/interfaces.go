package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/pkg/db/models"
)

// OrderRepository exposes persistence operations for orders.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogFinder interface {
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	FindVariation(ctx context.Context, productID, variationID int64) (*models.ProductVariation, error)
}
