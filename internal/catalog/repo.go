package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/pkg/db/models"
	"github.com/pos2025/pos-backend/pkg/pagination"
)

// Repository reads the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search matches products by name or SKU, variations preloaded. The query
// is case-insensitive substring matching; ranking is out of scope.
func (r *Repository) Search(ctx context.Context, query string, params pagination.Params) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Variations").
		Order("name ASC, id ASC").
		Offset(params.Offset()).
		Limit(params.LimitWithBuffer())

	if term := strings.TrimSpace(query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}

	var rows []models.Product
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindProduct loads one product by id.
func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariation loads one variation scoped to its parent product.
func (r *Repository) FindVariation(ctx context.Context, productID, variationID int64) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variationID, productID).
		First(&variation).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}
