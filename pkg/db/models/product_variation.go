package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pos2025/pos-backend/pkg/enums"
)

// ProductVariation is one purchasable variant of a variable product.
type ProductVariation struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64             `gorm:"column:product_id;not null;index"`
	Label       string            `gorm:"column:label;not null"`
	SKU         string            `gorm:"column:sku"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric;not null"`
	StockStatus enums.StockStatus `gorm:"column:stock_status;not null;default:'instock'"`
	StockQty    *int              `gorm:"column:stock_qty"`
	ImageURL    string            `gorm:"column:image_url"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
