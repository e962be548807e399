package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pos2025/pos-backend/pkg/enums"
)

// Product is a sellable catalog entry. Variable products carry their
// purchasable variations as child rows.
type Product struct {
	ID          int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string             `gorm:"column:name;not null"`
	SKU         string             `gorm:"column:sku;uniqueIndex"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric;not null"`
	Type        enums.ProductType  `gorm:"column:type;not null;default:'simple'"`
	StockStatus enums.StockStatus  `gorm:"column:stock_status;not null;default:'instock'"`
	ImageURL    string             `gorm:"column:image_url"`
	Variations  []ProductVariation `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
