package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem captures the snapshot of one item within an order.
// VariationID 0 means the product was sold without a variation.
type OrderLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	VariationID int64           `gorm:"column:variation_id;not null;default:0"`
	Name        string          `gorm:"column:name;not null"`
	Label       string          `gorm:"column:label"`
	SKU         string          `gorm:"column:sku"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
