package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos2025/pos-backend/pkg/enums"
)

// Order is a completed POS sale. Subscription sales additionally carry the
// schedule metadata projected onto the calendar.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Number             int64             `gorm:"column:number;not null;uniqueIndex"`
	CustomerID         int64             `gorm:"column:customer_id;not null;default:0;index"`
	Status             enums.OrderStatus `gorm:"column:status;not null"`
	SaleType           enums.SaleType    `gorm:"column:sale_type;not null;default:'direct';index"`
	PaymentMethodID    string            `gorm:"column:payment_method_id;not null"`
	PaymentMethodTitle string            `gorm:"column:payment_method_title;not null"`
	CustomerNote       string            `gorm:"column:customer_note"`
	Total              decimal.Decimal   `gorm:"column:total;type:numeric;not null"`
	ScheduleTitle      *string           `gorm:"column:schedule_title"`
	ScheduleDate       *time.Time        `gorm:"column:schedule_date;index"`
	ScheduleColor      *string           `gorm:"column:schedule_color"`
	Items              []OrderLineItem   `gorm:"foreignKey:OrderID"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
