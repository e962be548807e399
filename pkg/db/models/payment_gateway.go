package models

import "time"

// PaymentGateway is a selectable payment method. The POS only records the
// chosen gateway's id and title on the order; it never executes payments.
type PaymentGateway struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Enabled   bool      `gorm:"column:enabled;not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
