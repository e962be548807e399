package models

import "time"

// Customer is a known buyer. ID 0 is never persisted; it denotes a guest
// on incoming checkout requests.
type Customer struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DisplayName string    `gorm:"column:display_name;not null"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
