package models

import "time"

// CalendarEvent is a manually created calendar entry. Events derived
// from subscription orders are not stored here; they are projected
// from the orders table at read time.
type CalendarEvent struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Date        time.Time `gorm:"column:date;not null;index"`
	Color       string    `gorm:"column:color;not null"`
	AllDay      bool      `gorm:"column:all_day;not null;default:true"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
