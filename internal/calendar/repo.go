package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/pkg/db/models"
	"github.com/pos2025/pos-backend/pkg/enums"
)

// Repository persists custom calendar events and projects order-sourced
// ones out of the orders table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a calendar repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCustomInRange returns custom events with start <= date < end.
func (r *Repository) ListCustomInRange(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	var rows []models.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertCustom appends a single event row. No surrounding collection is
// rewritten, so concurrent creates cannot lose each other.
func (r *Repository) InsertCustom(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// DeleteCustom removes one event row by id and reports how many rows went.
func (r *Repository) DeleteCustom(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CalendarEvent{})
	return res.RowsAffected, res.Error
}

// ListScheduledOrdersInRange returns subscription orders whose schedule date
// falls within start <= date < end.
func (r *Repository) ListScheduledOrdersInRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("sale_type = ?", enums.SaleTypeSubscription).
		Where("schedule_date >= ? AND schedule_date < ?", start, end).
		Order("schedule_date ASC, number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
