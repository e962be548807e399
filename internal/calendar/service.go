package calendar

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pos2025/pos-backend/pkg/db/models"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/types"
)

const (
	customIDPrefix = "custom_"
	orderIDPrefix  = "order_"
	dateLayout     = "2006-01-02"
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Event is the merged calendar entry served to clients. Order-sourced
// entries are projections; only custom ones can be deleted here.
type Event struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	Color       string            `json:"color"`
	AllDay      bool              `json:"allDay"`
	Source      enums.EventSource `json:"source"`
	Description *string           `json:"description,omitempty"`
	OrderID     *uuid.UUID        `json:"orderId,omitempty"`
}

// CreateEventInput is the payload for a custom event.
type CreateEventInput struct {
	Title       string
	Date        string
	Description *string
	Color       string
	AllDay      *bool
}

// EventRepository is the persistence surface the service needs.
type EventRepository interface {
	ListCustomInRange(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
	InsertCustom(ctx context.Context, event *models.CalendarEvent) error
	DeleteCustom(ctx context.Context, id string) (int64, error)
	ListScheduledOrdersInRange(ctx context.Context, start, end time.Time) ([]models.Order, error)
}

// Service merges order-sourced and custom calendar events.
type Service interface {
	List(ctx context.Context, start, end time.Time) ([]Event, error)
	CreateCustom(ctx context.Context, in CreateEventInput) (*Event, error)
	DeleteCustom(ctx context.Context, id string) (string, error)
}

type service struct {
	repo         EventRepository
	logg         *logger.Logger
	defaultColor string
}

// NewService builds the calendar service.
func NewService(repo EventRepository, logg *logger.Logger, defaultColor string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	if defaultColor == "" {
		defaultColor = types.DefaultEventColor
	}
	return &service{repo: repo, logg: logg, defaultColor: defaultColor}, nil
}

// List returns the union of custom rows and subscription-order projections
// with start <= date < end, ordered by date.
func (s *service) List(ctx context.Context, start, end time.Time) ([]Event, error) {
	if !end.After(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range end must be after start")
	}

	custom, err := s.repo.ListCustomInRange(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing custom events")
	}
	orders, err := s.repo.ListScheduledOrdersInRange(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing scheduled orders")
	}

	events := make([]Event, 0, len(custom)+len(orders))
	for _, row := range custom {
		events = append(events, Event{
			ID:          row.ID,
			Title:       row.Title,
			Date:        row.Date.Format(dateLayout),
			Color:       row.Color,
			AllDay:      row.AllDay,
			Source:      enums.EventSourceCustom,
			Description: row.Description,
		})
	}
	for _, order := range orders {
		events = append(events, s.projectOrder(order))
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// CreateCustom inserts one event row with a generated custom_ id.
func (s *service) CreateCustom(ctx context.Context, in CreateEventInput) (*Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event title is required")
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date must be YYYY-MM-DD")
	}

	color := in.Color
	if color == "" {
		color = s.defaultColor
	}
	if !colorRe.MatchString(color) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event color must be #rrggbb")
	}

	allDay := true
	if in.AllDay != nil {
		allDay = *in.AllDay
	}

	row := &models.CalendarEvent{
		ID:          customIDPrefix + uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Date:        date,
		Color:       color,
		AllDay:      allDay,
		Description: in.Description,
	}
	if err := s.repo.InsertCustom(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting custom event")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "event_id", row.ID), "calendar event created")
	}

	return &Event{
		ID:          row.ID,
		Title:       row.Title,
		Date:        row.Date.Format(dateLayout),
		Color:       row.Color,
		AllDay:      row.AllDay,
		Source:      enums.EventSourceCustom,
		Description: row.Description,
	}, nil
}

// DeleteCustom removes one custom event. Order-sourced ids are refused;
// anything else that does not look like a custom id is invalid.
func (s *service) DeleteCustom(ctx context.Context, id string) (string, error) {
	if strings.HasPrefix(id, orderIDPrefix) {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "order-sourced events cannot be deleted")
	}
	if !strings.HasPrefix(id, customIDPrefix) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "event id must start with custom_")
	}

	affected, err := s.repo.DeleteCustom(ctx, id)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting custom event")
	}
	if affected == 0 {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "calendar event not found")
	}
	return id, nil
}

func (s *service) projectOrder(order models.Order) Event {
	title := ""
	if order.ScheduleTitle != nil {
		title = *order.ScheduleTitle
	}
	date := ""
	if order.ScheduleDate != nil {
		date = order.ScheduleDate.Format(dateLayout)
	}
	color := s.defaultColor
	if order.ScheduleColor != nil && *order.ScheduleColor != "" {
		color = *order.ScheduleColor
	}
	orderID := order.ID
	return Event{
		ID:      orderIDPrefix + order.ID.String(),
		Title:   title,
		Date:    date,
		Color:   color,
		AllDay:  true,
		Source:  enums.EventSourceOrder,
		OrderID: &orderID,
	}
}
