package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/internal/checkout"
	"github.com/pos2025/pos-backend/pkg/db/models"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/types"
)

const scheduleDateLayout = "2006-01-02"

// Service is the order creation boundary the checkout orchestrator calls.
type Service interface {
	Create(ctx context.Context, req checkout.Request) (*checkout.Result, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo         OrderRepository
	catalog      catalogFinder
	tx           txRunner
	logg         *logger.Logger
	defaultColor string
}

// NewService builds the order service backed by the provided stack.
func NewService(repo OrderRepository, catalog catalogFinder, tx txRunner, logg *logger.Logger, defaultColor string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if defaultColor == "" {
		defaultColor = types.DefaultEventColor
	}
	return &service{
		repo:         repo,
		catalog:      catalog,
		tx:           tx,
		logg:         logg,
		defaultColor: defaultColor,
	}, nil
}

// Create persists the order and every resolvable line item in one
// transaction, or nothing at all. Lines whose product no longer resolves
// are skipped and reported; a request with no resolvable lines fails
// without persisting anything.
func (s *service) Create(ctx context.Context, req checkout.Request) (*checkout.Result, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	items, skipped, err := s.resolveLineItems(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid line items").
			WithDetails(map[string]any{"skippedItems": skipped})
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	order := &models.Order{
		ID:                 uuid.New(),
		CustomerID:         req.CustomerID,
		Status:             req.SaleType.OrderStatus(),
		SaleType:           req.SaleType,
		PaymentMethodID:    req.PaymentMethodID,
		PaymentMethodTitle: req.PaymentMethodTitle,
		CustomerNote:       req.CustomerNote,
		Total:              total,
		Items:              items,
	}

	if req.SaleType.RequiresSchedule() {
		if err := s.applySchedule(order, req.Schedule); err != nil {
			return nil, err
		}
	}

	if err := s.persistWithNumber(ctx, order); err != nil {
		return nil, err
	}

	if s.logg != nil {
		lctx := s.logg.WithOrderID(ctx, order.ID.String())
		lctx = s.logg.WithSaleType(lctx, order.SaleType.String())
		s.logg.Info(lctx, "order created")
	}

	return &checkout.Result{
		OrderID:      order.ID,
		Number:       order.Number,
		Status:       order.Status,
		Total:        total,
		SkippedItems: skipped,
	}, nil
}

// numberAllocAttempts bounds the retries when two checkouts race for the
// same order number and one loses on the unique index.
const numberAllocAttempts = 3

func (s *service) persistWithNumber(ctx context.Context, order *models.Order) error {
	var lastErr error
	for attempt := 0; attempt < numberAllocAttempts; attempt++ {
		lastErr = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			number, err := repo.NextNumber(ctx)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocating order number")
			}
			order.Number = number
			return repo.Create(ctx, order)
		})
		if lastErr == nil {
			return nil
		}
		if !pkgerrors.IsUniqueViolation(lastErr) {
			if pkgerrors.As(lastErr) != nil {
				return lastErr
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "persisting order")
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "persisting order")
}

// GetByID loads a persisted order with its line items.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

func (s *service) validateRequest(req checkout.Request) error {
	if !req.SaleType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown sale type")
	}
	if req.PaymentMethodID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if len(req.LineItems) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order has no line items")
	}
	if req.SaleType.RequiresCustomer() && req.CustomerID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s sales require a customer", req.SaleType))
	}
	return nil
}

func (s *service) resolveLineItems(ctx context.Context, req checkout.Request) ([]models.OrderLineItem, []checkout.SkippedItem, error) {
	var (
		items   []models.OrderLineItem
		skipped []checkout.SkippedItem
	)

	for _, line := range req.LineItems {
		if line.Quantity < 1 {
			skipped = append(skipped, checkout.SkippedItem{
				ProductID:   line.ProductID,
				VariationID: line.VariationID,
				Reason:      "quantity below one",
			})
			continue
		}

		product, err := s.catalog.FindProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				skipped = append(skipped, checkout.SkippedItem{
					ProductID:   line.ProductID,
					VariationID: line.VariationID,
					Reason:      "product not found",
				})
				continue
			}
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving product")
		}

		item := models.OrderLineItem{
			ID:          uuid.New(),
			ProductID:   product.ID,
			VariationID: line.VariationID,
			Name:        product.Name,
			SKU:         product.SKU,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		}

		if line.VariationID != 0 {
			variation, err := s.catalog.FindVariation(ctx, line.ProductID, line.VariationID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					skipped = append(skipped, checkout.SkippedItem{
						ProductID:   line.ProductID,
						VariationID: line.VariationID,
						Reason:      "variation not found",
					})
					continue
				}
				return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving variation")
			}
			item.Label = variation.Label
			if variation.SKU != "" {
				item.SKU = variation.SKU
			}
		}

		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	return items, skipped, nil
}

func (s *service) applySchedule(order *models.Order, schedule *types.Schedule) error {
	if schedule == nil || schedule.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule title is required")
	}
	date, err := time.Parse(scheduleDateLayout, schedule.StartDate)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule start date must be YYYY-MM-DD")
	}

	color := schedule.Color
	if color == "" {
		color = s.defaultColor
	}

	title := schedule.Title
	order.ScheduleTitle = &title
	order.ScheduleDate = &date
	order.ScheduleColor = &color
	return nil
}
