package gateways

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/pkg/db/models"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/types"
)

// Repository reads the payment gateway catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a gateway repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListEnabled returns enabled gateways in display order.
func (r *Repository) ListEnabled(ctx context.Context) ([]models.PaymentGateway, error) {
	var rows []models.PaymentGateway
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRepository is the read surface the service needs.
type ListRepository interface {
	ListEnabled(ctx context.Context) ([]models.PaymentGateway, error)
}

// Service lists the payment methods an operator can pick from.
type Service interface {
	ListEnabled(ctx context.Context) ([]types.PaymentMethod, error)
	Resolve(ctx context.Context, id string) (*types.PaymentMethod, error)
}

type service struct {
	repo ListRepository
}

// NewService builds the gateway service.
func NewService(repo ListRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gateway repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListEnabled(ctx context.Context) ([]types.PaymentMethod, error) {
	rows, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing payment gateways")
	}
	methods := make([]types.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, types.PaymentMethod{ID: row.ID, Title: row.Title})
	}
	return methods, nil
}

// Resolve maps a gateway id to its selectable method, refusing unknown or
// disabled gateways.
func (s *service) Resolve(ctx context.Context, id string) (*types.PaymentMethod, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}
	methods, err := s.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	for _, method := range methods {
		if method.ID == id {
			return &method, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment gateway not found or disabled")
}
