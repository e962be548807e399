package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pos2025/pos-backend/pkg/db/models"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/pagination"
	"github.com/pos2025/pos-backend/pkg/types"
)

// Repository reads the customer directory.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search matches customers by display name or email, case-insensitive.
func (r *Repository) Search(ctx context.Context, query string, params pagination.Params) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).
		Order("display_name ASC, id ASC").
		Offset(params.Offset()).
		Limit(params.LimitWithBuffer())

	if term := strings.TrimSpace(query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var rows []models.Customer
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one customer.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchRepository is the read surface the service needs.
type SearchRepository interface {
	Search(ctx context.Context, query string, params pagination.Params) ([]models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// Service serves customer search and lookup for the register surface.
type Service interface {
	Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[types.CustomerRef], error)
	GetRef(ctx context.Context, id int64) (*types.CustomerRef, error)
}

type service struct {
	repo SearchRepository
}

// NewService builds the customer service.
func NewService(repo SearchRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[types.CustomerRef], error) {
	rows, err := s.repo.Search(ctx, query, params)
	if err != nil {
		return pagination.Page[types.CustomerRef]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "searching customers")
	}

	refs := make([]types.CustomerRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, toRef(row))
	}
	return pagination.NewPage(refs, params), nil
}

// GetRef resolves a customer id into the reference attached to sessions.
func (s *service) GetRef(ctx context.Context, id int64) (*types.CustomerRef, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	ref := toRef(*row)
	return &ref, nil
}

func toRef(customer models.Customer) types.CustomerRef {
	name := customer.DisplayName
	if name == "" {
		name = strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	}
	return types.CustomerRef{
		ID:          customer.ID,
		DisplayName: name,
		Email:       customer.Email,
	}
}
