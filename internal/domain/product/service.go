// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Service handles product business logic
type Service struct {
	repo   Repository
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new product service
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ProductRequest represents product creation and update data
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Create adds a product to the catalogue
func (s *Service) Create(ctx context.Context, req *ProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.InvalidArgument("Product name is required")
	}

	now := s.now()
	product := &Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperror.Internal(err, "failed to create product")
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")

	return product, nil
}

// GetAll returns the whole catalogue
func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list products")
	}
	return products, nil
}

// GetByID retrieves a product by id
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load product")
	}
	return product, nil
}

// Update replaces every editable field of a product
func (s *Service) Update(ctx context.Context, id string, req *ProductRequest) (*Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.InvalidArgument("Product name is required")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, apperror.Internal(err, "failed to update product")
	}
	return product, nil
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return apperror.NotFound("Product not found with id: %s", id)
		}
		return apperror.Internal(err, "failed to delete product")
	}
	return nil
}

// Search returns products whose name contains name, ignoring case
func (s *Service) Search(ctx context.Context, name string) ([]Product, error) {
	products, err := s.repo.SearchByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, apperror.Internal(err, "failed to search products")
	}
	return products, nil
}

// ListByCategory returns the products filed under category
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list products by category")
	}
	return products, nil
}
