// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository persists products
type Repository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	SearchByName(ctx context.Context, name string) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}

// GormRepository is the PostgreSQL product store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new product repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(ctx context.Context) ([]Product, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// SearchByName matches a case-insensitive substring of the product name
func (r *GormRepository) SearchByName(ctx context.Context, name string) ([]Product, error) {
	search := "%" + strings.ToLower(name) + "%"
	return r.find(r.db.WithContext(ctx).Where("LOWER(name) LIKE ?", search))
}

func (r *GormRepository) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ?", category))
}

func (r *GormRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormRepository) Save(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepository) find(query *gorm.DB) ([]Product, error) {
	var products []Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}
