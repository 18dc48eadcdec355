// internal/domain/review/repository.go
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository persists reviews
type Repository interface {
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByProductID(ctx context.Context, productID string) ([]Review, error)
	Create(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id string) error
}

// GormRepository is the PostgreSQL review store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new review repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	var review Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve review: %w", err)
	}
	return &review, nil
}

func (r *GormRepository) FindByProductID(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

func (r *GormRepository) Create(ctx context.Context, review *Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrRecordNotFound
	}
	return nil
}
