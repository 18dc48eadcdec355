// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists orders and their status history
type Repository interface {
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]Order, error)
	FindByStatus(ctx context.Context, status Status) ([]Order, error)
	Create(ctx context.Context, order *Order, history *StatusHistory) error
	Save(ctx context.Context, order *Order, history *StatusHistory) error
	Delete(ctx context.Context, id string) error
}

// GormRepository is the PostgreSQL order store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new order repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(ctx context.Context) ([]Order, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

func (r *GormRepository) FindByUserID(ctx context.Context, userID string) ([]Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormRepository) FindByStatus(ctx context.Context, status Status) ([]Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", status))
}

// Create inserts the order and its first history row in one transaction
func (r *GormRepository) Create(ctx context.Context, order *Order, history *StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
		}
		return nil
	})
}

// Save updates the order row and appends history when given
func (r *GormRepository) Save(ctx context.Context, order *Order, history *StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
		}
		return nil
	})
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Order{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepository) find(query *gorm.DB) ([]Order, error) {
	var orders []Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}
