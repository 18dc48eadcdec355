// internal/domain/payment/repository.go
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository persists payments
type Repository interface {
	FindAll(ctx context.Context) ([]Payment, error)
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]Payment, error)
	FindByStatus(ctx context.Context, status Status) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// GormRepository is the PostgreSQL payment store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new payment repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(ctx context.Context) ([]Payment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*Payment, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByOrderID returns the most recent payment for orderID
func (r *GormRepository) FindByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	return r.first(r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at DESC"))
}

func (r *GormRepository) FindByUserID(ctx context.Context, userID string) ([]Payment, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormRepository) FindByStatus(ctx context.Context, status Status) ([]Payment, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", status))
}

func (r *GormRepository) Save(ctx context.Context, payment *Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (r *GormRepository) first(query *gorm.DB) (*Payment, error) {
	var payment Payment
	if err := query.First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve payment: %w", err)
	}
	return &payment, nil
}

func (r *GormRepository) find(query *gorm.DB) ([]Payment, error) {
	var payments []Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	return payments, nil
}
