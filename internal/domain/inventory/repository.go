// internal/domain/inventory/repository.go
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists inventory records keyed by product id
type Repository interface {
	FindByProductID(ctx context.Context, productID string) (*Inventory, error)
	Upsert(ctx context.Context, inventory *Inventory) error
	Delete(ctx context.Context, productID string) error
	FindByQuantityBelow(ctx context.Context, threshold int) ([]Inventory, error)
	FindByLocation(ctx context.Context, location string) ([]Inventory, error)
}

// GormRepository is the PostgreSQL inventory store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new inventory repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByProductID(ctx context.Context, productID string) (*Inventory, error) {
	var inventory Inventory
	if err := r.db.WithContext(ctx).First(&inventory, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve inventory: %w", err)
	}
	return &inventory, nil
}

// Upsert inserts the record or overwrites every column of the existing one
func (r *GormRepository) Upsert(ctx context.Context, inventory *Inventory) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(inventory).Error
	if err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).Delete(&Inventory{}, "product_id = ?", productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepository) FindByQuantityBelow(ctx context.Context, threshold int) ([]Inventory, error) {
	var items []Inventory
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("quantity ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock inventory: %w", err)
	}
	return items, nil
}

func (r *GormRepository) FindByLocation(ctx context.Context, location string) ([]Inventory, error) {
	var items []Inventory
	err := r.db.WithContext(ctx).
		Where("warehouse_location = ?", location).
		Order("product_id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory by location: %w", err)
	}
	return items, nil
}
