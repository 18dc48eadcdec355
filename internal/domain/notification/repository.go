// internal/domain/notification/repository.go
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository persists notifications
type Repository interface {
	FindAll(ctx context.Context) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	FindByUserID(ctx context.Context, userID string) ([]Notification, error)
	Save(ctx context.Context, notification *Notification) error
}

// GormRepository is the PostgreSQL notification store
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new notification repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(ctx context.Context) ([]Notification, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var notification Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve notification: %w", err)
	}
	return &notification, nil
}

func (r *GormRepository) FindByUserID(ctx context.Context, userID string) ([]Notification, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormRepository) Save(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Save(notification).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *GormRepository) find(query *gorm.DB) ([]Notification, error) {
	var notifications []Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	return notifications, nil
}
