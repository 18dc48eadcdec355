// internal/domain/inventory/service.go
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
)

// Service handles inventory business logic
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService creates a new inventory service
func NewService(repo Repository, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InventoryRequest represents inventory creation and replacement data.
// Status is accepted for compatibility and always re-derived from Quantity.
type InventoryRequest struct {
	ProductID         string `json:"product_id"`
	Quantity          int    `json:"quantity"`
	WarehouseLocation string `json:"warehouse_location"`
	Status            Status `json:"status,omitempty"`
}

// Get returns the inventory record of productID
func (s *Service) Get(ctx context.Context, productID string) (*Inventory, error) {
	inventory, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Inventory not found for product: %s", productID)
		}
		return nil, apperror.Internal(err, "failed to load inventory")
	}
	return inventory, nil
}

// Create stores a new inventory record
func (s *Service) Create(ctx context.Context, req *InventoryRequest) (*Inventory, error) {
	if req.ProductID == "" {
		return nil, apperror.InvalidArgument("Product id is required")
	}
	return s.write(ctx, &Inventory{
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		WarehouseLocation: req.WarehouseLocation,
	})
}

// Replace overwrites the record of productID with req; the path id wins over the body
func (s *Service) Replace(ctx context.Context, productID string, req *InventoryRequest) (*Inventory, error) {
	return s.write(ctx, &Inventory{
		ProductID:         productID,
		Quantity:          req.Quantity,
		WarehouseLocation: req.WarehouseLocation,
	})
}

// UpdateQuantity sets the quantity of productID, creating the record when absent
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	inventory, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.Internal(err, "failed to load inventory")
		}
		inventory = &Inventory{ProductID: productID}
	}

	inventory.Quantity = quantity
	return s.write(ctx, inventory)
}

// Delete removes the record of productID
func (s *Service) Delete(ctx context.Context, productID string) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return apperror.NotFound("Inventory not found for product: %s", productID)
		}
		return apperror.Internal(err, "failed to delete inventory")
	}
	return nil
}

// IsAvailable reports whether at least quantity units of productID are in stock.
// Nothing is reserved.
func (s *Service) IsAvailable(ctx context.Context, productID string, quantity int) (bool, error) {
	inventory, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperror.Internal(err, "failed to load inventory")
	}
	return inventory.Quantity >= quantity, nil
}

// ListLowStock returns records with quantity strictly below threshold
func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]Inventory, error) {
	items, err := s.repo.FindByQuantityBelow(ctx, threshold)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list low stock inventory")
	}
	return items, nil
}

// ListByLocation returns records stored at location
func (s *Service) ListByLocation(ctx context.Context, location string) ([]Inventory, error) {
	items, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list inventory by location")
	}
	return items, nil
}

func (s *Service) write(ctx context.Context, inventory *Inventory) (*Inventory, error) {
	inventory.Refresh(s.now())
	if err := s.repo.Upsert(ctx, inventory); err != nil {
		return nil, apperror.Internal(err, "failed to save inventory")
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": inventory.ProductID,
		"quantity":   inventory.Quantity,
		"status":     inventory.Status,
	}).Info("Inventory updated")

	events.Emit(ctx, s.publisher, s.logger, events.TopicInventoryUpdated,
		events.New("INVENTORY_UPDATED", inventory.ProductID, inventory))

	return inventory, nil
}
