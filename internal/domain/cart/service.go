// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Service handles cart business logic
type Service struct {
	repo   Repository
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new cart service
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// Item converts the request into a cart line
func (r AddItemRequest) Item() CartItem {
	return CartItem{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

// UpdateQuantityRequest represents update cart item request
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart retrieves the cart of userID
func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Cart not found for user: %s", userID)
		}
		return nil, apperror.Internal(err, "failed to load cart")
	}
	return cart, nil
}

// CreateCart stores a new empty cart for userID.
// An existing cart is returned unchanged.
func (s *Service) CreateCart(ctx context.Context, userID string) (*Cart, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrRecordNotFound) {
		return nil, apperror.Internal(err, "failed to load cart")
	}

	cart := NewCart(userID, s.now())
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, apperror.Internal(err, "failed to create cart")
	}
	return cart, nil
}

// AddItem adds item to the cart, merging quantities for a product already present.
// The cart is created when the user has none.
func (s *Service) AddItem(ctx context.Context, userID string, item CartItem) (*Cart, error) {
	if item.ProductID == "" {
		return nil, apperror.InvalidArgument("Product id is required")
	}
	if item.Quantity < 1 {
		return nil, apperror.InvalidArgument("Quantity must be at least 1")
	}
	if item.Price.IsNegative() {
		return nil, apperror.InvalidArgument("Price must not be negative")
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.indexOf(item.ProductID); i >= 0 {
		cart.Items[i].Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}

	return s.save(ctx, cart)
}

// UpdateItemQuantity sets the quantity of a line item; zero or less removes it
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.indexOf(productID)
	if i < 0 {
		return nil, apperror.NotFound("Product not found in cart")
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	return s.save(ctx, cart)
}

// RemoveItem removes the line item for productID
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.indexOf(productID)
	if i < 0 {
		return nil, apperror.NotFound("Product not found in cart")
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	return s.save(ctx, cart)
}

// ClearCart empties the cart of userID
func (s *Service) ClearCart(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []CartItem{}
	return s.save(ctx, cart)
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	s.logger.WithField("user_id", userID).Debug("Creating cart on first item")
	return NewCart(userID, s.now()), nil
}

func (s *Service) save(ctx context.Context, cart *Cart) (*Cart, error) {
	cart.Recalculate(s.now())
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, apperror.Internal(err, "failed to save cart")
	}
	return cart, nil
}
