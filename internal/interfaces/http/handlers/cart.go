// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/cart"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// CartService is the part of cart.Service the cart endpoints use
type CartService interface {
	GetCart(ctx context.Context, userID string) (*cart.Cart, error)
	CreateCart(ctx context.Context, userID string) (*cart.Cart, error)
	AddItem(ctx context.Context, userID string, item cart.CartItem) (*cart.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, userID string) (*cart.Cart, error)
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /carts/:userId
func (h *CartHandler) GetCart(c *gin.Context) {
	found, err := h.cartService.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", found)
}

// CreateCart handles POST /carts/:userId
func (h *CartHandler) CreateCart(c *gin.Context) {
	created, err := h.cartService.CreateCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Cart created successfully", created)
}

// AddItem handles POST /carts/:userId/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.cartService.AddItem(c.Request.Context(), c.Param("userId"), req.Item())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Item added to cart successfully", updated)
}

// UpdateItem handles PUT /carts/:userId/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cart.UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.cartService.UpdateItemQuantity(c.Request.Context(), c.Param("userId"), c.Param("productId"), req.Quantity)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Cart item updated successfully", updated)
}

// RemoveItem handles DELETE /carts/:userId/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	updated, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Item removed from cart successfully", updated)
}

// ClearCart handles DELETE /carts/:userId
func (h *CartHandler) ClearCart(c *gin.Context) {
	cleared, err := h.cartService.ClearCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Cart cleared successfully", cleared)
}
