// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/inventory"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// InventoryService is the part of inventory.Service the stock endpoints use
type InventoryService interface {
	Get(ctx context.Context, productID string) (*inventory.Inventory, error)
	Create(ctx context.Context, req *inventory.InventoryRequest) (*inventory.Inventory, error)
	Replace(ctx context.Context, productID string, req *inventory.InventoryRequest) (*inventory.Inventory, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*inventory.Inventory, error)
	Delete(ctx context.Context, productID string) error
	IsAvailable(ctx context.Context, productID string, quantity int) (bool, error)
	ListLowStock(ctx context.Context, threshold int) ([]inventory.Inventory, error)
	ListByLocation(ctx context.Context, location string) ([]inventory.Inventory, error)
}

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventoryService InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateInventory handles POST /inventory
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req inventory.InventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.inventoryService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Inventory created successfully", created)
}

// GetInventory handles GET /inventory/:productId
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	found, err := h.inventoryService.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory retrieved successfully", found)
}

// ReplaceInventory handles PUT /inventory/:productId
func (h *InventoryHandler) ReplaceInventory(c *gin.Context) {
	var req inventory.InventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.inventoryService.Replace(c.Request.Context(), c.Param("productId"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory updated successfully", updated)
}

// UpdateQuantity handles PUT /inventory/:productId/:quantity
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	quantity, ok := intParam(c, "quantity")
	if !ok {
		return
	}

	updated, err := h.inventoryService.UpdateQuantity(c.Request.Context(), c.Param("productId"), quantity)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory quantity updated successfully", updated)
}

// DeleteInventory handles DELETE /inventory/:productId
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory deleted successfully", nil)
}

// CheckAvailability handles GET /inventory/:productId/available/:quantity
func (h *InventoryHandler) CheckAvailability(c *gin.Context) {
	quantity, ok := intParam(c, "quantity")
	if !ok {
		return
	}

	available, err := h.inventoryService.IsAvailable(c.Request.Context(), c.Param("productId"), quantity)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory availability checked", available)
}

// GetLowStock handles GET /inventory/low-stock?threshold=
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	threshold := inventory.LowStockLevel
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid threshold: "+raw)
			return
		}
		threshold = parsed
	}

	items, err := h.inventoryService.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Low stock inventory retrieved successfully", items)
}

// GetByLocation handles GET /inventory/location/:location
func (h *InventoryHandler) GetByLocation(c *gin.Context) {
	items, err := h.inventoryService.ListByLocation(c.Request.Context(), c.Param("location"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Inventory retrieved successfully", items)
}
