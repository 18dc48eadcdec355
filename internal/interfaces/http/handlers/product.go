// internal/interfaces/http/handlers/product.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/product"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// ProductService is the part of product.Service the catalogue endpoints use
type ProductService interface {
	Create(ctx context.Context, req *product.ProductRequest) (*product.Product, error)
	GetAll(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (*product.Product, error)
	Update(ctx context.Context, id string, req *product.ProductRequest) (*product.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, name string) ([]product.Product, error)
	ListByCategory(ctx context.Context, category string) ([]product.Product, error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Product created successfully", created)
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	found, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", found)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req product.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.productService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Product updated successfully", updated)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// SearchProducts handles GET /products/search?name=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	products, err := h.productService.Search(c.Request.Context(), name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// GetProductsByCategory handles GET /products/category/:category
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.productService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}
