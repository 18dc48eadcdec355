// internal/interfaces/http/handlers/review.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/review"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// ReviewService is the part of review.Service the review endpoints use
type ReviewService interface {
	Add(ctx context.Context, req *review.CreateReviewRequest) (*review.Review, error)
	GetByID(ctx context.Context, id string) (*review.Review, error)
	GetByProduct(ctx context.Context, productID string) ([]review.Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req review.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.reviewService.Add(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Review created successfully", created)
}

// GetReview handles GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	found, err := h.reviewService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Review retrieved successfully", found)
}

// GetProductReviews handles GET /reviews/product/:productId
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Reviews retrieved successfully", reviews)
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Review deleted successfully", nil)
}
