// internal/domain/review/service.go
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Service handles review business logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new review service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateReviewRequest represents review data. Rating is stored as given.
type CreateReviewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
}

// Add stores a new review
func (s *Service) Add(ctx context.Context, req *CreateReviewRequest) (*Review, error) {
	if req.ProductID == "" || req.UserID == "" {
		return nil, apperror.InvalidArgument("Product id and user id are required")
	}

	review := &Review{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Comment:   req.Comment,
		Rating:    req.Rating,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, apperror.Internal(err, "failed to create review")
	}
	return review, nil
}

// GetByID retrieves a review by id
func (s *Service) GetByID(ctx context.Context, id string) (*Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Review not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load review")
	}
	return review, nil
}

// GetByProduct returns the reviews of productID, newest first
func (s *Service) GetByProduct(ctx context.Context, productID string) ([]Review, error) {
	reviews, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list reviews")
	}
	return reviews, nil
}

// Delete removes a review
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return apperror.NotFound("Review not found with id: %s", id)
		}
		return apperror.Internal(err, "failed to delete review")
	}
	return nil
}
