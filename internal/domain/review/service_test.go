package review

import (
	"context"
	"testing"

	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	reviews []Review
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func (m *memoryRepository) FindByProductID(_ context.Context, productID string) ([]Review, error) {
	var out []Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) Create(_ context.Context, review *Review) error {
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return apperror.ErrRecordNotFound
}

func TestAddKeepsRatingAsGiven(t *testing.T) {
	svc := NewService(&memoryRepository{})

	review, err := svc.Add(context.Background(), &CreateReviewRequest{ProductID: "p1", UserID: "u1", Comment: "great", Rating: 11})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 11, review.Rating)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestAddRequiresProductAndUser(t *testing.T) {
	svc := NewService(&memoryRepository{})
	_, err := svc.Add(context.Background(), &CreateReviewRequest{ProductID: "p1"})
	assert.True(t, apperror.IsInvalidArgument(err))
}

func TestGetByProductAndDelete(t *testing.T) {
	svc := NewService(&memoryRepository{})
	ctx := context.Background()
	first, err := svc.Add(ctx, &CreateReviewRequest{ProductID: "p1", UserID: "u1", Rating: 5})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &CreateReviewRequest{ProductID: "p1", UserID: "u2", Rating: 3})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &CreateReviewRequest{ProductID: "p2", UserID: "u1", Rating: 4})
	require.NoError(t, err)

	reviews, err := svc.GetByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.GetByID(ctx, first.ID)
	require.Error(t, err)
	assert.Equal(t, "Review not found with id: "+first.ID, apperror.MessageOf(err))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, first.ID)))
}
