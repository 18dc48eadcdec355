package review

import (
	"context"
	"testing"

	"github.com/stephenombuya/Velixa/internal/infrastructure/database/postgres/postgrestest"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepositoryQueries(t *testing.T) {
	db, statements := postgrestest.Open(t)
	repo := NewGormRepository(db)

	_, err := repo.FindByProductID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Contains(t, statements.Last(), `FROM "reviews" WHERE product_id = 'p-1' ORDER BY created_at DESC`)

	assert.ErrorIs(t, repo.Delete(context.Background(), "r-404"), apperror.ErrRecordNotFound)
}
