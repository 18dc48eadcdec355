package payment

import (
	"context"
	"testing"

	"github.com/stephenombuya/Velixa/internal/infrastructure/database/postgres/postgrestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepositoryLatestPaymentForOrder(t *testing.T) {
	db, statements := postgrestest.Open(t)

	_, err := NewGormRepository(db).FindByOrderID(context.Background(), "o-1")
	require.NoError(t, err)

	stmt := statements.Last()
	assert.Contains(t, stmt, `FROM "payments" WHERE order_id = 'o-1' ORDER BY created_at DESC`)
	assert.Contains(t, stmt, "LIMIT 1")
}
