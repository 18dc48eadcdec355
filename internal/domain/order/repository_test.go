package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenombuya/Velixa/internal/infrastructure/database/postgres/postgrestest"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepositoryQueries(t *testing.T) {
	db, statements := postgrestest.Open(t)
	repo := NewGormRepository(db)
	ctx := context.Background()

	_, err := repo.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Contains(t, statements.Last(), `SELECT * FROM "orders" WHERE user_id = 'u-1'`)
	assert.Contains(t, statements.Last(), "ORDER BY created_at DESC")

	_, err = repo.FindByStatus(ctx, StatusShipped)
	require.NoError(t, err)
	assert.Contains(t, statements.Last(), "WHERE status = 'SHIPPED'")

	statements.Reset()
	_, err = repo.FindByID(ctx, "o-1")
	require.NoError(t, err)
	selects := statements.Matching("SELECT")
	require.NotEmpty(t, selects)
	assert.Contains(t, selects[0], `FROM "orders" WHERE id = 'o-1'`)
	assert.Contains(t, selects[0], "LIMIT 1")
}

func TestGormRepositorySaveWritesOrderAndHistory(t *testing.T) {
	db, statements := postgrestest.Open(t)
	repo := NewGormRepository(db)

	order := &Order{ID: "o-1", UserID: "u-1", Status: StatusPaid, TotalAmount: decimal.RequireFromString("12.50")}
	history := &StatusHistory{OrderID: "o-1", Status: StatusPaid, Comment: "Payment pay-1 attached"}
	require.NoError(t, repo.Save(context.Background(), order, history))

	updates := statements.Matching("UPDATE")
	require.Len(t, updates, 1)
	assert.Contains(t, updates[0], `UPDATE "orders" SET`)
	assert.Contains(t, updates[0], `"status"='PAID'`)
	assert.Contains(t, updates[0], `"id" = 'o-1'`)

	inserts := statements.Matching("INSERT")
	require.Len(t, inserts, 1)
	assert.Contains(t, inserts[0], `INSERT INTO "order_status_history"`)
	assert.Contains(t, inserts[0], "'Payment pay-1 attached'")

	statements.Reset()
	require.NoError(t, repo.Save(context.Background(), order, nil))
	assert.Empty(t, statements.Matching("INSERT"))
}

func TestGormRepositoryDeleteWithoutRowsIsNotFound(t *testing.T) {
	db, statements := postgrestest.Open(t)
	repo := NewGormRepository(db)

	err := repo.Delete(context.Background(), "o-404")

	assert.ErrorIs(t, err, apperror.ErrRecordNotFound)
	assert.Contains(t, statements.Last(), `DELETE FROM "orders" WHERE id = 'o-404'`)
}

func TestGormRepositoryAgainstPostgres(t *testing.T) {
	db := postgrestest.Connect(t, &Order{}, &StatusHistory{})
	repo := NewGormRepository(db)
	ctx := context.Background()
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	order := &Order{ID: "o-1", UserID: "u-1", Status: StatusPending, CreatedAt: start, UpdatedAt: start}
	require.NoError(t, repo.Create(ctx, order, &StatusHistory{OrderID: "o-1", Status: StatusPending, CreatedAt: start}))

	// rows are written out of order to check the preload ordering
	order.Status = StatusShipped
	require.NoError(t, repo.Save(ctx, order, &StatusHistory{OrderID: "o-1", Status: StatusShipped, CreatedAt: start.Add(2 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, order, &StatusHistory{OrderID: "o-1", Status: StatusPaid, CreatedAt: start.Add(time.Hour)}))

	found, err := repo.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, found.Status)
	require.Len(t, found.StatusHistory, 3)
	assert.Equal(t, []Status{StatusPending, StatusPaid, StatusShipped}, []Status{
		found.StatusHistory[0].Status,
		found.StatusHistory[1].Status,
		found.StatusHistory[2].Status,
	})

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), apperror.ErrRecordNotFound)
	assert.NoError(t, repo.Delete(ctx, "o-1"))
}
