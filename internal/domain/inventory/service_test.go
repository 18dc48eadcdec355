package inventory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	items map[string]Inventory
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{items: make(map[string]Inventory)}
}

func (m *memoryRepository) FindByProductID(_ context.Context, productID string) (*Inventory, error) {
	item, ok := m.items[productID]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	return &item, nil
}

func (m *memoryRepository) Upsert(_ context.Context, inventory *Inventory) error {
	m.items[inventory.ProductID] = *inventory
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, productID string) error {
	if _, ok := m.items[productID]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.items, productID)
	return nil
}

func (m *memoryRepository) FindByQuantityBelow(_ context.Context, threshold int) ([]Inventory, error) {
	return m.filter(func(i Inventory) bool { return i.Quantity < threshold }), nil
}

func (m *memoryRepository) FindByLocation(_ context.Context, location string) ([]Inventory, error) {
	return m.filter(func(i Inventory) bool { return i.WarehouseLocation == location }), nil
}

func (m *memoryRepository) filter(keep func(Inventory) bool) []Inventory {
	var out []Inventory
	for _, item := range m.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func newTestService() (*Service, *events.Recorder) {
	logger, _ := test.NewNullLogger()
	recorder := events.NewRecorder()
	svc := NewService(newMemoryRepository(), recorder, logger)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc, recorder
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		quantity int
		want     Status
	}{
		{-3, StatusOutOfStock},
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{9, StatusLowStock},
		{10, StatusInStock},
		{500, StatusInStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveStatus(tt.quantity), "quantity %d", tt.quantity)
	}
}

func TestCreateIgnoresClientStatus(t *testing.T) {
	svc, recorder := newTestService()

	inventory, err := svc.Create(context.Background(), &InventoryRequest{
		ProductID:         "p1",
		Quantity:          0,
		WarehouseLocation: "A1",
		Status:            StatusInStock,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusOutOfStock, inventory.Status)
	assert.False(t, inventory.LastUpdated.IsZero())
	assert.Len(t, recorder.Topic(events.TopicInventoryUpdated), 1)
}

func TestCreateRequiresProductID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), &InventoryRequest{Quantity: 5})
	assert.True(t, apperror.IsInvalidArgument(err))
}

func TestUpdateQuantityUpsertsAndRederives(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	inventory, err := svc.UpdateQuantity(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, inventory.Status)

	inventory, err = svc.UpdateQuantity(ctx, "p1", 25)
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, inventory.Status)

	stored, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 25, stored.Quantity)
}

func TestReplaceUsesPathProductID(t *testing.T) {
	svc, _ := newTestService()

	inventory, err := svc.Replace(context.Background(), "p1", &InventoryRequest{ProductID: "other", Quantity: 3, WarehouseLocation: "B2"})

	require.NoError(t, err)
	assert.Equal(t, "p1", inventory.ProductID)
	assert.Equal(t, StatusLowStock, inventory.Status)
}

func TestGetAndDeleteNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, "missing")))

	_, err = svc.UpdateQuantity(ctx, "p1", 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "p1"))
	_, err = svc.Get(ctx, "p1")
	assert.True(t, apperror.IsNotFound(err))
}

func TestIsAvailable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.UpdateQuantity(ctx, "p1", 4)
	require.NoError(t, err)

	ok, err := svc.IsAvailable(ctx, "p1", 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, "p1", 5)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAvailable(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Quantity)
}

func TestListLowStockAndLocation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, req := range []InventoryRequest{
		{ProductID: "p1", Quantity: 2, WarehouseLocation: "A"},
		{ProductID: "p2", Quantity: 10, WarehouseLocation: "A"},
		{ProductID: "p3", Quantity: 0, WarehouseLocation: "B"},
	} {
		req := req
		_, err := svc.Create(ctx, &req)
		require.NoError(t, err)
	}

	low, err := svc.ListLowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "p1", low[0].ProductID)
	assert.Equal(t, "p3", low[1].ProductID)

	inA, err := svc.ListByLocation(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, inA, 2)
}
