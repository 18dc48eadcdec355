package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository stores serialized copies so callers cannot mutate stored carts
type memoryRepository struct {
	carts map[string][]byte
	saves int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{carts: make(map[string][]byte)}
}

func (m *memoryRepository) FindByUserID(_ context.Context, userID string) (*Cart, error) {
	data, ok := m.carts[userID]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (m *memoryRepository) Save(_ context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	m.carts[cart.UserID] = data
	m.saves++
	return nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger, _ := test.NewNullLogger()
	svc := NewService(repo, logger)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func item(productID, price string, quantity int) CartItem {
	return CartItem{
		ProductID:   productID,
		ProductName: "product " + productID,
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
	}
}

func TestRecalculateUsesExactDecimalArithmetic(t *testing.T) {
	cart := NewCart("u1", time.Now())
	cart.Items = []CartItem{item("p1", "0.10", 3), item("p2", "19.99", 2)}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cart.Recalculate(now)

	assert.Equal(t, "40.28", cart.TotalPrice.StringFixed(2))
	assert.Equal(t, now, cart.UpdatedAt)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestGetCartNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetCart(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Cart not found for user: missing", apperror.MessageOf(err))
}

func TestCreateCartIsEmpty(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.CreateCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())

	stored, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
}

func TestCreateCartKeepsExistingItems(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", item("p1", "4.25", 2))
	require.NoError(t, err)
	saves := repo.saves

	cart, err := svc.CreateCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "8.50", cart.TotalPrice.StringFixed(2))
	assert.Equal(t, saves, repo.saves)

	stored, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestAddItemCreatesCartAndMergesSameProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", item("p1", "10.00", 2))
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", item("p1", "10.00", 3))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "50.00", cart.TotalPrice.StringFixed(2))

	cart, err = svc.AddItem(ctx, "u1", item("p2", "2.50", 1))
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "52.50", cart.TotalPrice.StringFixed(2))
}

func TestAddItemRejectsInvalidLines(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		item CartItem
	}{
		{"zero quantity", item("p1", "1.00", 0)},
		{"negative price", item("p1", "-1.00", 1)},
		{"missing product", item("", "1.00", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "u1", tt.item)
			assert.True(t, apperror.IsInvalidArgument(err))
		})
	}
	assert.Zero(t, repo.saves)
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", item("p1", "4.00", 1))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", item("p2", "1.00", 1))
	require.NoError(t, err)

	cart, err := svc.UpdateItemQuantity(ctx, "u1", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, "13.00", cart.TotalPrice.StringFixed(2))

	cart, err = svc.UpdateItemQuantity(ctx, "u1", "p1", 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.Equal(t, "1.00", cart.TotalPrice.StringFixed(2))

	_, err = svc.UpdateItemQuantity(ctx, "u1", "p9", 1)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.UpdateItemQuantity(ctx, "nobody", "p1", 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRemoveMissingItemLeavesCartUnchanged(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", item("p1", "4.00", 2))
	require.NoError(t, err)
	before := string(repo.carts["u1"])

	_, err = svc.RemoveItem(ctx, "u1", "p2")

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Product not found in cart", apperror.MessageOf(err))
	assert.Equal(t, before, string(repo.carts["u1"]))
}

func TestRemoveItemRecalculates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", item("p1", "4.00", 2))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", item("p2", "1.25", 4))
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "5.00", cart.TotalPrice.StringFixed(2))
}

func TestClearCart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", item("p1", "4.00", 2))
	require.NoError(t, err)

	cart, err := svc.ClearCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())

	_, err = svc.ClearCart(ctx, "nobody")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:user:u1", cartKey("u1"))
}
