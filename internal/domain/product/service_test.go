package product

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	products map[string]Product
}

func (m *memoryRepository) FindAll(context.Context) ([]Product, error) {
	return m.filter(func(Product) bool { return true }), nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	return &p, nil
}

func (m *memoryRepository) SearchByName(_ context.Context, name string) ([]Product, error) {
	needle := strings.ToLower(name)
	return m.filter(func(p Product) bool { return strings.Contains(strings.ToLower(p.Name), needle) }), nil
}

func (m *memoryRepository) FindByCategory(_ context.Context, category string) ([]Product, error) {
	return m.filter(func(p Product) bool { return p.Category == category }), nil
}

func (m *memoryRepository) Create(_ context.Context, product *Product) error {
	m.products[product.ID] = *product
	return nil
}

func (m *memoryRepository) Save(_ context.Context, product *Product) error {
	m.products[product.ID] = *product
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memoryRepository) filter(keep func(Product) bool) []Product {
	var out []Product
	for _, p := range m.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func newTestService() *Service {
	logger, _ := test.NewNullLogger()
	return NewService(&memoryRepository{products: make(map[string]Product)}, logger)
}

func create(t *testing.T, svc *Service, name, category, price string) *Product {
	t.Helper()
	p, err := svc.Create(context.Background(), &ProductRequest{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Quantity: 5,
	})
	require.NoError(t, err)
	return p
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService()
	p := create(t, svc, "Green Tea", "drinks", "3.49")

	found, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", found.Name)
	assert.Equal(t, "3.49", found.Price.StringFixed(2))
	assert.True(t, found.IsInStock())

	_, err = svc.Create(context.Background(), &ProductRequest{Name: "  "})
	assert.True(t, apperror.IsInvalidArgument(err))
}

func TestUpdateReplacesFields(t *testing.T) {
	svc := newTestService()
	p := create(t, svc, "Green Tea", "drinks", "3.49")

	updated, err := svc.Update(context.Background(), p.ID, &ProductRequest{
		Name:     "Matcha",
		Category: "tea",
		Price:    decimal.RequireFromString("12.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Matcha", updated.Name)
	assert.Equal(t, "tea", updated.Category)
	assert.Zero(t, updated.Quantity)
	assert.False(t, updated.IsInStock())

	_, err = svc.Update(context.Background(), "missing", &ProductRequest{Name: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestSearchAndCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	create(t, svc, "Green Tea", "drinks", "3.49")
	create(t, svc, "Black TEA", "drinks", "2.99")
	create(t, svc, "Teapot", "kitchen", "25.00")
	create(t, svc, "Mug", "kitchen", "8.00")

	found, err := svc.Search(ctx, "tea")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	kitchen, err := svc.ListByCategory(ctx, "kitchen")
	require.NoError(t, err)
	require.Len(t, kitchen, 2)
	assert.Equal(t, "Mug", kitchen[0].Name)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	p := create(t, svc, "Green Tea", "drinks", "3.49")

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	err := svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, "Product not found with id: "+p.ID, apperror.MessageOf(err))
}
