package app

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/domain/order"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModules(t *testing.T) {
	modules, err := ParseModules("")
	require.NoError(t, err)
	assert.Equal(t, AllModules, modules)

	modules, err = ParseModules(" Order, payment,order ")
	require.NoError(t, err)
	assert.Equal(t, []Module{ModuleOrder, ModulePayment}, modules)

	_, err = ParseModules("order,wishlist")
	assert.ErrorContains(t, err, "wishlist")
}

func TestModels(t *testing.T) {
	models := Models([]Module{ModuleCart, ModuleOrder})

	require.Len(t, models, 2)
	assert.IsType(t, &order.Order{}, models[0])
	assert.IsType(t, &order.StatusHistory{}, models[1])
	assert.Len(t, Models(AllModules), 9)
}

func TestNeedsDatabase(t *testing.T) {
	assert.False(t, needsDatabase([]Module{ModuleCart}))
	assert.True(t, needsDatabase([]Module{ModuleCart, ModuleReview}))
}

func TestBuildServicesOnlyWiresSelectedModules(t *testing.T) {
	logger, _ := test.NewNullLogger()
	deps := Dependencies{
		Config:    &config.Config{Security: config.SecurityConfig{BcryptCost: 4}},
		Logger:    logger,
		Publisher: events.NopPublisher{},
	}

	services := BuildServices([]Module{ModuleOrder, ModuleCart}, deps)
	assert.NotNil(t, services.Orders)
	assert.NotNil(t, services.Carts)
	assert.Nil(t, services.Users)
	assert.Nil(t, services.Payments)

	services = BuildServices(AllModules, deps)
	assert.NotNil(t, services.Users)
	assert.NotNil(t, services.Products)
	assert.NotNil(t, services.Payments)
	assert.NotNil(t, services.Inventory)
	assert.NotNil(t, services.Reviews)
	assert.NotNil(t, services.Notifications)
}

func TestDefaultPortsCoverEveryModule(t *testing.T) {
	for _, m := range AllModules {
		assert.NotEmpty(t, defaultPorts[m], m)
	}
}
