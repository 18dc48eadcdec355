package app

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/domain/cart"
	"github.com/stephenombuya/Velixa/internal/domain/inventory"
	"github.com/stephenombuya/Velixa/internal/domain/notification"
	"github.com/stephenombuya/Velixa/internal/domain/order"
	"github.com/stephenombuya/Velixa/internal/domain/payment"
	"github.com/stephenombuya/Velixa/internal/domain/product"
	"github.com/stephenombuya/Velixa/internal/domain/review"
	"github.com/stephenombuya/Velixa/internal/domain/user"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/routes"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
	"github.com/stephenombuya/Velixa/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Module is one deployable service of the platform
type Module string

const (
	ModuleUser         Module = "user"
	ModuleProduct      Module = "product"
	ModuleCart         Module = "cart"
	ModuleOrder        Module = "order"
	ModulePayment      Module = "payment"
	ModuleInventory    Module = "inventory"
	ModuleReview       Module = "review"
	ModuleNotification Module = "notification"
)

// AllModules lists every service in start-up order
var AllModules = []Module{
	ModuleUser,
	ModuleProduct,
	ModuleCart,
	ModuleOrder,
	ModulePayment,
	ModuleInventory,
	ModuleReview,
	ModuleNotification,
}

// defaultPorts match the gateway's default upstream URLs
var defaultPorts = map[Module]string{
	ModuleUser:         "8081",
	ModuleProduct:      "8082",
	ModuleCart:         "8083",
	ModuleOrder:        "8084",
	ModulePayment:      "8085",
	ModuleInventory:    "8086",
	ModuleReview:       "8087",
	ModuleNotification: "8088",
}

// ParseModules parses a comma-separated module list; an empty list selects every module
func ParseModules(list string) ([]Module, error) {
	if strings.TrimSpace(list) == "" {
		return AllModules, nil
	}

	known := make(map[Module]bool, len(AllModules))
	for _, m := range AllModules {
		known[m] = true
	}

	var modules []Module
	seen := map[Module]bool{}
	for _, part := range strings.Split(list, ",") {
		m := Module(strings.ToLower(strings.TrimSpace(part)))
		if m == "" || seen[m] {
			continue
		}
		if !known[m] {
			return nil, fmt.Errorf("unknown module %q", part)
		}
		seen[m] = true
		modules = append(modules, m)
	}
	return modules, nil
}

// needsDatabase reports whether any module keeps its documents in PostgreSQL
func needsDatabase(modules []Module) bool {
	for _, m := range modules {
		if m != ModuleCart {
			return true
		}
	}
	return false
}

// Models returns the gorm models of modules in migration order
func Models(modules []Module) []interface{} {
	var models []interface{}
	for _, m := range modules {
		switch m {
		case ModuleUser:
			models = append(models, &user.User{})
		case ModuleProduct:
			models = append(models, &product.Product{})
		case ModuleOrder:
			models = append(models, &order.Order{}, &order.StatusHistory{})
		case ModulePayment:
			models = append(models, &payment.Payment{})
		case ModuleInventory:
			models = append(models, &inventory.Inventory{})
		case ModuleReview:
			models = append(models, &review.Review{})
		case ModuleNotification:
			models = append(models, &notification.Notification{})
		}
	}
	return models
}

// Dependencies are the shared clients services are built from
type Dependencies struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher events.Publisher
}

// BuildServices wires the repositories and services of modules
func BuildServices(modules []Module, deps Dependencies) routes.Services {
	var services routes.Services

	for _, m := range modules {
		switch m {
		case ModuleUser:
			services.Users = user.NewService(user.NewGormRepository(deps.DB), deps.Config, deps.Logger)
		case ModuleProduct:
			services.Products = product.NewService(product.NewGormRepository(deps.DB), deps.Logger)
		case ModuleCart:
			services.Carts = cart.NewService(cart.NewRedisRepository(deps.Redis, deps.Config.Cart.TTL), deps.Logger)
		case ModuleOrder:
			services.Orders = order.NewService(order.NewGormRepository(deps.DB), pdf.NewService(deps.Config), deps.Publisher, deps.Logger)
		case ModulePayment:
			services.Payments = payment.NewService(payment.NewGormRepository(deps.DB), payment.NewSimulatedGateway(deps.Logger), deps.Publisher, deps.Logger)
		case ModuleInventory:
			services.Inventory = inventory.NewService(inventory.NewGormRepository(deps.DB), deps.Publisher, deps.Logger)
		case ModuleReview:
			services.Reviews = review.NewService(review.NewGormRepository(deps.DB))
		case ModuleNotification:
			services.Notifications = notification.NewService(notification.NewGormRepository(deps.DB), notification.NewLogSender(deps.Logger), deps.Publisher, deps.Logger)
		}
	}

	return services
}
