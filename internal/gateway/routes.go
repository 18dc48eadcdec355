package gateway

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/stephenombuya/Velixa/internal/config"
	"gopkg.in/yaml.v3"
)

// Route forwards every path under Prefix to the service Name at Upstream
type Route struct {
	Name     string `yaml:"name"`
	Prefix   string `yaml:"prefix"`
	Upstream string `yaml:"upstream"`
}

// RouteFile is the layout of GATEWAY_ROUTES_FILE
type RouteFile struct {
	Routes []Route `yaml:"routes"`
}

// DefaultRoutes builds the route table from the per-service URLs in config
func DefaultRoutes(cfg *config.Config) []Route {
	gw := cfg.Gateway
	return []Route{
		{Name: "user-service", Prefix: "/api/users", Upstream: gw.UserServiceURL},
		{Name: "product-service", Prefix: "/api/products", Upstream: gw.ProductServiceURL},
		{Name: "cart-service", Prefix: "/api/carts", Upstream: gw.CartServiceURL},
		{Name: "order-service", Prefix: "/api/orders", Upstream: gw.OrderServiceURL},
		{Name: "payment-service", Prefix: "/api/payments", Upstream: gw.PaymentServiceURL},
		{Name: "inventory-service", Prefix: "/api/inventory", Upstream: gw.InventoryServiceURL},
		{Name: "review-service", Prefix: "/api/reviews", Upstream: gw.ReviewServiceURL},
		{Name: "notification-service", Prefix: "/api/notifications", Upstream: gw.NotificationServiceURL},
	}
}

// LoadRoutes reads the route file when one is configured, otherwise returns DefaultRoutes
func LoadRoutes(cfg *config.Config) ([]Route, error) {
	if cfg.Gateway.RoutesFile == "" {
		return DefaultRoutes(cfg), nil
	}

	data, err := os.ReadFile(cfg.Gateway.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file %s: %w", cfg.Gateway.RoutesFile, err)
	}
	return ParseRoutes(data)
}

// ParseRoutes parses and validates a YAML route file
func ParseRoutes(data []byte) ([]Route, error) {
	var file RouteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routes YAML: %w", err)
	}
	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("routes file defines no routes")
	}
	return file.Routes, nil
}

// normalizePrefix ensures a leading slash and drops any trailing one
func normalizePrefix(prefix string) string {
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	return prefix
}

func (r Route) validate() (*url.URL, error) {
	if strings.Trim(r.Prefix, "/ ") == "" {
		return nil, fmt.Errorf("route %q: prefix is required", r.Name)
	}
	target, err := url.Parse(r.Upstream)
	if err != nil {
		return nil, fmt.Errorf("route %q: invalid upstream %q: %w", r.Name, r.Upstream, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("route %q: upstream %q must be an absolute URL", r.Name, r.Upstream)
	}
	return target, nil
}
