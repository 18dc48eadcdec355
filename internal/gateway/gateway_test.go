package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/middleware"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(g *Gateway) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.SecurityHeaders())
	r.NoRoute(g.Handle)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	// a cancelable context keeps ReverseProxy off the CloseNotifier path
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseRoutes(t *testing.T) {
	routes, err := ParseRoutes([]byte(`
routes:
  - name: order-service
    prefix: /api/orders
    upstream: http://orders:8084
  - name: cart-service
    prefix: /api/carts/
    upstream: http://carts:8083
`))
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, Route{Name: "order-service", Prefix: "/api/orders", Upstream: "http://orders:8084"}, routes[0])

	_, err = ParseRoutes([]byte(`routes: []`))
	assert.Error(t, err)

	_, err = ParseRoutes([]byte(`routes: [`))
	assert.Error(t, err)
}

func TestLoadRoutes(t *testing.T) {
	cfg := &config.Config{Gateway: config.GatewayConfig{OrderServiceURL: "http://localhost:8084"}}

	routes, err := LoadRoutes(cfg)
	require.NoError(t, err)
	assert.Len(t, routes, 8)

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes:\n  - name: review-service\n    prefix: /api/reviews\n    upstream: http://reviews:8087\n"), 0o644))
	cfg.Gateway.RoutesFile = path

	routes, err = LoadRoutes(cfg)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "review-service", routes[0].Name)

	cfg.Gateway.RoutesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadRoutes(cfg)
	assert.Error(t, err)
}

func TestNewRejectsInvalidRoutes(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := New([]Route{{Name: "orders", Prefix: "/api/orders", Upstream: "orders:8084"}}, logger)
	assert.ErrorContains(t, err, "absolute URL")

	_, err = New([]Route{{Name: "orders", Prefix: "/", Upstream: "http://orders"}}, logger)
	assert.ErrorContains(t, err, "prefix is required")

	_, err = New([]Route{
		{Name: "a", Prefix: "/api/orders", Upstream: "http://a"},
		{Name: "b", Prefix: "/api/orders/", Upstream: "http://b"},
	}, logger)
	assert.ErrorContains(t, err, "already routed")
}

func TestMatchLongestPrefix(t *testing.T) {
	logger, _ := test.NewNullLogger()
	g, err := New([]Route{
		{Name: "catch-all", Prefix: "/api", Upstream: "http://legacy"},
		{Name: "order-service", Prefix: "/api/orders", Upstream: "http://orders"},
	}, logger)
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/api/orders", "order-service"},
		{"/api/orders/o-1/invoice", "order-service"},
		{"/api/ordersx", "catch-all"},
		{"/api/products/p-1", "catch-all"},
	}
	for _, tt := range tests {
		route, ok := g.Match(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, route.Name, tt.path)
	}

	_, ok := g.Match("/health/live")
	assert.False(t, ok)
	assert.Equal(t, "/api/orders", g.Routes()[0].Prefix)
}

func TestHandleProxiesToUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(middleware.RequestIDHeader, r.Header.Get(middleware.RequestIDHeader))
		w.Header().Set("Server", "order-service")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"path": r.URL.Path, "query": r.URL.RawQuery})
	}))
	defer upstream.Close()

	logger, _ := test.NewNullLogger()
	g, err := New([]Route{{Name: "order-service", Prefix: "/api/orders", Upstream: upstream.URL}}, logger)
	require.NoError(t, err)

	w := get(newRouter(g), "/api/orders/o-1/status?status=PAID")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"path":"/api/orders/o-1/status","query":"status=PAID"}`, w.Body.String())
	assert.Equal(t, []string{"req-42"}, w.Header().Values(middleware.RequestIDHeader))
	assert.Equal(t, []string{"Velixa"}, w.Header().Values("Server"))
}

func TestHandleErrors(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	logger, hook := test.NewNullLogger()
	g, err := New([]Route{{Name: "payment-service", Prefix: "/api/payments", Upstream: downURL}}, logger)
	require.NoError(t, err)
	r := newRouter(g)

	w := get(r, "/api/payments/p-1")
	require.Equal(t, http.StatusBadGateway, w.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Service unavailable: payment-service", body.Message)
	assert.Equal(t, "req-42", body.RequestID)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "payment-service", hook.LastEntry().Data["service"])

	w = get(r, "/api/wishlists")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FAILED", body.Status)
	assert.Equal(t, "No route for path: /api/wishlists", body.Message)
}

func TestHandleBehindListener(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer upstream.Close()

	logger, _ := test.NewNullLogger()
	g, err := New([]Route{{Name: "cart-service", Prefix: "/api/carts", Upstream: upstream.URL}}, logger)
	require.NoError(t, err)

	front := httptest.NewServer(newRouter(g))
	defer front.Close()

	res, err := http.Get(front.URL + "/api/carts/u-1")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "/api/carts/u-1", string(body))
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))
}
