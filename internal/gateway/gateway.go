// Package gateway forwards public API requests to the owning service by path prefix.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/middleware"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

type upstream struct {
	Route
	proxy *httputil.ReverseProxy
}

// Gateway is a longest-prefix reverse proxy
type Gateway struct {
	upstreams []*upstream
	logger    logrus.FieldLogger
}

// New validates routes and builds one reverse proxy per upstream
func New(routes []Route, logger logrus.FieldLogger) (*Gateway, error) {
	g := &Gateway{logger: logger}
	seen := map[string]string{}

	for _, r := range routes {
		target, err := r.validate()
		if err != nil {
			return nil, err
		}
		r.Prefix = normalizePrefix(r.Prefix)
		if other, dup := seen[r.Prefix]; dup {
			return nil, fmt.Errorf("route %q: prefix %s already routed to %q", r.Name, r.Prefix, other)
		}
		seen[r.Prefix] = r.Name

		u := &upstream{Route: r, proxy: httputil.NewSingleHostReverseProxy(target)}
		u.proxy.ErrorHandler = g.errorHandler(u.Route)
		u.proxy.ModifyResponse = dropOwnedHeaders
		g.upstreams = append(g.upstreams, u)
	}

	// longest prefix first
	sort.SliceStable(g.upstreams, func(i, j int) bool {
		return len(g.upstreams[i].Prefix) > len(g.upstreams[j].Prefix)
	})

	return g, nil
}

// Match returns the route owning path
func (g *Gateway) Match(path string) (Route, bool) {
	if u := g.match(path); u != nil {
		return u.Route, true
	}
	return Route{}, false
}

func (g *Gateway) match(path string) *upstream {
	for _, u := range g.upstreams {
		if path == u.Prefix || strings.HasPrefix(path, u.Prefix+"/") {
			return u
		}
	}
	return nil
}

// Routes returns the table in match order
func (g *Gateway) Routes() []Route {
	routes := make([]Route, 0, len(g.upstreams))
	for _, u := range g.upstreams {
		routes = append(routes, u.Route)
	}
	return routes
}

// Handle proxies the request to its upstream or answers 404
func (g *Gateway) Handle(c *gin.Context) {
	u := g.match(c.Request.URL.Path)
	if u == nil {
		response.Error(c, http.StatusNotFound, "No route for path: "+c.Request.URL.Path)
		return
	}

	c.Set(middleware.RouteLabelKey, u.Prefix)
	if requestID := c.GetString("request_id"); requestID != "" {
		c.Request.Header.Set(middleware.RequestIDHeader, requestID)
	}

	u.proxy.ServeHTTP(c.Writer, c.Request)
}

// ownedHeaders are set by the gateway middleware and would otherwise be duplicated by the upstream copy
var ownedHeaders = []string{
	middleware.RequestIDHeader,
	"Server",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"X-Xss-Protection",
	"Referrer-Policy",
	"Content-Security-Policy",
	"Vary",
	"X-Ratelimit-Limit",
	"X-Ratelimit-Remaining",
	"X-Ratelimit-Reset",
}

func dropOwnedHeaders(res *http.Response) error {
	for _, key := range ownedHeaders {
		res.Header.Del(key)
	}
	for key := range res.Header {
		if strings.HasPrefix(key, "Access-Control-") {
			res.Header.Del(key)
		}
	}
	return nil
}

func (g *Gateway) errorHandler(route Route) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		requestID := r.Header.Get(middleware.RequestIDHeader)
		g.logger.WithError(err).WithFields(logrus.Fields{
			"service":    route.Name,
			"upstream":   route.Upstream,
			"path":       r.URL.Path,
			"request_id": requestID,
		}).Error("Upstream request failed")

		response.WriteError(w, http.StatusBadGateway, "Service unavailable: "+route.Name, requestID)
	}
}
