package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/gateway"
	httpserver "github.com/stephenombuya/Velixa/internal/interfaces/http"
	"github.com/stephenombuya/Velixa/internal/pkg/logger"
)

// NewGateway builds the API gateway process from the configured route table
func NewGateway() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.New(cfg)

	routes, err := gateway.LoadRoutes(cfg)
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(routes, log)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway routes: %w", err)
	}

	for _, route := range gw.Routes() {
		log.WithFields(logrus.Fields{
			"service":  route.Name,
			"prefix":   route.Prefix,
			"upstream": route.Upstream,
		}).Info("Gateway route registered")
	}

	return &App{
		name:   "gateway",
		config: cfg,
		logger: log,
		server: httpserver.NewServer(cfg, log, httpserver.Options{
			Name:     "gateway",
			Fallback: gw.Handle,
		}),
	}, nil
}
