// Package app boots one or more services into a single HTTP process.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/infrastructure/database/postgres"
	redisconn "github.com/stephenombuya/Velixa/internal/infrastructure/database/redis"
	"github.com/stephenombuya/Velixa/internal/infrastructure/messaging/kafka"
	httpserver "github.com/stephenombuya/Velixa/internal/interfaces/http"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
	"github.com/stephenombuya/Velixa/internal/pkg/logger"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

// App holds the connections and server of one process
type App struct {
	name      string
	config    *config.Config
	logger    *logrus.Logger
	db        *postgres.Database
	redis     *redisconn.Client
	publisher events.Publisher
	closers   []func() error
	server    *httpserver.Server
}

// New connects the infrastructure the modules need and builds the HTTP server.
// name labels logs and metrics; a single module listens on its default port unless APP_PORT is set.
func New(name string, modules ...Module) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if len(modules) == 1 && os.Getenv("APP_PORT") == "" {
		cfg.Server.Port = defaultPorts[modules[0]]
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.New(cfg)
	a := &App{name: name, config: cfg, logger: log}

	if err := a.connect(modules); err != nil {
		a.Close()
		return nil, err
	}

	services := BuildServices(modules, Dependencies{
		Config:    cfg,
		Logger:    log,
		DB:        a.gormDB(),
		Redis:     a.redis.GetClient(),
		Publisher: a.publisher,
	})

	checks := map[string]httpserver.HealthChecker{"redis": a.redis}
	if a.db != nil {
		checks["database"] = a.db
	}

	a.server = httpserver.NewServer(cfg, log, httpserver.Options{
		Name:        name,
		Services:    services,
		Checks:      checks,
		RedisClient: a.redis.GetClient(),
	})

	return a, nil
}

func (a *App) connect(modules []Module) error {
	a.logger.WithFields(logrus.Fields{
		"service":     a.name,
		"version":     a.config.App.Version,
		"environment": a.config.App.Environment,
		"modules":     modules,
	}).Info("Starting service")

	redisClient, err := redisconn.NewConnection(a.config, a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = redisClient
	a.closers = append(a.closers, redisClient.Close)

	if needsDatabase(modules) {
		db, err := postgres.NewConnection(a.config, a.logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)

		if a.config.Database.AutoMigrate {
			migration := postgres.NewMigration(db.GetDB(), a.logger)
			if err := migration.RunAutoMigrations(Models(modules)...); err != nil {
				return fmt.Errorf("database migration failed: %w", err)
			}
			if err := migration.CreateIndexes(); err != nil {
				a.logger.WithError(err).Warn("Index creation failed")
			}
		}
	}

	if brokers := a.config.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewPublisher(brokers, a.config.Kafka.TopicPrefix)
		a.publisher = publisher
		a.closers = append(a.closers, publisher.Close)
		a.logger.WithField("brokers", brokers).Info("Publishing domain events to Kafka")
	} else {
		a.publisher = events.NopPublisher{}
		a.logger.Info("KAFKA_BROKERS not set, domain events are not published")
	}

	return nil
}

func (a *App) gormDB() *gorm.DB {
	if a.db == nil {
		return nil
	}
	return a.db.GetDB()
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully
func (a *App) Run() error {
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Shutting down gracefully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.server.Stop(ctx)
}

// Close releases connections in reverse order of acquisition
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.WithError(err).Warn("Failed to close resource")
		}
	}
	a.closers = nil
}
