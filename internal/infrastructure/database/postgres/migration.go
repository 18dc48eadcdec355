// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the given models in order
func (m *Migration) RunAutoMigrations(models ...interface{}) error {
	m.log.WithField("models", len(models)).Info("Running database auto-migrations")

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// indexes lists secondary indexes per table beyond those declared on the models
var indexes = map[string][]string{
	"users": {
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",
	},
	"products": {
		"CREATE INDEX IF NOT EXISTS idx_products_lower_name ON products(LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_products_category_name ON products(category, name)",
	},
	"orders": {
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
	},
	"order_status_history": {
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order_created ON order_status_history(order_id, created_at)",
	},
	"payments": {
		"CREATE INDEX IF NOT EXISTS idx_payments_order_created ON payments(order_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_payments_status_created ON payments(status, created_at DESC)",
	},
	"reviews": {
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",
	},
	"notifications": {
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC)",
	},
}

// CreateIndexes creates additional indexes for the tables present in the database
func (m *Migration) CreateIndexes() error {
	successCount := 0
	failCount := 0

	for table, statements := range indexes {
		if !m.db.Migrator().HasTable(table) {
			continue
		}
		for _, indexSQL := range statements {
			if err := m.db.Exec(indexSQL).Error; err != nil {
				m.log.WithError(err).WithField("table", table).Warn("Failed to create index")
				failCount++
			} else {
				successCount++
			}
		}
	}

	m.log.WithFields(logrus.Fields{
		"created": successCount,
		"failed":  failCount,
	}).Info("Database indexes created")

	if failCount > 0 {
		return fmt.Errorf("%d indexes could not be created", failCount)
	}
	return nil
}
