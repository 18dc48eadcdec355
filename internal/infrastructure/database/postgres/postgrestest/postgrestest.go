// Package postgrestest opens a dry-run PostgreSQL gorm.DB for repository tests.
// Statements are built with the real PostgreSQL dialector but never executed,
// so no statement reports affected rows and queries return no records.
package postgrestest

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errDryRun = errors.New("postgrestest: statements are not executed")

// Statements collects the SQL gorm builds, with arguments inlined
type Statements struct {
	mu  sync.Mutex
	sql []string
}

// All returns every statement in build order
func (s *Statements) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sql...)
}

// Last returns the most recent statement or an empty string
func (s *Statements) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sql) == 0 {
		return ""
	}
	return s.sql[len(s.sql)-1]
}

// Matching returns the statements starting with prefix, e.g. "INSERT"
func (s *Statements) Matching(prefix string) []string {
	var out []string
	for _, stmt := range s.All() {
		if strings.HasPrefix(stmt, prefix) {
			out = append(out, stmt)
		}
	}
	return out
}

// Reset forgets the recorded statements
func (s *Statements) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sql = nil
}

// LogMode, Info, Warn and Error satisfy logger.Interface; only Trace records
func (s *Statements) LogMode(logger.LogLevel) logger.Interface { return s }

func (s *Statements) Info(context.Context, string, ...interface{}) {}

func (s *Statements) Warn(context.Context, string, ...interface{}) {}

func (s *Statements) Error(context.Context, string, ...interface{}) {}

// Trace records the statement gorm just built
func (s *Statements) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sql = append(s.sql, stmt)
}

// Open returns a dry-run gorm.DB and the recorder its statements go to
func Open(t testing.TB) (*gorm.DB, *Statements) {
	t.Helper()

	statements := &Statements{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool{}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               statements,
	})
	require.NoError(t, err)
	return db, statements
}

// DSNEnv names the variable pointing integration tests at a disposable database
const DSNEnv = "VELIXA_TEST_DATABASE_DSN"

// Connect opens the database named by DSNEnv and recreates the tables of models.
// The test is skipped when DSNEnv is unset.
func Connect(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", DSNEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(models...))
	require.NoError(t, db.AutoMigrate(models...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// pool satisfies gorm.ConnPool; in dry-run mode only BeginTx is ever reached
type pool struct{}

func (pool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errDryRun
}

func (pool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errDryRun
}

func (pool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errDryRun
}

func (pool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (pool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &tx{}, nil
}

// tx must be a pointer: gorm checks committers with reflect IsNil
type tx struct {
	pool
}

func (*tx) Commit() error { return nil }
func (*tx) Rollback() error { return nil }
