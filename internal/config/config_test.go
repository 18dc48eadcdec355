package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CART_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "db", Name: "velixa", User: "velixa"},
			Redis:    RedisConfig{Host: "redis"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Security: SecurityConfig{BcryptCost: 10},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "JWT_SECRET"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }, "REDIS_HOST"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"bcrypt cost", func(c *Config) { c.Security.BcryptCost = 2 }, "BCRYPT_COST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKafkaBrokersDisabled(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.KafkaBrokers())
}
