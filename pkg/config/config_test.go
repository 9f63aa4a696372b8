package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.HTTP.Port)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "inventory-events", cfg.Kafka.InventoryTopic)
	assert.Equal(t, "@every 15m", cfg.Recommendation.ScanSchedule)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ProductTTL)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("PRODUCT_SERVICE_URL", "http://products:8081/")
	t.Setenv("HTTP_PORT", "no-es-numero")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 40, cfg.DB.MaxConns)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "http://products:8081", cfg.ProductService.BaseURL)
	assert.Equal(t, 8083, cfg.HTTP.Port, "un valor inválido cae al valor por defecto")
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "inv", Password: "p@ss:word", DBName: "inventory", SSLMode: "disable"}
	assert.Equal(t, "postgres://inv:p%40ss%3Aword@db:5432/inventory?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
