package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "DB_DRIVER", "ACCESS_TTL", "REFRESH_TTL", "KAFKA_BROKERS", "COOKIE_SECURE", "ES_INDEX"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.CSRFEnabled)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/shop.db")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("ACCESS_TTL", "2m")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, kafka2:9092 ,")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/shop.db", cfg.SQLitePath)
	assert.Equal(t, []byte("access"), cfg.JWTAccessSecret)
	assert.Equal(t, 2*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "-5s")

	require.Equal(t, 7, EnvIntDefault("X_INT", 7))
	require.True(t, EnvBoolDefault("X_BOOL", true))
	require.Equal(t, time.Second, EnvDurationDefault("X_DUR", time.Second))
}

func TestCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "a", want: []string{"a"}},
		{name: "spaces and blanks", in: " a , ,b", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}
