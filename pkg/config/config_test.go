package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "friender", cfg.App.Name)
	assert.Equal(t, 80, cfg.App.Port)
	assert.Equal(t, "friender-redis:6379", cfg.Redis.Addr())
	assert.Equal(t, 0, cfg.Auth.TokenTTL)
	assert.Equal(t, 4096, cfg.Geo.CacheSize)
	assert.Equal(t, "http://friender-match", cfg.Gateway.MatchURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, ":9090", cfg.App.Addr())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestMySQLDSN(t *testing.T) {
	c := MySQLConfig{User: "root", Password: "pw", Host: "db", Database: "friender"}
	assert.Equal(t, "root:pw@tcp(db:3306)/friender?parseTime=true", c.MySQLDSN())

	c.DSN = "explicit"
	assert.Equal(t, "explicit", c.MySQLDSN())
}
