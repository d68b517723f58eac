package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "opian-crm", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, 30*time.Second, cfg.Presence.HeartbeatInterval)
	assert.Equal(t, 90*time.Second, cfg.Presence.OfflineAfter)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS fallback")
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)
}

func TestValidatePoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
	assert.Error(t, cfg.validate())
}

func TestValidatePresence(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	cfg.Presence.HeartbeatInterval = 2 * time.Minute
	cfg.Presence.OfflineAfter = time.Minute
	assert.Error(t, cfg.validate())
}

func TestValidateProduction(t *testing.T) {
	newProd := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "a-secret-that-is-at-least-32-chars!!"
		cfg.Database.Password = "pw"
		cfg.Database.SSLMode = "require"
		cfg.Cookie.Secure = true
		return cfg
	}

	require.NoError(t, newProd().validate())

	cfg := newProd()
	cfg.JWT.Secret = "short"
	assert.Error(t, cfg.validate())

	cfg = newProd()
	cfg.Database.SSLMode = "disable"
	assert.Error(t, cfg.validate())

	cfg = newProd()
	cfg.Cookie.Secure = false
	assert.Error(t, cfg.validate())

	cfg = newProd()
	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate())
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "crm",
		Password: "p@ss/word",
		DBName:   "opian_crm",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be URL-escaped")
}
