package config

import (
	"path/filepath"
	"testing"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		v := viper.New()
		SetDefaults(v)

		cfg, err := FromViper(v)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "https://www.strava.com/api/v3", cfg.API.BaseURL)
		assert.Equal(t, 200, cfg.API.PerPage)
		assert.Equal(t, "high", cfg.Throttle.Priority)
		assert.Equal(t, "info", cfg.Logging.Level)

		assert.Equal(t, "libsql", cfg.Store.Driver)
		expectedStorePath := filepath.Join(gfconfig.GetAppDataDir("paceline"), "paceline.db")
		assert.Equal(t, expectedStorePath, cfg.Store.Path)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	})

	t.Run("DurationStrings", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("server.read_timeout", "45s")
		v.Set("server.idle_timeout", "2m")

		cfg, err := FromViper(v)
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout)
	})

	t.Run("OverridesWinOverDefaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("api.per_page", 30)
		v.Set("throttle.priority", "low")
		v.Set("oauth.client_id", "12345")
		v.Set("oauth.token_expires", int64(1756000000))

		cfg, err := FromViper(v)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.API.PerPage)
		assert.Equal(t, "low", cfg.Throttle.Priority)
		assert.Equal(t, "12345", cfg.OAuth.ClientID)
		assert.Equal(t, int64(1756000000), cfg.OAuth.TokenExpires)
	})

	t.Run("EmptyStoreFallsBackToDefaultPath", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		v := viper.New()
		v.Set("store.path", "")
		v.Set("store.url", "")

		cfg, err := FromViper(v)
		require.NoError(t, err)
		assert.Equal(t, DefaultStorePath(), cfg.Store.Path)
	})
}
