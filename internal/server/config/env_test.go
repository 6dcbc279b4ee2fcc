package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenv(t *testing.T, contents string) {
	t.Helper()
	orig := dotenvFile
	t.Cleanup(func() { dotenvFile = orig })

	dotenvFile = filepath.Join(t.TempDir(), ".env")
	if contents != "" {
		require.NoError(t, os.WriteFile(dotenvFile, []byte(contents), 0o600))
	}
}

func Test_parseEnv(t *testing.T) {
	withDotenv(t, "")

	t.Setenv(envAddress, ":9999")
	t.Setenv(envDSN, "")
	t.Setenv(envSecret, "from-env")
	t.Setenv(envTokenTTL, "90s")
	t.Setenv(envBcryptCost, "11")
	t.Setenv(envCookieName, "auth")
	t.Setenv(envMode, "production")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "auth", cfg.CookieName)
	assert.True(t, cfg.IsProduction())
}

func Test_parseEnv_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	withDotenv(t, "AUTH_COOKIE_NAME=from-file\nAUTH_BCRYPT_COST=12\n")
	t.Setenv(envCookieName, "from-env")
	// t.Setenv registers cleanup; unset so the file value is visible.
	t.Setenv(envBcryptCost, "")
	require.NoError(t, os.Unsetenv(envBcryptCost))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-env", cfg.CookieName)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func Test_parseEnv_BadValuesPanic(t *testing.T) {
	withDotenv(t, "")

	t.Run("ttl", func(t *testing.T) {
		t.Setenv(envTokenTTL, "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
	t.Run("cost", func(t *testing.T) {
		t.Setenv(envBcryptCost, "ten")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
