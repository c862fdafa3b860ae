package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/stock_level_scanner/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultSymbols, cfg.Scan.Symbols)
	assert.Equal(t, "D", cfg.Scan.Resolution)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "scanner.db", cfg.Database.SQLitePath)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
auth:
  cron_token: from-yaml
finnhub:
  token: yaml-token
scan:
  symbols: [AAPL, MSFT]
  resolution: W
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("CRON_TOKEN", "from-env")
	t.Setenv("FINNHUB_AUTH_TOKEN", "env-token")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	// Env wins over YAML
	assert.Equal(t, "from-env", cfg.Auth.CronToken)
	assert.Equal(t, "env-token", cfg.Finnhub.Token)

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Scan.Symbols)
	assert.Equal(t, "W", cfg.Scan.Resolution)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{}
	require.Error(t, cfg.Validate())

	cfg.Finnhub.Token = "tok"
	require.NoError(t, cfg.Validate())
}
