package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var credVars = []string{
	"X_API_KEY", "TWITTER_API_KEY",
	"X_API_SECRET", "TWITTER_API_SECRET",
	"X_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN",
	"X_ACCESS_SECRET", "TWITTER_ACCESS_TOKEN_SECRET",
}

// clearCreds blanks every credential variable for the test and restores them after.
func clearCreds(t *testing.T) {
	t.Helper()
	for _, k := range credVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestResolveEnvPrecedence(t *testing.T) {
	clearCreds(t)
	t.Setenv("X_API_KEY", "x-key")
	t.Setenv("TWITTER_API_KEY", "legacy-key")
	t.Setenv("TWITTER_API_SECRET", "legacy-secret")
	t.Setenv("X_ACCESS_TOKEN", "x-token")

	cfg := Default()
	cfg.Credentials.AccessSecret = "from-file"
	cfg.ResolveEnv()

	assert.Equal(t, "x-key", cfg.Credentials.ConsumerKey)
	assert.Equal(t, "legacy-secret", cfg.Credentials.ConsumerSecret)
	assert.Equal(t, "x-token", cfg.Credentials.AccessToken)
	assert.Equal(t, "from-file", cfg.Credentials.AccessSecret)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearCreds(t)
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
}

func TestLoadFileAndEnvFile(t *testing.T) {
	clearCreds(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, "creds.env")
	require.NoError(t, os.WriteFile(envPath, []byte(`# secrets
X_API_KEY=env-key
export X_API_SECRET="env secret"
X_ACCESS_TOKEN='tok'
not a pair
`), 0o600))

	cfgPath := filepath.Join(dir, "xapi.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
credentials:
  accessSecret: file-secret
api:
  baseURL: https://api.example.com
  timeout: 5s
  requestsPerSecond: 1
  burst: 2
log:
  level: debug
envFile: `+envPath+`
`), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Credentials.ConsumerKey)
	assert.Equal(t, "env secret", cfg.Credentials.ConsumerSecret)
	assert.Equal(t, "tok", cfg.Credentials.AccessToken)
	assert.Equal(t, "file-secret", cfg.Credentials.AccessSecret)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvFileKeepsExisting(t *testing.T) {
	clearCreds(t)
	t.Setenv("X_API_KEY", "already")
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("X_API_KEY=overridden\nX_API_SECRET=s\n"), 0o600))

	require.NoError(t, LoadEnvFile(p))
	assert.Equal(t, "already", os.Getenv("X_API_KEY"))
	assert.Equal(t, "s", os.Getenv("X_API_SECRET"))
}

func TestLoadEnvFileEmptyKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("=value\n"), 0o600))
	err := LoadEnvFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":1: empty key")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.API.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.API.Burst = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	clearCreds(t)
	p := filepath.Join(t.TempDir(), "nested", "xapi.yaml")
	cfg := Default()
	cfg.EnvFile = ""
	cfg.Metrics.Textfile = "/tmp/xapi.prom"
	require.NoError(t, Save(p, cfg))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Error(t, Save("", cfg))
}
