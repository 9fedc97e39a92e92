package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development", DataPath: "/data"},
		Logger:    LoggerConfig{Level: "info"},
		Database:  DatabaseConfig{Path: "/data/sanctuary.db"},
		Auth:      AuthConfig{LoginAttemptsPerMinute: 10, LoginBurst: 5},
		Scripture: ScriptureConfig{BaseURL: "https://bolls.life", Retries: 1, RPS: 5},
	}
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	// Point at a missing .env so the working directory cannot leak in.
	args = append([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
	return Load(flag.NewFlagSet("test", flag.ContinueOnError), args)
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty env", func(c *Config) { c.App.Environment = "" }, "ENV is required"},
		{"unknown env", func(c *Config) { c.App.Environment = "test" }, "invalid environment"},
		{"env is case sensitive", func(c *Config) { c.App.Environment = "PRODUCTION" }, "invalid environment"},
		{"unknown level", func(c *Config) { c.Logger.Level = "trace" }, "invalid log level"},
		{"empty database", func(c *Config) { c.Database.Path = "" }, "database path"},
		{"relative provider url", func(c *Config) { c.Scripture.BaseURL = "bolls.life" }, "scripture base URL"},
		{"too many retries", func(c *Config) { c.Scripture.Retries = 3 }, "retries"},
		{"zero rps", func(c *Config) { c.Scripture.RPS = 0 }, "RPS"},
		{"zero login rate", func(c *Config) { c.Auth.LoginAttemptsPerMinute = 0 }, "login rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, filepath.Join(home, "ScriptureSanctuary"), cfg.App.DataPath)
	assert.Equal(t, filepath.Join(home, "ScriptureSanctuary", "sanctuary.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(home, "ScriptureSanctuary", "auth.key"), cfg.Auth.KeyPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, "https://bolls.life", cfg.Scripture.BaseURL)
	assert.Equal(t, "YLT", cfg.Scripture.BooksKey)
	assert.Equal(t, 10*time.Second, cfg.Scripture.Timeout)
	assert.Equal(t, 1, cfg.Scripture.Retries)
	assert.InDelta(t, 5.0, cfg.Scripture.RPS, 0.001)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SCRIPTURE_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://sanctuary.example ,")

	cfg, err := load(t, "-port", "7000")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Scripture.Timeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://sanctuary.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_DataPathMovesDefaults(t *testing.T) {
	data := t.TempDir()

	cfg, err := load(t, "-data-path", data, "-db-path", "~/elsewhere.db")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(data, "auth.key"), cfg.Auth.KeyPath)
	assert.Equal(t, filepath.Join(home, "elsewhere.db"), cfg.Database.Path)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := load(t, "-access-token-duration", "forever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token_duration")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)

	got, err = expandPath("~/my-data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "my-data"), got)

	got, err = expandPath("relative/path", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Contains(t, got, filepath.Join("relative", "path"))
}

func TestNumericValues_FallBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_INT", "many")
	t.Setenv("TEST_FLOAT", "2.5")

	assert.Equal(t, 7, getIntConfigValue("", "TEST_INT", 7))
	assert.Equal(t, 3, getIntConfigValue("3", "TEST_INT", 7))
	assert.InDelta(t, 2.5, getFloatConfigValue("", "TEST_FLOAT", 1), 0.001)
	assert.InDelta(t, 1.0, getFloatConfigValue("", "TEST_MISSING_FLOAT", 1), 0.001)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# scripture provider
SCRIPTURE_TEST_URL="http://localhost:9999"

  SCRIPTURE_TEST_KEY  =  'KJV'
SCRIPTURE_TEST_KEEP=from-file
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("SCRIPTURE_TEST_URL", "")
	t.Setenv("SCRIPTURE_TEST_KEY", "")
	t.Setenv("SCRIPTURE_TEST_KEEP", "from-env")

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "http://localhost:9999", os.Getenv("SCRIPTURE_TEST_URL"))
	assert.Equal(t, "KJV", os.Getenv("SCRIPTURE_TEST_KEY"))
	assert.Equal(t, "from-env", os.Getenv("SCRIPTURE_TEST_KEEP"))
}

func TestLoadEnvFile_Errors(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GOOD=1\nNO EQUALS SIGN\n"), 0o600))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format at line 2")
}
