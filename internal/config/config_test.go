package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "postgres", URL: "postgres://localhost/elyon"},
		Server:   ServerConfig{Addr: ":8080"},
		Staffing: StaffingConfig{
			Timezone: "Asia/Manila",
			RoleSynonyms: map[string][]string{
				"lights": {"lighting", "stage lights"},
			},
		},
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "elyon_config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0644))
	return configPath
}

func TestValidate_ValidConfig(t *testing.T) {
	err := Validate(validConfig())
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mysql"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Staffing.Timezone = "Mars/Olympus"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")
}

func TestValidate_EmptySynonymList(t *testing.T) {
	cfg := validConfig()
	cfg.Staffing.RoleSynonyms["usher"] = []string{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	t.Setenv(DatabaseURLEnvVar, "")
	configPath := writeConfig(t, `
database:
  driver: sqlite
  url: "staffing.db"
server:
  addr: ":9090"
staffing:
  timezone: "Asia/Manila"
  preserveSlotIdentity: true
  roleSynonyms:
    lights:
      - lighting
      - stage lights
logging:
  dir: "/tmp/elyon-logs"
`)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "staffing.db", cfg.Database.URL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Staffing.PreserveSlotIdentity)
	assert.Equal(t, []string{"lighting", "stage lights"}, cfg.Staffing.RoleSynonyms["lights"])
	assert.Equal(t, "/tmp/elyon-logs", cfg.Logging.Dir)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Manila", loc.String())
}

func TestLoadFromPath_MinimalConfigUsesDefaults(t *testing.T) {
	t.Setenv(DatabaseURLEnvVar, "")
	configPath := writeConfig(t, `
database:
  url: "postgres://localhost/elyon"
`)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "UTC", cfg.Staffing.Timezone)
	assert.False(t, cfg.Staffing.PreserveSlotIdentity)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.Empty(t, cfg.Staffing.RoleSynonyms)
}

func TestLoadFromPath_EnvOverridesDatabaseURL(t *testing.T) {
	t.Setenv(DatabaseURLEnvVar, "postgres://db.internal/elyon")
	configPath := writeConfig(t, `
database:
  driver: postgres
`)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal/elyon", cfg.Database.URL)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	t.Setenv(DatabaseURLEnvVar, "")
	configPath := writeConfig(t, `
database:
  driver: postgres
  # Missing url
`)

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `
database:
  url: "x"
    invalid indentation
`)

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// An env-specific file in the working directory wins over the plain one
func TestLoadWithEnv_PrefersEnvFile(t *testing.T) {
	t.Setenv(DatabaseURLEnvVar, "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile("elyon_config.yaml", []byte("database:\n  url: plain\n"), 0644))
	require.NoError(t, os.WriteFile("elyon_config.test.yaml", []byte("database:\n  url: test\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Database.URL)

	cfg, err = LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Database.URL)
}
