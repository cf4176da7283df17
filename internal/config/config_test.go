package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "onelook.db", cfg.Database.Path)
	assert.Equal(t, "assignments_v1", cfg.Storage.Key)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	contents := `
[database]
driver = "bolt"
path = "data/onelook.bolt"

[storage]
key = "assignments_v2"

[server]
port = "9090"
allowed_origins = ["http://127.0.0.1:5173"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Database.Driver)
	assert.Equal(t, "data/onelook.bolt", cfg.Database.Path)
	assert.Equal(t, "assignments_v2", cfg.Storage.Key)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://127.0.0.1:5173"}, cfg.Server.AllowedOrigins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \"9090\"\n"), 0o644))
	t.Setenv("ONELOOK_SERVER_PORT", "7070")
	t.Setenv("ONELOOK_DATABASE_DRIVER", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("ONELOOK_STORAGE_KEY", "")
	os.Unsetenv("ONELOOK_STORAGE_KEY")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ONELOOK_STORAGE_KEY=from_dotenv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.Storage.Key)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: "sqlite", Path: "x.db"},
		Storage:  StorageConfig{Key: "assignments_v1"},
		Server:   ServerConfig{Port: "8080"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"missing path", func(c *Config) { c.Database.Path = "" }},
		{"missing key", func(c *Config) { c.Storage.Key = "" }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	memory := valid
	memory.Database = DatabaseConfig{Driver: "memory"}
	assert.NoError(t, memory.Validate())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
