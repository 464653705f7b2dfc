package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/tester"

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	prev := AppFs
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })

	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return fs
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadConfigDefaults(t *testing.T) {
	useMemFs(t)
	for _, k := range []string{"INGRES_GO_HOST", "INGRES_GO_PORT", "INGRES_GO_USER", "INGRES_GO_DATABASE", "INGRES_GO_TIMEOUT"} {
		unsetEnv(t, k)
	}

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 21071, cfg.Port)
	assert.Equal(t, "admin", cfg.User)
	assert.True(t, cfg.DelimitIdentifiers)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Host)
}

func TestLoadConfigSources(t *testing.T) {
	fs := useMemFs(t)
	unsetEnv(t, "INGRES_GO_HOST")
	unsetEnv(t, "INGRES_GO_DATABASE")
	unsetEnv(t, "INGRES_GO_PORT")
	t.Setenv("INGRES_GO_SCHEMA", "from_process")

	require.NoError(t, afero.WriteFile(fs, filepath.Join(home, ".ingres-go.yaml"), []byte(
		"host: filehost\nport: 19016\ndatabase: filedb\ndelimit_identifiers: false\ntimeout: 5s\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, ".env", []byte(
		"INGRES_GO_DATABASE=envdb\nINGRES_GO_SCHEMA=from_env_file\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte(
		"INGRES_GO_DATABASE=localdb\n"), 0644))

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, 19016, cfg.Port)
	assert.Equal(t, "localdb", cfg.Database)
	assert.Equal(t, "from_process", cfg.Schema)
	assert.False(t, cfg.DelimitIdentifiers)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	settings := cfg.Settings()
	assert.Equal(t, "ingres://filehost:19016/localdb", settings.DisplayURL())
	assert.Equal(t, 5, cfg.DatabaseConfig().ConnectTimeout)
}

func TestSaveConfig(t *testing.T) {
	fs := useMemFs(t)

	path, err := SaveConfig(&Config{
		Host:               "db1",
		Port:               21071,
		User:               "admin",
		Password:           "secret",
		Database:           "shop",
		DelimitIdentifiers: true,
		Timeout:            time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "ingres-go", ".ingres-go.yaml"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "host: db1")
	assert.Contains(t, string(data), "database: shop")
	assert.NotContains(t, string(data), "secret")
}
