// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "inventory.json", cfg.InventoryFile)
	assert.Equal(t, "log.txt", cfg.AuditFile)
	assert.Equal(t, "stockline", cfg.ServiceName)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_addr: ":9000"
channel_secret: yaml-secret
inventory_file: /var/lib/stockline/inventory.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "yaml-secret", cfg.ChannelSecret)
	assert.Equal(t, "/var/lib/stockline/inventory.json", cfg.InventoryFile)
	assert.Equal(t, "log.txt", cfg.AuditFile, "unset fields keep defaults")
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel_secret: yaml-secret"), 0644))

	t.Setenv("LINE_CHANNEL_SECRET", "env-secret")
	t.Setenv("PORT", "8088")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.ChannelSecret)
	assert.Equal(t, ":8088", cfg.ListenAddr)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
