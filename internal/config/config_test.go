package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "database = \"/tmp/p.db\"\ntheme = \"nord\"\nwidth = 72\nosc8 = \"on\"\n")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{Database: "/tmp/p.db", Theme: "nord", Width: 72, OSC8: "on"}, cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "width = 100\n"), true)
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, def.Database, cfg.Database)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, true)
	assert.Error(t, err)
}

func TestLoadRejectsBadInput(t *testing.T) {
	for _, body := range []string{
		"osc8 = \"sometimes\"\n",
		"width = -1\n",
		"colour = \"red\"\n",
		"width = \"wide\"\n",
	} {
		_, err := Load(writeConfig(t, body), true)
		assert.Error(t, err, body)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := Load(writeConfig(t, "database = \"~/p.db\"\n"), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "p.db"), cfg.Database)
}
