package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "CELL_SIZE_FEET", "DAYLUN_LAYOUT_JSON", "READ_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 8.0, cfg.CellSizeFeet)
	assert.Equal(t, 10.0, cfg.StoryHeightFeet)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, "data/export/daylun-revit-layout.json", cfg.LayoutJSONPath)
	assert.Equal(t, "3002", cfg.PortOr("3002"))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "4000")
	t.Setenv("CELL_SIZE_FEET", "4")
	t.Setenv("STORY_HEIGHT_FEET", "-3")
	t.Setenv("READ_TIMEOUT", "abc")

	cfg := Load()
	assert.Equal(t, "4000", cfg.PortOr("3002"))
	assert.Equal(t, 4.0, cfg.CellSizeFeet)
	assert.Equal(t, 10.0, cfg.StoryHeightFeet)
	assert.Equal(t, 10, cfg.ReadTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPORT_DIR=/srv/export\n"), 0o644))
	t.Setenv("EXPORT_DIR", "")
	os.Unsetenv("EXPORT_DIR")

	assert.Equal(t, "/srv/export", Load().ExportDir)
}
