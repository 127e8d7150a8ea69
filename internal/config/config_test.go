package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "panelnav://app/", cfg.StartURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 16.0, cfg.Progress.RowUnits)
	assert.Equal(t, 600*time.Millisecond, cfg.Input.EscapeRelease)
	assert.Len(t, cfg.Panels, 4)
	assert.Len(t, cfg.Buttons, 4)
	assert.True(t, cfg.Panels[0].Visible)

	doc := cfg.Document()
	assert.Equal(t, "Store.Library", doc.ByID("library").Attr("page-object"))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
start_url: "panelnav://app/?panel=b"
log:
  level: debug
input:
  escape_release: 250ms
panels:
  - id: a
    title: Alpha
  - id: b
    title: Beta
    page_object: Store.Library
    previous_page: a
buttons:
  - id: to-b
    label: Beta
    target: b
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Input.EscapeRelease)
	require.Len(t, cfg.Panels, 2)
	assert.True(t, cfg.Panels[0].Visible, "first panel becomes visible when none is marked")
	assert.Equal(t, "a", cfg.Panels[1].PreviousPage)
	require.Len(t, cfg.Buttons, 1)
	assert.Equal(t, "b", cfg.Buttons[0].Target)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PANELNAV_LOG_LEVEL", "warn")
	t.Setenv("PANELNAV_HISTORY_PATH", "/tmp/h.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"duplicate ids": "panels:\n  - id: a\n  - id: a\n",
		"two visible":   "panels:\n  - id: a\n    visible: true\n  - id: b\n    visible: true\n",
		"missing id":    "panels:\n  - title: nameless\n",
		"bad button":    "panels:\n  - id: a\nbuttons:\n  - id: x\n",
		"bad row units": "progress:\n  row_units: 0\n",
		"bad start url": "start_url: \"%zz\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
