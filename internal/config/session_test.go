package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idursun/mandelbrot/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")
	w := view.Window{Left: -0.7512, Top: 0.1234567890123, Width: 3.0 / 1024, Height: 3.0 / 1024, ZoomExponent: 10}

	require.NoError(t, SaveSession(path, w))
	got, ok, err := LoadSession(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, w, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed away")
}

func TestLoadSession_Missing(t *testing.T) {
	_, ok, err := LoadSession(filepath.Join(t.TempDir(), "state.toml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadSession_Incomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("view_left = -1.0\nview_top = 1.0\n"), 0o644))

	_, ok, err := LoadSession(path)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "view_width")
}

func TestLoadSession_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("view_left = \n"), 0o644))

	_, _, err := LoadSession(path)
	assert.Error(t, err)
}
