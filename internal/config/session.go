package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/idursun/mandelbrot/internal/view"
)

type session struct {
	ViewLeft     float64 `toml:"view_left"`
	ViewTop      float64 `toml:"view_top"`
	ViewWidth    float64 `toml:"view_width"`
	ViewHeight   float64 `toml:"view_height"`
	ZoomExponent int     `toml:"zoom_exponent"`
}

// LoadSession reads a persisted window. The second result is false when no
// session has been saved yet.
func LoadSession(path string) (view.Window, bool, error) {
	var s session
	metadata, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return view.Window{}, false, nil
		}
		return view.Window{}, false, fmt.Errorf("reading session %s: %w", path, err)
	}
	for _, key := range []string{"view_left", "view_top", "view_width", "view_height", "zoom_exponent"} {
		if !metadata.IsDefined(key) {
			return view.Window{}, false, fmt.Errorf("session %s: missing %s", path, key)
		}
	}
	return view.Window{
		Left:         s.ViewLeft,
		Top:          s.ViewTop,
		Width:        s.ViewWidth,
		Height:       s.ViewHeight,
		ZoomExponent: s.ZoomExponent,
	}, true, nil
}

// SaveSession writes w to a temp file beside path and renames it into place.
func SaveSession(path string, w view.Window) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*.toml")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = toml.NewEncoder(tmp).Encode(session{
		ViewLeft:     w.Left,
		ViewTop:      w.Top,
		ViewWidth:    w.Width,
		ViewHeight:   w.Height,
		ZoomExponent: w.ZoomExponent,
	})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
