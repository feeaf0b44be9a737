package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

type mergeOverlay struct {
	Landmarks []LandmarkConfig `toml:"landmarks"`
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv("MANDELBROT_CONFIG_DIR"); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		xdgConfigDir := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "mandelbrot", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "mandelbrot", "config.toml")
	}
	return ""
}

func GetConfigDir() string {
	configFile := getConfigFilePath()
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}

// GetSessionFilePath is where the last viewed window is persisted.
func GetSessionFilePath() string {
	dir := GetConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "state.toml")
}

func loadDefaultConfig() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: no embedded default config found: %v\n", err)
		os.Exit(1)
	}

	config := &Config{}
	if err := config.Load(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to load embedded default config: %v\n", err)
		os.Exit(1)
	}
	return config
}

// Load decodes data on top of the current values. Colours merge by key and
// landmarks merge by name; every other field is overwritten when present.
func (c *Config) Load(data string) error {
	baseLandmarks := append([]LandmarkConfig(nil), c.Landmarks...)
	baseColors := maps.Clone(c.UI.Colors)

	metadata, err := toml.Decode(data, c)
	if err != nil {
		return err
	}

	// Decode merge-managed arrays into a fresh struct so they are always read
	// from file content, without carrying prior state.
	overlay := &mergeOverlay{}
	if _, err := toml.Decode(data, overlay); err != nil {
		return err
	}

	if metadata.IsDefined("landmarks") {
		c.Landmarks = mergeLandmarks(baseLandmarks, overlay.Landmarks)
	}
	for key, color := range baseColors {
		if !metadata.IsDefined("ui", "colors", key) {
			if c.UI.Colors == nil {
				c.UI.Colors = make(map[string]Color)
			}
			c.UI.Colors[key] = color
		}
	}

	return c.validate()
}

func (c *Config) validate() error {
	var errs []error
	if c.Render.Budget < 0 {
		errs = append(errs, fmt.Errorf("render.budget must not be negative, got %d", c.Render.Budget))
	}
	if c.Render.EventBuffer < 0 {
		errs = append(errs, fmt.Errorf("render.event_buffer must not be negative, got %d", c.Render.EventBuffer))
	}
	for i, landmark := range c.Landmarks {
		if strings.TrimSpace(landmark.Name) == "" {
			errs = append(errs, fmt.Errorf("landmarks[%d]: name is required", i))
		}
		if landmark.Size <= 0 {
			errs = append(errs, fmt.Errorf("landmark %q: size must be positive", landmark.Name))
		}
	}
	return errors.Join(errs...)
}

func LoadConfigFile() ([]byte, error) {
	configFile := getConfigFilePath()
	_, err := os.Stat(configFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Load builds Current from the embedded defaults overlaid with the user's
// config file, when there is one.
func Load() (*Config, error) {
	config := loadDefaultConfig()
	data, err := LoadConfigFile()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			Current = config
			return config, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := config.Load(string(data)); err != nil {
		return nil, fmt.Errorf("loading %s: %w", getConfigFilePath(), err)
	}
	Current = config
	return config, nil
}
