package config

import (
	"embed"
	"fmt"
	"time"
)

//go:embed default/*.toml
var configFS embed.FS

var Current = loadDefaultConfig()

type Config struct {
	Render    RenderConfig     `toml:"render"`
	UI        UIConfig         `toml:"ui"`
	Landmarks []LandmarkConfig `toml:"landmarks"`
	Log       LogConfig        `toml:"log"`
}

type RenderConfig struct {
	Budget      int `toml:"budget"`
	EventBuffer int `toml:"event_buffer"`
}

type UIConfig struct {
	FrameIntervalMillis         int              `toml:"frame_interval"`
	StatusMessageDisplaySeconds int              `toml:"status_message_display_seconds"`
	Colors                      map[string]Color `toml:"colors"`
}

type LandmarkConfig struct {
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	X           float64 `toml:"x"`
	Y           float64 `toml:"y"`
	Size        float64 `toml:"size"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Color is either a bare colour string or a table with style attributes.
type Color struct {
	Fg   string `toml:"fg"`
	Bg   string `toml:"bg"`
	Bold *bool  `toml:"bold"`
}

func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		c.Fg = v
		return nil
	case map[string]any:
		for key, raw := range v {
			switch key {
			case "fg":
				c.Fg, _ = raw.(string)
			case "bg":
				c.Bg, _ = raw.(string)
			case "bold":
				b, ok := raw.(bool)
				if !ok {
					return fmt.Errorf("color attribute %q must be a boolean", key)
				}
				c.Bold = &b
			default:
				return fmt.Errorf("unknown color attribute %q", key)
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported color value %v", value)
}

func GetFrameInterval(c *Config) time.Duration {
	if c.UI.FrameIntervalMillis <= 0 {
		return 33 * time.Millisecond
	}
	return time.Duration(c.UI.FrameIntervalMillis) * time.Millisecond
}

func GetStatusMessageTimeout(c *Config) time.Duration {
	if c.UI.StatusMessageDisplaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.UI.StatusMessageDisplaySeconds) * time.Second
}
