package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/recera/rbgview/pkg/graphviewer"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor
// TOML
var ErrUnknownFormat = errors.New("unknown config format")

// FileNames are the config files looked up in the working directory, in
// order
var FileNames = []string{"rbgview.yaml", "rbgview.yml", "rbgview.toml"}

// Config represents the rbgview configuration
type Config struct {
	// Pan/zoom behavior
	Viewer *ViewerConfig `yaml:"viewer,omitempty" toml:"viewer,omitempty"`

	// Colors and fonts shared by every backend
	Theme *ThemeConfig `yaml:"theme,omitempty" toml:"theme,omitempty"`

	// Live preview server
	Preview *PreviewConfig `yaml:"preview,omitempty" toml:"preview,omitempty"`

	// Terminal viewer
	Terminal *TerminalConfig `yaml:"terminal,omitempty" toml:"terminal,omitempty"`
}

// ViewerConfig contains pan/zoom configuration
type ViewerConfig struct {
	// Subtracted from the container width to size the surface
	Padding float64 `yaml:"padding,omitempty" toml:"padding,omitempty"`

	// Fraction of the viewport height used for the surface
	HeightFraction float64 `yaml:"heightFraction,omitempty" toml:"heightFraction,omitempty"`

	// Factor applied by the zoom buttons
	ZoomStep float64 `yaml:"zoomStep,omitempty" toml:"zoomStep,omitempty"`

	// Factors applied per wheel notch
	WheelZoomIn  float64 `yaml:"wheelZoomIn,omitempty" toml:"wheelZoomIn,omitempty"`
	WheelZoomOut float64 `yaml:"wheelZoomOut,omitempty" toml:"wheelZoomOut,omitempty"`

	// Scale bounds; 0 means unbounded
	MinScale float64 `yaml:"minScale,omitempty" toml:"minScale,omitempty"`
	MaxScale float64 `yaml:"maxScale,omitempty" toml:"maxScale,omitempty"`
}

// ThemeConfig contains drawing colors and fonts
type ThemeConfig struct {
	Background   string  `yaml:"background,omitempty" toml:"background,omitempty"`
	Foreground   string  `yaml:"foreground,omitempty" toml:"foreground,omitempty"`
	NodeColor    string  `yaml:"nodeColor,omitempty" toml:"nodeColor,omitempty"`
	ErrorColor   string  `yaml:"errorColor,omitempty" toml:"errorColor,omitempty"`
	Font         string  `yaml:"font,omitempty" toml:"font,omitempty"`
	FontSize     float64 `yaml:"fontSize,omitempty" toml:"fontSize,omitempty"`
	CornerRadius float64 `yaml:"cornerRadius,omitempty" toml:"cornerRadius,omitempty"`
	LineWidth    float64 `yaml:"lineWidth,omitempty" toml:"lineWidth,omitempty"`
}

// PreviewConfig contains live preview server configuration
type PreviewConfig struct {
	// Server host
	Host string `yaml:"host,omitempty" toml:"host,omitempty"`

	// Server port
	Port int `yaml:"port,omitempty" toml:"port,omitempty"`

	// Quiet period after a file change before reloading, in milliseconds
	DebounceMS int `yaml:"debounceMs,omitempty" toml:"debounceMs,omitempty"`

	// Surface size used before the browser reports its own
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// TerminalConfig contains terminal viewer configuration
type TerminalConfig struct {
	// Surface pixels covered by one character cell
	CellWidth  float64 `yaml:"cellWidth,omitempty" toml:"cellWidth,omitempty"`
	CellHeight float64 `yaml:"cellHeight,omitempty" toml:"cellHeight,omitempty"`
}

// Load reads the config file at path, or when path is empty the first of
// FileNames found in dir. The returned string is the file that was used,
// empty when defaults were used.
func Load(dir, path string) (*Config, string, error) {
	if path == "" {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			// Return default config if no file exists
			return DefaultConfig(), "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read config: %w", err)
	}

	config, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, path, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, path, nil
}

// Parse decodes config data in the format named by ext (".yaml", ".yml" or
// ".toml") and applies defaults.
func Parse(data []byte, ext string) (*Config, error) {
	var config Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	return &config, nil
}

// Save writes config as YAML or TOML depending on the extension of path
func Save(config *Config, path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(config)
		if err != nil {
			return err
		}
		data = out
	case ".toml":
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return err
		}
		data = []byte(buf.String())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Viewer: &ViewerConfig{
			Padding:        40,
			HeightFraction: 0.6,
			ZoomStep:       1.2,
			WheelZoomIn:    1.1,
			WheelZoomOut:   0.9,
		},
		Theme: &ThemeConfig{
			Background:   "#1e1e1e",
			Foreground:   "#d4d4d4",
			NodeColor:    "#3c3c3c",
			ErrorColor:   "#f48771",
			Font:         "Arial",
			FontSize:     12,
			CornerRadius: 5,
			LineWidth:    1,
		},
		Preview: &PreviewConfig{
			Host:       "localhost",
			Port:       5173,
			DebounceMS: 100,
			Width:      800,
			Height:     480,
		},
		Terminal: &TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	// Apply viewer defaults
	if config.Viewer == nil {
		config.Viewer = defaults.Viewer
	} else {
		v, d := config.Viewer, defaults.Viewer
		if v.Padding == 0 {
			v.Padding = d.Padding
		}
		if v.HeightFraction == 0 {
			v.HeightFraction = d.HeightFraction
		}
		if v.ZoomStep == 0 {
			v.ZoomStep = d.ZoomStep
		}
		if v.WheelZoomIn == 0 {
			v.WheelZoomIn = d.WheelZoomIn
		}
		if v.WheelZoomOut == 0 {
			v.WheelZoomOut = d.WheelZoomOut
		}
	}

	// Apply theme defaults
	if config.Theme == nil {
		config.Theme = defaults.Theme
	} else {
		t, d := config.Theme, defaults.Theme
		if t.Background == "" {
			t.Background = d.Background
		}
		if t.Foreground == "" {
			t.Foreground = d.Foreground
		}
		if t.NodeColor == "" {
			t.NodeColor = d.NodeColor
		}
		if t.ErrorColor == "" {
			t.ErrorColor = d.ErrorColor
		}
		if t.Font == "" {
			t.Font = d.Font
		}
		if t.FontSize == 0 {
			t.FontSize = d.FontSize
		}
		if t.CornerRadius == 0 {
			t.CornerRadius = d.CornerRadius
		}
		if t.LineWidth == 0 {
			t.LineWidth = d.LineWidth
		}
	}

	// Apply preview server defaults
	if config.Preview == nil {
		config.Preview = defaults.Preview
	} else {
		p, d := config.Preview, defaults.Preview
		if p.Host == "" {
			p.Host = d.Host
		}
		if p.Port == 0 {
			p.Port = d.Port
		}
		if p.DebounceMS == 0 {
			p.DebounceMS = d.DebounceMS
		}
		if p.Width == 0 {
			p.Width = d.Width
		}
		if p.Height == 0 {
			p.Height = d.Height
		}
	}

	// Apply terminal defaults
	if config.Terminal == nil {
		config.Terminal = defaults.Terminal
	} else {
		if config.Terminal.CellWidth == 0 {
			config.Terminal.CellWidth = defaults.Terminal.CellWidth
		}
		if config.Terminal.CellHeight == 0 {
			config.Terminal.CellHeight = defaults.Terminal.CellHeight
		}
	}
}

// ViewerOptions maps the viewer and theme sections onto viewer options
func (c *Config) ViewerOptions() *graphviewer.Options {
	return &graphviewer.Options{
		ZoomStep:        c.Viewer.ZoomStep,
		WheelZoomIn:     c.Viewer.WheelZoomIn,
		WheelZoomOut:    c.Viewer.WheelZoomOut,
		MinScale:        c.Viewer.MinScale,
		MaxScale:        c.Viewer.MaxScale,
		Padding:         c.Viewer.Padding,
		HeightFraction:  c.Viewer.HeightFraction,
		ForegroundColor: c.Theme.Foreground,
		NodeColor:       c.Theme.NodeColor,
		ErrorColor:      c.Theme.ErrorColor,
		Font:            c.Theme.Font,
		FontSize:        c.Theme.FontSize,
		CornerRadius:    c.Theme.CornerRadius,
		LineWidth:       c.Theme.LineWidth,
	}
}
