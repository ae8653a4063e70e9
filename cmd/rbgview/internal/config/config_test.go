package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, path, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config file, got %q", path)
	}
	if cfg.Preview.Port != 5173 || cfg.Preview.DebounceMS != 100 {
		t.Errorf("preview defaults = %+v", cfg.Preview)
	}
	if cfg.Viewer.ZoomStep != 1.2 || cfg.Viewer.HeightFraction != 0.6 {
		t.Errorf("viewer defaults = %+v", cfg.Viewer)
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "rbgview.yaml",
			content: `
viewer:
  zoomStep: 1.5
  maxScale: 8
theme:
  nodeColor: "#224466"
preview:
  port: 9000
`,
		},
		{
			name: "toml",
			file: "rbgview.toml",
			content: `
[viewer]
zoomStep = 1.5
maxScale = 8.0

[theme]
nodeColor = "#224466"

[preview]
port = 9000
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, path, err := Load(dir, "")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if filepath.Base(path) != tt.file {
				t.Errorf("used %q, want %q", path, tt.file)
			}
			if cfg.Viewer.ZoomStep != 1.5 || cfg.Viewer.MaxScale != 8 {
				t.Errorf("viewer = %+v", cfg.Viewer)
			}
			// unset fields in a present section still get defaults
			if cfg.Viewer.WheelZoomIn != 1.1 || cfg.Viewer.Padding != 40 {
				t.Errorf("viewer defaults not applied: %+v", cfg.Viewer)
			}
			if cfg.Theme.NodeColor != "#224466" || cfg.Theme.Foreground != "#d4d4d4" {
				t.Errorf("theme = %+v", cfg.Theme)
			}
			if cfg.Preview.Port != 9000 || cfg.Preview.Host != "localhost" {
				t.Errorf("preview = %+v", cfg.Preview)
			}
			if cfg.Terminal == nil || cfg.Terminal.CellWidth != 8 {
				t.Errorf("terminal = %+v", cfg.Terminal)
			}

			opts := cfg.ViewerOptions()
			if opts.ZoomStep != 1.5 || opts.NodeColor != "#224466" || opts.MaxScale != 8 {
				t.Errorf("viewer options = %+v", opts)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("viewer: [1, 2"), 0644)
	if _, _, err := Load(dir, bad); err == nil {
		t.Error("expected a parse error")
	}

	ini := filepath.Join(dir, "rbgview.ini")
	os.WriteFile(ini, []byte("x=1"), 0644)
	if _, _, err := Load(dir, ini); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	if _, _, err := Load(dir, filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := DefaultConfig()
			cfg.Preview.Port = 7777
			cfg.Theme.Font = "Mono"

			if err := Save(cfg, path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, _, err := Load("", path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got.Preview.Port != 7777 || got.Theme.Font != "Mono" {
				t.Errorf("round trip lost values: %+v %+v", got.Preview, got.Theme)
			}
		})
	}
}
