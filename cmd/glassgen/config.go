package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/glass"
)

// Config mirrors the command-line flags so a page's settings can be kept
// in a JSON file next to it.
type Config struct {
	Radius       float64 `json:"radius"`
	IndexOutside float64 `json:"index_outside"`
	IndexInside  float64 `json:"index_inside"`
	SampleDelta  float64 `json:"sample_delta"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Center       string  `json:"center,omitempty"` // "x,y"; empty means image center
	ScaleFactor  float64 `json:"scale_factor"`
	Workers      int     `json:"workers,omitempty"`

	PNG   string `json:"png,omitempty"`
	SVG   string `json:"svg,omitempty"`
	Table string `json:"table,omitempty"`

	HTML    string `json:"html,omitempty"`
	HTMLOut string `json:"html_out,omitempty"`
	Nav     string `json:"nav"`
	Layout  string `json:"layout,omitempty"`

	PreviewSrc string `json:"preview_src,omitempty"`
	PreviewOut string `json:"preview_out,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// NewDefault returns the configuration used when no file is given.
func NewDefault() *Config {
	p := glass.DefaultParams()
	return &Config{
		Radius:       p.Radius,
		IndexOutside: p.IndexOutside,
		IndexInside:  p.IndexInside,
		SampleDelta:  p.SampleDelta,
		Width:        p.Width,
		Height:       p.Height,
		ScaleFactor:  p.ScaleFactor,
		Nav:          "#nav",
		PreviewOut:   "preview.png",
	}
}

// Load reads a JSON configuration. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := NewDefault()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Options converts the configuration into generator options.
func (c *Config) Options() ([]glass.Option, error) {
	opts := []glass.Option{
		glass.WithRadius(c.Radius),
		glass.WithIndices(c.IndexOutside, c.IndexInside),
		glass.WithSampleDelta(c.SampleDelta),
		glass.WithSize(c.Width, c.Height),
		glass.WithScaleFactor(c.ScaleFactor),
		glass.WithWorkers(c.Workers),
	}
	if c.Center != "" {
		x, y, err := parseCenter(c.Center)
		if err != nil {
			return nil, err
		}
		opts = append(opts, glass.WithCenter(x, y))
	}
	return opts, nil
}

func parseCenter(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("config: center %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("config: center x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("config: center y: %w", err)
	}
	return x, y, nil
}
