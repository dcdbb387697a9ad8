package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formula/arena"
	"github.com/zephyrtronium/formula/plot"
)

// Config is the contents of a config file. Keys that are absent keep their
// defaults.
type Config struct {
	ArenaCapacity int           `yaml:"arena_capacity"`
	History       string        `yaml:"history"`
	TraceLevel    string        `yaml:"trace_level"`
	Plot          PlotConfig    `yaml:"plot"`
	Surface       SurfaceConfig `yaml:"surface"`
}

// PlotConfig is the plot area sampled by -plot.
type PlotConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Scale   float64 `yaml:"scale"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
}

// SurfaceConfig is the grid sampled by -surface.
type SurfaceConfig struct {
	Range      float64 `yaml:"range"`
	Resolution int     `yaml:"resolution"`
}

func defaultConfig() Config {
	return Config{
		ArenaCapacity: arena.DefaultCap,
		TraceLevel:    "Error",
		Plot: PlotConfig{
			Width:  640,
			Height: 480,
			Scale:  plot.DefaultScale,
		},
		Surface: SurfaceConfig{
			Range:      plot.SurfRange,
			Resolution: plot.SurfRes,
		},
	}
}

// loadConfig reads the config file at path over the defaults. An empty path
// gives the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.check()
}

// maxPlotSize bounds each dimension of the plot area in pixels.
const maxPlotSize = 1 << 14

func (cfg *Config) check() error {
	switch {
	case cfg.ArenaCapacity <= 0:
		return fmt.Errorf("arena_capacity (%d) must be positive", cfg.ArenaCapacity)
	case cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 || cfg.Plot.Width > maxPlotSize || cfg.Plot.Height > maxPlotSize:
		return fmt.Errorf("plot size %dx%d must be positive and at most %d", cfg.Plot.Width, cfg.Plot.Height, maxPlotSize)
	case cfg.Plot.Scale < plot.MinScale || cfg.Plot.Scale > plot.MaxScale:
		return fmt.Errorf("plot scale (%g) must be between %d and %d", cfg.Plot.Scale, plot.MinScale, plot.MaxScale)
	case !(cfg.Surface.Range > 0):
		return fmt.Errorf("surface range (%g) must be positive", cfg.Surface.Range)
	case cfg.Surface.Resolution <= 0 || cfg.Surface.Resolution > plot.MaxSurfRes:
		return fmt.Errorf("surface resolution (%d) must be between 1 and %d", cfg.Surface.Resolution, plot.MaxSurfRes)
	}
	return nil
}

func (cfg *Config) view() plot.View {
	return plot.View{CenterX: cfg.Plot.CenterX, CenterY: cfg.Plot.CenterY, Scale: cfg.Plot.Scale}
}
