// Package config loads the optional debias.yaml that sits next to the
// executable. A missing file means defaults; a malformed one is an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dh-debias/internal/dirbias"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up beside the executable.
const FileName = "debias.yaml"

// OutputConfig controls how the corrected grid is written.
type OutputConfig struct {
	// CreationOptions are passed to the GTiff driver as KEY=VALUE pairs.
	CreationOptions []string `yaml:"creation_options"`
	// MaskPreview also writes <stem>_debias_mask.tif.
	MaskPreview bool `yaml:"mask_preview"`
}

// EngineConfig tunes the binning statistic. Angle, bin count and apply mode
// are fixed by the tool.
type EngineConfig struct {
	Statistic     string `yaml:"statistic"`
	MinBinSamples int    `yaml:"min_bin_samples"`
}

// UIConfig sizes the main window.
type UIConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Config models debias.yaml.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Engine EngineConfig `yaml:"engine"`
	UI     UIConfig     `yaml:"ui"`

	// Path is the file the values were read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: OutputConfig{
			CreationOptions: []string{"COMPRESS=DEFLATE", "TILED=YES"},
		},
		Engine: EngineConfig{
			Statistic:     dirbias.Mean.String(),
			MinBinSamples: 1,
		},
		UI: UIConfig{Width: 560, Height: 260},
	}
}

// Load reads debias.yaml from the executable's directory.
func Load() (Config, error) {
	exe, err := os.Executable()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(filepath.Dir(exe), FileName))
}

// LoadFile reads path over the defaults. Keys absent from the file keep their
// default value.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every key.
func (c Config) Validate() error {
	for _, opt := range c.Output.CreationOptions {
		k, _, ok := strings.Cut(opt, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return fmt.Errorf("output.creation_options: %q is not KEY=VALUE", opt)
		}
	}
	if _, err := dirbias.ParseStatistic(c.Engine.Statistic); err != nil {
		return fmt.Errorf("engine.statistic: %w", err)
	}
	if c.Engine.MinBinSamples < 1 {
		return fmt.Errorf("engine.min_bin_samples: must be at least 1, got %d", c.Engine.MinBinSamples)
	}
	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		return fmt.Errorf("ui: window size %gx%g must be positive", c.UI.Width, c.UI.Height)
	}
	return nil
}

// EngineParams returns the north-south correction parameters with the
// configured statistic. Call after Validate.
func (c Config) EngineParams() dirbias.Params {
	p := dirbias.NorthSouth()
	if s, err := dirbias.ParseStatistic(c.Engine.Statistic); err == nil {
		p.Statistic = s
	}
	p.MinBinSamples = c.Engine.MinBinSamples
	return p
}
