package pixed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config tunes the engine's memory/granularity tradeoffs. The zero value
// is usable; unset fields take defaults.
type Config struct {
	// HistoryCap is the maximum number of retained undo snapshots for
	// sprites at or below LargeSpritePixels (default: 50).
	HistoryCap int `json:"history_cap" yaml:"history_cap"`

	// HistoryCapLarge is the snapshot cap for sprites above
	// LargeSpritePixels (default: 12). Large sprites keep fewer full-state
	// snapshots because each one is a complete pixel copy.
	HistoryCapLarge int `json:"history_cap_large" yaml:"history_cap_large"`

	// LargeSpritePixels is the pixel count (width*height) above which a
	// sprite is treated as large for history purposes (default: 262144,
	// i.e. 512x512).
	LargeSpritePixels int `json:"large_sprite_pixels" yaml:"large_sprite_pixels"`

	// SnapshotStride throttles snapshot frequency on large sprites: only
	// every Nth committed edit is recorded (default: 3). Small sprites
	// record every edit.
	SnapshotStride int `json:"snapshot_stride" yaml:"snapshot_stride"`

	// DefaultBrushSize is the brush footprint used when a tool is created
	// without an explicit size (default: 1).
	DefaultBrushSize int `json:"default_brush_size" yaml:"default_brush_size"`
}

func (c *Config) defaults() {
	if c.HistoryCap <= 0 {
		c.HistoryCap = 50
	}
	if c.HistoryCapLarge <= 0 {
		c.HistoryCapLarge = 12
	}
	if c.LargeSpritePixels <= 0 {
		c.LargeSpritePixels = 512 * 512
	}
	if c.SnapshotStride <= 0 {
		c.SnapshotStride = 3
	}
	if c.DefaultBrushSize <= 0 {
		c.DefaultBrushSize = 1
	}
}

// DefaultConfig returns the configuration with every field set to its
// default value.
func DefaultConfig() Config {
	var c Config
	c.defaults()
	return c
}

// LoadConfig parses a YAML configuration document. Unset fields take
// defaults; unknown fields are ignored.
func LoadConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.defaults()
	return c, nil
}
