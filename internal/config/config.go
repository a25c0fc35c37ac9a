// Package config handles planet-engine configuration loading and management.
package config

import "github.com/planetcore/quadtree/host"

// Config holds all engine settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Render  RenderConfig  `yaml:"render"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig mirrors host.TerrainConfig for serialization; Load converts
// it into the host type the driver actually consumes.
type TerrainConfig struct {
	MinZoom        uint32   `yaml:"min_zoom"`
	MaxZoom        uint32   `yaml:"max_zoom"`
	FileGridSize   uint32   `yaml:"file_grid_size"`
	GridSizeByZoom []uint32 `yaml:"grid_size_by_zoom"`
}

// Host converts c into the host.TerrainConfig the driver expects.
func (c TerrainConfig) Host() host.TerrainConfig {
	return host.TerrainConfig{
		MinZoom:        c.MinZoom,
		MaxZoom:        c.MaxZoom,
		FileGridSize:   c.FileGridSize,
		GridSizeByZoom: c.GridSizeByZoom,
	}
}

// RenderConfig holds the traversal/visibility tuning constants a deployment
// may want to override without recompiling.
type RenderConfig struct {
	VisibleDistance             float64 `yaml:"visible_distance"`
	NearFieldAltitudeM          float64 `yaml:"near_field_altitude_m"`
	CollectRenderNodesAltitudeM float64 `yaml:"collect_render_nodes_altitude_m"`
	LightEnabled                bool    `yaml:"light_enabled"`
}

// MetricsConfig holds the prometheus registration settings.
type MetricsConfig struct {
	Planet string `yaml:"planet"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values, matching the
// constants quadtree itself falls back to when run without a Config.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			MinZoom:        2,
			MaxZoom:        0,
			FileGridSize:   32,
			GridSizeByZoom: []uint32{1, 1, 2, 4, 8, 16, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32, 32},
		},
		Render: RenderConfig{
			VisibleDistance:             3570.0,
			NearFieldAltitudeM:          3_000_000.0,
			CollectRenderNodesAltitudeM: 10_000.0,
			LightEnabled:                true,
		},
		Metrics: MetricsConfig{
			Planet: "default",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
