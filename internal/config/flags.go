package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMaxZoom = flag.Uint("max-zoom", 0, "Override terrain.max_zoom (0 keeps the config value)")
	flagNoLight = flag.Bool("no-light", false, "Disable normal-map generation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMaxZoom > 0 {
		cfg.Terrain.MaxZoom = uint32(*flagMaxZoom)
	}
	if *flagNoLight {
		cfg.Render.LightEnabled = false
	}
}
