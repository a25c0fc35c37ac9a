// quadtreedemo drives the quadtree core over a toy planet with scripted
// host doubles, so the library can be exercised end to end without a real
// renderer or terrain service.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/internal/config"
	logger "github.com/planetcore/quadtree/internal/logging"
	"github.com/planetcore/quadtree/internal/telemetry"
	"github.com/planetcore/quadtree/internal/testhost"
	"github.com/planetcore/quadtree/quadtree"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`quadtreedemo - drive the quadtree core over a scripted planet

Usage:
  quadtreedemo <command> [options]

Commands:
  run [options]   Step a camera orbit through N frames, printing per-frame
                   rendered count, min/max zoom and altitude
  help            Show this message

Run options:
  -config string   Path to config file
  -frames int      Number of frames to simulate (default 8)
  -lon float       Starting camera longitude (default 0)
  -lat float       Starting camera latitude (default 0)
  -altitude float  Starting camera altitude in meters (default 20000000)
  -descend float   Altitude multiplier applied each frame (default 0.6)`)
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	frames := fs.Int("frames", 8, "Number of frames to simulate")
	lon := fs.Float64("lon", 0, "Starting camera longitude")
	lat := fs.Float64("lat", 0, "Starting camera latitude")
	altitude := fs.Float64("altitude", 20_000_000, "Starting camera altitude in meters")
	descend := fs.Float64("descend", 0.6, "Altitude multiplier applied each frame")
	fs.Parse(args)

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Metrics.Planet); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ellipsoid := geodesy.WGS84()
	terrainCfg := cfg.Terrain.Host()
	terrain := testhost.NewScriptedTerrain(terrainCfg)
	normalMaps := &testhost.ScriptedNormalMaps{Cfg: terrainCfg}
	stats := telemetry.NewFrame(cfg.Metrics.Planet)

	tree := quadtree.NewDriver(ellipsoid, geodesy.EPSG4326, terrain, normalMaps, stats)
	tree.LightEnabled = cfg.Render.LightEnabled
	tree.VisibleDistance = cfg.Render.VisibleDistance
	tree.NearFieldAltitudeM = cfg.Render.NearFieldAltitudeM
	tree.CollectRenderNodesAltitudeM = cfg.Render.CollectRenderNodesAltitudeM

	tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: -180, Lat: -90}, geodesy.LonLat{Lon: 0, Lat: 0}))
	tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: -90}, geodesy.LonLat{Lon: 180, Lat: 0}))
	tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: -180, Lat: 0}, geodesy.LonLat{Lon: 0, Lat: 90}))
	tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 180, Lat: 90}))

	cam := testhost.NewOrbitCamera(ellipsoid, *lon, *lat, *altitude)

	for i := 0; i < *frames; i++ {
		tree.Frame(cam)
		logger.Info("frame done",
			zap.Int("frame", i),
			zap.Int("rendered", len(tree.Rendered)),
			zap.Uint32("minZoom", tree.MinCurrZoom),
			zap.Uint32("maxZoom", tree.MaxCurrZoom),
			zap.Float64("altitude", cam.AltitudeM),
		)
		fmt.Printf("frame %2d: rendered=%-4d minZoom=%-2d maxZoom=%-2d altitude=%.0fm\n",
			i, len(tree.Rendered), tree.MinCurrZoom, tree.MaxCurrZoom, cam.AltitudeM)
		cam.AltitudeM *= *descend
	}

	tree.ClearAll()
}
