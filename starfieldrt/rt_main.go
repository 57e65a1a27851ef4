package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/starfield"
	"github.com/gekko3d/starfield/starfieldrt/rt/core"

	"github.com/spf13/cobra"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	configPath string

	count         int
	radius        float32
	depth         float32
	saturation    float32
	factor        float32
	fade          bool
	speed         float32
	motion        string
	direction     []float32
	movementSpeed float32
	seed          int64

	width, height int
	axes          bool
	debug         bool
	lifetime      time.Duration

	snapshot   string
	snapshotAt time.Duration
}

func newRootCmd() (*cobra.Command, *options) {
	o := &options{}
	defaults := starfield.DefaultConfig()
	sf := defaults.StarField

	cmd := &cobra.Command{
		Use:          "starfield",
		Short:        "Animated star field viewer",
		Long:         `starfield renders a procedurally generated shell of twinkling stars that scroll or drift over time.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			if o.snapshot != "" {
				return starfield.Snapshot(cfg, o.snapshotAt, o.snapshot)
			}
			starfield.NewWindowedApp(cfg, o.lifetime).Run()
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	f.IntVar(&o.count, "count", sf.Count, "number of stars")
	f.Float32Var(&o.radius, "radius", sf.Radius, "inner radius of the star shell")
	f.Float32Var(&o.depth, "depth", sf.Depth, "thickness of the star shell")
	f.Float32Var(&o.saturation, "saturation", sf.Saturation, "star colour saturation in [0, 1]")
	f.Float32Var(&o.factor, "factor", sf.Factor, "star size multiplier")
	f.BoolVar(&o.fade, "fade", sf.Fade, "soften star edges")
	f.Float32Var(&o.speed, "speed", sf.Speed, "animation speed multiplier")
	f.StringVar(&o.motion, "motion", string(sf.Motion), "offset strategy: wrap or drift")
	f.Float32SliceVar(&o.direction, "direction", sf.Direction[:], "drift direction x,y,z")
	f.Float32Var(&o.movementSpeed, "movement-speed", sf.MovementSpeed, "drift speed")
	f.Int64Var(&o.seed, "seed", sf.Seed, "random seed, 0 for a fresh one")
	f.IntVar(&o.width, "width", defaults.Window.Width, "window width")
	f.IntVar(&o.height, "height", defaults.Window.Height, "window height")
	f.BoolVar(&o.axes, "axes", defaults.Window.Axes, "draw the axes helper (toggle with H)")
	f.DurationVar(&o.lifetime, "lifetime", 0, "unmount the star field after this long")
	f.BoolVar(&o.debug, "debug", defaults.Logging.Debug, "enable debug logging")
	f.StringVar(&o.snapshot, "snapshot", "", "write one frame to this PNG instead of opening a window")
	f.DurationVar(&o.snapshotAt, "snapshot-at", 0, "time of the snapshot frame")

	return cmd, o
}

// resolveConfig layers explicitly set flags over the config file.
func resolveConfig(cmd *cobra.Command, o *options) (starfield.Config, error) {
	cfg := starfield.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = starfield.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	sf := &cfg.StarField
	if f.Changed("count") {
		sf.Count = o.count
	}
	if f.Changed("radius") {
		sf.Radius = o.radius
	}
	if f.Changed("depth") {
		sf.Depth = o.depth
	}
	if f.Changed("saturation") {
		sf.Saturation = o.saturation
	}
	if f.Changed("factor") {
		sf.Factor = o.factor
	}
	if f.Changed("fade") {
		sf.Fade = o.fade
	}
	if f.Changed("speed") {
		sf.Speed = o.speed
	}
	if f.Changed("motion") {
		m, err := core.ParseMotion(o.motion)
		if err != nil {
			return cfg, err
		}
		sf.Motion = m
	}
	if f.Changed("direction") {
		if len(o.direction) != 3 {
			return cfg, fmt.Errorf("--direction wants 3 components, got %d", len(o.direction))
		}
		copy(sf.Direction[:], o.direction)
	}
	if f.Changed("movement-speed") {
		sf.MovementSpeed = o.movementSpeed
	}
	if f.Changed("seed") {
		sf.Seed = o.seed
	}
	if f.Changed("width") {
		cfg.Window.Width = o.width
	}
	if f.Changed("height") {
		cfg.Window.Height = o.height
	}
	if f.Changed("axes") {
		cfg.Window.Axes = o.axes
	}
	if f.Changed("debug") {
		cfg.Logging.Debug = o.debug
	}

	return cfg, cfg.Validate()
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
