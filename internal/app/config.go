package app

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Engine       string `yaml:"engine"`
	SaveDir      string `yaml:"save_dir"`
	BlueprintDir string `yaml:"blueprint_dir"`
	Scale        int    `yaml:"scale"`
	TPS          uint   `yaml:"tps"`
	Seed         int64  `yaml:"seed"`
	SeedSize     int    `yaml:"seed_size"`
	Density      int    `yaml:"density"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:       "sparse",
		SaveDir:      "saves",
		BlueprintDir: "blueprints",
		Scale:        6,
		TPS:          10,
		Seed:         42,
		SeedSize:     0,
		Density:      3,
		Width:        160,
		Height:       120,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Engine, "engine", c.Engine, "board engine to run")
	fs.StringVar(&c.SaveDir, "saves", c.SaveDir, "directory for board saves")
	fs.StringVar(&c.BlueprintDir, "blueprints", c.BlueprintDir, "directory for blueprints")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.UintVar(&c.TPS, "tps", c.TPS, "ticks per second, 0 for uncapped")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random start pattern")
	fs.IntVar(&c.SeedSize, "seed-size", c.SeedSize, "side of the random start square, 0 for an empty board")
	fs.IntVar(&c.Density, "density", c.Density, "one alive cell in this many when seeding")
	fs.IntVar(&c.Width, "width", c.Width, "visible columns")
	fs.IntVar(&c.Height, "height", c.Height, "visible rows")
}

// LoadFile merges the YAML document at path into c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Parse binds c to fs and parses args. A -config file is applied first and
// flags given on the command line override it.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	path := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return nil
	}
	if err := c.LoadFile(*path); err != nil {
		return err
	}
	return fs.Parse(args)
}

// Speed converts TPS to a loop speed.
func (c *Config) Speed() comms.Speed {
	if c.TPS == 0 {
		return comms.Uncapped
	}
	return comms.NewSpeed(uint32(c.TPS))
}

// NewEngine builds the configured engine publishing into display and seeds
// it when SeedSize is positive.
func (c *Config) NewEngine(display *sim.SharedDisplay) (sim.Simulator, error) {
	factory, ok := sim.Engines()[c.Engine]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", c.Engine)
	}
	s := factory(display)
	if c.SeedSize > 0 {
		half := int32(c.SeedSize / 2)
		area := core.NewArea(core.Pos(-half, -half), core.Pos(int32(c.SeedSize)-half-1, int32(c.SeedSize)-half-1))
		sim.Randomize(s, area, c.Seed, c.Density)
	}
	return s, nil
}

// InitialView is the display area centred on the origin.
func (c *Config) InitialView() core.Area {
	w, h := int32(max(c.Width, 1)), int32(max(c.Height, 1))
	lo := core.Pos(-w/2, -h/2)
	return core.NewArea(lo, lo.Add(core.Pos(w-1, h-1)))
}
