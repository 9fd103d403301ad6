package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kleinnic74/fflags"
)

// HotReloadFeature gates rebuilding the shader program when its files change.
// It is off until ApplyFeatures turns it on.
var HotReloadFeature = fflags.Define("shaders.hotreload")

type Config struct {
	Width  int
	Height int
	Title  string

	VertPath string
	FragPath string

	VSync     bool
	HotReload bool
	Debug     bool

	// Optional YAML file with a 'features' tree, see ApplyFeatures
	FeaturesPath string
}

func Default() Config {
	return Config{
		Width:    640,
		Height:   480,
		Title:    "Hello World",
		VertPath: "./res/shaders/triangle.vert",
		FragPath: "./res/shaders/triangle.frag",
		VSync:    true,
	}
}

// Load parses args (without the program name) on top of Default. Usage and
// parse errors are written to output.
func Load(args []string, output io.Writer) (Config, error) {

	cfg := Default()

	flags := flag.NewFlagSet("glsltri", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: glsltri [options]\n")
		flags.PrintDefaults()
	}

	flags.IntVar(&cfg.Width, "width", cfg.Width, "Window width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "Window height in pixels")
	flags.StringVar(&cfg.Title, "title", cfg.Title, "Window title")
	flags.StringVar(&cfg.VertPath, "vert", cfg.VertPath, "Path to the vertex shader")
	flags.StringVar(&cfg.FragPath, "frag", cfg.FragPath, "Path to the fragment shader")
	flags.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "Wait for vertical sync when swapping")
	flags.BoolVar(&cfg.HotReload, "hotreload", cfg.HotReload, "Rebuild the shader program when its files change")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Human readable debug logging")
	flags.StringVar(&cfg.FeaturesPath, "features", cfg.FeaturesPath, "YAML file with feature flags")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {

	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}

	if c.VertPath == "" {
		errs = append(errs, errors.New("vertex shader path is empty"))
	}

	if c.FragPath == "" {
		errs = append(errs, errors.New("fragment shader path is empty"))
	}

	if c.FeaturesPath != "" {
		if _, err := os.Stat(c.FeaturesPath); err != nil {
			errs = append(errs, fmt.Errorf("features file: %w", err))
		}
	}

	return errors.Join(errs...)
}

// ApplyFeatures loads the feature flags file, if any, then enables the
// features requested on the command line. Flags only turn features on, so
// '-hotreload' wins over 'hotreload: false' in the file.
func (c *Config) ApplyFeatures() {

	if c.FeaturesPath != "" {
		fflags.Init(fflags.YamlFile(c.FeaturesPath))
	}

	if c.HotReload {
		HotReloadFeature.Enable()
	}
}
