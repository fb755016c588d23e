// Package cli implements the jataka command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/pkg/buildinfo"
	"github.com/grahalabs/jataka/pkg/cache"
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/profile"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "jataka"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "jataka",
		Short:        "Jataka computes sidereal birth charts",
		Long:         `Jataka is a CLI tool for Vedic birth chart computation: planet positions, panchanga, divisional charts, strength scores, ashtakavarga, vimsottari dasha, and yoga detection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.panchangaCommand())
	root.AddCommand(c.dashaCommand())
	root.AddCommand(c.vargaCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jataka/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// profilesPath returns the default profile file path
// (~/.config/jataka/profiles.toml).
func profilesPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "profiles.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "profiles.toml"), nil
}

// =============================================================================
// Birth Data Flags
// =============================================================================

// birthInput collects the flags shared by every chart-computing command.
// Birth data comes either from the date/time/location flags or from a
// saved profile.
type birthInput struct {
	date      string
	time      string
	utcOffset float64
	latitude  float64
	longitude float64

	houseSystem string
	ayanamsa    string
	dashaDepth  int

	profileName  string
	profilesFile string

	noCache bool
	refresh bool
}

// register adds the shared birth data flags to a command.
func (in *birthInput) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.date, "date", "d", "", "birth date (YYYY-MM-DD)")
	f.StringVarP(&in.time, "time", "t", "", "birth time (HH:MM or HH:MM:SS)")
	f.Float64Var(&in.utcOffset, "utc-offset", 0, "UTC offset of the birth time in hours (e.g. 5.5)")
	f.Float64Var(&in.latitude, "lat", 0, "observer latitude in degrees")
	f.Float64Var(&in.longitude, "lon", 0, "observer longitude in degrees")
	f.StringVar(&in.houseSystem, "house-system", "", "house system: equal (default), whole-sign")
	f.StringVar(&in.ayanamsa, "ayanamsa", "", "ayanamsa model: lahiri (default), raman, krishnamurti")
	f.StringVarP(&in.profileName, "profile", "p", "", "load birth data from a saved profile")
	f.StringVar(&in.profilesFile, "profiles-file", "", "profile file path (default: ~/.config/jataka/profiles.toml)")
	f.BoolVar(&in.noCache, "no-cache", false, "disable result caching")
	f.BoolVar(&in.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options resolves the flags into pipeline options. A --profile flag
// loads the named profile first; any explicitly set flags then override
// its values.
func (in *birthInput) options() (pipeline.Options, error) {
	opts := pipeline.Options{Refresh: in.refresh}

	if in.profileName != "" {
		path := in.profilesFile
		if path == "" {
			var err error
			if path, err = profilesPath(); err != nil {
				return opts, err
			}
		}
		file, err := profile.Load(path)
		if err != nil {
			return opts, err
		}
		if opts, err = file.Options(in.profileName); err != nil {
			return opts, err
		}
		opts.Refresh = in.refresh
	} else {
		instant, err := profile.ParseInstant(in.date, in.time, in.utcOffset)
		if err != nil {
			return opts, err
		}
		opts.Instant = instant
		opts.Latitude = in.latitude
		opts.Longitude = in.longitude
	}

	if in.houseSystem != "" {
		opts.HouseSystem = chart.HouseSystem(in.houseSystem)
	}
	if in.ayanamsa != "" {
		opts.Ayanamsa = ephem.AyanamsaModel(in.ayanamsa)
	}
	if in.dashaDepth != 0 {
		opts.DashaDepth = in.dashaDepth
	}
	return opts, nil
}
