// Package pipeline assembles a complete birth chart from a birth instant
// and observer location.
//
// The pipeline has a strict core and five downstream analysis modules:
//
//  1. Core: Julian Day, ayanamsa, planet positions, ascendant and houses
//  2. Downstream, fanned out concurrently: panchanga, divisional charts,
//     strength scores, ashtakavarga, dasha tree, and yoga detection
//
// A core failure aborts the run. A downstream failure does not: the
// failing module records its error in Result.Errors and the other
// modules still complete, so one bad module never costs the caller the
// rest of the chart.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Instant:   ephem.Instant{Year: 1991, Month: 6, Day: 18, Hour: 7, Minute: 10, UTCOffset: 5.5},
//	    Latitude:  10.80,
//	    Longitude: 76.97,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Panchanga.TithiName)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/grahalabs/jataka/pkg/ashtakavarga"
	"github.com/grahalabs/jataka/pkg/bala"
	"github.com/grahalabs/jataka/pkg/cache"
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/dasha"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/panchanga"
	"github.com/grahalabs/jataka/pkg/varga"
	"github.com/grahalabs/jataka/pkg/yoga"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDashaDepth expands maha, antara, and pratyantara periods.
	DefaultDashaDepth = 3
)

// DefaultHouseSystem is the default house derivation.
const DefaultHouseSystem = chart.HouseEqual

// DefaultAyanamsa is the default sidereal zero-point model.
const DefaultAyanamsa = ephem.AyanamsaLahiri

// Module names used in Result.Errors and stage hooks.
const (
	ModulePanchanga    = "panchanga"
	ModuleVarga        = "varga"
	ModuleBala         = "bala"
	ModuleAshtakavarga = "ashtakavarga"
	ModuleDasha        = "dasha"
	ModuleYoga         = "yoga"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a chart computation.
// This struct supports JSON serialization for API requests.
type Options struct {
	Instant   ephem.Instant `json:"instant"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`

	HouseSystem chart.HouseSystem   `json:"house_system,omitempty"`
	Ayanamsa    ephem.AyanamsaModel `json:"ayanamsa,omitempty"`
	DashaDepth  int                 `json:"dasha_depth,omitempty"`

	// Refresh bypasses the cache read (the result is still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger    `json:"-"`
	Provider ephem.Provider `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := o.Instant.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateLatitude(o.Latitude); err != nil {
		return err
	}
	if err := errors.ValidateLongitude(o.Longitude); err != nil {
		return err
	}

	if o.HouseSystem == "" {
		o.HouseSystem = DefaultHouseSystem
	}
	if err := chart.ValidateHouseSystem(o.HouseSystem); err != nil {
		return err
	}

	if o.Ayanamsa == "" {
		o.Ayanamsa = DefaultAyanamsa
	}
	if err := ephem.ValidateAyanamsa(o.Ayanamsa); err != nil {
		return err
	}

	if o.DashaDepth == 0 {
		o.DashaDepth = DefaultDashaDepth
	}
	if err := errors.ValidateDashaDepth(o.DashaDepth); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ChartKeyOpts returns the cache key components for these options.
func (o *Options) ChartKeyOpts(jd float64) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		HouseSystem: string(o.HouseSystem),
		Ayanamsa:    string(o.Ayanamsa),
		DashaDepth:  o.DashaDepth,
		JulianDay:   jd,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
	}
}

// =============================================================================
// Result - Assembled Chart
// =============================================================================

// Result is a fully assembled chart. Downstream sections whose module
// failed hold their zero value and the failure is recorded in Errors
// under the module name.
type Result struct {
	JulianDay     float64             `json:"julian_day" bson:"julian_day"`
	Ayanamsa      float64             `json:"ayanamsa" bson:"ayanamsa"`
	AyanamsaModel ephem.AyanamsaModel `json:"ayanamsa_model" bson:"ayanamsa_model"`

	Ascendant     float64             `json:"ascendant" bson:"ascendant"`
	AscendantSign chart.Sign          `json:"ascendant_sign" bson:"ascendant_sign"`
	HouseSystem   chart.HouseSystem   `json:"house_system" bson:"house_system"`
	Cusps         [12]chart.HouseCusp `json:"cusps" bson:"cusps"`

	Positions []chart.PlanetPosition `json:"positions" bson:"positions"`

	Panchanga    panchanga.Panchanga    `json:"panchanga" bson:"panchanga"`
	Vargas       map[int]varga.Chart    `json:"vargas" bson:"vargas"`
	Strengths    []bala.ScoreSet        `json:"strengths" bson:"strengths"`
	Houses       [12]bala.HouseStrength `json:"houses" bson:"houses"`
	Ashtakavarga ashtakavarga.Table     `json:"ashtakavarga" bson:"ashtakavarga"`
	Dasha        dasha.Tree             `json:"dasha" bson:"dasha"`
	Yogas        []yoga.Match           `json:"yogas" bson:"yogas"`

	// Errors maps a failed module name to its error message.
	Errors map[string]string `json:"errors,omitempty" bson:"errors,omitempty"`

	// CacheHit reports whether the whole result came from cache.
	CacheHit bool `json:"-" bson:"-"`
}

// Partial reports whether any downstream module failed.
func (r *Result) Partial() bool {
	return len(r.Errors) > 0
}
