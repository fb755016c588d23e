package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/grahalabs/jataka/pkg/ashtakavarga"
	"github.com/grahalabs/jataka/pkg/bala"
	"github.com/grahalabs/jataka/pkg/cache"
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/dasha"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/observability"
	"github.com/grahalabs/jataka/pkg/panchanga"
	"github.com/grahalabs/jataka/pkg/varga"
	"github.com/grahalabs/jataka/pkg/yoga"
)

// Runner encapsulates chart computation with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store chart results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete chart computation with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	// Validation errors carry their own specific codes; wrapping here
	// would hide them from callers mapping codes to responses.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	jd, err := opts.Instant.JulianDay()
	if err != nil {
		return nil, err
	}

	cacheKey := r.Keyer.ChartKey(opts.ChartKeyOpts(jd))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "chart")
				cached.CacheHit = true
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chart")
	}

	start := time.Now()
	observability.Chart().OnComputeStart(ctx, jd)

	result, err := r.compute(ctx, opts, jd)
	observability.Chart().OnComputeComplete(ctx, jd, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLChart) == nil {
			observability.Cache().OnCacheSet(ctx, "chart", len(data))
		}
	}
	return result, nil
}

// compute runs the core stages and fans out the downstream modules.
func (r *Runner) compute(ctx context.Context, opts Options, jd float64) (*Result, error) {
	ayanamsa, err := r.coreStage(ctx, "ayanamsa", func() (float64, error) {
		return ephem.Ayanamsa(opts.Ayanamsa, jd)
	})
	if err != nil {
		return nil, err
	}

	adapter := ephem.NewAdapter(opts.Provider)
	stageStart := time.Now()
	longitudes := adapter.Longitudes(jd)
	observability.Chart().OnStageComplete(ctx, "ephemeris", time.Since(stageStart), nil)

	positions := chart.Positions(longitudes, ayanamsa)
	undefined := 0
	for _, p := range positions {
		if !p.Defined {
			undefined++
		}
	}
	if undefined > 0 {
		opts.Logger.Warn("ephemeris returned undefined bodies", "count", undefined)
	}

	stageStart = time.Now()
	asc := chart.Ascendant(jd, opts.Latitude, opts.Longitude, ayanamsa)
	cusps, err := chart.Cusps(asc, opts.HouseSystem)
	observability.Chart().OnStageComplete(ctx, "geometry", time.Since(stageStart), err)
	if err != nil {
		return nil, err
	}

	result := &Result{
		JulianDay:     jd,
		Ayanamsa:      ayanamsa,
		AyanamsaModel: opts.Ayanamsa,
		Ascendant:     asc,
		AscendantSign: chart.SignOf(asc),
		HouseSystem:   opts.HouseSystem,
		Cusps:         cusps,
		Positions:     positions,
		Errors:        make(map[string]string),
	}

	r.Logger.Info("computed core chart",
		"jd", jd,
		"ayanamsa", ayanamsa,
		"ascendant", asc,
		"undefined_bodies", undefined)

	r.fanOut(ctx, opts, result)

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

// fanOut runs the downstream modules concurrently. Failures are
// captured per module; no module's failure cancels another.
func (r *Runner) fanOut(ctx context.Context, opts Options, result *Result) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	fail := func(module string, err error) {
		mu.Lock()
		result.Errors[module] = err.Error()
		mu.Unlock()
		r.Logger.Warn("module failed", "module", module, "error", err)
	}

	run := func(module string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := fn()
			observability.Chart().OnStageComplete(ctx, module, time.Since(start), err)
			if err != nil {
				fail(module, err)
			}
		}()
	}

	sun := chart.Find(result.Positions, ephem.Sun)
	moon := chart.Find(result.Positions, ephem.Moon)

	run(ModulePanchanga, func() error {
		if !sun.Defined || !moon.Defined {
			return errors.New(errors.ErrCodeEphemeris, "panchanga requires defined Sun and Moon positions")
		}
		result.Panchanga = panchanga.Compute(sun.Sidereal, moon.Sidereal, result.JulianDay)
		return nil
	})

	run(ModuleVarga, func() error {
		result.Vargas = varga.ComputeAll(result.Positions)
		return nil
	})

	run(ModuleBala, func() error {
		result.Strengths = bala.Compute(result.Positions, result.Cusps, result.Ascendant, result.HouseSystem)
		result.Houses = bala.HouseStrengths(result.Positions, result.Strengths, result.Cusps, result.Ascendant, result.HouseSystem)
		return nil
	})

	run(ModuleAshtakavarga, func() error {
		result.Ashtakavarga = ashtakavarga.Compute(result.Positions, result.AscendantSign)
		return nil
	})

	run(ModuleDasha, func() error {
		if !moon.Defined {
			return errors.New(errors.ErrCodeEphemeris, "dasha requires a defined Moon position")
		}
		tree, err := dasha.Compute(moon.Sidereal, result.JulianDay, opts.DashaDepth)
		if err != nil {
			return err
		}
		result.Dasha = tree
		return nil
	})

	run(ModuleYoga, func() error {
		result.Yogas = yoga.Detect(result.Positions, result.Cusps, result.Ascendant, result.HouseSystem)
		return nil
	})

	wg.Wait()
}

// coreStage times a fatal stage and reports it to the hooks.
func (r *Runner) coreStage(ctx context.Context, name string, fn func() (float64, error)) (float64, error) {
	start := time.Now()
	v, err := fn()
	observability.Chart().OnStageComplete(ctx, name, time.Since(start), err)
	return v, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
