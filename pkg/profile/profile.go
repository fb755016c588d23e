// Package profile loads saved birth profiles from TOML files.
//
// A profile file carries shared computation defaults plus any number of
// named profiles:
//
//	house_system = "equal"
//	ayanamsa = "lahiri"
//	dasha_depth = 3
//
//	[profiles.ravi]
//	name = "Ravi"
//	date = "1991-06-18"
//	time = "07:10:00"
//	utc_offset = 5.5
//	latitude = 10.80
//	longitude = 76.97
//
// Profiles may override any shared default. Date and time are kept as
// strings in the file so no timezone interpretation happens at parse
// time; the UTC offset is always explicit.
package profile

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

// Profile is one saved birth record.
type Profile struct {
	Name      string  `toml:"name"`
	Date      string  `toml:"date"` // YYYY-MM-DD
	Time      string  `toml:"time"` // HH:MM or HH:MM:SS
	UTCOffset float64 `toml:"utc_offset"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`

	// Per-profile overrides; empty values fall back to the file defaults.
	HouseSystem string `toml:"house_system"`
	Ayanamsa    string `toml:"ayanamsa"`
	DashaDepth  int    `toml:"dasha_depth"`
}

// File is a parsed profile file.
type File struct {
	HouseSystem string             `toml:"house_system"`
	Ayanamsa    string             `toml:"ayanamsa"`
	DashaDepth  int                `toml:"dasha_depth"`
	Profiles    map[string]Profile `toml:"profiles"`
}

// Load parses a profile file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses profile file contents. Keys that do not decode into the
// file schema are rejected rather than silently dropped.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse profile file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "unknown key %q in profile file", undecoded[0].String())
	}
	return &f, nil
}

// Names returns the profile keys in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for k := range f.Profiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Options resolves a named profile into pipeline options, applying the
// file defaults for any field the profile leaves empty.
func (f *File) Options(name string) (pipeline.Options, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidProfile, "profile %q not found", name)
	}

	instant, err := parseInstant(p)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Instant:     instant,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		HouseSystem: chart.HouseSystem(firstNonEmpty(p.HouseSystem, f.HouseSystem)),
		Ayanamsa:    ephem.AyanamsaModel(firstNonEmpty(p.Ayanamsa, f.Ayanamsa)),
		DashaDepth:  p.DashaDepth,
	}
	if opts.DashaDepth == 0 {
		opts.DashaDepth = f.DashaDepth
	}
	return opts, nil
}

// parseInstant assembles the birth instant from the profile's date and
// time strings plus the explicit UTC offset.
func parseInstant(p Profile) (ephem.Instant, error) {
	return ParseInstant(p.Date, p.Time, p.UTCOffset)
}

// ParseInstant builds a birth instant from a YYYY-MM-DD date, an HH:MM
// or HH:MM:SS time, and an explicit UTC offset in hours. The CLI shares
// this with profile resolution so both accept the same formats.
func ParseInstant(date, clock string, utcOffset float64) (ephem.Instant, error) {
	var in ephem.Instant
	if _, err := fmt.Sscanf(date, "%d-%d-%d", &in.Year, &in.Month, &in.Day); err != nil {
		return in, errors.New(errors.ErrCodeInvalidProfile, "invalid date %q (want YYYY-MM-DD)", date)
	}

	switch n, _ := fmt.Sscanf(clock, "%d:%d:%f", &in.Hour, &in.Minute, &in.Second); n {
	case 2, 3:
		// HH:MM or HH:MM:SS
	default:
		if clock != "" {
			return in, errors.New(errors.ErrCodeInvalidProfile, "invalid time %q (want HH:MM or HH:MM:SS)", clock)
		}
	}

	in.UTCOffset = utcOffset
	return in, in.Validate()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
