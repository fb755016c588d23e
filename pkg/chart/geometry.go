package chart

import (
	"math"

	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
)

// HouseSystem selects how house cusps are derived from the ascendant.
type HouseSystem string

// Supported house systems. Equal-house is the default: every cusp is an
// exact 30° offset from the ascendant degree. Whole-sign anchors the first
// house at 0° of the ascendant's sign instead.
const (
	HouseEqual     HouseSystem = "equal"
	HouseWholeSign HouseSystem = "whole-sign"
)

// ValidHouseSystems is the set of supported house systems.
var ValidHouseSystems = map[HouseSystem]bool{
	HouseEqual:     true,
	HouseWholeSign: true,
}

// ValidateHouseSystem checks that a house system is supported.
// Quadrant systems (Placidus, Koch) are not implemented.
func ValidateHouseSystem(hs HouseSystem) error {
	if !ValidHouseSystems[hs] {
		return errors.New(errors.ErrCodeInvalidHouseSystem, "invalid house system: %q (must be one of: equal, whole-sign)", hs)
	}
	return nil
}

// Ascendant computes the sidereal ascendant longitude in degrees.
//
// The tropical ascendant follows from the local sidereal time (RAMC), the
// observer latitude, and the obliquity of the ecliptic via the standard
// right-ascension inversion:
//
//	λ = atan2(-cos RAMC, sin RAMC·cos ε + tan φ·sin ε)
//
// The ayanamsa is subtracted after the tropical value is derived, matching
// how planet longitudes are converted.
func Ascendant(jd, latitudeDeg, longitudeDeg, ayanamsa float64) float64 {
	ramc := rad(ephem.LST(jd, longitudeDeg))
	eps := rad(ephem.Obliquity(jd))
	phi := rad(latitudeDeg)

	tropical := deg(math.Atan2(
		-math.Cos(ramc),
		math.Sin(ramc)*math.Cos(eps)+math.Tan(phi)*math.Sin(eps),
	))
	return ephem.Norm360(tropical - ayanamsa)
}

// HouseCusp is one of the twelve house boundaries.
type HouseCusp struct {
	House     int     `json:"house" bson:"house"` // 1-12
	Longitude float64 `json:"longitude" bson:"longitude"`
	Sign      Sign    `json:"sign" bson:"sign"`
	Degree    float64 `json:"degree" bson:"degree"` // degree within sign
}

// Cusps derives the twelve house cusps from a sidereal ascendant.
//
// Under HouseEqual, cusp n = ascendant + 30·(n−1): every cusp shares the
// ascendant's exact degree within its sign. Under HouseWholeSign, cusp n
// is the start of the n-th sign counted from the ascendant's sign.
func Cusps(ascendant float64, hs HouseSystem) ([12]HouseCusp, error) {
	var cusps [12]HouseCusp
	if err := ValidateHouseSystem(hs); err != nil {
		return cusps, err
	}

	base := ascendant
	if hs == HouseWholeSign {
		base = float64(SignOf(ascendant)) * 30
	}

	for n := 0; n < 12; n++ {
		lon := ephem.Norm360(base + 30*float64(n))
		cusps[n] = HouseCusp{
			House:     n + 1,
			Longitude: lon,
			Sign:      SignOf(lon),
			Degree:    DegreeInSign(lon),
		}
	}
	return cusps, nil
}

// HouseOf returns the house (1-12) occupied by a sidereal longitude.
//
// For equal houses, the house is the 30° sector counted from the
// ascendant degree; for whole-sign houses it is the sign counted from the
// ascendant's sign.
func HouseOf(lon, ascendant float64, hs HouseSystem) int {
	switch hs {
	case HouseWholeSign:
		return int(SignOf(lon)-SignOf(ascendant)+12)%12 + 1
	default:
		return int(Delta(lon, ascendant)/30) + 1
	}
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
