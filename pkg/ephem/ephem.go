// Package ephem provides time conversion, ayanamsa models, and planetary
// position lookup for Vedic chart computation.
//
// The package separates three concerns:
//   - Civil time to Julian Day conversion ([Instant])
//   - The sidereal correction angle ([Ayanamsa]) for a chosen model
//   - Tropical body longitudes via a pluggable [Provider], guarded by
//     [Adapter] so that a failed lookup surfaces as an explicit undefined
//     marker instead of a NaN flowing into downstream arithmetic
//
// The adapter owns the lunar node derivation: Rahu is the mean ascending
// node of the lunar orbit, and Ketu is always exactly 180° from Rahu. A
// built-in low-precision analytic provider ([NewMeanProvider]) makes the
// toolkit usable without external ephemeris data; callers with access to a
// high-precision ephemeris can supply their own Provider.
package ephem

import (
	"math"

	"github.com/grahalabs/jataka/pkg/errors"
)

// Body identifies one of the nine grahas.
type Body string

// The nine bodies of a Vedic chart. Rahu and Ketu are the lunar nodes and
// are derived, not looked up from a provider.
const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Mercury Body = "Mercury"
	Jupiter Body = "Jupiter"
	Venus   Body = "Venus"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu"
	Ketu    Body = "Ketu"
)

// Bodies lists all nine bodies in traditional order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// providerBodies are the bodies resolved through the Provider; the nodes
// are computed by the adapter itself.
var providerBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// Provider returns the tropical ecliptic longitude of a body in degrees.
// Implementations may perform file or network I/O; the core treats the
// call as a pure function of (body, jd).
type Provider interface {
	TropicalLongitude(body Body, jd float64) (float64, error)
}

// BodyLongitude is a guarded provider result. When Defined is false the
// longitude carries no meaning and must not enter any arithmetic; Err
// explains why the lookup failed.
type BodyLongitude struct {
	Body    Body
	Deg     float64
	Defined bool
	Err     error
}

// Adapter wraps a Provider with numeric guards and node derivation.
type Adapter struct {
	provider Provider
}

// NewAdapter creates an adapter around the given provider.
// If provider is nil, the built-in mean-element provider is used.
func NewAdapter(provider Provider) *Adapter {
	if provider == nil {
		provider = NewMeanProvider()
	}
	return &Adapter{provider: provider}
}

// Longitudes returns guarded tropical longitudes for all nine bodies at jd.
//
// Provider failures and non-finite values are converted to undefined
// markers for the affected body only; the remaining bodies are still
// resolved. Rahu is the mean lunar node and Ketu is exactly Rahu+180°, so
// the two are always both defined or both undefined.
func (a *Adapter) Longitudes(jd float64) []BodyLongitude {
	out := make([]BodyLongitude, 0, len(Bodies))
	for _, body := range providerBodies {
		deg, err := a.provider.TropicalLongitude(body, jd)
		switch {
		case err != nil:
			out = append(out, BodyLongitude{
				Body: body,
				Err:  errors.Wrap(errors.ErrCodeEphemeris, err, "no position for %s", body),
			})
		case math.IsNaN(deg) || math.IsInf(deg, 0):
			out = append(out, BodyLongitude{
				Body: body,
				Err:  errors.New(errors.ErrCodeEphemeris, "non-finite longitude for %s", body),
			})
		default:
			out = append(out, BodyLongitude{Body: body, Deg: Norm360(deg), Defined: true})
		}
	}

	rahu := MeanLunarNode(jd)
	out = append(out,
		BodyLongitude{Body: Rahu, Deg: rahu, Defined: true},
		BodyLongitude{Body: Ketu, Deg: Norm360(rahu + 180), Defined: true},
	)
	return out
}

// MeanLunarNode returns the tropical longitude of the mean ascending lunar
// node (Rahu) in degrees. The node regresses through the zodiac with a
// period of about 18.6 years.
func MeanLunarNode(jd float64) float64 {
	t := centuries(jd)
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t
	return Norm360(omega)
}

// Norm360 normalizes an angle in degrees to [0, 360).
func Norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// centuries returns Julian centuries from the J2000.0 epoch.
func centuries(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}
