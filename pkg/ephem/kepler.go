package ephem

import (
	"fmt"
	"math"
)

// MeanProvider is the built-in low-precision analytic ephemeris.
//
// Planetary longitudes come from the JPL approximate mean orbital elements
// (valid 1800-2050, usable over the supported calendar range at reduced
// accuracy): each planet's heliocentric position is computed from its
// osculating elements via Kepler's equation, then reduced to a geocentric
// ecliptic longitude against Earth's own heliocentric position. The Sun is
// the anti-direction of Earth; the Moon uses a truncated ELP-style
// periodic series. Typical accuracy is a few arcminutes for the planets
// and better than half a degree for the Moon, sufficient for sign and
// nakshatra placement in all but boundary cases.
type MeanProvider struct{}

// NewMeanProvider creates the built-in analytic provider.
func NewMeanProvider() Provider {
	return &MeanProvider{}
}

// orbit holds mean orbital elements at J2000 and their per-century rates.
// Angles are in degrees, the semi-major axis in AU.
type orbit struct {
	a, aDot       float64 // semi-major axis
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination
	l, lDot       float64 // mean longitude
	peri, periDot float64 // longitude of perihelion
	node, nodeDot float64 // longitude of ascending node
}

// JPL approximate elements, Table 8.10.2 (Standish).
var orbits = map[Body]orbit{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
}

// earthOrbit is the Earth-Moon barycenter.
var earthOrbit = orbit{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0}

// TropicalLongitude returns the geocentric tropical ecliptic longitude of
// body at jd, in degrees.
func (p *MeanProvider) TropicalLongitude(body Body, jd float64) (float64, error) {
	t := centuries(jd)

	switch body {
	case Sun:
		ex, ey, _ := heliocentric(earthOrbit, t)
		return Norm360(rad2deg(math.Atan2(-ey, -ex))), nil
	case Moon:
		return moonLongitude(t), nil
	case Rahu, Ketu:
		// Nodes are derived by the adapter, not looked up.
		return 0, fmt.Errorf("ephem: %s is not a provider body", body)
	}

	orb, ok := orbits[body]
	if !ok {
		return 0, fmt.Errorf("ephem: unknown body %q", body)
	}

	px, py, pz := heliocentric(orb, t)
	ex, ey, _ := heliocentric(earthOrbit, t)

	gx, gy := px-ex, py-ey
	_ = pz // latitude is not needed for longitude-only charts
	return Norm360(rad2deg(math.Atan2(gy, gx))), nil
}

// heliocentric computes a body's heliocentric ecliptic rectangular
// coordinates (AU) from mean elements at t Julian centuries past J2000.
func heliocentric(orb orbit, t float64) (x, y, z float64) {
	a := orb.a + orb.aDot*t
	e := orb.e + orb.eDot*t
	inc := deg2rad(orb.i + orb.iDot*t)
	l := orb.l + orb.lDot*t
	peri := orb.peri + orb.periDot*t
	node := deg2rad(orb.node + orb.nodeDot*t)

	m := deg2rad(Norm360(l - peri))
	argPeri := deg2rad(peri) - node

	ecc := solveKepler(m, e)

	// Position in the orbital plane, x' toward perihelion.
	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cosW, sinW := math.Cos(argPeri), math.Sin(argPeri)
	cosO, sinO := math.Cos(node), math.Sin(node)
	cosI, sinI := math.Cos(inc), math.Sin(inc)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	z = sinW*sinI*xp + cosW*sinI*yp
	return x, y, z
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly E by Newton iteration. M is in radians.
func solveKepler(m, e float64) float64 {
	ecc := m
	if e > 0.8 {
		ecc = math.Pi
	}
	for iter := 0; iter < 30; iter++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// moonLongitude returns the Moon's geocentric tropical longitude from a
// truncated periodic series (Meeus ch. 47, principal terms).
func moonLongitude(t float64) float64 {
	lp := 218.3164477 + 481267.88123421*t // mean longitude
	d := 297.8501921 + 445267.1114034*t   // mean elongation
	m := 357.5291092 + 35999.0502909*t    // Sun mean anomaly
	mp := 134.9633964 + 477198.8675055*t  // Moon mean anomaly
	f := 93.2720950 + 483202.0175233*t    // argument of latitude

	lon := lp +
		6.288774*sinDeg(mp) +
		1.274027*sinDeg(2*d-mp) +
		0.658314*sinDeg(2*d) +
		0.213618*sinDeg(2*mp) -
		0.185116*sinDeg(m) -
		0.114332*sinDeg(2*f) +
		0.058793*sinDeg(2*d-2*mp) +
		0.057066*sinDeg(2*d-m-mp) +
		0.053322*sinDeg(2*d+mp) +
		0.045758*sinDeg(2*d-m)

	return Norm360(lon)
}

func sinDeg(deg float64) float64 { return math.Sin(deg2rad(deg)) }
func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }
func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }
