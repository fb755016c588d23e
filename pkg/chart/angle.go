package chart

import (
	"fmt"

	"github.com/grahalabs/jataka/pkg/ephem"
)

// Delta returns the directed angular separation (a−b) normalized to
// [0, 360). It answers "how far has a advanced past b going forward
// through the zodiac".
func Delta(a, b float64) float64 {
	return ephem.Norm360(a - b)
}

// AngularDistance returns the undirected separation between two
// longitudes, in [0, 180].
func AngularDistance(a, b float64) float64 {
	d := Delta(a, b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DMS splits a degree value into whole degrees, whole arcminutes, and
// fractional arcseconds. The input is expected to be non-negative.
func DMS(deg float64) (d, m int, s float64) {
	d = int(deg)
	frac := (deg - float64(d)) * 60
	m = int(frac)
	s = (frac - float64(m)) * 60
	return d, m, s
}

// FormatDMS renders a degree value as d°m′s″ for display.
func FormatDMS(deg float64) string {
	d, m, s := DMS(deg)
	return fmt.Sprintf("%d°%02d'%04.1f\"", d, m, s)
}
