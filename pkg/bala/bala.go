// Package bala scores planetary and house strength.
//
// The six-fold planetary score keeps the classical component structure
// (positional, directional, temporal, aspectual, natural) but normalizes
// each component to roughly unit scale instead of virupas. Components
// are signed where the classical model is signed: the aspectual score is
// an algebraic sum, so totals can be negative.
package bala

import (
	"math"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// ScoreSet is one planet's component and total strength. Components for
// an undefined planet are zero and Defined is false; a zero total from
// an undefined planet is not comparable to a computed zero.
type ScoreSet struct {
	Body    ephem.Body `json:"body" bson:"body"`
	Defined bool       `json:"defined" bson:"defined"`
	Dignity Dignity    `json:"dignity" bson:"dignity"`

	Sthana     float64 `json:"sthana" bson:"sthana"`
	Dig        float64 `json:"dig" bson:"dig"`
	Kala       float64 `json:"kala" bson:"kala"`
	Drik       float64 `json:"drik" bson:"drik"`
	Naisargika float64 `json:"naisargika" bson:"naisargika"`
	Total      float64 `json:"total" bson:"total"`
}

// dignityBonus converts a dignity class into a positional adjustment.
var dignityBonus = map[Dignity]float64{
	Exalted:     0.5,
	OwnSign:     0.5,
	Friendly:    0.25,
	Neutral:     0,
	EnemySign:   -0.25,
	Debilitated: -0.5,
}

// IsDayBirth reports whether the Sun is above the horizon, i.e. in
// houses 7 through 12 counted from the ascendant. An undefined Sun
// defaults to a day birth.
func IsDayBirth(positions []chart.PlanetPosition, asc float64, hs chart.HouseSystem) bool {
	sun := chart.Find(positions, ephem.Sun)
	if !sun.Defined {
		return true
	}
	return chart.HouseOf(sun.Sidereal, asc, hs) >= 7
}

// Compute scores every planet in the input. Undefined planets yield
// zeroed score sets and do not contribute aspects to others.
func Compute(positions []chart.PlanetPosition, cusps [12]chart.HouseCusp, asc float64, hs chart.HouseSystem) []ScoreSet {
	day := IsDayBirth(positions, asc, hs)
	sun := chart.Find(positions, ephem.Sun)
	moon := chart.Find(positions, ephem.Moon)

	out := make([]ScoreSet, len(positions))
	for i, p := range positions {
		if !p.Defined {
			out[i] = ScoreSet{Body: p.Body, Dignity: Neutral}
			continue
		}

		s := ScoreSet{
			Body:       p.Body,
			Defined:    true,
			Dignity:    DignityOf(p.Body, p.Sign),
			Sthana:     sthanaBala(p),
			Dig:        digBala(p, cusps),
			Kala:       kalaBala(p.Body, day, sun, moon),
			Drik:       drikBala(p, positions),
			Naisargika: naisargika[p.Body],
		}
		s.Total = s.Sthana + s.Dig + s.Kala + s.Drik + s.Naisargika
		out[i] = s
	}
	return out
}

// sthanaBala is the positional score: proximity to the exaltation point
// scaled to [0, 1], plus the dignity adjustment.
func sthanaBala(p chart.PlanetPosition) float64 {
	score := 0.0
	if exalt, ok := exaltationPoints[p.Body]; ok {
		// Full at the deep exaltation point, zero at deep debilitation.
		debil := ephem.Norm360(exalt + 180)
		score = chart.AngularDistance(p.Sidereal, debil) / 180
	}
	return score + dignityBonus[DignityOf(p.Body, p.Sign)]
}

// digBala is the directional score: full at the planet's strong angle,
// zero at the opposite angle, linear between. The lunar nodes have no
// directional house and score zero.
func digBala(p chart.PlanetPosition, cusps [12]chart.HouseCusp) float64 {
	house, ok := digStrongHouse[p.Body]
	if !ok {
		return 0
	}
	weakPoint := ephem.Norm360(cusps[house-1].Longitude + 180)
	return chart.AngularDistance(p.Sidereal, weakPoint) / 180
}

// kalaBala is the temporal score. The Moon's is its paksha strength,
// growing with elongation from the Sun; the other planets score on the
// day/night rule, with Mercury strong in both.
func kalaBala(body ephem.Body, day bool, sun, moon chart.PlanetPosition) float64 {
	if body == ephem.Moon {
		if !sun.Defined || !moon.Defined {
			return 0
		}
		return chart.AngularDistance(moon.Sidereal, sun.Sidereal) / 180
	}
	if body == ephem.Mercury {
		return 1
	}
	if day && dayStrong[body] || !day && nightStrong[body] {
		return 1
	}
	if _, classical := naisargika[body]; !classical {
		return 0 // nodes carry no temporal score
	}
	return 0.25
}

// aspectValue grades the aspect between two longitudes: full at the
// opposition, partial at the square and trine, quarter at the sextile,
// each with a 10° orb and linear falloff.
func aspectValue(sep float64) float64 {
	points := []struct {
		angle, weight float64
	}{
		{180, 1.0},
		{120, 0.5},
		{90, 0.5},
		{60, 0.25},
	}
	const orb = 10.0
	best := 0.0
	for _, pt := range points {
		d := math.Abs(sep - pt.angle)
		if d < orb {
			v := pt.weight * (1 - d/orb)
			if v > best {
				best = v
			}
		}
	}
	return best
}

// drikBala is the signed aspectual score: benefic aspects add, malefic
// aspects subtract. Undefined bodies cast no aspects.
func drikBala(p chart.PlanetPosition, positions []chart.PlanetPosition) float64 {
	sum := 0.0
	for _, o := range positions {
		if !o.Defined || o.Body == p.Body {
			continue
		}
		v := aspectValue(chart.AngularDistance(o.Sidereal, p.Sidereal))
		if v == 0 {
			continue
		}
		if Benefics[o.Body] {
			sum += 0.25 * v
		} else {
			sum -= 0.25 * v
		}
	}
	return sum
}
