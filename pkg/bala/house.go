package bala

import (
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// HouseStrength aggregates planetary strength into one house. Occupants
// contribute their full total, aspecting planets half of it scaled by
// aspect closeness. Significator is 1 when the house's karaka planet
// occupies or aspects it, else 0.
type HouseStrength struct {
	House        int     `json:"house" bson:"house"`
	Strength     float64 `json:"strength" bson:"strength"`
	Significator float64 `json:"significator" bson:"significator"`
}

// HouseStrengths scores all twelve houses from the planetary score sets.
// Undefined planets contribute nothing anywhere.
func HouseStrengths(positions []chart.PlanetPosition, scores []ScoreSet, cusps [12]chart.HouseCusp, asc float64, system chart.HouseSystem) [12]HouseStrength {
	totals := make(map[ephem.Body]float64, len(scores))
	for _, s := range scores {
		if s.Defined {
			totals[s.Body] = s.Total
		}
	}

	var out [12]HouseStrength
	for h := 1; h <= 12; h++ {
		// The house midpoint anchors aspect measurement.
		mid := ephem.Norm360(cusps[h-1].Longitude + 15)
		karaka := houseKarakas[h-1]

		row := HouseStrength{House: h}
		for _, p := range positions {
			if !p.Defined {
				continue
			}
			occupied := chart.HouseOf(p.Sidereal, asc, system) == h
			aspect := aspectValue(chart.AngularDistance(p.Sidereal, mid))

			switch {
			case occupied:
				row.Strength += totals[p.Body]
			case aspect > 0:
				row.Strength += 0.5 * aspect * totals[p.Body]
			}
			if p.Body == karaka && (occupied || aspect > 0) {
				row.Significator = 1
			}
		}
		out[h-1] = row
	}
	return out
}
