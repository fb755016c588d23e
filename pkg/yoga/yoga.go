// Package yoga detects classical planetary combinations in a rasi chart.
//
// Every rule is a pure predicate over the chart: detection is
// order-independent and a rule either fires with a strength in (0, 1]
// or stays silent. Rules that reference an undefined planet do not fire;
// absence-based rules (Kemadruma) additionally require every planet they
// must rule out to be defined, since an unknown position cannot prove
// absence.
package yoga

import (
	"sort"

	"github.com/grahalabs/jataka/pkg/bala"
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// Match is one detected yoga.
type Match struct {
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Bodies      []ephem.Body `json:"bodies" bson:"bodies"`
	Strength    float64      `json:"strength" bson:"strength"` // (0, 1]
}

// chartCtx bundles the inputs every rule sees.
type chartCtx struct {
	positions []chart.PlanetPosition
	cusps     [12]chart.HouseCusp
	asc       float64
	system    chart.HouseSystem
}

func (c chartCtx) find(b ephem.Body) chart.PlanetPosition {
	return chart.Find(c.positions, b)
}

func (c chartCtx) houseOf(p chart.PlanetPosition) int {
	return chart.HouseOf(p.Sidereal, c.asc, c.system)
}

// lordOfHouse resolves the house's sign lord and that lord's position.
func (c chartCtx) lordOfHouse(h int) (ephem.Body, chart.PlanetPosition) {
	lord := c.cusps[h-1].Sign.Lord()
	return lord, c.find(lord)
}

// kendra houses are the angles from the ascendant.
func isKendra(h int) bool { return h == 1 || h == 4 || h == 7 || h == 10 }

// signDistance counts signs inclusively from a to b (1-12).
func signDistance(from, to chart.Sign) int {
	return int(to-from+12)%12 + 1
}

// rule is one catalog entry. detect returns the strength and the bodies
// involved, or ok=false when the combination is absent.
type rule struct {
	name        string
	description string
	detect      func(c chartCtx) (strength float64, bodies []ephem.Body, ok bool)
}

// mahapurusha builds one of the five great-person rules: the planet in
// its own or exaltation sign, in a kendra from the ascendant.
func mahapurusha(name string, body ephem.Body, desc string) rule {
	return rule{
		name:        name,
		description: desc,
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			p := c.find(body)
			if !p.Defined || !isKendra(c.houseOf(p)) {
				return 0, nil, false
			}
			switch bala.DignityOf(body, p.Sign) {
			case bala.Exalted:
				return 1.0, []ephem.Body{body}, true
			case bala.OwnSign:
				return 0.75, []ephem.Body{body}, true
			}
			return 0, nil, false
		},
	}
}

// conjunction builds a same-sign rule for two bodies, with strength
// growing as the pair tightens.
func conjunction(name string, a, b ephem.Body, desc string) rule {
	return rule{
		name:        name,
		description: desc,
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			pa, pb := c.find(a), c.find(b)
			if !pa.Defined || !pb.Defined || pa.Sign != pb.Sign {
				return 0, nil, false
			}
			sep := chart.AngularDistance(pa.Sidereal, pb.Sidereal)
			return 1 - sep/30, []ephem.Body{a, b}, true
		},
	}
}

var catalog = []rule{
	{
		name:        "Gajakesari",
		description: "Jupiter in a kendra from the Moon",
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			moon, jup := c.find(ephem.Moon), c.find(ephem.Jupiter)
			if !moon.Defined || !jup.Defined {
				return 0, nil, false
			}
			d := signDistance(moon.Sign, jup.Sign)
			if d != 1 && d != 4 && d != 7 && d != 10 {
				return 0, nil, false
			}
			s := 0.6
			switch bala.DignityOf(ephem.Jupiter, jup.Sign) {
			case bala.Exalted, bala.OwnSign:
				s += 0.4
			case bala.Friendly:
				s += 0.2
			}
			return s, []ephem.Body{ephem.Moon, ephem.Jupiter}, true
		},
	},

	conjunction("Budhaditya", ephem.Sun, ephem.Mercury,
		"Sun and Mercury conjunct in one sign"),
	conjunction("Chandra-Mangala", ephem.Moon, ephem.Mars,
		"Moon and Mars conjunct in one sign"),

	mahapurusha("Ruchaka", ephem.Mars, "Mars dignified in a kendra"),
	mahapurusha("Bhadra", ephem.Mercury, "Mercury dignified in a kendra"),
	mahapurusha("Hamsa", ephem.Jupiter, "Jupiter dignified in a kendra"),
	mahapurusha("Malavya", ephem.Venus, "Venus dignified in a kendra"),
	mahapurusha("Sasa", ephem.Saturn, "Saturn dignified in a kendra"),

	{
		name:        "Kemadruma",
		description: "no planet beside or with the Moon",
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			moon := c.find(ephem.Moon)
			if !moon.Defined {
				return 0, nil, false
			}
			// The Sun and the nodes do not relieve Kemadruma.
			others := []ephem.Body{ephem.Mars, ephem.Mercury, ephem.Jupiter, ephem.Venus, ephem.Saturn}
			for _, b := range others {
				p := c.find(b)
				if !p.Defined {
					return 0, nil, false
				}
				d := signDistance(moon.Sign, p.Sign)
				if d == 1 || d == 2 || d == 12 {
					return 0, nil, false
				}
			}
			return 0.5, []ephem.Body{ephem.Moon}, true
		},
	},

	{
		name:        "Dhana",
		description: "wealth lords placed in gainful houses",
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			gainful := map[int]bool{1: true, 2: true, 5: true, 9: true, 11: true}
			s := 0.0
			var bodies []ephem.Body
			for _, h := range []int{2, 11} {
				lord, p := c.lordOfHouse(h)
				if p.Defined && gainful[c.houseOf(p)] {
					s += 0.4
					bodies = append(bodies, lord)
				}
			}
			if s == 0 {
				return 0, nil, false
			}
			return s, bodies, true
		},
	},

	{
		name:        "Neecha Bhanga",
		description: "debilitation cancelled by the dispositor's angular placement",
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			moon := c.find(ephem.Moon)
			for _, p := range c.positions {
				if !p.Defined || bala.DignityOf(p.Body, p.Sign) != bala.Debilitated {
					continue
				}
				lord := p.Sign.Lord()
				lp := c.find(lord)
				if !lp.Defined {
					continue
				}
				if isKendra(c.houseOf(lp)) ||
					(moon.Defined && isKendra(signDistance(moon.Sign, lp.Sign))) {
					return 0.6, []ephem.Body{p.Body, lord}, true
				}
			}
			return 0, nil, false
		},
	},

	{
		name:        "Raja",
		description: "kendra and trikona lords conjunct",
		detect: func(c chartCtx) (float64, []ephem.Body, bool) {
			for _, kh := range []int{1, 4, 7, 10} {
				klord, kp := c.lordOfHouse(kh)
				if !kp.Defined {
					continue
				}
				for _, th := range []int{5, 9} {
					tlord, tp := c.lordOfHouse(th)
					if !tp.Defined || tlord == klord {
						continue
					}
					if kp.Sign == tp.Sign {
						return 0.7, []ephem.Body{klord, tlord}, true
					}
				}
			}
			return 0, nil, false
		},
	},
}

// Detect runs the full catalog over a chart. Matches come back sorted by
// strength descending, ties broken by name, so detection order never
// shows through.
func Detect(positions []chart.PlanetPosition, cusps [12]chart.HouseCusp, asc float64, system chart.HouseSystem) []Match {
	c := chartCtx{positions: positions, cusps: cusps, asc: asc, system: system}

	var out []Match
	for _, r := range catalog {
		s, bodies, ok := r.detect(c)
		if !ok || s <= 0 {
			continue
		}
		if s > 1 {
			s = 1
		}
		out = append(out, Match{
			Name:        r.name,
			Description: r.description,
			Bodies:      bodies,
			Strength:    s,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		return out[i].Name < out[j].Name
	})
	return out
}
