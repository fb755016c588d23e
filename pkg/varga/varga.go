// Package varga implements the divisional (harmonic) chart engine.
//
// Each harmonic N divides every 30° sign into parts and maps each part to
// a target sign by a classical rule. The rules fall into a closed set of
// shapes, modeled as tagged variants consulted from an immutable table:
//   - cyclic: count signs from a start selected by the source sign's
//     parity, quality, or element, with a per-harmonic step
//   - list: a fixed sequence of target signs per parity (hora, panchamsa)
//   - segments: unequal divisions with explicit widths (trimsamsa)
//
// Every rule is a pure, total function of (source sign, degree-in-sign):
// defined for all degrees in [0, 30), independent of other bodies and of
// evaluation order. Undefined input positions map to undefined output,
// never to a default sign.
//
// Where classical sources disagree on a rule (notably D8 and D11), the
// convention used here is the quality-based start for D8 and counting
// from the eleventh sign for D11.
package varga

import (
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
)

// Harmonics lists the supported divisional charts in ascending order.
var Harmonics = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 16, 20, 24, 27, 30, 40, 45, 60}

// ruleKind tags the shape of a divisional rule.
type ruleKind int

const (
	kindCyclic ruleKind = iota
	kindList
	kindSegments
)

// rule is one harmonic's mapping. Exactly one shape is populated,
// selected by kind.
type rule struct {
	kind  ruleKind
	parts int

	// cyclic: target = start(sign) + step*part
	start func(s chart.Sign) chart.Sign
	step  int

	// list: target = list(sign parity)[part]
	oddList  []chart.Sign
	evenList []chart.Sign

	// segments: widths in degrees summing to 30, with per-parity targets
	widths      []float64
	oddTargets  []chart.Sign
	evenTargets []chart.Sign
}

func fromSelf(s chart.Sign) chart.Sign { return s }

// byQuality returns a start selector mapping movable/fixed/dual signs to
// the given starts.
func byQuality(movable, fixed, dual chart.Sign) func(chart.Sign) chart.Sign {
	return func(s chart.Sign) chart.Sign {
		switch s.Quality() {
		case chart.Movable:
			return movable
		case chart.Fixed:
			return fixed
		default:
			return dual
		}
	}
}

// byElement returns a start selector mapping fire/earth/air/water signs
// to the given starts.
func byElement(fire, earth, air, water chart.Sign) func(chart.Sign) chart.Sign {
	return func(s chart.Sign) chart.Sign {
		switch s.Element() {
		case chart.Fire:
			return fire
		case chart.Earth:
			return earth
		case chart.Air:
			return air
		default:
			return water
		}
	}
}

// byParity returns a start selector for odd/even signs.
func byParity(odd, even chart.Sign) func(chart.Sign) chart.Sign {
	return func(s chart.Sign) chart.Sign {
		if s.Odd() {
			return odd
		}
		return even
	}
}

// rules is the immutable harmonic table, loaded once and never mutated.
var rules = map[int]rule{
	1: {kind: kindCyclic, parts: 1, start: fromSelf, step: 0},

	// Hora: odd signs split Sun (Leo) then Moon (Cancer); even reversed.
	2: {kind: kindList, parts: 2,
		oddList:  []chart.Sign{chart.Leo, chart.Cancer},
		evenList: []chart.Sign{chart.Cancer, chart.Leo}},

	// Drekkana: 1st, 5th, 9th from the sign.
	3: {kind: kindCyclic, parts: 3, start: fromSelf, step: 4},

	// Chaturthamsa: 1st, 4th, 7th, 10th from the sign.
	4: {kind: kindCyclic, parts: 4, start: fromSelf, step: 3},

	// Panchamsa: fixed sequences per parity.
	5: {kind: kindList, parts: 5,
		oddList:  []chart.Sign{chart.Aries, chart.Aquarius, chart.Sagittarius, chart.Gemini, chart.Libra},
		evenList: []chart.Sign{chart.Taurus, chart.Virgo, chart.Pisces, chart.Capricorn, chart.Scorpio}},

	// Shashthamsa: from Aries for odd signs, Libra for even.
	6: {kind: kindCyclic, parts: 6, start: byParity(chart.Aries, chart.Libra), step: 1},

	// Saptamsa: from the sign itself for odd, from the 7th for even.
	7: {kind: kindCyclic, parts: 7, step: 1,
		start: func(s chart.Sign) chart.Sign {
			if s.Odd() {
				return s
			}
			return (s + 6) % 12
		}},

	// Ashtamsa: start by quality.
	8: {kind: kindCyclic, parts: 8, start: byQuality(chart.Aries, chart.Leo, chart.Sagittarius), step: 1},

	// Navamsa: start by triplicity (equivalent to the movable/fixed/dual rule).
	9: {kind: kindCyclic, parts: 9, start: byElement(chart.Aries, chart.Capricorn, chart.Libra, chart.Cancer), step: 1},

	// Dasamsa: from the sign itself for odd, from the 9th for even.
	10: {kind: kindCyclic, parts: 10, step: 1,
		start: func(s chart.Sign) chart.Sign {
			if s.Odd() {
				return s
			}
			return (s + 8) % 12
		}},

	// Rudramsa: counted from the eleventh sign.
	11: {kind: kindCyclic, parts: 11, step: 1,
		start: func(s chart.Sign) chart.Sign { return (s + 10) % 12 }},

	// Dvadasamsa: from the sign itself.
	12: {kind: kindCyclic, parts: 12, start: fromSelf, step: 1},

	// Shodasamsa: start by quality.
	16: {kind: kindCyclic, parts: 16, start: byQuality(chart.Aries, chart.Leo, chart.Sagittarius), step: 1},

	// Vimsamsa: start by quality.
	20: {kind: kindCyclic, parts: 20, start: byQuality(chart.Aries, chart.Sagittarius, chart.Leo), step: 1},

	// Chaturvimsamsa: from Leo for odd signs, Cancer for even.
	24: {kind: kindCyclic, parts: 24, start: byParity(chart.Leo, chart.Cancer), step: 1},

	// Bhamsa: start by triplicity.
	27: {kind: kindCyclic, parts: 27, start: byElement(chart.Aries, chart.Cancer, chart.Libra, chart.Capricorn), step: 1},

	// Trimsamsa: unequal segments ruled by the five non-luminaries.
	30: {kind: kindSegments, parts: 5,
		widths:      []float64{5, 5, 8, 7, 5},
		oddTargets:  []chart.Sign{chart.Aries, chart.Aquarius, chart.Sagittarius, chart.Gemini, chart.Libra},
		evenTargets: []chart.Sign{chart.Taurus, chart.Virgo, chart.Pisces, chart.Capricorn, chart.Scorpio}},

	// Khavedamsa: from Aries for odd signs, Libra for even.
	40: {kind: kindCyclic, parts: 40, start: byParity(chart.Aries, chart.Libra), step: 1},

	// Akshavedamsa: start by quality.
	45: {kind: kindCyclic, parts: 45, start: byQuality(chart.Aries, chart.Leo, chart.Sagittarius), step: 1},

	// Shashtiamsa: half-degree parts counted from the sign itself.
	60: {kind: kindCyclic, parts: 60, start: fromSelf, step: 1},
}

// MapSign maps a rasi placement (sign, degree-in-sign) to its sign in the
// N-th harmonic. The mapping is total over [0, 30).
func MapSign(harmonic int, sign chart.Sign, degreeInSign float64) (chart.Sign, error) {
	r, ok := rules[harmonic]
	if !ok {
		return chart.SignUndefined, errors.New(errors.ErrCodeInvalidHarmonic, "unsupported harmonic D%d", harmonic)
	}
	if sign == chart.SignUndefined {
		return chart.SignUndefined, nil
	}

	switch r.kind {
	case kindList:
		part := partIndex(degreeInSign, r.parts)
		if sign.Odd() {
			return r.oddList[part], nil
		}
		return r.evenList[part], nil

	case kindSegments:
		targets := r.oddTargets
		if !sign.Odd() {
			targets = r.evenTargets
		}
		edge := 0.0
		for i, w := range r.widths {
			edge += w
			if degreeInSign < edge {
				return targets[i], nil
			}
		}
		return targets[len(targets)-1], nil

	default:
		part := partIndex(degreeInSign, r.parts)
		return (r.start(sign) + chart.Sign(r.step*part)) % 12, nil
	}
}

// partIndex returns the equal-width part containing a degree, clamped so
// float error at the upper bound cannot escape the sign.
func partIndex(deg float64, parts int) int {
	part := int(deg * float64(parts) / 30)
	if part >= parts {
		part = parts - 1
	}
	if part < 0 {
		part = 0
	}
	return part
}

// Position is one body's placement in a divisional chart. Degree is the
// originating rasi degree, passed through unchanged for display.
type Position struct {
	Body    ephem.Body `json:"body" bson:"body"`
	Defined bool       `json:"defined" bson:"defined"`
	Sign    chart.Sign `json:"sign" bson:"sign"`
	Degree  float64    `json:"degree" bson:"degree"`
}

// Chart is one harmonic's full set of body placements.
type Chart struct {
	Harmonic  int        `json:"harmonic" bson:"harmonic"`
	Positions []Position `json:"positions" bson:"positions"`
}

// Compute maps every planet position into the N-th harmonic chart.
// Undefined planets propagate as undefined positions.
func Compute(harmonic int, positions []chart.PlanetPosition) (Chart, error) {
	if _, ok := rules[harmonic]; !ok {
		return Chart{}, errors.New(errors.ErrCodeInvalidHarmonic, "unsupported harmonic D%d", harmonic)
	}

	out := Chart{Harmonic: harmonic, Positions: make([]Position, len(positions))}
	for i, p := range positions {
		if !p.Defined {
			out.Positions[i] = Position{Body: p.Body, Sign: chart.SignUndefined}
			continue
		}
		sign, err := MapSign(harmonic, p.Sign, p.Degree)
		if err != nil {
			return Chart{}, err
		}
		out.Positions[i] = Position{Body: p.Body, Defined: true, Sign: sign, Degree: p.Degree}
	}
	return out, nil
}

// ComputeAll maps positions into every supported harmonic, keyed by N.
func ComputeAll(positions []chart.PlanetPosition) map[int]Chart {
	out := make(map[int]Chart, len(Harmonics))
	for _, n := range Harmonics {
		c, err := Compute(n, positions)
		if err != nil {
			continue // unreachable for the fixed harmonic set
		}
		out[n] = c
	}
	return out
}
