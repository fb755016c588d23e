// Package dasha builds the vimsottari planetary period tree.
//
// The 120-year cycle assigns each of nine lords a fixed span of years.
// The opening lord and its elapsed fraction come from the natal Moon's
// nakshatra: the lord is the nakshatra index mod 9 into the fixed lord
// sequence, and the fraction is the Moon's progress through that
// nakshatra. The first major period therefore starts before birth; its
// in-effect remainder at birth is the balance.
//
// Sub-periods divide a parent proportionally by the same year weights,
// starting from the parent's own lord. Each level's children tile the
// parent exactly, with the last child's end pinned to the parent's end
// so float drift cannot open a gap.
package dasha

import (
	"math"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
)

// Lords is the fixed vimsottari sequence, beginning with the lord of
// Ashwini.
var Lords = []ephem.Body{
	ephem.Ketu, ephem.Venus, ephem.Sun, ephem.Moon, ephem.Mars,
	ephem.Rahu, ephem.Jupiter, ephem.Saturn, ephem.Mercury,
}

// Years per lord; the sum is the 120-year cycle.
var Years = map[ephem.Body]float64{
	ephem.Ketu:    7,
	ephem.Venus:   20,
	ephem.Sun:     6,
	ephem.Moon:    10,
	ephem.Mars:    7,
	ephem.Rahu:    18,
	ephem.Jupiter: 16,
	ephem.Saturn:  19,
	ephem.Mercury: 17,
}

const (
	cycleYears = 120.0
	// yearDays is the Julian year used to lay periods onto the JD axis.
	yearDays = 365.25
)

// Level names the depth of a period.
type Level int

// The three supported period levels.
const (
	Maha Level = iota + 1
	Antara
	Pratyantara
)

func (l Level) String() string {
	switch l {
	case Maha:
		return "maha"
	case Antara:
		return "antara"
	default:
		return "pratyantara"
	}
}

// Period is one node of the dasha tree. Start and End are Julian Days;
// Children is nil at the requested depth.
type Period struct {
	Lord     ephem.Body `json:"lord" bson:"lord"`
	Level    Level      `json:"level" bson:"level"`
	Start    float64    `json:"start" bson:"start"` // JD, inclusive
	End      float64    `json:"end" bson:"end"`     // JD, exclusive
	Years    float64    `json:"years" bson:"years"`
	Children []Period   `json:"children,omitempty" bson:"children,omitempty"`
}

// Contains reports whether a Julian Day falls inside the period.
func (p Period) Contains(jd float64) bool {
	return jd >= p.Start && jd < p.End
}

// Tree is a full vimsottari cycle anchored to a birth instant.
type Tree struct {
	// BalanceYears is the remainder of the opening major period that was
	// still to run at birth.
	BalanceYears float64  `json:"balance_years" bson:"balance_years"`
	BirthJD      float64  `json:"birth_jd" bson:"birth_jd"`
	Periods      []Period `json:"periods" bson:"periods"`
}

// Compute builds the dasha tree from the Moon's sidereal longitude and
// the birth Julian Day, expanding depth levels (1 to 3).
func Compute(moonLon, birthJD float64, depth int) (Tree, error) {
	if err := errors.ValidateDashaDepth(depth); err != nil {
		return Tree{}, err
	}

	nak, _ := chart.NakshatraOf(moonLon)
	startLord := nak % 9
	frac := chart.NakshatraDegree(moonLon) / chart.NakshatraSpan
	if frac < 0 {
		frac = 0
	}
	if frac >= 1 {
		frac = math.Nextafter(1, 0)
	}

	firstYears := Years[Lords[startLord]]
	start := birthJD - frac*firstYears*yearDays

	t := Tree{
		BalanceYears: (1 - frac) * firstYears,
		BirthJD:      birthJD,
		Periods:      make([]Period, 0, len(Lords)),
	}

	cursor := start
	for i := 0; i < len(Lords); i++ {
		lord := Lords[(startLord+i)%len(Lords)]
		p := Period{
			Lord:  lord,
			Level: Maha,
			Start: cursor,
			End:   cursor + Years[lord]*yearDays,
			Years: Years[lord],
		}
		if depth > 1 {
			p.Children = subdivide(p, depth)
		}
		t.Periods = append(t.Periods, p)
		cursor = p.End
	}
	return t, nil
}

// subdivide splits a period into nine children weighted by the lords'
// years, starting from the period's own lord. The last child's end is
// pinned to the parent's end.
func subdivide(parent Period, depth int) []Period {
	startIdx := 0
	for i, l := range Lords {
		if l == parent.Lord {
			startIdx = i
			break
		}
	}

	span := parent.End - parent.Start
	children := make([]Period, 0, len(Lords))
	cursor := parent.Start
	for i := 0; i < len(Lords); i++ {
		lord := Lords[(startIdx+i)%len(Lords)]
		c := Period{
			Lord:  lord,
			Level: parent.Level + 1,
			Start: cursor,
			End:   cursor + span*Years[lord]/cycleYears,
			Years: parent.Years * Years[lord] / cycleYears,
		}
		if i == len(Lords)-1 {
			c.End = parent.End
		}
		if int(c.Level) < depth {
			c.Children = subdivide(c, depth)
		}
		children = append(children, c)
		cursor = c.End
	}
	return children
}

// Active returns the chain of periods in effect at a Julian Day, one
// per expanded level, outermost first. The chain is empty for instants
// outside the cycle.
func (t Tree) Active(jd float64) []Period {
	var chain []Period
	periods := t.Periods
	for len(periods) > 0 {
		found := false
		for _, p := range periods {
			if p.Contains(jd) {
				chain = append(chain, p)
				periods = p.Children
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return chain
}
