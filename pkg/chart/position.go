package chart

import (
	"github.com/grahalabs/jataka/pkg/ephem"
)

// PlanetPosition is a body's fully classified chart placement.
//
// When Defined is false the longitude fields are zero and meaningless,
// Sign is SignUndefined, and Nakshatra is -1; downstream modules must
// treat the body as absent rather than reading the zero values. Every
// "update" to a position is a recomputation producing a new value.
type PlanetPosition struct {
	Body    ephem.Body `json:"body" bson:"body"`
	Defined bool       `json:"defined" bson:"defined"`

	Tropical float64 `json:"tropical" bson:"tropical"` // tropical longitude, degrees
	Sidereal float64 `json:"sidereal" bson:"sidereal"` // sidereal longitude, degrees

	Sign      Sign    `json:"sign" bson:"sign"`
	Degree    float64 `json:"degree" bson:"degree"` // degree within sign, [0, 30)
	Nakshatra int     `json:"nakshatra" bson:"nakshatra"`
	Pada      int     `json:"pada" bson:"pada"`

	// Error carries the ephemeris failure message for undefined bodies.
	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

// NewPlanetPosition classifies a guarded ephemeris longitude into a chart
// placement. Undefined input yields an undefined position with the
// originating error preserved; it never defaults to a fixed sign.
func NewPlanetPosition(bl ephem.BodyLongitude, ayanamsa float64) PlanetPosition {
	if !bl.Defined {
		msg := "ephemeris unavailable"
		if bl.Err != nil {
			msg = bl.Err.Error()
		}
		return PlanetPosition{
			Body:      bl.Body,
			Sign:      SignUndefined,
			Nakshatra: -1,
			Error:     msg,
		}
	}

	sidereal := ephem.Norm360(bl.Deg - ayanamsa)
	nak, pada := NakshatraOf(sidereal)
	return PlanetPosition{
		Body:      bl.Body,
		Defined:   true,
		Tropical:  bl.Deg,
		Sidereal:  sidereal,
		Sign:      SignOf(sidereal),
		Degree:    DegreeInSign(sidereal),
		Nakshatra: nak,
		Pada:      pada,
	}
}

// Positions classifies all guarded longitudes with a shared ayanamsa.
func Positions(longs []ephem.BodyLongitude, ayanamsa float64) []PlanetPosition {
	out := make([]PlanetPosition, len(longs))
	for i, bl := range longs {
		out[i] = NewPlanetPosition(bl, ayanamsa)
	}
	return out
}

// Find returns the position for a body, or a zero undefined position if
// the body is not present.
func Find(positions []PlanetPosition, body ephem.Body) PlanetPosition {
	for _, p := range positions {
		if p.Body == body {
			return p
		}
	}
	return PlanetPosition{Body: body, Sign: SignUndefined, Nakshatra: -1, Error: "not computed"}
}
