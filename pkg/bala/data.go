package bala

import (
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// Dignity classifies a planet's standing in a sign.
type Dignity string

// Dignity categories in descending order of strength.
const (
	Exalted     Dignity = "Exalted"
	OwnSign     Dignity = "Own Sign"
	Friendly    Dignity = "Friendly"
	Neutral     Dignity = "Neutral"
	EnemySign   Dignity = "Enemy Sign"
	Debilitated Dignity = "Debilitated"
)

// exaltationPoints are the deep exaltation longitudes. Debilitation is
// the opposite point. The node values follow the Taurus/Scorpio
// convention.
var exaltationPoints = map[ephem.Body]float64{
	ephem.Sun:     10,  // Aries 10°
	ephem.Moon:    33,  // Taurus 3°
	ephem.Mars:    298, // Capricorn 28°
	ephem.Mercury: 165, // Virgo 15°
	ephem.Jupiter: 95,  // Cancer 5°
	ephem.Venus:   357, // Pisces 27°
	ephem.Saturn:  200, // Libra 20°
	ephem.Rahu:    50,  // Taurus 20°
	ephem.Ketu:    230, // Scorpio 20°
}

// ownSigns maps each planet to the signs it rules.
var ownSigns = map[ephem.Body][]chart.Sign{
	ephem.Sun:     {chart.Leo},
	ephem.Moon:    {chart.Cancer},
	ephem.Mars:    {chart.Aries, chart.Scorpio},
	ephem.Mercury: {chart.Gemini, chart.Virgo},
	ephem.Jupiter: {chart.Sagittarius, chart.Pisces},
	ephem.Venus:   {chart.Taurus, chart.Libra},
	ephem.Saturn:  {chart.Capricorn, chart.Aquarius},
}

// friends and enemies encode the natural (naisargika) relationships.
// Pairs absent from both maps are neutral.
var friends = map[ephem.Body][]ephem.Body{
	ephem.Sun:     {ephem.Moon, ephem.Mars, ephem.Jupiter},
	ephem.Moon:    {ephem.Sun, ephem.Mercury},
	ephem.Mars:    {ephem.Sun, ephem.Moon, ephem.Jupiter},
	ephem.Mercury: {ephem.Sun, ephem.Venus},
	ephem.Jupiter: {ephem.Sun, ephem.Moon, ephem.Mars},
	ephem.Venus:   {ephem.Mercury, ephem.Saturn},
	ephem.Saturn:  {ephem.Mercury, ephem.Venus},
}

var enemies = map[ephem.Body][]ephem.Body{
	ephem.Sun:     {ephem.Venus, ephem.Saturn},
	ephem.Mars:    {ephem.Mercury},
	ephem.Mercury: {ephem.Moon},
	ephem.Jupiter: {ephem.Mercury, ephem.Venus},
	ephem.Venus:   {ephem.Sun, ephem.Moon},
	ephem.Saturn:  {ephem.Sun, ephem.Moon, ephem.Mars},
}

// digStrongHouse is the angular house where each planet has full
// directional strength.
var digStrongHouse = map[ephem.Body]int{
	ephem.Jupiter: 1,
	ephem.Mercury: 1,
	ephem.Moon:    4,
	ephem.Venus:   4,
	ephem.Saturn:  7,
	ephem.Sun:     10,
	ephem.Mars:    10,
}

// naisargika are the fixed natural strengths, normalized from the
// classical virupa values (Sun 60 ... Saturn 8.6, over 60).
var naisargika = map[ephem.Body]float64{
	ephem.Sun:     1.0,
	ephem.Moon:    0.857,
	ephem.Venus:   0.714,
	ephem.Jupiter: 0.571,
	ephem.Mercury: 0.429,
	ephem.Mars:    0.286,
	ephem.Saturn:  0.143,
}

// dayStrong planets gain temporal strength in daytime births,
// nightStrong in nighttime births; Mercury is strong in both.
var dayStrong = map[ephem.Body]bool{
	ephem.Sun: true, ephem.Jupiter: true, ephem.Venus: true,
}

var nightStrong = map[ephem.Body]bool{
	ephem.Moon: true, ephem.Mars: true, ephem.Saturn: true,
}

// Benefics are the natural benefic bodies for aspect scoring.
var Benefics = map[ephem.Body]bool{
	ephem.Moon: true, ephem.Mercury: true, ephem.Jupiter: true, ephem.Venus: true,
}

// Malefics are the natural malefic bodies for aspect scoring.
var Malefics = map[ephem.Body]bool{
	ephem.Sun: true, ephem.Mars: true, ephem.Saturn: true,
	ephem.Rahu: true, ephem.Ketu: true,
}

// houseKarakas are the primary significator planets per house.
var houseKarakas = [12]ephem.Body{
	ephem.Sun,     // 1
	ephem.Jupiter, // 2
	ephem.Mars,    // 3
	ephem.Moon,    // 4
	ephem.Jupiter, // 5
	ephem.Mars,    // 6
	ephem.Venus,   // 7
	ephem.Saturn,  // 8
	ephem.Jupiter, // 9
	ephem.Sun,     // 10
	ephem.Jupiter, // 11
	ephem.Saturn,  // 12
}

// DignityOf classifies a planet's standing in a sign. The exaltation and
// debilitation signs take precedence over rulership and relationship.
func DignityOf(body ephem.Body, sign chart.Sign) Dignity {
	if sign == chart.SignUndefined {
		return Neutral
	}
	if exalt, ok := exaltationPoints[body]; ok {
		if chart.SignOf(exalt) == sign {
			return Exalted
		}
		if chart.SignOf(exalt+180) == sign {
			return Debilitated
		}
	}
	for _, s := range ownSigns[body] {
		if s == sign {
			return OwnSign
		}
	}

	lord := sign.Lord()
	for _, f := range friends[body] {
		if f == lord {
			return Friendly
		}
	}
	for _, e := range enemies[body] {
		if e == lord {
			return EnemySign
		}
	}
	return Neutral
}
