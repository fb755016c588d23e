// Package panchanga derives the five classical calendrical elements of a
// birth instant: tithi, vara, nakshatra, yoga, and karana.
//
// Everything here is a pure function of the Sun and Moon sidereal
// longitudes plus the Julian Day; no other planet participates.
package panchanga

import (
	"math"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// Paksha is the lunar fortnight.
type Paksha string

// The bright (waxing) and dark (waning) fortnights.
const (
	Shukla  Paksha = "Shukla"
	Krishna Paksha = "Krishna"
)

// Panchanga holds the five limbs for one instant.
type Panchanga struct {
	Tithi     int    `json:"tithi" bson:"tithi"` // 1-30
	TithiName string `json:"tithi_name" bson:"tithi_name"`
	Paksha    Paksha `json:"paksha" bson:"paksha"`

	Vara     int        `json:"vara" bson:"vara"` // 0=Sunday .. 6=Saturday
	VaraName string     `json:"vara_name" bson:"vara_name"`
	VaraLord ephem.Body `json:"vara_lord" bson:"vara_lord"`

	Nakshatra     int    `json:"nakshatra" bson:"nakshatra"` // 0-26, from Moon
	NakshatraName string `json:"nakshatra_name" bson:"nakshatra_name"`
	Pada          int    `json:"pada" bson:"pada"`

	Yoga     int    `json:"yoga" bson:"yoga"` // 1-27
	YogaName string `json:"yoga_name" bson:"yoga_name"`

	Karana     int    `json:"karana" bson:"karana"` // 0-59 half-tithi index
	KaranaName string `json:"karana_name" bson:"karana_name"`
}

// tithiNames are the fifteen tithis of each fortnight; the fifteenth is
// Purnima in Shukla paksha and Amavasya in Krishna paksha.
var tithiNames = [15]string{
	"Pratipada", "Dvitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dvadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

var varaNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// varaLords maps weekdays to their ruling bodies.
var varaLords = [7]ephem.Body{
	ephem.Sun, ephem.Moon, ephem.Mars, ephem.Mercury,
	ephem.Jupiter, ephem.Venus, ephem.Saturn,
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha",
	"Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra",
	"Vaidhriti",
}

// movingKaranas cycle eight times through half-tithis 1-56; the first
// half-tithi and the last three carry fixed karanas.
var movingKaranas = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
}

var fixedKaranas = map[int]string{
	0:  "Kimstughna",
	57: "Shakuni",
	58: "Chatushpada",
	59: "Naga",
}

// Compute derives the panchanga from the Sun and Moon sidereal longitudes
// and the Julian Day of the instant.
func Compute(sunLon, moonLon, jd float64) Panchanga {
	elong := chart.Delta(moonLon, sunLon)

	// A tithi is one 12° step of elongation. The boundary degree closes
	// the tithi it completes, so exactly 180° is tithi 15 (full moon).
	tithi := int(math.Ceil(elong / 12))
	if tithi < 1 {
		tithi = 1
	}
	if tithi > 30 {
		tithi = 30
	}
	paksha := Shukla
	if tithi > 15 {
		paksha = Krishna
	}

	tithiName := tithiNames[(tithi-1)%15]
	if tithi == 30 {
		tithiName = "Amavasya"
	}

	vara := int(math.Floor(jd+1.5)) % 7
	if vara < 0 {
		vara += 7
	}

	nak, pada := chart.NakshatraOf(moonLon)

	yoga := int(ephem.Norm360(sunLon+moonLon)/(360.0/27)) + 1
	if yoga > 27 {
		yoga = 27
	}

	karana := int(elong / 6)
	if karana > 59 {
		karana = 59
	}

	return Panchanga{
		Tithi:         tithi,
		TithiName:     tithiName,
		Paksha:        paksha,
		Vara:          vara,
		VaraName:      varaNames[vara],
		VaraLord:      varaLords[vara],
		Nakshatra:     nak,
		NakshatraName: chart.NakshatraNames[nak],
		Pada:          pada,
		Yoga:          yoga,
		YogaName:      yogaNames[yoga-1],
		Karana:        karana,
		KaranaName:    karanaName(karana),
	}
}

// karanaName resolves a half-tithi index (0-59) to its karana.
func karanaName(k int) string {
	if name, ok := fixedKaranas[k]; ok {
		return name
	}
	return movingKaranas[(k-1)%7]
}
