package chart

import (
	"github.com/grahalabs/jataka/pkg/ephem"
)

// Sign is a zodiac sign index, 0 = Aries through 11 = Pisces.
type Sign int

// The twelve rasis.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignUndefined marks a sign derived from an undefined longitude.
// It must never be silently replaced with a real sign.
const SignUndefined Sign = -1

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign's name, or "Undefined" for SignUndefined.
func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "Undefined"
	}
	return signNames[s]
}

// Element is a sign triplicity.
type Element int

// The four triplicities, in the cyclic order they occur from Aries.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Quality is a sign's mode (chara/sthira/dvisvabhava).
type Quality int

// The three modes, in the cyclic order they occur from Aries.
const (
	Movable Quality = iota
	Fixed
	Dual
)

// Element returns the sign's triplicity.
func (s Sign) Element() Element { return Element(int(s) % 4) }

// Quality returns the sign's mode.
func (s Sign) Quality() Quality { return Quality(int(s) % 3) }

// Odd reports whether the sign is odd (Aries, Gemini, ... counting from 1).
func (s Sign) Odd() bool { return int(s)%2 == 0 }

// Lord returns the sign's ruling body.
func (s Sign) Lord() ephem.Body {
	return signLords[s]
}

var signLords = [12]ephem.Body{
	ephem.Mars,    // Aries
	ephem.Venus,   // Taurus
	ephem.Mercury, // Gemini
	ephem.Moon,    // Cancer
	ephem.Sun,     // Leo
	ephem.Mercury, // Virgo
	ephem.Venus,   // Libra
	ephem.Mars,    // Scorpio
	ephem.Jupiter, // Sagittarius
	ephem.Saturn,  // Capricorn
	ephem.Saturn,  // Aquarius
	ephem.Jupiter, // Pisces
}

// NakshatraNames lists the 27 lunar mansions in order from 0° Aries.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// NakshatraSpan is the width of one nakshatra: 13°20′.
const NakshatraSpan = 360.0 / 27

// PadaSpan is the width of one pada: 3°20′.
const PadaSpan = NakshatraSpan / 4

// SignOf returns the sign containing a sidereal longitude.
func SignOf(lon float64) Sign {
	return Sign(int(ephem.Norm360(lon) / 30))
}

// DegreeInSign returns the offset of a longitude within its sign, [0, 30).
func DegreeInSign(lon float64) float64 {
	n := ephem.Norm360(lon)
	return n - float64(int(n/30))*30
}

// NakshatraOf returns the nakshatra index (0-26) and pada (1-4) containing
// a sidereal longitude.
//
// Both values are derived from the same normalized longitude used by
// [SignOf], so boundary cases classify consistently: a longitude that
// falls in sign n always falls in a nakshatra whose span overlaps sign n.
func NakshatraOf(lon float64) (index, pada int) {
	n := ephem.Norm360(lon)
	index = int(n / NakshatraSpan)
	if index > 26 {
		index = 26 // guard the open upper bound against float error at 360-ε
	}
	// Derive the pada from a single global division rather than the
	// remainder n − index·span, which cancels badly at exact pada
	// boundaries (180° would land in pada 2 instead of 3).
	global := int(n / PadaSpan)
	if global > 107 {
		global = 107
	}
	pada = global - index*4 + 1
	if pada > 4 {
		pada = 4
	}
	if pada < 1 {
		pada = 1
	}
	return index, pada
}

// NakshatraDegree returns how far a longitude has progressed into its
// nakshatra, [0, NakshatraSpan).
func NakshatraDegree(lon float64) float64 {
	n := ephem.Norm360(lon)
	idx := int(n / NakshatraSpan)
	if idx > 26 {
		idx = 26
	}
	return n - float64(idx)*NakshatraSpan
}
