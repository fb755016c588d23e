package chart

import (
	"math"
	"testing"

	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
)

func TestNewPlanetPosition(t *testing.T) {
	bl := ephem.BodyLongitude{Body: ephem.Jupiter, Deg: 120.5, Defined: true}
	p := NewPlanetPosition(bl, 23.5)

	if !p.Defined {
		t.Fatal("position should be defined")
	}
	wantSidereal := 97.0
	if math.Abs(p.Sidereal-wantSidereal) > 1e-9 {
		t.Errorf("Sidereal = %v, want %v", p.Sidereal, wantSidereal)
	}
	if p.Sign != Cancer {
		t.Errorf("Sign = %v, want Cancer", p.Sign)
	}
	if math.Abs(p.Degree-7.0) > 1e-9 {
		t.Errorf("Degree = %v, want 7", p.Degree)
	}
	if p.Nakshatra != 7 { // 97° is in Pushya (93°20′–106°40′)
		t.Errorf("Nakshatra = %d, want 7 (Pushya)", p.Nakshatra)
	}
}

func TestNewPlanetPosition_Undefined(t *testing.T) {
	bl := ephem.BodyLongitude{
		Body: ephem.Mars,
		Err:  errors.New(errors.ErrCodeEphemeris, "no value"),
	}
	p := NewPlanetPosition(bl, 23.5)

	if p.Defined {
		t.Fatal("position should be undefined")
	}
	if p.Sign != SignUndefined {
		t.Errorf("Sign = %v, want SignUndefined (never a default sign)", p.Sign)
	}
	if p.Nakshatra != -1 {
		t.Errorf("Nakshatra = %d, want -1", p.Nakshatra)
	}
	if p.Error == "" {
		t.Error("Error should carry the failure message")
	}
}

func TestNewPlanetPosition_WrapAround(t *testing.T) {
	// Tropical 10° with ayanamsa 24° wraps below 0°.
	bl := ephem.BodyLongitude{Body: ephem.Sun, Deg: 10, Defined: true}
	p := NewPlanetPosition(bl, 24)

	if math.Abs(p.Sidereal-346) > 1e-9 {
		t.Errorf("Sidereal = %v, want 346", p.Sidereal)
	}
	if p.Sign != Pisces {
		t.Errorf("Sign = %v, want Pisces", p.Sign)
	}
}

func TestFind(t *testing.T) {
	positions := []PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 63.2},
		{Body: ephem.Moon, Defined: true, Sidereal: 310.0},
	}

	if got := Find(positions, ephem.Moon); got.Sidereal != 310.0 {
		t.Errorf("Find(Moon).Sidereal = %v, want 310", got.Sidereal)
	}

	missing := Find(positions, ephem.Saturn)
	if missing.Defined {
		t.Error("Find() for a missing body should be undefined")
	}
	if missing.Sign != SignUndefined {
		t.Errorf("missing body Sign = %v, want SignUndefined", missing.Sign)
	}
}
