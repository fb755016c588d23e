package bala

import (
	"testing"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

func TestDignityOf(t *testing.T) {
	tests := []struct {
		body ephem.Body
		sign chart.Sign
		want Dignity
	}{
		{ephem.Sun, chart.Aries, Exalted},
		{ephem.Sun, chart.Libra, Debilitated},
		{ephem.Sun, chart.Leo, OwnSign},
		{ephem.Sun, chart.Cancer, Friendly},  // lord Moon is a friend
		{ephem.Sun, chart.Taurus, EnemySign}, // lord Venus is an enemy
		{ephem.Sun, chart.Gemini, Neutral},   // Mercury is neutral to the Sun
		{ephem.Moon, chart.Taurus, Exalted},
		{ephem.Moon, chart.Scorpio, Debilitated},
		{ephem.Saturn, chart.Libra, Exalted},
		{ephem.Saturn, chart.Aries, Debilitated},
		{ephem.Jupiter, chart.Capricorn, Debilitated},
		{ephem.Mars, chart.Scorpio, OwnSign},
		{ephem.Rahu, chart.Taurus, Exalted},
		{ephem.Ketu, chart.Scorpio, Exalted},
		{ephem.Rahu, chart.SignUndefined, Neutral},
	}
	for _, tt := range tests {
		if got := DignityOf(tt.body, tt.sign); got != tt.want {
			t.Errorf("DignityOf(%v, %v) = %v, want %v", tt.body, tt.sign, got, tt.want)
		}
	}
}

func TestAspectValue(t *testing.T) {
	tests := []struct {
		sep  float64
		want float64
	}{
		{180, 1.0},
		{175, 0.5},
		{120, 0.5},
		{90, 0.5},
		{60, 0.25},
		{45, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := aspectValue(tt.sep); got != tt.want {
			t.Errorf("aspectValue(%v) = %v, want %v", tt.sep, got, tt.want)
		}
	}
}

func TestIsDayBirth(t *testing.T) {
	above := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 200},
	}
	if !IsDayBirth(above, 0, chart.HouseEqual) {
		t.Error("Sun in house 7 should be a day birth")
	}

	below := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 100},
	}
	if IsDayBirth(below, 0, chart.HouseEqual) {
		t.Error("Sun in house 4 should be a night birth")
	}
}

func TestCompute_ExaltedSun(t *testing.T) {
	// Sun at its deep exaltation point, Aries 10°.
	positions := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 10, Sign: chart.Aries, Degree: 10},
	}
	cusps, err := chart.Cusps(190, chart.HouseEqual) // Sun lands in house 7: day birth
	if err != nil {
		t.Fatal(err)
	}

	scores := Compute(positions, cusps, 190, chart.HouseEqual)
	s := scores[0]
	if s.Dignity != Exalted {
		t.Errorf("Dignity = %v, want Exalted", s.Dignity)
	}
	if got, want := s.Sthana, 1.5; !approx(got, want) {
		t.Errorf("Sthana = %v, want %v", got, want)
	}
	if !approx(s.Naisargika, 1.0) {
		t.Errorf("Naisargika = %v, want 1.0", s.Naisargika)
	}
	if !approx(s.Kala, 1.0) {
		t.Errorf("Kala = %v, want 1.0 for the Sun in a day birth", s.Kala)
	}
}

func TestCompute_MaleficAspectsDragTotalDown(t *testing.T) {
	positions := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 190, Sign: chart.Libra, Degree: 10},
		{Body: ephem.Saturn, Defined: true, Sidereal: 10, Sign: chart.Aries, Degree: 10},
		{Body: ephem.Mars, Defined: true, Sidereal: 280, Sign: chart.Capricorn, Degree: 10},
	}
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	scores := Compute(positions, cusps, 0, chart.HouseEqual)
	sun := scores[0]
	if sun.Dignity != Debilitated {
		t.Fatalf("Dignity = %v, want Debilitated", sun.Dignity)
	}
	if sun.Drik >= 0 {
		t.Errorf("Drik = %v, want negative under two malefic aspects", sun.Drik)
	}
	// Saturn at the exact opposition and Mars at the exact square.
	if got, want := sun.Drik, -0.25-0.125; !approx(got, want) {
		t.Errorf("Drik = %v, want %v", got, want)
	}
}

func TestCompute_MoonPakshaKala(t *testing.T) {
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	full := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 0, Sign: chart.Aries},
		{Body: ephem.Moon, Defined: true, Sidereal: 180, Sign: chart.Libra},
	}
	scores := Compute(full, cusps, 0, chart.HouseEqual)
	if !approx(scores[1].Kala, 1.0) {
		t.Errorf("full Moon Kala = %v, want 1.0", scores[1].Kala)
	}

	dark := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 0, Sign: chart.Aries},
		{Body: ephem.Moon, Defined: true, Sidereal: 0, Sign: chart.Aries},
	}
	scores = Compute(dark, cusps, 0, chart.HouseEqual)
	if !approx(scores[1].Kala, 0.0) {
		t.Errorf("dark Moon Kala = %v, want 0", scores[1].Kala)
	}
}

func TestCompute_NodesSkipClassicalComponents(t *testing.T) {
	positions := []chart.PlanetPosition{
		{Body: ephem.Rahu, Defined: true, Sidereal: 50, Sign: chart.Taurus, Degree: 20},
	}
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	scores := Compute(positions, cusps, 0, chart.HouseEqual)
	s := scores[0]
	if s.Dig != 0 || s.Kala != 0 || s.Naisargika != 0 {
		t.Errorf("node Dig/Kala/Naisargika = %v/%v/%v, want all zero", s.Dig, s.Kala, s.Naisargika)
	}
	if s.Sthana <= 0 {
		t.Errorf("exalted Rahu Sthana = %v, want positive", s.Sthana)
	}
}

func TestCompute_UndefinedPlanet(t *testing.T) {
	positions := []chart.PlanetPosition{
		{Body: ephem.Sun, Defined: true, Sidereal: 10, Sign: chart.Aries, Degree: 10},
		{Body: ephem.Mars, Defined: false, Sign: chart.SignUndefined},
	}
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	scores := Compute(positions, cusps, 0, chart.HouseEqual)
	mars := scores[1]
	if mars.Defined {
		t.Error("undefined planet must yield an undefined score set")
	}
	if mars.Total != 0 || mars.Sthana != 0 || mars.Drik != 0 {
		t.Errorf("undefined planet components = %+v, want all zero", mars)
	}
}

func TestHouseStrengths(t *testing.T) {
	positions := []chart.PlanetPosition{
		{Body: ephem.Jupiter, Defined: true, Sidereal: 15, Sign: chart.Aries, Degree: 15},
	}
	scores := []ScoreSet{
		{Body: ephem.Jupiter, Defined: true, Total: 2.0},
	}
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	houses := HouseStrengths(positions, scores, cusps, 0, chart.HouseEqual)

	if !approx(houses[0].Strength, 2.0) {
		t.Errorf("house 1 strength = %v, want full occupant total", houses[0].Strength)
	}
	// House 7's midpoint is exactly opposite Jupiter: half total by aspect.
	if !approx(houses[6].Strength, 1.0) {
		t.Errorf("house 7 strength = %v, want 1.0", houses[6].Strength)
	}

	// Jupiter is the karaka of house 9 and aspects its midpoint by trine.
	if houses[8].Significator != 1 {
		t.Errorf("house 9 significator = %v, want 1", houses[8].Significator)
	}
	// Jupiter is also karaka of house 2 but neither occupies nor aspects it.
	if houses[1].Significator != 0 {
		t.Errorf("house 2 significator = %v, want 0", houses[1].Significator)
	}
}

func TestHouseStrengths_UndefinedContributesNothing(t *testing.T) {
	positions := []chart.PlanetPosition{
		{Body: ephem.Jupiter, Defined: false, Sign: chart.SignUndefined},
	}
	scores := []ScoreSet{{Body: ephem.Jupiter}}
	cusps, err := chart.Cusps(0, chart.HouseEqual)
	if err != nil {
		t.Fatal(err)
	}

	for _, h := range HouseStrengths(positions, scores, cusps, 0, chart.HouseEqual) {
		if h.Strength != 0 || h.Significator != 0 {
			t.Fatalf("house %d = %+v, want zero from an undefined planet", h.House, h)
		}
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
