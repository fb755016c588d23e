// Package ashtakavarga computes the benefic-point (bindu) tables.
//
// Each of the seven classical planets has a bhinna ashtakavarga: for
// every sign, the count of contributors (the seven planets plus the
// ascendant) that deposit a benefic point there. Whether a contributor
// deposits in a sign depends only on the house distance from the
// contributor's own sign, per the fixed classical tables below. The
// sarva ashtakavarga is the per-sign sum over all seven bhinna rows.
//
// A bindu count is always in [0, 8]. Undefined planets contribute no
// points anywhere, and their own rows collect only the points deposited
// by defined contributors.
package ashtakavarga

import (
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
)

// Planets are the seven bhinna ashtakavarga owners, in traditional order.
var Planets = []ephem.Body{
	ephem.Sun, ephem.Moon, ephem.Mars, ephem.Mercury,
	ephem.Jupiter, ephem.Venus, ephem.Saturn,
}

// Ascendant is the eighth contributor, keyed separately from the bodies.
const Ascendant = ephem.Body("Ascendant")

// contributors in table order: the seven planets, then the ascendant.
var contributors = []ephem.Body{
	ephem.Sun, ephem.Moon, ephem.Mars, ephem.Mercury,
	ephem.Jupiter, ephem.Venus, ephem.Saturn, Ascendant,
}

// beneficHouses[owner][contributor] lists the houses, counted inclusively
// from the contributor's sign, where the contributor deposits a point in
// the owner's table. These are the classical tables; the row totals are
// Sun 48, Moon 49, Mars 39, Mercury 54, Jupiter 56, Venus 52, Saturn 39.
var beneficHouses = map[ephem.Body]map[ephem.Body][]int{
	ephem.Sun: {
		ephem.Sun:     {1, 2, 4, 7, 8, 9, 10, 11},
		ephem.Moon:    {3, 6, 10, 11},
		ephem.Mars:    {1, 2, 4, 7, 8, 9, 10, 11},
		ephem.Mercury: {3, 5, 6, 9, 10, 11, 12},
		ephem.Jupiter: {5, 6, 9, 11},
		ephem.Venus:   {6, 7, 12},
		ephem.Saturn:  {1, 2, 4, 7, 8, 9, 10, 11},
		Ascendant:     {3, 4, 6, 10, 11, 12},
	},
	ephem.Moon: {
		ephem.Sun:     {3, 6, 7, 8, 10, 11},
		ephem.Moon:    {1, 3, 6, 7, 10, 11},
		ephem.Mars:    {2, 3, 5, 6, 9, 10, 11},
		ephem.Mercury: {1, 3, 4, 5, 7, 8, 10, 11},
		ephem.Jupiter: {1, 4, 7, 8, 10, 11, 12},
		ephem.Venus:   {3, 4, 5, 7, 9, 10, 11},
		ephem.Saturn:  {3, 5, 6, 11},
		Ascendant:     {3, 6, 10, 11},
	},
	ephem.Mars: {
		ephem.Sun:     {3, 5, 6, 10, 11},
		ephem.Moon:    {3, 6, 11},
		ephem.Mars:    {1, 2, 4, 7, 8, 10, 11},
		ephem.Mercury: {3, 5, 6, 11},
		ephem.Jupiter: {6, 10, 11, 12},
		ephem.Venus:   {6, 8, 11, 12},
		ephem.Saturn:  {1, 4, 7, 8, 9, 10, 11},
		Ascendant:     {1, 3, 6, 10, 11},
	},
	ephem.Mercury: {
		ephem.Sun:     {5, 6, 9, 11, 12},
		ephem.Moon:    {2, 4, 6, 8, 10, 11},
		ephem.Mars:    {1, 2, 4, 7, 8, 9, 10, 11},
		ephem.Mercury: {1, 3, 5, 6, 9, 10, 11, 12},
		ephem.Jupiter: {6, 8, 11, 12},
		ephem.Venus:   {1, 2, 3, 4, 5, 8, 9, 11},
		ephem.Saturn:  {1, 2, 4, 7, 8, 9, 10, 11},
		Ascendant:     {1, 2, 4, 6, 8, 10, 11},
	},
	ephem.Jupiter: {
		ephem.Sun:     {1, 2, 3, 4, 7, 8, 9, 10, 11},
		ephem.Moon:    {2, 5, 7, 9, 11},
		ephem.Mars:    {1, 2, 4, 7, 8, 10, 11},
		ephem.Mercury: {1, 2, 4, 5, 6, 9, 10, 11},
		ephem.Jupiter: {1, 2, 3, 4, 7, 8, 10, 11},
		ephem.Venus:   {2, 5, 6, 9, 10, 11},
		ephem.Saturn:  {3, 5, 6, 12},
		Ascendant:     {1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	ephem.Venus: {
		ephem.Sun:     {8, 11, 12},
		ephem.Moon:    {1, 2, 3, 4, 5, 8, 9, 11, 12},
		ephem.Mars:    {3, 5, 6, 9, 11, 12},
		ephem.Mercury: {3, 5, 6, 9, 11},
		ephem.Jupiter: {5, 8, 9, 10, 11},
		ephem.Venus:   {1, 2, 3, 4, 5, 8, 9, 10, 11},
		ephem.Saturn:  {3, 4, 5, 8, 9, 10, 11},
		Ascendant:     {1, 2, 3, 4, 5, 8, 9, 11},
	},
	ephem.Saturn: {
		ephem.Sun:     {1, 2, 4, 7, 8, 10, 11},
		ephem.Moon:    {3, 6, 11},
		ephem.Mars:    {3, 5, 6, 10, 11, 12},
		ephem.Mercury: {6, 8, 9, 10, 11, 12},
		ephem.Jupiter: {5, 6, 11, 12},
		ephem.Venus:   {6, 11, 12},
		ephem.Saturn:  {3, 5, 6, 11},
		Ascendant:     {1, 3, 4, 6, 10, 11},
	},
}

// Bhinna is one planet's bindu row: points per sign, Aries first.
type Bhinna struct {
	Body   ephem.Body `json:"body" bson:"body"`
	Bindus [12]int    `json:"bindus" bson:"bindus"`
	Total  int        `json:"total" bson:"total"`
}

// Table is the complete ashtakavarga result.
type Table struct {
	Rows  []Bhinna `json:"rows" bson:"rows"`
	Sarva [12]int  `json:"sarva" bson:"sarva"`
}

// Compute builds the seven bhinna rows and the sarva sums from the rasi
// placements and the ascendant sign.
func Compute(positions []chart.PlanetPosition, ascSign chart.Sign) Table {
	signs := make(map[ephem.Body]chart.Sign, len(contributors))
	for _, c := range contributors {
		signs[c] = chart.SignUndefined
	}
	for _, p := range positions {
		if p.Defined {
			signs[p.Body] = p.Sign
		}
	}
	signs[Ascendant] = ascSign

	t := Table{Rows: make([]Bhinna, 0, len(Planets))}
	for _, owner := range Planets {
		row := Bhinna{Body: owner}
		for s := 0; s < 12; s++ {
			n := 0
			for _, c := range contributors {
				from := signs[c]
				if from == chart.SignUndefined {
					continue
				}
				house := int(chart.Sign(s)-from+12)%12 + 1
				if containsInt(beneficHouses[owner][c], house) {
					n++
				}
			}
			row.Bindus[s] = n
			row.Total += n
			t.Sarva[s] += n
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Row returns the bhinna row for a planet, or false if the body has none.
func (t Table) Row(body ephem.Body) (Bhinna, bool) {
	for _, r := range t.Rows {
		if r.Body == body {
			return r, true
		}
	}
	return Bhinna{}, false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
