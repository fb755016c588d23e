// Package chart provides the sidereal chart geometry and classification
// primitives shared by every downstream module.
//
// It contains:
//   - Sign and nakshatra classification of sidereal longitudes
//   - Ascendant derivation from local sidereal time and latitude
//   - House cusp computation under a configurable house system
//   - The PlanetPosition value type with undefined-propagation semantics
//
// All functions are pure and stateless. Longitudes are degrees in
// [0, 360); wrap-around arithmetic goes through [Delta] and
// [AngularDistance] so callers never subtract raw angles.
package chart
