package ephem

import "github.com/grahalabs/jataka/pkg/errors"

// AyanamsaModel selects the precession model used for the tropical to
// sidereal correction.
type AyanamsaModel string

// Supported ayanamsa models.
const (
	AyanamsaLahiri       AyanamsaModel = "lahiri"
	AyanamsaRaman        AyanamsaModel = "raman"
	AyanamsaKrishnamurti AyanamsaModel = "krishnamurti"
)

// ValidAyanamsas is the set of supported ayanamsa models.
var ValidAyanamsas = map[AyanamsaModel]bool{
	AyanamsaLahiri:       true,
	AyanamsaRaman:        true,
	AyanamsaKrishnamurti: true,
}

// ValidateAyanamsa checks that a model is supported.
func ValidateAyanamsa(model AyanamsaModel) error {
	if !ValidAyanamsas[model] {
		return errors.New(errors.ErrCodeInvalidAyanamsa, "invalid ayanamsa: %q (must be one of: lahiri, raman, krishnamurti)", model)
	}
	return nil
}

// lahiriJ2000 is the Lahiri (Chitrapaksha) ayanamsa at the J2000.0 epoch
// in degrees (23°51′11″).
const lahiriJ2000 = 23.85305556

// precessionRate is the general precession in longitude, degrees per
// Julian year (50.2771″/yr).
const precessionRate = 50.2771 / 3600

// Fixed offsets of the alternative models from Lahiri, in degrees.
const (
	ramanOffset        = -1.394
	krishnamurtiOffset = -0.1061
)

// Ayanamsa returns the sidereal correction angle in degrees for the given
// model at jd.
//
// The value is a smooth, strictly increasing function of jd with no
// discontinuities: a linear precession rate applied to the model's epoch
// value. Sidereal longitude = tropical longitude − ayanamsa.
func Ayanamsa(model AyanamsaModel, jd float64) (float64, error) {
	if err := ValidateAyanamsa(model); err != nil {
		return 0, err
	}

	years := (jd - J2000) / 365.25
	ayan := lahiriJ2000 + precessionRate*years

	switch model {
	case AyanamsaRaman:
		ayan += ramanOffset
	case AyanamsaKrishnamurti:
		ayan += krishnamurtiOffset
	}
	return ayan, nil
}
