package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/grahalabs/jataka/pkg/errors"
)

// Supported calendar range for Julian Day conversion. The built-in
// ephemeris theory degrades outside a few centuries of J2000, so dates
// outside this window are rejected rather than silently extrapolated.
const (
	MinYear = 1200
	MaxYear = 2400
)

// J2000 is the Julian Day of the standard epoch 2000 January 1.5 TT.
const J2000 = 2451545.0

// Instant is a civil birth timestamp with an explicit UTC offset.
// It is immutable; all derived quantities are computed from it once.
type Instant struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`  // 1-12
	Day    int     `json:"day"`    // 1-31
	Hour   int     `json:"hour"`   // 0-23 local civil time
	Minute int     `json:"minute"` // 0-59
	Second float64 `json:"second"` // 0-59.999...

	// UTCOffset is the civil offset from UTC in hours, east positive.
	UTCOffset float64 `json:"utc_offset"`
}

// Validate checks the calendar fields without performing any conversion.
func (i Instant) Validate() error {
	if i.Year < MinYear || i.Year > MaxYear {
		return errors.New(errors.ErrCodeInvalidDate, "year %d outside supported range [%d, %d]", i.Year, MinYear, MaxYear)
	}
	if i.Month < 1 || i.Month > 12 {
		return errors.New(errors.ErrCodeInvalidDate, "month %d out of range [1, 12]", i.Month)
	}
	if i.Day < 1 || i.Day > daysInMonth(i.Year, i.Month) {
		return errors.New(errors.ErrCodeInvalidDate, "day %d invalid for %d-%02d", i.Day, i.Year, i.Month)
	}
	if i.Hour < 0 || i.Hour > 23 {
		return errors.New(errors.ErrCodeInvalidTime, "hour %d out of range [0, 23]", i.Hour)
	}
	if i.Minute < 0 || i.Minute > 59 {
		return errors.New(errors.ErrCodeInvalidTime, "minute %d out of range [0, 59]", i.Minute)
	}
	if i.Second < 0 || i.Second >= 60 {
		return errors.New(errors.ErrCodeInvalidTime, "second %.3f out of range [0, 60)", i.Second)
	}
	return errors.ValidateUTCOffset(i.UTCOffset)
}

// JulianDay converts the instant to a Julian Day number in Universal Time.
//
// The conversion uses the standard Gregorian algorithm (Meeus, Astronomical
// Algorithms, ch. 7). It is monotonic in time and reproducible to
// sub-second precision. An out-of-range date yields a domain error.
func (i Instant) JulianDay() (float64, error) {
	if err := i.Validate(); err != nil {
		return 0, err
	}

	// Shift civil time to UT.
	ut := float64(i.Hour) + float64(i.Minute)/60 + i.Second/3600 - i.UTCOffset

	y, m := i.Year, i.Month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(i.Day) + float64(b) - 1524.5 +
		ut/24

	return jd, nil
}

// Time returns the instant as a time.Time in a fixed-offset zone.
func (i Instant) Time() time.Time {
	zone := time.FixedZone(fmt.Sprintf("UTC%+.2f", i.UTCOffset), int(i.UTCOffset*3600))
	sec := int(i.Second)
	nsec := int((i.Second - float64(sec)) * 1e9)
	return time.Date(i.Year, time.Month(i.Month), i.Day, i.Hour, i.Minute, sec, nsec, zone)
}

// GMST returns the Greenwich mean sidereal time at jd, in degrees.
func GMST(jd float64) float64 {
	t := centuries(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return Norm360(gmst)
}

// LST returns the local sidereal time in degrees for an observer at the
// given geographic longitude (east positive).
func LST(jd, longitudeDeg float64) float64 {
	return Norm360(GMST(jd) + longitudeDeg)
}

// Obliquity returns the mean obliquity of the ecliptic at jd, in degrees.
func Obliquity(jd float64) float64 {
	t := centuries(jd)
	return 23.439291111 - 0.013004167*t - 1.6389e-7*t*t + 5.0361e-7*t*t*t
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
}
