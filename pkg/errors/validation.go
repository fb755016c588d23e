package errors

// ValidateLatitude checks that a latitude is within [-90, 90] degrees.
func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidCoordinates, "latitude %.4f out of range [-90, 90]", lat)
	}
	return nil
}

// ValidateLongitude checks that a geographic longitude is within [-180, 180] degrees.
func ValidateLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return New(ErrCodeInvalidCoordinates, "longitude %.4f out of range [-180, 180]", lon)
	}
	return nil
}

// ValidateUTCOffset checks that a UTC offset is within [-14h, +14h] expressed in hours.
func ValidateUTCOffset(hours float64) error {
	if hours < -14 || hours > 14 {
		return New(ErrCodeInvalidTime, "UTC offset %.2fh out of range [-14, 14]", hours)
	}
	return nil
}

// ValidateDashaDepth checks that a dasha query depth is 1, 2, or 3.
func ValidateDashaDepth(depth int) error {
	if depth < 1 || depth > 3 {
		return New(ErrCodeInvalidDepth, "dasha depth %d out of range [1, 3]", depth)
	}
	return nil
}
