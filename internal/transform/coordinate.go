package transform

import (
	"math"
	"strconv"
	"strings"

	"crsconv/internal/dms"
	"crsconv/internal/errors"
)

// ParseCoordinate reads a coordinate token. A plain decimal number is tried
// first and D°M'S'' notation second; when neither fits, the result is a
// single InvalidInputError whose cause is the DMS parse failure.
//
// DMS tokens are converted with dms.DMS.Decimal, which does not apply the
// sign of the degree to the minutes and seconds.
func ParseCoordinate(token string) (float64, error) {
	if v, ok := parseDecimal(token); ok {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.NewInvalidInputError(token, nil)
		}
		return v, nil
	}

	angle, err := dms.Parse(token)
	if err != nil {
		return 0, errors.NewInvalidInputError(token, err)
	}
	return angle.Decimal(), nil
}

// IsDMS reports whether token would be read as D°M'S'' notation.
func IsDMS(token string) bool {
	if _, ok := parseDecimal(token); ok {
		return false
	}
	_, err := dms.Parse(token)
	return err == nil
}

// parseDecimal reads token as a base-10 floating point number. Hexadecimal
// mantissas such as "0x15p0" are not decimal coordinates.
func parseDecimal(token string) (float64, bool) {
	digits := strings.TrimLeft(token, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
