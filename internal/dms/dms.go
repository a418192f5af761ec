// Package dms converts between decimal degrees and degrees-minutes-seconds
// notation. Arithmetic is done on exact decimals so that the rendered
// seconds do not pick up binary floating point noise.
package dms

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"crsconv/internal/errors"

	"github.com/shopspring/decimal"
)

// SecondsPlaces is the number of decimal places kept for seconds produced
// by FromDecimal.
const SecondsPlaces = 4

var (
	sixty        = decimal.NewFromInt(60)
	thirtySixHun = decimal.NewFromInt(3600)
)

// dmsPattern captures: 1=sign, 2=degree, 3=minutes, 4=seconds.
// Degree and minutes are separated by ° or *, minutes end with a single
// quote, seconds may use a comma or a dot and may end with two quotes.
var dmsPattern = regexp.MustCompile(
	`^([+-]?)(\d{1,2})[°*](\d{1,2})'(\d{1,2}(?:[,.]\d+)?)(?:'')?$`,
)

// DMS is an angle split into degree, minutes and seconds. The sign lives on
// Degree; Minutes and Seconds are magnitudes. Negative records that the
// angle was negative, which Degree alone cannot show when it is zero.
type DMS struct {
	Degree   decimal.Decimal
	Minutes  decimal.Decimal
	Seconds  decimal.Decimal
	Negative bool
}

// FromDecimal splits value into degree, minutes and seconds. The degree is
// truncated toward zero and keeps the sign, the seconds are rounded to
// SecondsPlaces with round-half-to-even. Seconds that round up to 60 are not
// carried into the minutes.
func FromDecimal(value float64) (DMS, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return DMS{}, errors.NewDMSParseError(strconv.FormatFloat(value, 'g', -1, 64), "value is not finite")
	}

	v := decimal.NewFromFloat(value)
	degree := v.Truncate(0)
	minutes := v.Sub(degree).Abs().Mul(sixty)
	wholeMinutes := minutes.Truncate(0)
	seconds := minutes.Sub(wholeMinutes).Mul(sixty).RoundBank(SecondsPlaces)

	return DMS{
		Degree:   degree,
		Minutes:  wholeMinutes,
		Seconds:  seconds,
		Negative: v.IsNegative(),
	}, nil
}

// Decimal returns degree + minutes/60 + seconds/3600.
//
// Minutes and seconds are added as they are, without taking the sign of the
// degree, so "-21°30'0''" yields -20.5. Use SignedDecimal for the inverse of
// FromDecimal.
func (d DMS) Decimal() float64 {
	return d.Degree.
		Add(d.Minutes.Div(sixty)).
		Add(d.Seconds.Div(thirtySixHun)).
		InexactFloat64()
}

// SignedDecimal returns the angle with the sign of the degree applied to the
// whole magnitude, which makes it the inverse of FromDecimal.
func (d DMS) SignedDecimal() float64 {
	magnitude := d.Degree.Abs().
		Add(d.Minutes.Div(sixty)).
		Add(d.Seconds.Div(thirtySixHun))
	if d.Negative || d.Degree.IsNegative() {
		magnitude = magnitude.Neg()
	}
	return magnitude.InexactFloat64()
}

// Parse reads text in D°M'S'' notation. The whole text must match; a comma
// is accepted as the decimal separator of the seconds.
func Parse(text string) (DMS, error) {
	m := dmsPattern.FindStringSubmatch(text)
	if m == nil {
		return DMS{}, errors.NewDMSParseError(text, "does not match D°M'S'' notation")
	}

	degree, err := decimal.NewFromString(m[2])
	if err != nil {
		return DMS{}, errors.NewDMSParseError(text, "invalid degree")
	}
	if m[1] == "-" {
		degree = degree.Neg()
	}

	minutes, err := decimal.NewFromString(m[3])
	if err != nil {
		return DMS{}, errors.NewDMSParseError(text, "invalid minutes")
	}

	seconds, err := decimal.NewFromString(strings.Replace(m[4], ",", ".", 1))
	if err != nil {
		return DMS{}, errors.NewDMSParseError(text, "invalid seconds")
	}

	return DMS{
		Degree:   degree,
		Minutes:  minutes,
		Seconds:  seconds,
		Negative: m[1] == "-",
	}, nil
}

// String renders the angle as {degree}°{minutes}'{seconds}''. Seconds keep
// the number of decimal places they carry.
func (d DMS) String() string {
	degree := d.Degree.String()
	if d.Negative && d.Degree.IsZero() {
		degree = "-" + degree
	}

	seconds := d.Seconds.String()
	if exp := d.Seconds.Exponent(); exp < 0 {
		seconds = d.Seconds.StringFixed(-exp)
	}

	return degree + "°" + d.Minutes.String() + "'" + seconds + "''"
}

// Format is the function form of DMS.String.
func Format(d DMS) string {
	return d.String()
}
