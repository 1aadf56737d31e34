package literal

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
)

type intRange struct {
	min, max *big.Int
}

func bigFromString(s string) *big.Int {
	v, _ := new(big.Int).SetString(s, 10)
	return v
}

var integralRanges = map[symbols.SpecialType]intRange{
	symbols.SpecialSByte:  {big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)},
	symbols.SpecialByte:   {big.NewInt(0), big.NewInt(math.MaxUint8)},
	symbols.SpecialInt16:  {big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)},
	symbols.SpecialUInt16: {big.NewInt(0), big.NewInt(math.MaxUint16)},
	symbols.SpecialInt32:  {big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)},
	symbols.SpecialUInt32: {big.NewInt(0), big.NewInt(math.MaxUint32)},
	symbols.SpecialInt64:  {big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)},
	symbols.SpecialUInt64: {big.NewInt(0), bigFromString("18446744073709551615")},
}

var maxInt64 = big.NewInt(math.MaxInt64)

func parseIntegral(text string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(text), 10)
	if !ok {
		return nil, errors.NewInvalidRequestf("invalid integral constant %q", text)
	}
	return v, nil
}

// renderIntegral renders an integer default. Boundary values use the type's
// named constants, except the zero minimum of unsigned types which stays 0.
func renderIntegral(s symbols.SpecialType, text string) (string, error) {
	v, err := parseIntegral(text)
	if err != nil {
		return "", err
	}
	r := integralRanges[s]
	if v.Cmp(r.min) < 0 || v.Cmp(r.max) > 0 {
		return "", errors.NewInvalidRequestf("constant %s out of range for %s", v, s.Keyword())
	}

	switch {
	case s.IsUnsigned() && v.Sign() == 0:
		return "0", nil
	case v.Cmp(r.min) == 0:
		return s.Keyword() + ".MinValue", nil
	case v.Cmp(r.max) == 0:
		return s.Keyword() + ".MaxValue", nil
	case s == symbols.SpecialUInt64 && v.Cmp(maxInt64) > 0:
		// Without the suffix the literal would not fit Long.
		return v.String() + "UL", nil
	}
	return v.String(), nil
}

// renderFloating renders Single and Double defaults. NaN, the infinities,
// Epsilon and the extremes keep their named constants.
func renderFloating(s symbols.SpecialType, text string) (string, error) {
	bits := 64
	if s == symbols.SpecialSingle {
		bits = 32
	}
	kw := s.Keyword()

	v, err := strconv.ParseFloat(strings.TrimSpace(text), bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return "", errors.NewInvalidRequestf("invalid %s constant %q", kw, text)
	}

	maxValue, epsilon := math.MaxFloat64, math.SmallestNonzeroFloat64
	if bits == 32 {
		maxValue, epsilon = math.MaxFloat32, math.SmallestNonzeroFloat32
		v = float64(float32(v))
	}

	switch {
	case math.IsNaN(v):
		return kw + ".NaN", nil
	case math.IsInf(v, 1):
		return kw + ".PositiveInfinity", nil
	case math.IsInf(v, -1):
		return kw + ".NegativeInfinity", nil
	case v == maxValue:
		return kw + ".MaxValue", nil
	case v == -maxValue:
		return kw + ".MinValue", nil
	case v == epsilon:
		return kw + ".Epsilon", nil
	}

	out := strconv.FormatFloat(v, 'G', -1, bits)
	if bits == 32 {
		out += "F"
	}
	return out, nil
}

const maxDecimalScale = 28

var maxDecimal = decimal.RequireFromString("79228162514264337593543950335")

// renderDecimal renders a fixed-point default at its declared scale.
//
// Scientific notation is expanded. The scale is capped at 28 digits and the
// 96-bit coefficient limit is honoured by rounding (half away from zero);
// values below the smallest step collapse to zero, and a zero result never
// carries a sign.
func renderDecimal(text string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return "", errors.NewInvalidRequestf("invalid Decimal constant %q", text)
	}
	if d.Abs().GreaterThan(maxDecimal) {
		return "", errors.NewInvalidRequestf("constant %s out of range for Decimal", text)
	}
	switch {
	case d.Equal(maxDecimal):
		return "Decimal.MaxValue", nil
	case d.Equal(maxDecimal.Neg()):
		return "Decimal.MinValue", nil
	}

	scale := int32(0)
	if d.Exponent() < 0 {
		scale = -d.Exponent()
	}
	if scale > maxDecimalScale {
		scale = maxDecimalScale
	}

	rounded := d.Round(scale)
	for scale > 0 && rounded.Abs().Shift(scale).GreaterThan(maxDecimal) {
		scale--
		rounded = d.Round(scale)
	}

	return rounded.StringFixed(scale), nil
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
