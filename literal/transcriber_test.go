package literal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
	"github.com/teranos/implgen/symbols/snapshot"
)

const enumsYAML = `
types:
  - name: Color
    kind: enum
    values:
      - {name: Red, value: "0"}
      - {name: Green, value: "1"}
      - {name: Blue, value: "2"}
  - name: Access
    kind: enum
    flags: true
    values:
      - {name: None, value: "0"}
      - {name: Read, value: "1"}
      - {name: Write, value: "2"}
      - {name: ReadWrite, value: "3"}
      - {name: Exec, value: "4"}
  - name: Widget
    kind: class
`

func newTranscriber(t *testing.T, strict bool) *Transcriber {
	t.Helper()
	src, err := snapshot.Parse([]byte(enumsYAML), snapshot.FormatYAML)
	require.NoError(t, err)
	return New(src, Options{Strict: strict}, nil)
}

func constant(kind symbols.ConstantKind, text string) symbols.Constant {
	return symbols.Constant{Kind: kind, Text: text}
}

func TestDefault_Integral(t *testing.T) {
	tr := newTranscriber(t, false)

	tests := []struct {
		typ, text, want string
	}{
		{"Integer", "5", "5"},
		{"Short", "-5", "-5"},
		{"Integer", "-2147483648", "Integer.MinValue"},
		{"Integer", "2147483647", "Integer.MaxValue"},
		{"Long", "9223372036854775807", "Long.MaxValue"},
		{"Byte", "255", "Byte.MaxValue"},
		{"SByte", "-128", "SByte.MinValue"},
		{"UInteger", "0", "0"},
		{"ULong", "0", "0"},
		{"UShort", "0", "0"},
		{"ULong", "18446744073709551614", "18446744073709551614UL"},
		{"ULong", "42", "42"},
		{"Integer?", "7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"_"+tt.text, func(t *testing.T) {
			got, err := tr.Default(context.Background(), symbols.MustParseTypeRef(tt.typ), constant(symbols.ConstInteger, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_IntegralOutOfRange(t *testing.T) {
	tr := newTranscriber(t, false)
	_, err := tr.Default(context.Background(), symbols.MustParseTypeRef("Byte"), constant(symbols.ConstInteger, "256"))
	assert.True(t, errors.IsInvalidRequest(err))
}

func TestDefault_Floating(t *testing.T) {
	tr := newTranscriber(t, false)

	tests := []struct {
		typ, text, want string
	}{
		{"Double", "NaN", "Double.NaN"},
		{"Double", "Infinity", "Double.PositiveInfinity"},
		{"Double", "-Infinity", "Double.NegativeInfinity"},
		{"Double", "1.7976931348623157E+308", "Double.MaxValue"},
		{"Double", "-1.7976931348623157E+308", "Double.MinValue"},
		{"Double", "4.94065645841247E-324", "Double.Epsilon"},
		{"Double", "1.5", "1.5"},
		{"Double", "0.1", "0.1"},
		{"Double", "1E+300", "1E+300"},
		{"Single", "1.5", "1.5F"},
		{"Single", "NaN", "Single.NaN"},
		{"Single", "3.4028235E+38", "Single.MaxValue"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"_"+tt.text, func(t *testing.T) {
			got, err := tr.Default(context.Background(), symbols.MustParseTypeRef(tt.typ), constant(symbols.ConstFloating, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_Decimal(t *testing.T) {
	tr := newTranscriber(t, false)

	tests := []struct {
		text, want string
	}{
		{"1E-29", "0.0000000000000000000000000000"},
		{"-1E-25", "-0.0000000000000000000000001"},
		{"-1E-29", "0.0000000000000000000000000000"},
		{"1.5E-28", "0.0000000000000000000000000002"},
		{"-1.5E-28", "-0.0000000000000000000000000002"},
		{"1.23456789012345678901234567891", "1.2345678901234567890123456789"},
		{"9.99999999999999999999999999999", "10.000000000000000000000000000"},
		{"1.50", "1.50"},
		{"-0.00", "0.00"},
		{"123", "123"},
		{"1.5E+3", "1500"},
		{"79228162514264337593543950335", "Decimal.MaxValue"},
		{"-79228162514264337593543950335", "Decimal.MinValue"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := tr.Default(context.Background(), symbols.MustParseTypeRef("Decimal"), constant(symbols.ConstDecimal, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_Enum(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		value  string
		strict bool
		want   string
	}{
		{"exact member", "Color", "1", false, "Color.Green"},
		{"non-flags combination", "Color", "3", false, "3"},
		{"non-flags combination strict", "Color", "3", true, "CType(3, Color)"},
		{"flags exact member", "Access", "3", false, "Access.ReadWrite"},
		{"flags union", "Access", "5", false, "Access.Read Or Access.Exec"},
		{"flags greedy in declaration order", "Access", "7", false, "Access.Read Or Access.Write Or Access.Exec"},
		{"flags zero member", "Access", "0", false, "Access.None"},
		{"flags uncovered bits", "Access", "8", false, "8"},
		{"flags uncovered bits strict", "Access", "9", true, "CType(9, Access)"},
		{"nullable enum", "Color?", "2", false, "Color.Blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTranscriber(t, tt.strict)
			got, err := tr.Default(context.Background(), symbols.MustParseTypeRef(tt.typ), constant(symbols.ConstInteger, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_Text(t *testing.T) {
	tr := newTranscriber(t, false)
	str := symbols.MustParseTypeRef("String")
	chr := symbols.MustParseTypeRef("Char")

	tests := []struct {
		name string
		typ  symbols.TypeRef
		c    symbols.Constant
		want string
	}{
		{"empty string", str, constant(symbols.ConstString, ""), `""`},
		{"doubled quotes", str, constant(symbols.ConstString, `He said "hi"`), `"He said ""hi"""`},
		{"control character", str, constant(symbols.ConstString, "a\tb"), `"a" & ChrW(9) & "b"`},
		{"astral character", str, constant(symbols.ConstString, "\U0001F600"), `ChrW(55357) & ChrW(56832)`},
		{"lone surrogate", str, symbols.Constant{Kind: symbols.ConstString, Units: []uint16{'x', 0xD800}}, `"x" & ChrW(55296)`},
		{"nothing", str, symbols.Constant{Kind: symbols.ConstNothing}, "Nothing"},
		{"char", chr, constant(symbols.ConstChar, "x"), `"x"c`},
		{"quote char", chr, constant(symbols.ConstChar, `"`), `""""c`},
		{"newline char", chr, constant(symbols.ConstChar, "\n"), "ChrW(10)"},
		{"boolean", symbols.MustParseTypeRef("Boolean"), constant(symbols.ConstBoolean, "true"), "True"},
		{"date", symbols.MustParseTypeRef("Date"), constant(symbols.ConstDate, "2024-03-05"), "#3/5/2024#"},
		{"date and time", symbols.MustParseTypeRef("Date"), constant(symbols.ConstDate, "2024-03-05T14:30:00"), "#3/5/2024 2:30:00 PM#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Default(context.Background(), tt.typ, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_UnresolvableType(t *testing.T) {
	tr := newTranscriber(t, false)

	_, err := tr.Default(context.Background(), symbols.Named("Missing"), constant(symbols.ConstInteger, "1"))
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvable(err))

	_, err = tr.Default(context.Background(), symbols.TypeParamRef("T"), constant(symbols.ConstInteger, "1"))
	assert.True(t, errors.IsUnresolvable(err))
}

func TestSignature(t *testing.T) {
	tr := newTranscriber(t, false)
	zero := symbols.Constant{Kind: symbols.ConstInteger, Text: "0"}

	d := symbols.Declaration{
		Kind: symbols.KindMethod,
		Name: "Paint",
		TypeParams: []symbols.TypeParam{{
			Name:        "T",
			Class:       true,
			Constraints: []symbols.TypeRef{symbols.MustParseTypeRef("IComparable(Of T)", "T")},
			New:         true,
		}},
		Params: []symbols.Parameter{
			{Name: "item", Type: symbols.TypeParamRef("T"), ByRef: true},
			{Name: "error", Type: symbols.MustParseTypeRef("Integer"), Default: &zero},
			{Name: "rest", Type: symbols.ArrayOf(symbols.Named("Widget"), 1), ParamArray: true},
		},
		Type: symbols.MustParseTypeRef("Boolean"),
	}

	sig, err := tr.Signature(context.Background(), d)
	require.NoError(t, err)

	require.Len(t, sig.TypeParams, 1)
	assert.Equal(t, []string{"Class", "IComparable(Of T)", "New"}, sig.TypeParams[0].Constraints)

	require.Len(t, sig.Params, 3)
	assert.True(t, sig.Params[0].ByRef)
	assert.Equal(t, "[error]", sig.Params[1].Name)
	assert.True(t, sig.Params[1].Optional)
	assert.Equal(t, "0", sig.Params[1].Default)
	assert.Equal(t, "Widget()", sig.Params[2].Type)
	assert.True(t, sig.Params[2].ParamArray)

	assert.Equal(t, "Boolean", sig.Type)
	assert.Equal(t, "item, [error], rest", sig.Arguments())
	assert.Equal(t, "(Of T)", sig.TypeArguments())
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "[Class]", Escape("Class"))
	assert.Equal(t, "[error]", Escape("error"))
	assert.Equal(t, "Name", Escape("Name"))
	assert.True(t, IsKeyword("REM"))
	assert.False(t, IsKeyword("Dispose"))
}
