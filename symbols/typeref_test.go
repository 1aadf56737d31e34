package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		params  []string
		display string
		key     string
	}{
		{"keyword", "Integer", nil, "Integer", "Integer"},
		{"qualified", "System.IDisposable", nil, "IDisposable", "System.IDisposable"},
		{"generic", "List(Of T)", []string{"T"}, "List(Of T)", "List(Of T)"},
		{"nested generic", "Dictionary(Of String, List(Of T))", []string{"T"}, "Dictionary(Of String, List(Of T))", "Dictionary(Of String, List(Of T))"},
		{"array", "Integer()", nil, "Integer()", "Integer()"},
		{"multi-rank array", "String(,)", nil, "String(,)", "String(,)"},
		{"array of generic", "List(Of Integer)()", nil, "List(Of Integer)()", "List(Of Integer)()"},
		{"jagged", "Byte()()", nil, "Byte()()", "Byte()()"},
		{"nullable shorthand", "Long?", nil, "Long?", "Long?"},
		{"nullable long form", "Nullable(Of Long)", nil, "Long?", "Long?"},
		{"escaped identifier", "[Step]", nil, "Step", "Step"},
		{"case-insensitive Of", "List(of T)", []string{"T"}, "List(Of T)", "List(Of T)"},
		{"whitespace", "  Dictionary( Of  String ,Integer )", nil, "Dictionary(Of String, Integer)", "Dictionary(Of String, Integer)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseTypeRef(tt.input, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.display, ref.String())
			assert.Equal(t, tt.key, ref.Key())
		})
	}
}

func TestParseTypeRefMarksTypeParameters(t *testing.T) {
	ref, err := ParseTypeRef("Dictionary(Of K, V())", "K", "V")
	require.NoError(t, err)

	require.Len(t, ref.Args, 2)
	assert.Equal(t, RefTypeParam, ref.Args[0].Kind)
	assert.Equal(t, RefArray, ref.Args[1].Kind)
	assert.Equal(t, RefTypeParam, ref.Args[1].Elem.Kind)
	assert.Equal(t, []string{"K", "V"}, ref.TypeParamsMentioned())
}

func TestParseTypeRefErrors(t *testing.T) {
	for _, input := range []string{"", "List(Of )", "List(Of Integer", "Integer)", "(", "List(Of A B)"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTypeRef(input)
			assert.Error(t, err)
		})
	}
}

func TestSubstituteNested(t *testing.T) {
	ref := MustParseTypeRef("Dictionary(Of T, List(Of U()))", "T", "U")
	out := ref.Substitute(Substitution{
		"T": Named("X"),
		"U": Named("Y"),
	})
	assert.Equal(t, "Dictionary(Of X, List(Of Y()))", out.String())
	// the original is untouched
	assert.Equal(t, "Dictionary(Of T, List(Of U()))", ref.String())
}

func TestNamedSplitsNamespace(t *testing.T) {
	ref := Named("System.Collections.Generic.IEnumerable", Named("Integer"))
	assert.Equal(t, "System.Collections.Generic", ref.Namespace)
	assert.Equal(t, "IEnumerable(Of Integer)", ref.String())
	assert.Equal(t, "System.Collections.Generic.IEnumerable(Of Integer)", ref.Key())
	assert.True(t, ref.Equal(MustParseTypeRef("System.Collections.Generic.IEnumerable(Of Integer)")))
}

func TestZeroRef(t *testing.T) {
	assert.True(t, TypeRef{}.IsZero())
	assert.False(t, Named("Integer").IsZero())
	assert.False(t, TypeParamRef("T").IsZero())
}
