package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubstitution(t *testing.T) {
	params := []TypeParam{{Name: "T"}, {Name: "U", Constraints: []TypeRef{TypeParamRef("T")}}}

	s, err := NewSubstitution(params, []TypeRef{Named("X"), Named("Y")})
	require.NoError(t, err)
	assert.Equal(t, "X", s["T"].String())
	assert.Equal(t, "Y", s["U"].String())

	open, err := NewSubstitution(params, nil)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = NewSubstitution(params, []TypeRef{Named("X")})
	assert.Error(t, err)
}

func TestInstantiateSubstitutesEverywhere(t *testing.T) {
	// Function M(a As T, b As List(Of U)) As Dictionary(Of T, U())
	d := Declaration{
		Kind: KindMethod,
		Name: "M",
		Params: []Parameter{
			{Name: "a", Type: TypeParamRef("T")},
			{Name: "b", Type: MustParseTypeRef("List(Of U)", "U")},
		},
		Type: MustParseTypeRef("Dictionary(Of T, U())", "T", "U"),
	}

	out := Instantiate(d, Substitution{"T": Named("X"), "U": Named("Y")}, nil)

	assert.Equal(t, "X", out.Params[0].Type.String())
	assert.Equal(t, "List(Of Y)", out.Params[1].Type.String())
	assert.Equal(t, "Dictionary(Of X, Y())", out.Type.String())
	// input is not mutated
	assert.Equal(t, "T", d.Params[0].Type.String())
}

func TestInstantiateAvoidsCapture(t *testing.T) {
	// Interface I(Of T): Sub M(Of U)(a As T, b As U)
	// implemented as I(Of U) by a type whose own parameter is U.
	d := Declaration{
		Kind:       KindMethod,
		Name:       "M",
		TypeParams: []TypeParam{{Name: "U", Constraints: []TypeRef{TypeParamRef("T")}}},
		Params: []Parameter{
			{Name: "a", Type: TypeParamRef("T")},
			{Name: "b", Type: TypeParamRef("U")},
		},
	}

	out := Instantiate(d, Substitution{"T": TypeParamRef("U")}, []string{"U"})

	require.Len(t, out.TypeParams, 1)
	assert.Equal(t, "U1", out.TypeParams[0].Name)
	assert.Equal(t, "U", out.TypeParams[0].Constraints[0].String())
	assert.Equal(t, "U", out.Params[0].Type.String())
	assert.Equal(t, "U1", out.Params[1].Type.String())
}

func TestInstantiateFreshNameSkipsTakenNames(t *testing.T) {
	d := Declaration{
		Kind:       KindMethod,
		Name:       "M",
		TypeParams: []TypeParam{{Name: "U"}, {Name: "U1"}},
		Params:     []Parameter{{Name: "a", Type: TypeParamRef("U")}, {Name: "b", Type: TypeParamRef("U1")}},
	}

	out := Instantiate(d, Substitution{}, []string{"U"})

	assert.Equal(t, "U2", out.TypeParams[0].Name)
	assert.Equal(t, "U1", out.TypeParams[1].Name)
	assert.Equal(t, "U2", out.Params[0].Type.String())
	assert.Equal(t, "U1", out.Params[1].Type.String())
}

func TestInstantiateOwnParameterShadowsContractParameter(t *testing.T) {
	d := Declaration{
		Kind:       KindMethod,
		Name:       "M",
		TypeParams: []TypeParam{{Name: "T"}},
		Params:     []Parameter{{Name: "a", Type: TypeParamRef("T")}},
	}

	out := Instantiate(d, Substitution{"T": Named("Integer")}, nil)
	assert.Equal(t, "T", out.Params[0].Type.String())
}

func TestParamSignatureIgnoresOwnTypeParameterNames(t *testing.T) {
	a := Declaration{Name: "M", TypeParams: []TypeParam{{Name: "U"}}, Params: []Parameter{{Type: TypeParamRef("U")}}}
	b := Declaration{Name: "M", TypeParams: []TypeParam{{Name: "U1"}}, Params: []Parameter{{Type: TypeParamRef("U1")}}}
	assert.Equal(t, KeyOf("I", a), KeyOf("I", b))

	byRef := Declaration{Name: "M", Params: []Parameter{{Type: Named("Integer"), ByRef: true}}}
	byVal := Declaration{Name: "M", Params: []Parameter{{Type: Named("Integer")}}}
	assert.NotEqual(t, KeyOf("I", byRef), KeyOf("I", byVal))
	assert.Equal(t, "ByRef Integer", KeyOf("I", byRef).Signature)
}
