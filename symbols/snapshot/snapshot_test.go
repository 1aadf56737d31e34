package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
)

const fixtureYAML = `
version: "1.0.0"
types:
  - name: Acme.IReader
    kind: interface
    type_params: [{name: T}]
    members:
      - {kind: method, name: Read, type: T, params: [{name: count, type: Integer}]}
      - {kind: property, name: Position, type: Long}
  - name: Acme.IStream
    kind: interface
    interfaces: ["Acme.IReader(Of Byte)", System.IDisposable]
    members:
      - {kind: method, name: Flush}
  - name: Acme.BaseStream
    kind: class
    abstract: true
    interfaces: [Acme.IStream]
    members:
      - {kind: method, name: Flush, access: public, overridable: true, implements: [Acme.IStream.Flush]}
  - name: Acme.FileStream
    kind: class
    base: Acme.BaseStream
    members:
      - {kind: field, name: inner, type: Acme.IStream, access: private}
      - kind: method
        name: Read
        type: Byte
        params: [{name: n, type: Integer}]
        implements: ["Acme.IReader(Of Byte).Read(Integer)"]
  - name: IDisposable
    kind: interface
    members:
      - {kind: method, name: Dispose}
  - name: Acme.INested
    kind: interface
    type_params: [{name: T}]
    interfaces: ["Acme.INested(Of Acme.INested(Of T))"]
  - name: Acme.Nester
    kind: class
    interfaces: ["Acme.INested(Of Integer)"]
requests:
  - target: Acme.FileStream
    interfaces: [Acme.IStream]
`

func loadFixture(t *testing.T) *Snapshot {
	t.Helper()
	s, err := Parse([]byte(fixtureYAML), FormatYAML)
	require.NoError(t, err)
	return s
}

func TestContract_SubstitutedBases(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	c, err := s.Contract(ctx, symbols.Named("IStream"))
	require.NoError(t, err)
	assert.Equal(t, "Acme.IStream", c.ID())
	require.Len(t, c.Bases, 2)
	assert.Equal(t, "Acme.IReader(Of Byte)", c.Bases[0].Key())
	assert.Equal(t, "System.IDisposable", c.Bases[1].Key())

	reader, err := s.Contract(ctx, c.Bases[0])
	require.NoError(t, err)
	require.Len(t, reader.Declarations, 2)
	assert.Equal(t, symbols.RefTypeParam, reader.Declarations[0].Type.Kind)
}

func TestContract_NotFound(t *testing.T) {
	s := loadFixture(t)

	_, err := s.Contract(context.Background(), symbols.Named("IMissing"))
	require.Error(t, err)
	assert.True(t, errors.IsContractNotFound(err))

	_, err = s.Contract(context.Background(), symbols.Named("Acme.FileStream"))
	assert.True(t, errors.IsContractNotFound(err), "a class is not a contract")
}

func TestType_Specials(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	tests := []struct {
		ref     string
		special symbols.SpecialType
		kind    symbols.TypeKind
	}{
		{"Integer", symbols.SpecialInt32, symbols.TypeStructure},
		{"System.Int32", symbols.SpecialInt32, symbols.TypeStructure},
		{"ULong", symbols.SpecialUInt64, symbols.TypeStructure},
		{"String", symbols.SpecialString, symbols.TypeClass},
		{"Object", symbols.SpecialObject, symbols.TypeClass},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			info, err := s.Type(ctx, symbols.MustParseTypeRef(tt.ref))
			require.NoError(t, err)
			assert.Equal(t, tt.special, info.Special)
			assert.Equal(t, tt.kind, info.Kind)
		})
	}

	_, err := s.Type(ctx, symbols.Named("Nope"))
	assert.True(t, errors.IsUnresolvable(err))
}

func TestMembers_OwnFirstThenAncestors(t *testing.T) {
	s := loadFixture(t)

	members, err := s.Members(context.Background(), symbols.Named("Acme.FileStream"))
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, "inner", members[0].Name)
	assert.Equal(t, "Acme.FileStream", members[0].Declaring.Key())
	assert.Equal(t, "Flush", members[2].Name)
	assert.Equal(t, "Acme.BaseStream", members[2].Declaring.Key())
}

func TestBindings_ResolveToSlotKeys(t *testing.T) {
	s := loadFixture(t)

	members, err := s.Members(context.Background(), symbols.Named("Acme.FileStream"))
	require.NoError(t, err)

	read := members[1]
	require.Len(t, read.Implements, 1)
	assert.Equal(t, symbols.SlotKey{Contract: "Acme.IReader(Of Byte)", Name: "Read", Signature: "Integer"}, read.Implements[0])

	flush := members[2]
	require.Len(t, flush.Implements, 1)
	assert.Equal(t, symbols.SlotKey{Contract: "Acme.IStream", Name: "Flush"}, flush.Implements[0])
}

func TestBindings_Unresolvable(t *testing.T) {
	doc := `
types:
  - name: IFoo
    kind: interface
    members: [{kind: method, name: Bar}]
  - name: C
    kind: class
    members:
      - {kind: method, name: Bar, implements: ["IFoo.Baz"]}
`
	_, err := Parse([]byte(doc), FormatYAML)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvable(err))
}

func TestProvides(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		t        string
		contract string
		want     bool
	}{
		{"self", "Acme.IStream", "Acme.IStream", true},
		{"through base class", "Acme.FileStream", "Acme.IStream", true},
		{"substituted base interface", "Acme.FileStream", "Acme.IReader(Of Byte)", true},
		{"wrong type argument", "Acme.FileStream", "Acme.IReader(Of Integer)", false},
		{"well-known disposable", "Acme.FileStream", "System.IDisposable", true},
		{"local disposable", "Acme.FileStream", "IDisposable", false},
		{"special type", "Integer", "Acme.IStream", false},
		{"expanding interface cycle", "Acme.Nester", "Acme.IStream", false},
		{"first step of an expanding cycle", "Acme.Nester", "Acme.INested(Of Acme.INested(Of Integer))", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Provides(ctx, symbols.MustParseTypeRef(tt.t), symbols.MustParseTypeRef(tt.contract))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWellKnownDisposable(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	ok, err := s.IsWellKnownDisposable(ctx, symbols.Named("System.IDisposable"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsWellKnownDisposable(ctx, symbols.Named("IDisposable"))
	require.NoError(t, err)
	assert.False(t, ok, "unqualified IDisposable resolves to the local declaration")
}

func TestSameName_CaseFolding(t *testing.T) {
	s := loadFixture(t)
	assert.True(t, s.SameName("Dispose", "DISPOSE"))
	assert.True(t, s.SameName("Ärger", "äRGER"))
	assert.False(t, s.SameName("Dispose", "Disposed"))
}

func TestRequests(t *testing.T) {
	s := loadFixture(t)
	reqs := s.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Acme.FileStream", reqs[0].Target.Key())
	assert.Equal(t, "Acme.IStream", reqs[0].Interfaces[0].Key())
}

func TestDecode_Formats(t *testing.T) {
	tomlDoc := `
version = "1.2.0"

[[types]]
name = "IFoo"
kind = "interface"

  [[types.members]]
  kind = "method"
  name = "Bar"
  type = "String"
`
	jsonDoc := `{"version": "1.0.0", "types": [{"name": "IFoo", "kind": "interface", "members": [{"kind": "method", "name": "Bar", "type": "String"}]}]}`

	for _, tc := range []struct {
		format Format
		data   string
	}{{FormatTOML, tomlDoc}, {FormatJSON, jsonDoc}} {
		t.Run(string(tc.format), func(t *testing.T) {
			s, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)
			c, err := s.Contract(context.Background(), symbols.Named("IFoo"))
			require.NoError(t, err)
			require.Len(t, c.Declarations, 1)
			assert.Equal(t, "String", c.Declarations[0].Type.String())
		})
	}
}

func TestDecode_RejectsUnknownKeysAndVersions(t *testing.T) {
	_, err := Decode([]byte("types: []\nbogus: 1\n"), FormatYAML)
	assert.True(t, errors.IsInvalidRequest(err))

	_, err = Decode([]byte("version = \"1.0.0\"\nbogus = 1\n"), FormatTOML)
	assert.True(t, errors.IsInvalidRequest(err))

	_, err = Decode([]byte(`{"version": "2.0.0"}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequest(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoad_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.yml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Requests(), 1)

	_, err = Load(filepath.Join(dir, "symbols.xml"))
	assert.True(t, errors.IsInvalidRequest(err))
}
