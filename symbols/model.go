// Package symbols models the resolved symbol facts the generation engine
// consumes: interface contracts and their member slots, members that already
// exist on a target type, type traits, and constant values.
//
// Nothing here performs semantic analysis. Facts come from a Source, the
// external collaborator that owns type resolution.
package symbols

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/teranos/implgen/errors"
)

// MemberKind classifies a declaration inside a type or interface.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindProperty
	KindIndexer
	KindEvent
	KindField
	KindNestedType
	KindDelegate
)

var memberKindNames = map[MemberKind]string{
	KindMethod:     "method",
	KindProperty:   "property",
	KindIndexer:    "indexer",
	KindEvent:      "event",
	KindField:      "field",
	KindNestedType: "type",
	KindDelegate:   "delegate",
}

func (k MemberKind) String() string {
	if name, ok := memberKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON output.
func (k MemberKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsMember reports whether an implementer must provide a declaration of this kind.
func (k MemberKind) IsMember() bool {
	switch k {
	case KindMethod, KindProperty, KindIndexer, KindEvent:
		return true
	}
	return false
}

// ParseMemberKind parses the lowercase names used by String.
func ParseMemberKind(s string) (MemberKind, error) {
	for k, name := range memberKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, errors.NewInvalidRequestf("unknown member kind %q", s)
}

// Accessibility of a member.
type Accessibility int

const (
	AccessPublic Accessibility = iota
	AccessFriend
	AccessProtectedFriend
	AccessProtected
	AccessPrivateProtected
	AccessPrivate
)

var accessibilityNames = map[Accessibility]string{
	AccessPublic:           "Public",
	AccessFriend:           "Friend",
	AccessProtectedFriend:  "Protected Friend",
	AccessProtected:        "Protected",
	AccessPrivateProtected: "Private Protected",
	AccessPrivate:          "Private",
}

func (a Accessibility) String() string {
	if name, ok := accessibilityNames[a]; ok {
		return name
	}
	return "Public"
}

// MarshalText renders the accessibility keyword in JSON output.
func (a Accessibility) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// IsProtected reports whether derived types can see the member.
func (a Accessibility) IsProtected() bool {
	return a == AccessProtected || a == AccessProtectedFriend || a == AccessPrivateProtected
}

// ParseAccessibility accepts "public", "Protected Friend", "protected_friend", etc.
// An empty string means public.
func ParseAccessibility(s string) (Accessibility, error) {
	if s == "" {
		return AccessPublic, nil
	}
	norm := strings.ReplaceAll(strings.ReplaceAll(s, "_", " "), "-", " ")
	for a, name := range accessibilityNames {
		if strings.EqualFold(name, norm) {
			return a, nil
		}
	}
	return 0, errors.NewInvalidRequestf("unknown accessibility %q", s)
}

// TypeParam is a generic type parameter with its constraints.
type TypeParam struct {
	Name        string    `json:"name"`
	Constraints []TypeRef `json:"constraints,omitempty"`
	Class       bool      `json:"class,omitempty"`
	Structure   bool      `json:"structure,omitempty"`
	New         bool      `json:"new,omitempty"`
}

// Parameter of a method, indexer or delegate.
type Parameter struct {
	Name       string    `json:"name"`
	Type       TypeRef   `json:"type"`
	ByRef      bool      `json:"by_ref,omitempty"`
	ParamArray bool      `json:"param_array,omitempty"`
	Default    *Constant `json:"default,omitempty"`
	Attributes []string  `json:"attributes,omitempty"`
}

// Declaration is one entry of an interface body, before or after
// instantiation with type arguments.
type Declaration struct {
	Kind       MemberKind  `json:"kind"`
	Name       string      `json:"name"`
	Params     []Parameter `json:"params,omitempty"`
	Type       TypeRef     `json:"type"` // return, property or event handler type; zero for a Sub
	TypeParams []TypeParam `json:"type_params,omitempty"`
	IsDefault  bool        `json:"is_default,omitempty"`
	ReadOnly   bool        `json:"read_only,omitempty"`
	WriteOnly  bool        `json:"write_only,omitempty"`
}

// IsSub reports whether d is a method without a return type.
func (d Declaration) IsSub() bool {
	return d.Kind == KindMethod && d.Type.IsZero()
}

// Contract is an interface definition together with the type arguments it
// is being implemented with.
//
// Declarations and Bases are expressed in terms of TypeParams; the engine
// substitutes Ref.Args when it flattens the contract.
type Contract struct {
	Ref          TypeRef       `json:"ref"`
	TypeParams   []TypeParam   `json:"type_params,omitempty"`
	Declarations []Declaration `json:"declarations,omitempty"`
	Bases        []TypeRef     `json:"bases,omitempty"`
}

// ID is the contract identity: qualified name plus type arguments.
func (c *Contract) ID() string {
	return c.Ref.Key()
}

// SimpleName is the unqualified interface name, used for fallback member names.
func (c *Contract) SimpleName() string {
	return c.Ref.Name
}

// Substitution returns the mapping from the contract's type parameters to its arguments.
// An open reference (no arguments) maps nothing.
func (c *Contract) Substitution() (Substitution, error) {
	return NewSubstitution(c.TypeParams, c.Ref.Args)
}

// SlotKey identifies a slot for binding and conflict purposes.
// Two slots with the same name from different contracts have different keys.
type SlotKey struct {
	Contract  string `json:"contract"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

func (k SlotKey) String() string {
	return k.Contract + "." + k.Name + "(" + k.Signature + ")"
}

// Slot is an abstract member a conforming type must provide.
type Slot struct {
	Contract *Contract `json:"-"`
	Declaration
}

// Key returns the slot identity.
func (s Slot) Key() SlotKey {
	return KeyOf(s.Contract.ID(), s.Declaration)
}

// KeyOf computes the slot identity of an instantiated declaration.
func KeyOf(contractID string, d Declaration) SlotKey {
	return SlotKey{Contract: contractID, Name: d.Name, Signature: ParamSignature(d.Params, d.TypeParams)}
}

// ParamSignature renders the parameter-kind signature: parameter types and
// by-ref markers, with the declaration's own type parameters replaced by
// positional placeholders so renaming them does not change identity.
func ParamSignature(params []Parameter, own []TypeParam) string {
	positional := Substitution{}
	for i, tp := range own {
		positional[tp.Name] = TypeParamRef("!!" + strconv.Itoa(i))
	}
	parts := make([]string, len(params))
	for i, p := range params {
		t := p.Type.Substitute(positional).Key()
		if p.ByRef {
			t = "ByRef " + t
		}
		parts[i] = t
	}
	return strings.Join(parts, ", ")
}

// ExistingMember is a member already present on the target type or one of its ancestors.
type ExistingMember struct {
	Name        string        `json:"name"`
	Kind        MemberKind    `json:"kind"`
	Access      Accessibility `json:"access"`
	Params      []Parameter   `json:"params,omitempty"`
	Type        TypeRef       `json:"type"`
	Declaring   TypeRef       `json:"declaring"`
	Shared      bool          `json:"shared,omitempty"`
	Overridable bool          `json:"overridable,omitempty"`
	Readable    bool          `json:"readable,omitempty"`
	Writable    bool          `json:"writable,omitempty"`
	IsDefault   bool          `json:"is_default,omitempty"`
	Implements  []SlotKey     `json:"implements,omitempty"`
}

// BoundTo reports whether the member is explicitly bound to the slot.
func (m ExistingMember) BoundTo(key SlotKey) bool {
	for _, k := range m.Implements {
		if k == key {
			return true
		}
	}
	return false
}

// TypeKind classifies a type declaration.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeStructure
	TypeInterface
	TypeEnum
	TypeModule
	TypeDelegate
)

var typeKindNames = map[TypeKind]string{
	TypeClass:     "class",
	TypeStructure: "structure",
	TypeInterface: "interface",
	TypeEnum:      "enum",
	TypeModule:    "module",
	TypeDelegate:  "delegate",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseTypeKind parses the lowercase names used by String ("struct" is accepted too).
func ParseTypeKind(s string) (TypeKind, error) {
	if strings.EqualFold(s, "struct") {
		return TypeStructure, nil
	}
	for k, name := range typeKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, errors.NewInvalidRequestf("unknown type kind %q", s)
}

// EnumMember is a named enum constant; Value is its integral value as decimal text.
type EnumMember struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EnumInfo describes an enum type.
type EnumInfo struct {
	Flags      bool         `json:"flags,omitempty"`
	Underlying SpecialType  `json:"underlying"`
	Members    []EnumMember `json:"members"`
}

// TypeInfo holds the traits of a resolved type.
type TypeInfo struct {
	Ref        TypeRef     `json:"ref"`
	Kind       TypeKind    `json:"kind"`
	Special    SpecialType `json:"special,omitempty"`
	Sealed     bool        `json:"sealed,omitempty"`
	Abstract   bool        `json:"abstract,omitempty"`
	TypeParams []TypeParam `json:"type_params,omitempty"`
	Enum       *EnumInfo   `json:"enum,omitempty"`
	Invoke     []Parameter `json:"invoke,omitempty"`
}

// IsValueType reports whether instances are values rather than references.
func (t *TypeInfo) IsValueType() bool {
	return t.Kind == TypeStructure || t.Kind == TypeEnum
}

// CanHaveAbstractMembers reports whether the type is open to incomplete derivation.
func (t *TypeInfo) CanHaveAbstractMembers() bool {
	return t.Kind == TypeClass && t.Abstract && !t.Sealed
}

// ConstantKind classifies a constant default value.
type ConstantKind int

const (
	ConstNothing ConstantKind = iota
	ConstBoolean
	ConstInteger
	ConstFloating
	ConstDecimal
	ConstChar
	ConstString
	ConstDate
)

var constantKindNames = map[ConstantKind]string{
	ConstNothing:  "nothing",
	ConstBoolean:  "boolean",
	ConstInteger:  "integer",
	ConstFloating: "floating",
	ConstDecimal:  "decimal",
	ConstChar:     "char",
	ConstString:   "string",
	ConstDate:     "date",
}

func (k ConstantKind) String() string {
	if name, ok := constantKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseConstantKind parses the lowercase names used by String.
func ParseConstantKind(s string) (ConstantKind, error) {
	for k, name := range constantKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, errors.NewInvalidRequestf("unknown constant kind %q", s)
}

// Constant is a declared default value.
//
// Text holds the canonical value: "True", "-5", "1E-29", "NaN", "-Infinity",
// an ISO-8601 date, or the characters of a string or char. Units, when set,
// is the exact UTF-16 content of a string or char and wins over Text; it is
// the only way to express lone surrogates.
type Constant struct {
	Kind  ConstantKind `json:"kind"`
	Text  string       `json:"text,omitempty"`
	Units []uint16     `json:"units,omitempty"`
}

// UTF16 returns the string or char content as UTF-16 code units.
func (c Constant) UTF16() []uint16 {
	if c.Units != nil {
		return c.Units
	}
	return utf16.Encode([]rune(c.Text))
}
