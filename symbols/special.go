package symbols

import "strings"

// SpecialType identifies the language's built-in types.
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialBoolean
	SpecialChar
	SpecialString
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialSingle
	SpecialDouble
	SpecialDecimal
	SpecialDate
)

type specialInfo struct {
	keyword string
	system  string
}

var specials = map[SpecialType]specialInfo{
	SpecialObject:  {"Object", "Object"},
	SpecialBoolean: {"Boolean", "Boolean"},
	SpecialChar:    {"Char", "Char"},
	SpecialString:  {"String", "String"},
	SpecialSByte:   {"SByte", "SByte"},
	SpecialByte:    {"Byte", "Byte"},
	SpecialInt16:   {"Short", "Int16"},
	SpecialUInt16:  {"UShort", "UInt16"},
	SpecialInt32:   {"Integer", "Int32"},
	SpecialUInt32:  {"UInteger", "UInt32"},
	SpecialInt64:   {"Long", "Int64"},
	SpecialUInt64:  {"ULong", "UInt64"},
	SpecialSingle:  {"Single", "Single"},
	SpecialDouble:  {"Double", "Double"},
	SpecialDecimal: {"Decimal", "Decimal"},
	SpecialDate:    {"Date", "DateTime"},
}

// Keyword is the language keyword naming the type ("Integer", "ULong").
func (s SpecialType) Keyword() string {
	return specials[s].keyword
}

func (s SpecialType) String() string {
	if s == SpecialNone {
		return "none"
	}
	return specials[s].keyword
}

// IsIntegral reports whether s is one of the eight integer types.
func (s SpecialType) IsIntegral() bool {
	return s >= SpecialSByte && s <= SpecialUInt64
}

// IsUnsigned reports whether s is an unsigned integer type.
func (s SpecialType) IsUnsigned() bool {
	switch s {
	case SpecialByte, SpecialUInt16, SpecialUInt32, SpecialUInt64:
		return true
	}
	return false
}

// IsFloating reports whether s is Single or Double.
func (s SpecialType) IsFloating() bool {
	return s == SpecialSingle || s == SpecialDouble
}

// IsValueType reports whether s is a structure (everything except Object and String).
func (s SpecialType) IsValueType() bool {
	return s != SpecialNone && s != SpecialObject && s != SpecialString
}

// SpecialByName resolves a keyword ("Integer") or framework name ("Int32",
// "System.Int32") to a special type. Matching is case-insensitive.
func SpecialByName(name string) (SpecialType, bool) {
	name = strings.TrimPrefix(name, "System.")
	for s, info := range specials {
		if strings.EqualFold(info.keyword, name) || strings.EqualFold(info.system, name) {
			return s, true
		}
	}
	return SpecialNone, false
}
