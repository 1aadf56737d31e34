package literal

import "strings"

// reserved holds the target language's reserved keywords, lowercased.
var reserved = map[string]bool{}

func init() {
	for _, kw := range strings.Fields(`
		AddHandler AddressOf Alias And AndAlso As Boolean ByRef Byte ByVal Call
		Case Catch CBool CByte CChar CDate CDbl CDec Char CInt Class CLng CObj
		Const Continue CSByte CShort CSng CStr CType CUInt CULng CUShort Date
		Decimal Declare Default Delegate Dim DirectCast Do Double Each Else
		ElseIf End EndIf Enum Erase Error Event Exit False Finally For Friend
		Function Get GetType GetXMLNamespace Global GoSub GoTo Handles If
		Implements Imports In Inherits Integer Interface Is IsNot Let Lib Like
		Long Loop Me Mod Module MustInherit MustOverride MyBase MyClass
		NameOf Namespace Narrowing New Next Not Nothing NotInheritable
		NotOverridable Object Of On Operator Option Optional Or OrElse Out
		Overloads Overridable Overrides ParamArray Partial Private Property
		Protected Public RaiseEvent ReadOnly ReDim REM RemoveHandler Resume
		Return SByte Select Set Shadows Shared Short Single Static Step Stop
		String Structure Sub SyncLock Then Throw To True Try TryCast TypeOf
		UInteger ULong UShort Using Variant Wend When While Widening With
		WithEvents WriteOnly Xor`) {
		reserved[strings.ToLower(kw)] = true
	}
}

// IsKeyword reports whether name is a reserved keyword (case-insensitive).
func IsKeyword(name string) bool {
	return reserved[strings.ToLower(name)]
}

// Escape brackets a name that collides with a reserved keyword.
func Escape(name string) string {
	if IsKeyword(name) {
		return "[" + name + "]"
	}
	return name
}
