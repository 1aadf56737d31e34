// Package vb renders generated members as Visual Basic declarations.
package vb

import (
	"fmt"
	"strings"

	"github.com/teranos/implgen/emit"
	"github.com/teranos/implgen/implement"
	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/symbols"
)

func init() {
	emit.Register("vb", func(indent int) emit.Generator {
		return NewGenerator(indent)
	})
}

// Generator implements emit.Generator for Visual Basic
type Generator struct {
	indent string
}

// NewGenerator creates a generator indenting blocks by the given number of spaces
func NewGenerator(indent int) *Generator {
	if indent <= 0 {
		indent = 4
	}
	return &Generator{indent: strings.Repeat(" ", indent)}
}

// Language returns "vb"
func (g *Generator) Language() string {
	return "vb"
}

// FileExtension returns "vb"
func (g *Generator) FileExtension() string {
	return "vb"
}

// GenerateStrategy renders every member of s separated by blank lines
func (g *Generator) GenerateStrategy(s implement.Strategy) string {
	return emit.JoinMembers(g, s.Members)
}

// GenerateMember renders one member declaration
func (g *Generator) GenerateMember(m implement.GeneratedMember) string {
	w := &writer{indent: g.indent}

	switch m.Body {
	case implement.BodyField:
		w.line(0, "%s %s As %s", m.Access, m.Identifier, m.Signature.Type)
	case implement.BodyDisposeHelper:
		g.disposeHelper(w, m)
	case implement.BodyFinalizerHook:
		g.finalizerHook(w, m)
	case implement.BodyDisposeCall:
		g.disposeCall(w, m)
	default:
		switch m.Kind {
		case symbols.KindProperty, symbols.KindIndexer:
			g.property(w, m)
		case symbols.KindEvent:
			g.event(w, m)
		default:
			g.method(w, m)
		}
	}
	return w.String()
}

func (g *Generator) method(w *writer, m implement.GeneratedMember) {
	keyword := "Function"
	if m.Signature.Type == "" {
		keyword = "Sub"
	}

	header := fmt.Sprintf("%s %s%s%s", modifiers(m), keyword, " "+m.Identifier, typeParams(m.Signature))
	header += "(" + params(m.Signature.Params) + ")"
	if keyword == "Function" {
		header += " As " + m.Signature.Type
	}
	header += implementsClause(m)
	w.line(0, "%s", header)

	if m.Body == implement.BodyNone {
		return
	}

	switch m.Body {
	case implement.BodyDelegate:
		call := fmt.Sprintf("%s.%s%s(%s)", cast(m), m.Forward, m.Signature.TypeArguments(), m.Signature.Arguments())
		if keyword == "Function" {
			call = "Return " + call
		}
		w.line(1, "%s", call)
	default:
		w.line(1, "Throw New %s()", m.Exception)
	}
	w.line(0, "End %s", keyword)
}

func (g *Generator) property(w *writer, m implement.GeneratedMember) {
	header := fmt.Sprintf("%s Property %s", modifiers(m), m.Identifier)
	if len(m.Signature.Params) > 0 {
		header += "(" + params(m.Signature.Params) + ")"
	}
	header += " As " + m.Signature.Type + implementsClause(m)
	w.line(0, "%s", header)

	if m.Body == implement.BodyNone {
		return
	}

	target := ""
	if m.Body == implement.BodyDelegate {
		target = cast(m) + "." + m.Forward
		if len(m.Signature.Params) > 0 {
			target += "(" + m.Signature.Arguments() + ")"
		}
	}

	if !m.Modifiers.WriteOnly {
		w.line(1, "Get")
		if target != "" {
			w.line(2, "Return %s", target)
		} else {
			w.line(2, "Throw New %s()", m.Exception)
		}
		w.line(1, "End Get")
	}
	if !m.Modifiers.ReadOnly {
		w.line(1, "Set(value As %s)", m.Signature.Type)
		if target != "" {
			w.line(2, "%s = value", target)
		} else {
			w.line(2, "Throw New %s()", m.Exception)
		}
		w.line(1, "End Set")
	}
	w.line(0, "End Property")
}

func (g *Generator) event(w *writer, m implement.GeneratedMember) {
	if m.Body != implement.BodyDelegate {
		w.line(0, "%s Event %s As %s%s", modifiers(m), m.Identifier, m.Signature.Type, implementsClause(m))
		return
	}

	w.line(0, "%s Custom Event %s As %s%s", modifiers(m), m.Identifier, m.Signature.Type, implementsClause(m))
	w.line(1, "AddHandler(value As %s)", m.Signature.Type)
	w.line(2, "AddHandler %s.%s, value", cast(m), m.Forward)
	w.line(1, "End AddHandler")
	w.line(1, "RemoveHandler(value As %s)", m.Signature.Type)
	w.line(2, "RemoveHandler %s.%s, value", cast(m), m.Forward)
	w.line(1, "End RemoveHandler")
	w.line(1, "RaiseEvent(%s)", params(m.EventInvoke))
	w.line(1, "End RaiseEvent")
	w.line(0, "End Event")
}

func (g *Generator) disposeHelper(w *writer, m implement.GeneratedMember) {
	w.line(0, "%s Sub %s(%s)", modifiers(m), m.Identifier, params(m.Signature.Params))
	w.line(1, "If Not %s Then", m.Flag)
	w.line(2, "%s = True", m.Flag)
	w.line(2, "If disposing Then")
	w.line(3, "' Dispose managed state (managed objects).")
	w.line(2, "End If")
	w.blank()
	w.line(2, "' Free unmanaged resources (unmanaged objects) and override Finalize() below.")
	w.line(2, "' Set large fields to Nothing.")
	w.line(1, "End If")
	w.line(0, "End Sub")
}

func (g *Generator) finalizerHook(w *writer, m implement.GeneratedMember) {
	w.line(0, "' Override Finalize() only if %s(disposing As Boolean) above has code to free unmanaged resources.", m.Helper)
	w.line(0, "'%s Overrides Sub Finalize()", m.Access)
	w.line(0, "'%s' Do not change this code. Put cleanup code in %s(disposing As Boolean) above.", w.indent, m.Helper)
	w.line(0, "'%s%s(disposing:=False)", w.indent, m.Helper)
	w.line(0, "'%sMyBase.Finalize()", w.indent)
	w.line(0, "'End Sub")
}

func (g *Generator) disposeCall(w *writer, m implement.GeneratedMember) {
	w.line(0, "%s Sub %s()%s", modifiers(m), m.Identifier, implementsClause(m))
	w.line(1, "' Do not change this code. Put cleanup code in %s(disposing As Boolean) above.", m.Helper)
	w.line(1, "%s(disposing:=True)", m.Helper)
	w.line(1, "GC.SuppressFinalize(Me)")
	w.line(0, "End Sub")
}

// modifiers renders the leading keywords: Default, access, then the
// overriding and read/write modifiers.
func modifiers(m implement.GeneratedMember) string {
	var parts []string
	if m.Modifiers.Default {
		parts = append(parts, "Default")
	}
	parts = append(parts, m.Access.String())
	switch {
	case m.Modifiers.MustOverride:
		parts = append(parts, "MustOverride")
	case m.Modifiers.Overridable:
		parts = append(parts, "Overridable")
	}
	if m.Modifiers.ReadOnly {
		parts = append(parts, "ReadOnly")
	}
	if m.Modifiers.WriteOnly {
		parts = append(parts, "WriteOnly")
	}
	return strings.Join(parts, " ")
}

func implementsClause(m implement.GeneratedMember) string {
	if m.Implements == "" {
		return ""
	}
	return " Implements " + m.Implements
}

func cast(m implement.GeneratedMember) string {
	return fmt.Sprintf("CType(%s, %s)", m.Via, m.Cast)
}

func typeParams(sig literal.Signature) string {
	if len(sig.TypeParams) == 0 {
		return ""
	}
	parts := make([]string, len(sig.TypeParams))
	for i, tp := range sig.TypeParams {
		switch len(tp.Constraints) {
		case 0:
			parts[i] = tp.Name
		case 1:
			parts[i] = tp.Name + " As " + tp.Constraints[0]
		default:
			parts[i] = tp.Name + " As {" + strings.Join(tp.Constraints, ", ") + "}"
		}
	}
	return "(Of " + strings.Join(parts, ", ") + ")"
}

func params(ps []literal.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		var sb strings.Builder
		for _, a := range p.Attributes {
			sb.WriteString("<" + a + "> ")
		}
		if p.Optional {
			sb.WriteString("Optional ")
		}
		if p.ByRef {
			sb.WriteString("ByRef ")
		}
		if p.ParamArray {
			sb.WriteString("ParamArray ")
		}
		sb.WriteString(p.Name + " As " + p.Type)
		if p.Optional {
			sb.WriteString(" = " + p.Default)
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ", ")
}

// writer accumulates indented lines.
type writer struct {
	sb     strings.Builder
	indent string
}

func (w *writer) line(depth int, format string, args ...interface{}) {
	w.sb.WriteString(strings.Repeat(w.indent, depth))
	w.sb.WriteString(fmt.Sprintf(format, args...))
	w.sb.WriteString("\n")
}

func (w *writer) blank() {
	w.sb.WriteString("\n")
}

func (w *writer) String() string {
	return w.sb.String()
}
