// Package literal renders generated signatures and default values into
// target-language source syntax.
//
// Every literal it produces denotes exactly the value that was declared:
// named constants for boundary values, fixed-point text for decimals at
// their declared scale, OR-expressions for flag enums, and ChrW calls for
// characters that cannot appear inside a quoted literal.
package literal

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// Options controls target-language typing rules.
type Options struct {
	// Strict wraps integral enum values that match no member in CType(v, E).
	Strict bool
}

// Transcriber renders signatures for one request. It holds no state besides
// its collaborator and options and may be shared between goroutines when the
// Source is.
type Transcriber struct {
	src  symbols.Source
	opts Options
	log  *zap.SugaredLogger
}

// New creates a Transcriber. A nil logger disables logging.
func New(src symbols.Source, opts Options, log *zap.SugaredLogger) *Transcriber {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Transcriber{src: src, opts: opts, log: log}
}

// Param is a rendered parameter.
type Param struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	ByRef      bool     `json:"by_ref,omitempty"`
	ParamArray bool     `json:"param_array,omitempty"`
	Optional   bool     `json:"optional,omitempty"`
	Default    string   `json:"default,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// TypeParam is a rendered generic parameter with its constraint list.
type TypeParam struct {
	Name        string   `json:"name"`
	Constraints []string `json:"constraints,omitempty"`
}

// Signature is the rendered shape of a generated member.
type Signature struct {
	TypeParams []TypeParam `json:"type_params,omitempty"`
	Params     []Param     `json:"params,omitempty"`
	Type       string      `json:"type,omitempty"` // empty for a Sub
}

// Arguments renders the parameter names as a call argument list.
func (s Signature) Arguments() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// TypeArguments renders "(Of A, B)" for a generic signature, or "".
func (s Signature) TypeArguments() string {
	if len(s.TypeParams) == 0 {
		return ""
	}
	names := make([]string, len(s.TypeParams))
	for i, tp := range s.TypeParams {
		names[i] = tp.Name
	}
	return "(Of " + strings.Join(names, ", ") + ")"
}

// Type renders a type reference namespace-qualified, so same-named types
// from different namespaces stay distinct in generated code.
func (t *Transcriber) Type(ref symbols.TypeRef) string {
	if ref.IsZero() {
		return ""
	}
	return ref.Qualified()
}

// Signature renders an instantiated declaration: its type parameters and
// constraints, its parameters with defaults, and its return or member type.
func (t *Transcriber) Signature(ctx context.Context, d symbols.Declaration) (Signature, error) {
	var sig Signature

	for _, tp := range d.TypeParams {
		rtp := TypeParam{Name: Escape(tp.Name)}
		if tp.Class {
			rtp.Constraints = append(rtp.Constraints, "Class")
		}
		if tp.Structure {
			rtp.Constraints = append(rtp.Constraints, "Structure")
		}
		for _, c := range tp.Constraints {
			rtp.Constraints = append(rtp.Constraints, t.Type(c))
		}
		if tp.New {
			rtp.Constraints = append(rtp.Constraints, "New")
		}
		sig.TypeParams = append(sig.TypeParams, rtp)
	}

	params, err := t.Params(ctx, d.Params)
	if err != nil {
		return Signature{}, errors.Wrapf(err, "signature of %s", d.Name)
	}
	sig.Params = params
	sig.Type = t.Type(d.Type)

	return sig, nil
}

// Params renders a parameter list.
func (t *Transcriber) Params(ctx context.Context, params []symbols.Parameter) ([]Param, error) {
	out := make([]Param, 0, len(params))
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = "arg" + itoa(i)
		}
		rp := Param{
			Name:       Escape(name),
			Type:       t.Type(p.Type),
			ByRef:      p.ByRef,
			ParamArray: p.ParamArray,
			Attributes: p.Attributes,
		}
		if p.Default != nil {
			lit, err := t.Default(ctx, p.Type, *p.Default)
			if err != nil {
				return nil, errors.Wrapf(err, "default of parameter %s", name)
			}
			rp.Optional = true
			rp.Default = lit
		}
		out = append(out, rp)
	}
	return out, nil
}

// Default renders a constant as a literal of the given parameter type.
func (t *Transcriber) Default(ctx context.Context, typ symbols.TypeRef, c symbols.Constant) (string, error) {
	switch c.Kind {
	case symbols.ConstNothing:
		return "Nothing", nil
	case symbols.ConstBoolean:
		return renderBoolean(c.Text)
	case symbols.ConstString:
		return renderString(c.UTF16()), nil
	case symbols.ConstChar:
		return renderChar(c.UTF16())
	case symbols.ConstDate:
		return renderDate(c.Text)
	}

	underlying := typ
	if underlying.IsNullable() {
		underlying = underlying.Args[0]
	}
	if underlying.Kind != symbols.RefNamed {
		return "", errors.NewUnresolvablef("numeric default for non-numeric type %s", typ.String())
	}

	info, err := t.src.Type(ctx, underlying)
	if err != nil {
		return "", errors.WrapUnresolvable(err, underlying.String())
	}

	logger.StageDebugw(t.log, logger.StageLiteral, "rendering default",
		"type", underlying.String(), "kind", c.Kind.String(), "text", c.Text)

	switch {
	case info.Kind == symbols.TypeEnum:
		return t.renderEnum(info, t.Type(underlying), c.Text)
	case info.Special.IsIntegral():
		return renderIntegral(info.Special, c.Text)
	case info.Special.IsFloating():
		return renderFloating(info.Special, c.Text)
	case info.Special == symbols.SpecialDecimal:
		return renderDecimal(c.Text)
	}

	// Object and other reference types holding a boxed number: render by constant kind.
	switch c.Kind {
	case symbols.ConstInteger:
		return renderIntegral(symbols.SpecialInt64, c.Text)
	case symbols.ConstFloating:
		return renderFloating(symbols.SpecialDouble, c.Text)
	case symbols.ConstDecimal:
		return renderDecimal(c.Text)
	}
	return "", errors.NewUnresolvablef("no literal form for %s default of type %s", c.Kind, typ.String())
}

func renderBoolean(text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1":
		return "True", nil
	case "false", "0", "":
		return "False", nil
	}
	return "", errors.NewInvalidRequestf("invalid Boolean constant %q", text)
}

func itoa(i int) string {
	return formatInt(int64(i))
}
