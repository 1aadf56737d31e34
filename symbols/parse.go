package symbols

import (
	"strings"
	"unicode"

	"github.com/teranos/implgen/errors"
)

// ParseTypeRef parses display syntax such as "Dictionary(Of String, List(Of T))",
// "Integer(,)", "Long?" or "System.IDisposable".
//
// Unqualified, non-generic names listed in typeParams become type parameter
// references.
func ParseTypeRef(s string, typeParams ...string) (TypeRef, error) {
	p := &typeParser{toks: tokenize(s), typeParams: typeParams, src: s}
	if len(p.toks) == 0 {
		return TypeRef{}, errors.NewInvalidRequestf("empty type reference")
	}
	ref, err := p.parseType()
	if err != nil {
		return TypeRef{}, err
	}
	if p.pos != len(p.toks) {
		return TypeRef{}, errors.NewInvalidRequestf("unexpected %q in type reference %q", p.toks[p.pos], s)
	}
	return ref, nil
}

// MustParseTypeRef is ParseTypeRef for literals known to be valid; it panics otherwise.
func MustParseTypeRef(s string, typeParams ...string) TypeRef {
	ref, err := ParseTypeRef(s, typeParams...)
	if err != nil {
		panic(err)
	}
	return ref
}

type typeParser struct {
	toks       []string
	pos        int
	typeParams []string
	src        string
}

func (p *typeParser) peek(offset int) string {
	if p.pos+offset < len(p.toks) {
		return p.toks[p.pos+offset]
	}
	return ""
}

func (p *typeParser) expect(tok string) error {
	if p.peek(0) != tok {
		return errors.NewInvalidRequestf("expected %q in type reference %q", tok, p.src)
	}
	p.pos++
	return nil
}

func (p *typeParser) parseType() (TypeRef, error) {
	ref, err := p.parseBase()
	if err != nil {
		return TypeRef{}, err
	}

	for {
		switch {
		case p.peek(0) == "?":
			p.pos++
			ref = TypeRef{Kind: RefNamed, Name: "Nullable", Args: []TypeRef{ref}}
		case p.peek(0) == "(" && !strings.EqualFold(p.peek(1), "Of"):
			p.pos++
			rank := 1
			for p.peek(0) == "," {
				rank++
				p.pos++
			}
			if err := p.expect(")"); err != nil {
				return TypeRef{}, err
			}
			ref = ArrayOf(ref, rank)
		default:
			return ref, nil
		}
	}
}

func (p *typeParser) parseBase() (TypeRef, error) {
	var parts []string
	for {
		tok := p.peek(0)
		if !isIdentToken(tok) {
			return TypeRef{}, errors.NewInvalidRequestf("expected identifier in type reference %q", p.src)
		}
		parts = append(parts, unescapeIdent(tok))
		p.pos++
		if p.peek(0) != "." {
			break
		}
		p.pos++
	}

	var args []TypeRef
	if p.peek(0) == "(" && strings.EqualFold(p.peek(1), "Of") {
		p.pos += 2
		for {
			arg, err := p.parseType()
			if err != nil {
				return TypeRef{}, err
			}
			args = append(args, arg)
			if p.peek(0) != "," {
				break
			}
			p.pos++
		}
		if err := p.expect(")"); err != nil {
			return TypeRef{}, err
		}
	}

	if len(parts) == 1 && len(args) == 0 {
		for _, tp := range p.typeParams {
			if tp == parts[0] {
				return TypeParamRef(parts[0]), nil
			}
		}
	}

	ref := TypeRef{Kind: RefNamed, Name: parts[len(parts)-1], Args: args}
	if len(parts) > 1 {
		ref.Namespace = strings.Join(parts[:len(parts)-1], ".")
	}
	return ref, nil
}

func tokenize(s string) []string {
	var toks []string
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.ContainsRune("().,?", r):
			toks = append(toks, string(r))
			i++
		case r == '[':
			j := i + 1
			for j < len(rs) && rs[j] != ']' {
				j++
			}
			if j < len(rs) {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		default:
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			if j == i {
				j = i + 1
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		}
	}
	return toks
}

func isIdentToken(tok string) bool {
	if tok == "" {
		return false
	}
	if strings.HasPrefix(tok, "[") {
		return strings.HasSuffix(tok, "]") && len(tok) > 2
	}
	r := []rune(tok)[0]
	return unicode.IsLetter(r) || r == '_'
}

func unescapeIdent(tok string) string {
	if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") {
		return tok[1 : len(tok)-1]
	}
	return tok
}
