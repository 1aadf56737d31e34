package literal

import (
	"math/big"
	"strings"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// renderEnum renders an enum default.
//
// A value equal to a member renders as that member. A flags value that is
// an exact union of members renders as their OR-combination in declaration
// order. Anything else renders as the integral value, wrapped in CType when
// strict typing is on.
func (t *Transcriber) renderEnum(info *symbols.TypeInfo, typeName, text string) (string, error) {
	v, err := parseIntegral(text)
	if err != nil {
		return "", err
	}
	if info.Enum == nil {
		return "", errors.NewUnresolvablef("enum %s has no member information", typeName)
	}

	values := make([]*big.Int, len(info.Enum.Members))
	for i, m := range info.Enum.Members {
		mv, err := parseIntegral(m.Value)
		if err != nil {
			return "", errors.Wrapf(err, "member %s of %s", m.Name, typeName)
		}
		values[i] = mv
	}

	for i, mv := range values {
		if mv.Cmp(v) == 0 {
			return typeName + "." + Escape(info.Enum.Members[i].Name), nil
		}
	}

	if info.Enum.Flags && v.Sign() > 0 {
		if names, ok := decomposeFlags(v, info.Enum.Members, values); ok {
			for i := range names {
				names[i] = typeName + "." + Escape(names[i])
			}
			return strings.Join(names, " Or "), nil
		}
	}

	logger.StageDebugw(t.log, logger.StageLiteral, "enum value matches no member",
		"type", typeName, "value", v.String(), "flags", info.Enum.Flags)

	lit := v.String()
	if t.opts.Strict {
		return "CType(" + lit + ", " + typeName + ")", nil
	}
	return lit, nil
}

// decomposeFlags covers v with members whose bits are all set in v, taking
// them greedily in declaration order and skipping members that add no new
// bits. It fails when bits remain uncovered.
func decomposeFlags(v *big.Int, members []symbols.EnumMember, values []*big.Int) ([]string, bool) {
	remaining := new(big.Int).Set(v)
	var names []string
	scratch := new(big.Int)

	for i, mv := range values {
		if mv.Sign() <= 0 {
			continue
		}
		if scratch.And(v, mv).Cmp(mv) != 0 {
			continue
		}
		if scratch.And(remaining, mv).Sign() == 0 {
			continue
		}
		names = append(names, members[i].Name)
		remaining.AndNot(remaining, mv)
	}

	if remaining.Sign() != 0 {
		return nil, false
	}
	return names, true
}
