package implement

import (
	"context"

	"go.uber.org/zap"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// isCandidate reports whether a member can be delegated through: a field,
// or a readable property that takes no parameters and is not the default
// property.
func isCandidate(m symbols.ExistingMember) bool {
	switch m.Kind {
	case symbols.KindField:
		return true
	case symbols.KindProperty:
		return len(m.Params) == 0 && !m.IsDefault && m.Readable
	}
	return false
}

// findCandidates returns, in declaration order, the members declared on the
// target whose type provides the whole contract. Members with the same name
// are offered once. A member whose type cannot be resolved is not offered
// and is reported in skipped instead.
func findCandidates(ctx context.Context, src symbols.Source, target symbols.TypeRef, members []symbols.ExistingMember, contract symbols.TypeRef, log *zap.SugaredLogger) ([]Candidate, []SkippedCandidate, error) {
	var (
		out     []Candidate
		skipped []SkippedCandidate
	)

	for _, m := range members {
		if !m.Declaring.Equal(target) || !isCandidate(m) {
			continue
		}
		dup := false
		for _, c := range out {
			if src.SameName(c.Name, m.Name) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		ok, err := src.Provides(ctx, m.Type, contract)
		if err != nil {
			if errors.IsUnresolvable(err) {
				logger.StageDebugw(log, logger.StageDelegation, "skipping candidate with unresolvable type",
					logger.FieldMember, m.Name, "type", m.Type.String(), logger.FieldError, err.Error())
				skipped = append(skipped, SkippedCandidate{Name: m.Name, Type: m.Type, Reason: err.Error()})
				continue
			}
			return nil, nil, errors.Wrapf(err, "check candidate %s", m.Name)
		}
		if !ok {
			continue
		}

		out = append(out, Candidate{
			Name:       m.Name,
			Identifier: literal.Escape(m.Name),
			Kind:       m.Kind,
			Type:       m.Type,
			Shared:     m.Shared,
		})
	}

	logger.StageDebugw(log, logger.StageDelegation, "delegation candidates",
		logger.FieldContract, contract.Key(), logger.FieldCount, len(out), "skipped", len(skipped))
	return out, skipped, nil
}
