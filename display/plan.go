// Package display renders plans and configuration for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/implgen/emit"
	"github.com/teranos/implgen/implement"
)

// PlanOptions selects what RenderResult prints besides the strategy table.
type PlanOptions struct {
	// Generator renders member previews; nil disables previews.
	Generator emit.Generator
	// Strategy selects the previewed strategy by kind name ("stub") or
	// 1-based position in the table. Empty previews nothing.
	Strategy string
}

// RenderResult writes one request's plans as sections with a strategy table each.
func RenderResult(w io.Writer, res *implement.Result, opts PlanOptions) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint(res.Target.String()))
	fmt.Fprintln(w, pterm.Gray("request "+res.RequestID))

	for _, plan := range res.Plans {
		fmt.Fprintln(w, pterm.DefaultSection.WithLevel(2).Sprint(plan.Contract.String()))

		if plan.NotApplicable {
			fmt.Fprintln(w, pterm.Yellow("nothing to implement: "+plan.Reason))
			continue
		}

		for _, c := range plan.Conflicts {
			why := "existing member"
			if c.Generated {
				why = "earlier generated member"
			}
			fmt.Fprintf(w, "%s %s is taken by an %s; generated as %s\n",
				pterm.Yellow("!"), c.Slot.Name, why, c.Fallback)
		}
		for _, sk := range plan.Skipped {
			fmt.Fprintf(w, "%s %s cannot be delegated through: %s\n",
				pterm.Yellow("!"), sk.Name, sk.Reason)
		}

		data := pterm.TableData{{"#", "Kind", "Title", "Members"}}
		for i, s := range plan.Strategies {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				s.Kind.String(),
				s.Title,
				memberSummary(s.Members),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("render strategy table: %w", err)
		}
		fmt.Fprintln(w, table)

		if opts.Generator == nil || opts.Strategy == "" {
			continue
		}
		s, ok := SelectStrategy(plan.Strategies, opts.Strategy)
		if !ok {
			fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("no strategy %q for %s", opts.Strategy, plan.Contract.String())))
			continue
		}
		fmt.Fprintln(w, opts.Generator.GenerateStrategy(s))
	}
	return nil
}

// SelectStrategy finds a strategy by kind name or 1-based position.
func SelectStrategy(strategies []implement.Strategy, sel string) (implement.Strategy, bool) {
	if n, err := strconv.Atoi(sel); err == nil {
		if n >= 1 && n <= len(strategies) {
			return strategies[n-1], true
		}
		return implement.Strategy{}, false
	}
	for _, s := range strategies {
		if strings.EqualFold(s.Kind.String(), sel) {
			return s, true
		}
	}
	return implement.Strategy{}, false
}

func memberSummary(members []implement.GeneratedMember) string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}
