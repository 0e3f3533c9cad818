package expose

// normalize.go - Conversion of raw pack results into the report schema

import (
	"fmt"
	"strings"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

// normalize converts a classified raw result into report rows. The
// returned warning, if any, is recorded in the pack's PackInfo without
// failing the pack.
func normalize(res *frame.Frame, typ rules.PackType, packName string,
	groupVars []string, sep rules.Separator) ([]rules.ReportRow, string, error) {

	switch typ {
	case rules.TypeWhole:
		return normalizeOneRow(res, packName, sep, false)
	case rules.TypeCol:
		return normalizeOneRow(res, packName, sep, true)
	case rules.TypeRow:
		return normalizePerRow(res, packName, sep, false)
	case rules.TypeCell:
		return normalizePerRow(res, packName, sep, true)
	case rules.TypeGroup:
		return normalizeGrouped(res, packName, groupVars, sep)
	default:
		return nil, "", fmt.Errorf("cannot normalize pack %q of type %s", packName, typ)
	}
}

// normalizeOneRow handles whole and col packs: a single result row whose
// columns are rules. Col packs additionally split composite names into
// rule and variable.
func normalizeOneRow(res *frame.Frame, packName string, sep rules.Separator,
	split bool) ([]rules.ReportRow, string, error) {

	if res.NumRows() != 1 {
		return nil, "", fmt.Errorf("pack %q result must have exactly one row, got %d",
			packName, res.NumRows())
	}

	var report []rules.ReportRow
	for _, name := range res.Names() {
		if name == rules.KeyColumn {
			continue
		}
		rule, variable := name, rules.All
		if split {
			if r, v, ok := sep.Split(name); ok {
				rule, variable = r, v
			}
		}
		v, _ := res.Value(name, 0)
		passed, ok := v.(bool)
		if !ok {
			return nil, "", &rules.NonLogicalRuleResultError{Pack: packName, Rule: rule, Value: v}
		}
		report = append(report, rules.ReportRow{
			Pack:    packName,
			Rule:    rule,
			Var:     variable,
			ID:      rules.All,
			Verdict: !passed,
		})
	}

	return report, emptyWarning(report), nil
}

// normalizePerRow handles row and cell packs: the result carries the key
// column and one verdict per rule per surviving row.
func normalizePerRow(res *frame.Frame, packName string, sep rules.Separator,
	split bool) ([]rules.ReportRow, string, error) {

	keyCol, ok := res.Column(rules.KeyColumn)
	if !ok {
		return nil, "", fmt.Errorf("pack %q result lacks the %s column", packName, rules.KeyColumn)
	}

	var report []rules.ReportRow
	for _, name := range res.Names() {
		if name == rules.KeyColumn {
			continue
		}
		rule, variable := name, rules.All
		if split {
			if r, v, ok := sep.Split(name); ok {
				rule, variable = r, v
			}
		}
		col, _ := res.Column(name)
		for row, v := range col.Values {
			passed, ok := v.(bool)
			if !ok {
				return nil, "", &rules.NonLogicalRuleResultError{Pack: packName, Rule: rule, Value: v}
			}
			report = append(report, rules.ReportRow{
				Pack:    packName,
				Rule:    rule,
				Var:     variable,
				ID:      valueString(keyCol.Values[row]),
				Verdict: !passed,
			})
		}
	}

	return report, emptyWarning(report), nil
}

// normalizeGrouped handles group packs: the declared group columns form
// the variable identifier, every other column is a rule.
func normalizeGrouped(res *frame.Frame, packName string, groupVars []string,
	sep rules.Separator) ([]rules.ReportRow, string, error) {

	if len(groupVars) == 0 {
		return nil, "", fmt.Errorf("pack %q is grouped but declares no group vars", packName)
	}
	groupCols := make([]frame.Column, 0, len(groupVars))
	isGroup := make(map[string]bool, len(groupVars))
	for _, g := range groupVars {
		c, ok := res.Column(g)
		if !ok {
			return nil, "", fmt.Errorf("pack %q result lacks group column %q", packName, g)
		}
		groupCols = append(groupCols, c)
		isGroup[g] = true
	}

	var report []rules.ReportRow
	for _, name := range res.Names() {
		if isGroup[name] || name == rules.KeyColumn {
			continue
		}
		col, _ := res.Column(name)
		for row, v := range col.Values {
			passed, ok := v.(bool)
			if !ok {
				return nil, "", &rules.NonLogicalRuleResultError{Pack: packName, Rule: name, Value: v}
			}
			parts := make([]string, len(groupCols))
			for i, g := range groupCols {
				parts[i] = valueString(g.Values[row])
			}
			report = append(report, rules.ReportRow{
				Pack:    packName,
				Rule:    name,
				Var:     strings.Join(parts, "."),
				ID:      rules.All,
				Verdict: !passed,
			})
		}
	}

	return report, emptyWarning(report), nil
}

// valueString renders a result value as a report identifier.
func valueString(v any) string {
	if v == nil {
		return "NA"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func emptyWarning(report []rules.ReportRow) string {
	if len(report) == 0 {
		return "pack produced no rule results"
	}
	return ""
}
