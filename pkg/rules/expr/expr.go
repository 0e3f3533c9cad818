// Package expr builds rule packs from Starlark expressions, so rule sets
// can be declared in configuration instead of Go. A whole pack evaluates
// each expression once against the dataset; a row pack evaluates each
// expression per row with that row's cells in scope.
package expr

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

// compiledRule pairs a rule name with its validated expression source.
type compiledRule struct {
	name string
	src  string
}

// compileRules validates the expressions and fixes a deterministic rule
// order (sorted by rule name).
func compileRules(packName string, ruleExprs map[string]string) ([]compiledRule, error) {
	if len(ruleExprs) == 0 {
		return nil, fmt.Errorf("pack %q declares no rules", packName)
	}
	names := make([]string, 0, len(ruleExprs))
	for name := range ruleExprs {
		names = append(names, name)
	}
	sort.Strings(names)

	compiled := make([]compiledRule, 0, len(names))
	for _, name := range names {
		src := ruleExprs[name]
		if _, err := syntax.ParseExpr(name, src, 0); err != nil {
			return nil, fmt.Errorf("pack %q rule %q: invalid expression: %w", packName, name, err)
		}
		compiled = append(compiled, compiledRule{name: name, src: src})
	}
	return compiled, nil
}

func newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, _ string) {},
	}
}

// Whole builds a whole pack whose rules are expressions over the dataset:
// each column is bound as a list, plus nrow and ncol.
func Whole(name string, ruleExprs map[string]string) (rules.Pack, error) {
	compiled, err := compileRules(name, ruleExprs)
	if err != nil {
		return rules.Pack{}, err
	}
	return rules.Pack{
		Name: name,
		Type: rules.TypeWhole,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			data := f.Drop(rules.KeyColumn)
			env := starlark.StringDict{
				"nrow": starlark.MakeInt(data.NumRows()),
				"ncol": starlark.MakeInt(data.NumCols()),
			}
			for _, colName := range data.Names() {
				if !isIdentifier(colName) {
					continue
				}
				c, _ := data.Column(colName)
				list := make([]starlark.Value, len(c.Values))
				for i, v := range c.Values {
					list[i] = toStarlark(v)
				}
				env[colName] = starlark.NewList(list)
			}

			thread := newThread(name)
			cols := make([]frame.Column, 0, len(compiled))
			for _, r := range compiled {
				v, err := starlark.Eval(thread, r.name, r.src, env)
				if err != nil {
					return nil, fmt.Errorf("rule %q: %w", r.name, err)
				}
				cols = append(cols, frame.Column{Name: r.name, Values: []any{fromStarlark(v)}})
			}
			return frame.New(cols...)
		},
	}, nil
}

// Row builds a row pack whose rules are expressions over a single row:
// each cell is bound as a scalar under its column name.
func Row(name string, ruleExprs map[string]string) (rules.Pack, error) {
	compiled, err := compileRules(name, ruleExprs)
	if err != nil {
		return rules.Pack{}, err
	}
	return rules.Pack{
		Name: name,
		Type: rules.TypeRow,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			data := f.Drop(rules.KeyColumn)
			thread := newThread(name)

			verdicts := make(map[string][]any, len(compiled))
			for _, r := range compiled {
				verdicts[r.name] = make([]any, f.NumRows())
			}
			for row := 0; row < f.NumRows(); row++ {
				env := starlark.StringDict{}
				for _, colName := range data.Names() {
					if !isIdentifier(colName) {
						continue
					}
					v, _ := data.Value(colName, row)
					env[colName] = toStarlark(v)
				}
				for _, r := range compiled {
					v, err := starlark.Eval(thread, r.name, r.src, env)
					if err != nil {
						return nil, fmt.Errorf("rule %q, row %d: %w", r.name, row+1, err)
					}
					verdicts[r.name][row] = fromStarlark(v)
				}
			}

			out, err := f.Select(rules.KeyColumn)
			if err != nil {
				return nil, err
			}
			for _, r := range compiled {
				out, err = out.WithColumn(r.name, verdicts[r.name])
				if err != nil {
					return nil, err
				}
			}
			return out, nil
		},
	}, nil
}

// Build constructs a pack of the declared type from rule expressions.
// Only whole and row packs can be declared by expression.
func Build(name string, typ rules.PackType, ruleExprs map[string]string) (rules.Pack, error) {
	switch typ {
	case rules.TypeWhole:
		return Whole(name, ruleExprs)
	case rules.TypeRow, rules.TypeUnknown:
		return Row(name, ruleExprs)
	default:
		return rules.Pack{}, fmt.Errorf("expression packs support whole and row types, not %s", typ)
	}
}
