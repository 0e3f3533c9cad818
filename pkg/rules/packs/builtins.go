package packs

import (
	"fmt"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

func init() {
	Register(Spec{
		Name:        "dims",
		Description: "dataset has at least the given number of rows and columns",
		Type:        rules.TypeWhole,
		OptionKeys:  []string{"min_rows", "min_cols"},
		Build: func(opts map[string]any) (rules.Pack, error) {
			return Dims(GetIntOption(opts, "min_rows", 1), GetIntOption(opts, "min_cols", 1)), nil
		},
	})
	Register(Spec{
		Name:        "complete",
		Description: "columns contain no missing values",
		Type:        rules.TypeCol,
		OptionKeys:  []string{"cols"},
		Build: func(opts map[string]any) (rules.Pack, error) {
			return Complete(GetStringSliceOption(opts, "cols", nil)...), nil
		},
	})
	Register(Spec{
		Name:        "row-complete",
		Description: "every row has no missing values",
		Type:        rules.TypeRow,
		Build: func(opts map[string]any) (rules.Pack, error) {
			return RowComplete(), nil
		},
	})
	Register(Spec{
		Name:        "in-range",
		Description: "numeric cells fall inside [min, max]",
		Type:        rules.TypeCell,
		OptionKeys:  []string{"cols", "min", "max"},
		Build: func(opts map[string]any) (rules.Pack, error) {
			cols := GetStringSliceOption(opts, "cols", nil)
			if len(cols) == 0 {
				return rules.Pack{}, fmt.Errorf("in-range requires cols")
			}
			min := GetFloatOption(opts, "min", 0)
			max := GetFloatOption(opts, "max", 0)
			return InRange(min, max, cols...), nil
		},
	})
	Register(Spec{
		Name:        "group-size",
		Description: "every group has at least the given number of rows",
		Type:        rules.TypeGroup,
		OptionKeys:  []string{"by", "min"},
		Build: func(opts map[string]any) (rules.Pack, error) {
			by := GetStringSliceOption(opts, "by", nil)
			if len(by) == 0 {
				return rules.Pack{}, fmt.Errorf("group-size requires by")
			}
			return GroupSize(GetIntOption(opts, "min", 1), by...), nil
		},
	})
}

// Dims is a whole pack checking the dataset's dimensions.
func Dims(minRows, minCols int) rules.Pack {
	return rules.Pack{
		Name: "dims",
		Type: rules.TypeWhole,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			data := f.Drop(rules.KeyColumn)
			return frame.New(
				frame.Column{Name: "nrow_at_least", Values: []any{data.NumRows() >= minRows}},
				frame.Column{Name: "ncol_at_least", Values: []any{data.NumCols() >= minCols}},
			)
		},
	}
}

// Complete is a col pack checking that the given columns (all data
// columns when none are named) carry no missing values.
func Complete(cols ...string) rules.Pack {
	return rules.Pack{
		Name: "complete",
		Type: rules.TypeCol,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			names := cols
			if len(names) == 0 {
				names = f.Drop(rules.KeyColumn).Names()
			}
			out := make([]frame.Column, 0, len(names))
			for _, name := range names {
				c, ok := f.Column(name)
				if !ok {
					return nil, fmt.Errorf("no column %q", name)
				}
				complete := true
				for _, v := range c.Values {
					if v == nil {
						complete = false
						break
					}
				}
				out = append(out, frame.Column{
					Name:   rules.Compose("complete", name),
					Values: []any{complete},
				})
			}
			return frame.New(out...)
		},
	}
}

// RowComplete is a row pack checking that every cell of a row is present.
func RowComplete() rules.Pack {
	return rules.Pack{
		Name: "row_complete",
		Type: rules.TypeRow,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			data := f.Drop(rules.KeyColumn)
			verdicts := make([]any, f.NumRows())
			for row := range verdicts {
				complete := true
				for _, name := range data.Names() {
					v, err := data.Value(name, row)
					if err != nil {
						return nil, err
					}
					if v == nil {
						complete = false
						break
					}
				}
				verdicts[row] = complete
			}
			keyed, err := f.Select(rules.KeyColumn)
			if err != nil {
				return nil, err
			}
			return keyed.WithColumn("complete", verdicts)
		},
	}
}

// InRange is a cell pack checking that numeric cells of the given columns
// fall inside [min, max]. Missing and non-numeric cells fail the check.
func InRange(min, max float64, cols ...string) rules.Pack {
	return rules.Pack{
		Name: "in_range",
		Type: rules.TypeCell,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			keyed, err := f.Select(rules.KeyColumn)
			if err != nil {
				return nil, err
			}
			for _, name := range cols {
				c, ok := f.Column(name)
				if !ok {
					return nil, fmt.Errorf("no column %q", name)
				}
				verdicts := make([]any, len(c.Values))
				for i, v := range c.Values {
					x, ok := asFloat(v)
					verdicts[i] = ok && x >= min && x <= max
				}
				keyed, err = keyed.WithColumn(rules.Compose("in_range", name), verdicts)
				if err != nil {
					return nil, err
				}
			}
			return keyed, nil
		},
	}
}

// GroupSize is a group pack checking that every combination of the given
// grouping columns covers at least min rows.
func GroupSize(min int, by ...string) rules.Pack {
	return rules.Pack{
		Name:      "group_size",
		GroupVars: by,
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			groups, err := f.GroupIndices(by...)
			if err != nil {
				return nil, err
			}
			cols := make([]frame.Column, len(by)+1)
			for i, name := range by {
				vals := make([]any, len(groups))
				for gi, g := range groups {
					vals[gi] = g.Key[i]
				}
				cols[i] = frame.Column{Name: name, Values: vals}
			}
			verdicts := make([]any, len(groups))
			for gi, g := range groups {
				verdicts[gi] = len(g.Rows) >= min
			}
			cols[len(by)] = frame.Column{Name: "size_at_least", Values: verdicts}
			return frame.New(cols...)
		},
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
