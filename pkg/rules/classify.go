package rules

import (
	"fmt"

	"github.com/kieroneil/ruler/pkg/frame"
)

// Classify determines a pack's result shape.
//
// A declared type always wins. Group vars supplied at pack definition time
// force TypeGroup. Otherwise, when guessing is enabled, a fixed precedence
// of structural signals applies:
//
//  1. result carries the key column -> cell if any other column name is a
//     rule/variable composite, else row;
//  2. any column name is composite -> col;
//  3. single row -> whole.
//
// Classification is a pure function of the result and the separator, so
// guessing is deterministic. It fails with AmbiguousPackTypeError when
// guessing is disabled or no signal applies.
func Classify(res *frame.Frame, pack Pack, sep Separator, guess bool) (PackType, error) {
	if pack.Type != TypeUnknown {
		return pack.Type, nil
	}
	if len(pack.GroupVars) > 0 {
		return TypeGroup, nil
	}
	if !guess {
		return TypeUnknown, &AmbiguousPackTypeError{
			Pack:   pack.Name,
			Reason: "guessing disabled and no type declared",
		}
	}
	if res == nil {
		return TypeUnknown, &AmbiguousPackTypeError{Pack: pack.Name, Reason: "nil result"}
	}

	composite := false
	for _, name := range res.Names() {
		if name == KeyColumn {
			continue
		}
		if _, _, ok := sep.Split(name); ok {
			composite = true
			break
		}
	}

	if res.Has(KeyColumn) {
		if composite {
			return TypeCell, nil
		}
		return TypeRow, nil
	}
	if composite {
		return TypeCol, nil
	}
	if res.NumRows() == 1 {
		return TypeWhole, nil
	}
	return TypeUnknown, &AmbiguousPackTypeError{
		Pack: pack.Name,
		Reason: fmt.Sprintf("result has %d rows, no key column and no composite rule names",
			res.NumRows()),
	}
}
