package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kieroneil/ruler/pkg/frame"
)

// KeyColumn is the reserved column name carrying row identity. The engine
// injects it into the copy of the data handed to each pack; row and cell
// packs keep it in their result so verdicts can be traced back to origin
// rows even after the pack filtered or reordered the data.
const KeyColumn = ".key"

// PackType is the shape of a pack's raw result.
type PackType int

// The five result shapes, plus TypeUnknown for packs whose shape is
// inferred from their output.
const (
	TypeUnknown PackType = iota
	// TypeWhole: single row, one verdict per rule for the entire dataset.
	TypeWhole
	// TypeGroup: group columns plus rule columns, one verdict per rule
	// per group-key combination.
	TypeGroup
	// TypeCol: single row, rule columns named as rule/variable composites.
	TypeCol
	// TypeRow: key column plus non-composite rule columns, one verdict
	// per rule per row.
	TypeRow
	// TypeCell: key column plus composite rule columns, one verdict per
	// rule per (row, column).
	TypeCell
)

// String returns the type's canonical name.
func (t PackType) String() string {
	switch t {
	case TypeWhole:
		return "whole"
	case TypeGroup:
		return "group"
	case TypeCol:
		return "col"
	case TypeRow:
		return "row"
	case TypeCell:
		return "cell"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its canonical name.
func (t PackType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a canonical type name.
func (t *PackType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePackType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParsePackType parses a canonical type name.
func ParsePackType(s string) (PackType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole":
		return TypeWhole, nil
	case "group", "grouped":
		return TypeGroup, nil
	case "col", "column":
		return TypeCol, nil
	case "row":
		return TypeRow, nil
	case "cell":
		return TypeCell, nil
	case "", "unknown":
		return TypeUnknown, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown pack type %q", s)
	}
}

// PackFunc is a pack body: a pure function from a data frame to a raw
// result frame in one of the five shapes. The input is a keyed copy of the
// caller's data; the function is free to filter, summarize or regroup it.
type PackFunc func(*frame.Frame) (*frame.Frame, error)

// Pack is a named rule collection.
//
// Name may be empty, in which case the engine generates one from the
// pack's (declared or inferred) type and its position in the run.
// Type may be TypeUnknown, in which case the engine classifies the pack
// by the shape of its output. GroupVars declares the grouping columns of
// a group pack; a non-empty GroupVars forces TypeGroup.
type Pack struct {
	Name      string
	Type      PackType
	GroupVars []string
	Fn        PackFunc
}

// Validate checks that the pack can be executed.
func (p Pack) Validate() error {
	if p.Fn == nil {
		return fmt.Errorf("pack %q has no body", p.Name)
	}
	if len(p.GroupVars) > 0 && p.Type != TypeUnknown && p.Type != TypeGroup {
		return fmt.Errorf("pack %q declares group vars but has type %s", p.Name, p.Type)
	}
	return nil
}

// Flatten collects packs from bare Pack values and arbitrarily nested
// slices of packs, preserving order. Anything else is an error.
func Flatten(items ...any) ([]Pack, error) {
	var packs []Pack
	for _, item := range items {
		switch v := item.(type) {
		case Pack:
			packs = append(packs, v)
		case *Pack:
			if v == nil {
				return nil, fmt.Errorf("nil pack")
			}
			packs = append(packs, *v)
		case []Pack:
			packs = append(packs, v...)
		case []any:
			nested, err := Flatten(v...)
			if err != nil {
				return nil, err
			}
			packs = append(packs, nested...)
		default:
			return nil, fmt.Errorf("not a pack: %T", item)
		}
	}
	return packs, nil
}
