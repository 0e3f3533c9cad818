// Package frame provides a small in-memory tabular data model: an ordered
// sequence of named columns of equal length. It is the substrate rule packs
// operate on; it deliberately stays far away from being a full data-frame
// library.
package frame

import (
	"fmt"
	"reflect"
)

// Column is a named, ordered sequence of values. Values are dynamically
// typed; CSV loading produces bool, int64, float64, string or nil.
type Column struct {
	Name   string
	Values []any
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New creates a frame from the given columns. All columns must have unique
// names and equal length.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column without a name")
		}
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		if len(f.cols) > 0 && len(c.Values) != len(f.cols[0].Values) {
			return nil, fmt.Errorf("column %q has %d values, want %d",
				c.Name, len(c.Values), len(f.cols[0].Values))
		}
		f.index[c.Name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for tests and for
// literal frames whose shape is statically known.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the row count. An empty frame has zero rows.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Values)
}

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[i], true
}

// Value returns the value at (column, row).
func (f *Frame) Value(name string, row int) (any, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= len(c.Values) {
		return nil, fmt.Errorf("row %d out of range for column %q", row, name)
	}
	return c.Values[row], nil
}

// Clone returns a deep copy of the frame. Values themselves are shared;
// only the column structure and value slices are copied.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		cols:  make([]Column, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for i, c := range f.cols {
		vals := make([]any, len(c.Values))
		copy(vals, c.Values)
		out.cols[i] = Column{Name: c.Name, Values: vals}
		out.index[c.Name] = i
	}
	return out
}

// Equal reports whether two frames have identical column names, order and
// values.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if len(f.cols) != len(o.cols) {
		return false
	}
	for i, c := range f.cols {
		oc := o.cols[i]
		if c.Name != oc.Name || len(c.Values) != len(oc.Values) {
			return false
		}
		for j, v := range c.Values {
			if !reflect.DeepEqual(v, oc.Values[j]) {
				return false
			}
		}
	}
	return true
}

// Select returns a new frame containing only the named columns, in the
// given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Drop returns a new frame without the named columns. Unknown names are
// ignored.
func (f *Frame) Drop(names ...string) *Frame {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	var cols []Column
	for _, c := range f.cols {
		if _, skip := drop[c.Name]; !skip {
			cols = append(cols, c)
		}
	}
	out, _ := New(cols...)
	return out
}

// WithColumn returns a new frame with the column appended, or replaced if a
// column of that name already exists.
func (f *Frame) WithColumn(name string, values []any) (*Frame, error) {
	if f.NumCols() > 0 && len(values) != f.NumRows() {
		return nil, fmt.Errorf("column %q has %d values, want %d", name, len(values), f.NumRows())
	}
	out := f.Clone()
	if i, ok := out.index[name]; ok {
		out.cols[i].Values = values
		return out, nil
	}
	out.index[name] = len(out.cols)
	out.cols = append(out.cols, Column{Name: name, Values: values})
	return out, nil
}

// Prepend returns a new frame with the column inserted at position zero.
// Any existing column of that name is removed first.
func (f *Frame) Prepend(name string, values []any) (*Frame, error) {
	base := f.Drop(name)
	if base.NumCols() > 0 && len(values) != base.NumRows() {
		return nil, fmt.Errorf("column %q has %d values, want %d", name, len(values), base.NumRows())
	}
	cols := make([]Column, 0, base.NumCols()+1)
	cols = append(cols, Column{Name: name, Values: values})
	cols = append(cols, base.cols...)
	return New(cols...)
}

// Filter returns a new frame containing only the rows for which keep
// returns true. Row order is preserved.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var rows []int
	for i := 0; i < f.NumRows(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return f.Take(rows)
}

// Take returns a new frame containing the given rows, in the given order.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		vals := make([]any, len(rows))
		for j, r := range rows {
			vals[j] = c.Values[r]
		}
		cols[i] = Column{Name: c.Name, Values: vals}
	}
	out, _ := New(cols...)
	return out
}

// Group is a set of row indices sharing the same key values.
type Group struct {
	Key  []any
	Rows []int
}

// GroupIndices partitions rows by the values of the given columns. Groups
// are ordered by first appearance, rows within a group keep frame order.
func (f *Frame) GroupIndices(by ...string) ([]Group, error) {
	cols := make([]Column, 0, len(by))
	for _, name := range by {
		c, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		cols = append(cols, c)
	}
	var groups []Group
	seen := make(map[string]int)
	for r := 0; r < f.NumRows(); r++ {
		key := make([]any, len(cols))
		id := ""
		for i, c := range cols {
			key[i] = c.Values[r]
			id += fmt.Sprintf("%#v\x00", c.Values[r])
		}
		gi, ok := seen[id]
		if !ok {
			gi = len(groups)
			seen[id] = gi
			groups = append(groups, Group{Key: key})
		}
		groups[gi].Rows = append(groups[gi].Rows, r)
	}
	return groups, nil
}
