package expose

import (
	"fmt"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

// Exposed wraps a data frame together with its tracked row keys and any
// attached exposure. Row keys are assigned once, when the frame first
// enters the engine, and persist across successive Expose calls.
type Exposed struct {
	frame    *frame.Frame
	keys     []string
	exposure *Exposure
}

// New wraps a frame for exposure, assigning a stable ordinal key to every
// row.
func New(f *frame.Frame) *Exposed {
	keys := make([]string, f.NumRows())
	for i := range keys {
		keys[i] = fmt.Sprintf("%d", i+1)
	}
	return &Exposed{frame: f, keys: keys}
}

// Frame returns the wrapped data frame.
func (ex *Exposed) Frame() *frame.Frame { return ex.frame }

// Keys returns a copy of the tracked row keys, in row order.
func (ex *Exposed) Keys() []string {
	keys := make([]string, len(ex.keys))
	copy(keys, ex.keys)
	return keys
}

// keyed returns a copy of the data carrying the key column, the form packs
// receive. Any pre-existing column named like the key column is stripped
// first. Fails fast when the tracked keys no longer match the data.
func (ex *Exposed) keyed() (*frame.Frame, error) {
	if len(ex.keys) != ex.frame.NumRows() {
		return nil, &rules.KeyMismatchError{
			WantRows: ex.frame.NumRows(),
			GotKeys:  len(ex.keys),
		}
	}
	values := make([]any, len(ex.keys))
	for i, k := range ex.keys {
		values[i] = k
	}
	return ex.frame.Prepend(rules.KeyColumn, values)
}
