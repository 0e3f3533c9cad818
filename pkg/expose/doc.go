// Package expose executes rule packs against tabular data and attaches the
// outcome as an exposure: per-pack execution metadata plus a canonical,
// row-traceable validation report.
//
// The underlying data is never mutated. Exposure is modeled as an explicit
// wrapper (Exposed) around the frame, so the "data returned unchanged"
// guarantee is structurally checkable. Repeated Expose calls merge their
// exposures by concatenation, making exposure composable: applying packs A
// then B is equivalent to applying A and B in one call.
package expose
