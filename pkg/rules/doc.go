// Package rules defines the vocabulary of the validation engine: packs
// (named rule collections applied to a data frame), the five pack result
// shapes, the composite rule/variable name separator, the structural
// classifier that infers a pack's shape from its raw output, and the
// canonical report schema.
//
// The package defines types used across the system. The execution engine
// that applies packs and attaches exposures lives in package expose.
package rules
