// Package transform defines the derivations applied to a loaded table
// between its source and its sinks. Runner stages apply each Transformer in
// order, in place, before anything is written.
package transform
