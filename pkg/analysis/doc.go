// Package analysis holds the passes that run between building an AST and
// exporting anything from it: scope binding and interface derivation
// checks. Passes never stop at the first problem; they collect
// diagnostics as plain values and leave acting on them to the caller.
package analysis
