// Package driver coordinates a compilation: project discovery through
// solgo.yaml, fetching and pinning source dependencies, and the Session
// that owns an AST run and drives the analysis passes over it.
package driver
