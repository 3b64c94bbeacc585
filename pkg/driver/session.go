package driver

import (
	"fmt"

	"solgo/compiler-go/pkg/abi"
	"solgo/compiler-go/pkg/analysis"
	"solgo/compiler-go/pkg/ast"
)

// Session owns one compilation: the node identity pool, the source units
// built into it and the diagnostics the passes produced. Nodes from one
// session must never be mixed into another; a fresh compilation starts
// with a fresh session.
type Session struct {
	run      *ast.Run
	units    []*ast.SourceUnit
	diags    []analysis.Diagnostic
	analyzed bool
}

// NewSession starts an empty compilation.
func NewSession() *Session {
	return &Session{run: ast.NewRun()}
}

// Run exposes the session's identity pool for building nodes into it.
func (s *Session) Run() *ast.Run { return s.run }

// Builder returns a node builder that tags its nodes with the given
// source name.
func (s *Session) Builder(source string) *ast.Builder {
	return ast.NewBuilder(s.run, source)
}

// AddUnit registers a built source unit with the compilation. Adding
// units after Analyze restarts the analysis on next access.
func (s *Session) AddUnit(unit *ast.SourceUnit) {
	s.units = append(s.units, unit)
	s.analyzed = false
	s.diags = nil
}

// Units returns the registered source units in registration order.
func (s *Session) Units() []*ast.SourceUnit { return s.units }

// Analyze runs the pass pipeline over all units: scope binding first,
// then interface derivation. The interface pass also warms every lazy
// per-contract cache, so once Analyze has returned the session's AST can
// be read from multiple goroutines.
func (s *Session) Analyze() []analysis.Diagnostic {
	if s.analyzed {
		return s.diags
	}
	for _, unit := range s.units {
		s.diags = append(s.diags, analysis.BindScopes(unit)...)
	}
	for _, unit := range s.units {
		s.diags = append(s.diags, analysis.CheckInterfaces(unit)...)
	}
	s.analyzed = true
	return s.diags
}

// Diagnostics returns the findings of the last analysis, running it
// first when needed.
func (s *Session) Diagnostics() []analysis.Diagnostic {
	return s.Analyze()
}

// HasErrors reports whether the analysis found any errors.
func (s *Session) HasErrors() bool {
	return analysis.HasErrors(s.Analyze())
}

// Contracts lists every contract across the session's units, in unit
// and declaration order.
func (s *Session) Contracts() []*ast.ContractDefinition {
	var out []*ast.ContractDefinition
	for _, unit := range s.units {
		out = append(out, ast.FilteredNodes[*ast.ContractDefinition](unit.Nodes)...)
	}
	return out
}

// Contract finds a contract by name; an empty name selects the sole
// contract of the session.
func (s *Session) Contract(name string) (*ast.ContractDefinition, error) {
	contracts := s.Contracts()
	if name == "" {
		if len(contracts) != 1 {
			return nil, fmt.Errorf("session: %d contracts, a name is required", len(contracts))
		}
		return contracts[0], nil
	}
	for _, contract := range contracts {
		if contract.Name() == name {
			return contract, nil
		}
	}
	return nil, fmt.Errorf("session: no contract named %q", name)
}

// ABI derives the contract-ABI entries of one contract. Analysis runs
// first so diagnostics are complete and the caches are warm.
func (s *Session) ABI(name string) ([]abi.Entry, error) {
	contract, err := s.Contract(name)
	if err != nil {
		return nil, err
	}
	s.Analyze()
	return abi.Export(contract)
}

// Selectors derives the dispatch table of one contract.
func (s *Session) Selectors(name string) ([]abi.SelectorEntry, error) {
	contract, err := s.Contract(name)
	if err != nil {
		return nil, err
	}
	s.Analyze()
	return abi.Selectors(contract)
}
