package driver

import (
	"testing"

	"solgo/compiler-go/pkg/ast"
)

func buildTokenUnit(s *Session) *ast.SourceUnit {
	b := s.Builder("token.sol")
	unit := b.Unit(b.Contract("Token", nil,
		b.StateVar("totalSupply", b.Ty("uint256"), ast.VisibilityPublic),
		b.Fn("transfer", ast.VisibilityPublic,
			b.Params(b.Param("to", b.Ty("address")), b.Param("value", b.Ty("uint256"))),
			b.Params(b.Param("", b.Ty("bool"))),
			b.Block()),
	))
	s.AddUnit(unit)
	return unit
}

func TestSessionAnalyzeBindsAndWarms(t *testing.T) {
	s := NewSession()
	unit := buildTokenUnit(s)

	if diags := s.Analyze(); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	contract := ast.FilteredNodes[*ast.ContractDefinition](unit.Nodes)[0]
	if contract.Scope() != ast.Node(unit) {
		t.Fatalf("analysis did not bind scopes")
	}
	if s.HasErrors() {
		t.Fatalf("clean session reports errors")
	}
}

func TestSessionABIAndSelectors(t *testing.T) {
	s := NewSession()
	buildTokenUnit(s)

	entries, err := s.ABI("Token")
	if err != nil {
		t.Fatalf("ABI: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected transfer and the accessor, got %d entries", len(entries))
	}

	selectors, err := s.Selectors("Token")
	if err != nil {
		t.Fatalf("Selectors: %v", err)
	}
	found := false
	for _, e := range selectors {
		if e.Selector == "0xa9059cbb" {
			found = true
		}
	}
	if !found {
		t.Fatalf("transfer selector missing: %v", selectors)
	}
}

func TestSessionSoleContractNeedsNoName(t *testing.T) {
	s := NewSession()
	buildTokenUnit(s)

	contract, err := s.Contract("")
	if err != nil {
		t.Fatalf("Contract: %v", err)
	}
	if contract.Name() != "Token" {
		t.Fatalf("got %q", contract.Name())
	}

	if _, err := s.Contract("Missing"); err == nil {
		t.Fatalf("unknown names must error")
	}
}

func TestSessionAmbiguousContractNeedsAName(t *testing.T) {
	s := NewSession()
	b := s.Builder("two.sol")
	s.AddUnit(b.Unit(b.Contract("A", nil), b.Contract("B", nil)))

	if _, err := s.Contract(""); err == nil {
		t.Fatalf("two contracts and no name must error")
	}
	if _, err := s.Contract("B"); err != nil {
		t.Fatalf("lookup by name failed: %v", err)
	}
}

func TestSessionCollisionSurfacesAsDiagnosticAndError(t *testing.T) {
	s := NewSession()
	b := s.Builder("clash.sol")
	s.AddUnit(b.Unit(b.Contract("C", nil,
		b.Fn("burn", ast.VisibilityPublic,
			b.Params(b.Param("amount", b.Ty("uint256"))), b.Params(), b.Block()),
		b.Fn("collate_propagate_storage", ast.VisibilityPublic,
			b.Params(b.Param("x", b.Ty("bytes16"))), b.Params(), b.Block()),
	)))

	if !s.HasErrors() {
		t.Fatalf("the collision must show up in the diagnostics")
	}
	if _, err := s.ABI("C"); err == nil {
		t.Fatalf("the collision must also fail the export")
	}
}

func TestSessionAddUnitResetsAnalysis(t *testing.T) {
	s := NewSession()
	buildTokenUnit(s)

	if s.HasErrors() {
		t.Fatalf("first unit is clean")
	}

	b := s.Builder("clash.sol")
	s.AddUnit(b.Unit(b.Contract("C", nil,
		b.Fn("burn", ast.VisibilityPublic,
			b.Params(b.Param("amount", b.Ty("uint256"))), b.Params(), b.Block()),
		b.Fn("collate_propagate_storage", ast.VisibilityPublic,
			b.Params(b.Param("x", b.Ty("bytes16"))), b.Params(), b.Block()),
	)))

	if !s.HasErrors() {
		t.Fatalf("adding a unit must re-run the analysis")
	}
}

func TestSessionContractsSpanUnits(t *testing.T) {
	s := NewSession()
	a := s.Builder("a.sol")
	s.AddUnit(a.Unit(a.Contract("A", nil)))
	b := s.Builder("b.sol")
	s.AddUnit(b.Unit(b.Contract("B", nil)))

	contracts := s.Contracts()
	if len(contracts) != 2 || contracts[0].Name() != "A" || contracts[1].Name() != "B" {
		t.Fatalf("contracts out of order: %v", contracts)
	}
}
