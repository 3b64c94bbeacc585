package analysis

import (
	"strings"
	"testing"

	"solgo/compiler-go/pkg/ast"
)

func TestCheckInterfacesCleanContract(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "token.sol")
	unit := b.Unit(b.Contract("Token", nil,
		b.StateVar("totalSupply", b.Ty("uint256"), ast.VisibilityPublic),
		b.Fn("transfer", ast.VisibilityPublic,
			b.Params(b.Param("to", b.Ty("address")), b.Param("value", b.Ty("uint256"))),
			b.Params(b.Param("", b.Ty("bool"))),
			b.Block()),
	))

	if diags := CheckInterfaces(unit); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestCheckInterfacesReportsSelectorCollision(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	unit := b.Unit(b.Contract("C", nil,
		b.Fn("burn", ast.VisibilityPublic,
			b.Params(b.Param("amount", b.Ty("uint256"))), b.Params(), b.Block()),
		b.Fn("collate_propagate_storage", ast.VisibilityPublic,
			b.Params(b.Param("x", b.Ty("bytes16"))), b.Params(), b.Block()),
	))

	diags := CheckInterfaces(unit)
	if !HasErrors(diags) {
		t.Fatalf("expected a collision error, got %v", diags)
	}
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "0x42966c68") {
			found = true
			if len(d.Notes) == 0 {
				t.Fatalf("the collision diagnostic should carry a note")
			}
		}
	}
	if !found {
		t.Fatalf("no diagnostic names the colliding selector: %v", diags)
	}
}

func TestCheckInterfacesRejectsImplementedInterfaceFunctions(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	unit := b.Unit(b.Iface("I",
		b.Fn("ok", ast.VisibilityExternal, b.Params(), b.Params(), nil),
		b.Fn("bad", ast.VisibilityExternal, b.Params(), b.Params(), b.Block()),
	))

	diags := CheckInterfaces(unit)
	if !HasErrors(diags) {
		t.Fatalf("expected an error for the implemented interface function")
	}
	if len(diags) != 1 {
		t.Fatalf("only the implemented function should be reported, got %v", diags)
	}
}

func TestCheckInterfacesWarnsOnUndeployableContract(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	unit := b.Unit(
		b.Contract("Abstract", nil, b.Constructor(ast.VisibilityInternal, b.Params(), b.Block())),
	)

	diags := CheckInterfaces(unit)
	if HasErrors(diags) {
		t.Fatalf("an undeployable contract is a warning, not an error: %v", diags)
	}
	if len(diags) != 1 || diags[0].Severity != SeverityWarning {
		t.Fatalf("expected exactly one warning, got %v", diags)
	}
}

func TestCheckInterfacesSkipsDeployabilityForLibraries(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	unit := b.Unit(b.Library("Math",
		b.Fn("min", ast.VisibilityInternal,
			b.Params(b.Param("a", b.Ty("uint")), b.Param("b", b.Ty("uint"))),
			b.Params(b.Param("", b.Ty("uint"))),
			b.Block()),
	))

	if diags := CheckInterfaces(unit); len(diags) != 0 {
		t.Fatalf("libraries are not deployability-checked, got %v", diags)
	}
}

func TestDescribeRendersLocationAndNotes(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "token.sol")
	contract := b.Contract("C", nil)
	diag := Diagnostic{
		Severity: SeverityError,
		Message:  "something is off",
		Node:     contract,
		Notes:    []DiagnosticNote{{Message: "see also here", Node: contract}},
	}
	out := Describe(diag)
	if !strings.HasPrefix(out, "error: something is off") {
		t.Fatalf("unexpected rendering: %q", out)
	}
	if !strings.Contains(out, "token.sol") || !strings.Contains(out, "note: see also here") {
		t.Fatalf("location or note lost: %q", out)
	}
}
