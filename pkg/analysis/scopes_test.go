package analysis

import (
	"testing"

	"solgo/compiler-go/pkg/ast"
)

func bindUnit(t *testing.T, unit *ast.SourceUnit) {
	t.Helper()
	if diags := BindScopes(unit); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestBindScopesAssignsTheFullChain(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")

	param := b.Param("to", b.Ty("address"))
	local := b.Param("tmp", b.Ty("uint"))
	body := b.Block(b.DeclStmt(nil, local))
	fn := b.Fn("transfer", ast.VisibilityPublic, b.Params(param), b.Params(), body)
	stateVar := b.StateVar("total", b.Ty("uint"), ast.VisibilityDefault)
	contract := b.Contract("Token", nil, stateVar, fn)
	unit := b.Unit(contract)

	bindUnit(t, unit)

	if contract.Scope() != ast.Node(unit) {
		t.Fatalf("contract scope = %v, want the source unit", contract.Scope())
	}
	if stateVar.Scope() != ast.Node(contract) {
		t.Fatalf("state variable scope = %v, want the contract", stateVar.Scope())
	}
	if fn.Scope() != ast.Node(contract) {
		t.Fatalf("function scope = %v, want the contract", fn.Scope())
	}
	if param.Scope() != ast.Node(fn) {
		t.Fatalf("parameter scope = %v, want the function", param.Scope())
	}
	if body.Scope() != ast.Node(fn) {
		t.Fatalf("body scope = %v, want the function", body.Scope())
	}
	if local.Scope() != ast.Node(body) {
		t.Fatalf("local scope = %v, want the block", local.Scope())
	}
}

func TestBindScopesFeedsTheVariablePredicates(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")

	param := b.Param("x", b.Ty("uint"))
	retParam := b.Param("y", b.Ty("uint"))
	local := b.Param("z", b.Ty("uint"))
	fn := b.Fn("f", ast.VisibilityPublic, b.Params(param), b.Params(retParam),
		b.Block(b.DeclStmt(nil, local)))
	stateVar := b.StateVar("s", b.Ty("uint"), ast.VisibilityDefault)
	unit := b.Unit(b.Contract("C", nil, stateVar, fn))

	bindUnit(t, unit)

	if !param.IsLocalVariable() || !param.IsCallableParameter() {
		t.Fatalf("parameter misclassified after binding")
	}
	if !retParam.IsReturnParameter() {
		t.Fatalf("return parameter misclassified after binding")
	}
	if !local.IsLocalVariable() || local.IsCallableParameter() {
		t.Fatalf("body local misclassified after binding")
	}
	if stateVar.IsLocalVariable() {
		t.Fatalf("state variable misclassified after binding")
	}
}

func TestBindScopesRegistersLocalsWithTheCallable(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")

	param := b.Param("x", b.Ty("uint"))
	local := b.Param("y", b.Ty("uint"))
	fn := b.Fn("f", ast.VisibilityPublic, b.Params(param), b.Params(),
		b.Block(b.DeclStmt(nil, local)))
	unit := b.Unit(b.Contract("C", nil, fn))

	bindUnit(t, unit)

	locals := fn.LocalVariables()
	if len(locals) != 2 || locals[0] != param || locals[1] != local {
		t.Fatalf("expected the parameter and the body local, got %v", locals)
	}
}

func TestBindScopesHandlesTryCatchClauses(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")

	reason := b.ParamAt("reason", b.Ty("string"), ast.LocationMemory)
	clause := b.Clause("Error", b.Params(reason), b.Block())
	try := b.Try(b.Call(b.ID("f")), b.Clause("", nil, b.Block()), clause)
	fn := b.Fn("caller", ast.VisibilityPublic, b.Params(), b.Params(), b.Block(try))
	unit := b.Unit(b.Contract("C", nil, fn))

	bindUnit(t, unit)

	if reason.Scope() != ast.Node(clause) {
		t.Fatalf("clause binding scope = %v, want the clause", reason.Scope())
	}
	if got := ast.EnclosingCallable(reason.Scope()); got != ast.CallableDeclaration(fn) {
		t.Fatalf("clause binding should resolve to the enclosing function, got %v", got)
	}
}

func TestBindScopesIsIdempotentPerRun(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	unit := b.Unit(b.Contract("C", nil,
		b.Fn("f", ast.VisibilityPublic, b.Params(), b.Params(), b.Block())))

	bindUnit(t, unit)
	// Binding the same unit again writes the same scopes and must not
	// panic or report anything.
	bindUnit(t, unit)
}

func TestBindScopesReportsForeignScopes(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	fn := b.Fn("f", ast.VisibilityPublic, b.Params(), b.Params(), b.Block())
	contract := b.Contract("C", nil, fn)
	other := b.Contract("D", nil)
	unit := b.Unit(contract, other)

	fn.SetScope(other) // simulate a stale binding from elsewhere

	diags := BindScopes(unit)
	if !HasErrors(diags) {
		t.Fatalf("expected an error about the conflicting scope, got %v", diags)
	}
}

func TestBindScopesEventParameters(t *testing.T) {
	b := ast.NewBuilder(ast.NewRun(), "test.sol")
	who := b.Param("who", b.Ty("address"))
	event := b.Event("Ping", b.Params(who))
	unit := b.Unit(b.Contract("C", nil, event))

	bindUnit(t, unit)

	if !who.IsEventParameter() {
		t.Fatalf("event parameter not recognized after binding")
	}
}
