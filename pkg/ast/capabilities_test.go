package ast

import "testing"

func TestEnclosingSourceUnitWalksTheScopeChain(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	variable := b.StateVar("x", b.Ty("uint"), VisibilityDefault)
	contract := b.Contract("C", nil, variable)
	unit := b.Unit(contract)

	contract.SetScope(unit)
	variable.SetScope(contract)

	if got := EnclosingSourceUnit(variable); got != unit {
		t.Fatalf("EnclosingSourceUnit = %v, want the unit", got)
	}
	if got := EnclosingSourceUnit(unit); got != unit {
		t.Fatalf("a source unit encloses itself, got %v", got)
	}
}

func TestEnclosingCallableStopsAtTheCallable(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	local := b.Param("tmp", b.Ty("uint"))
	body := b.Block(b.DeclStmt(nil, local))
	fn := b.Fn("f", VisibilityPublic, b.Params(), b.Params(), body)
	contract := b.Contract("C", nil, fn)

	fn.SetScope(contract)
	body.SetScope(fn)
	local.SetScope(body)

	if got := EnclosingCallable(local.Scope()); got != CallableDeclaration(fn) {
		t.Fatalf("EnclosingCallable = %v, want the function", got)
	}
	if got := EnclosingCallable(contract); got != nil {
		t.Fatalf("a contract has no enclosing callable, got %v", got)
	}
	if got := EnclosingCallable(nil); got != nil {
		t.Fatalf("an unbound scope has no enclosing callable, got %v", got)
	}
}

func TestLocalVariablePredicates(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	param := b.Param("arg", b.Ty("uint"))
	retParam := b.Param("out", b.Ty("uint"))
	local := b.Param("tmp", b.Ty("uint"))
	body := b.Block(b.DeclStmt(nil, local))
	fn := b.Fn("f", VisibilityPublic, b.Params(param), b.Params(retParam), body)

	param.SetScope(fn)
	retParam.SetScope(fn)
	body.SetScope(fn)
	local.SetScope(body)

	for _, v := range []*VariableDeclaration{param, retParam, local} {
		if !v.IsLocalVariable() {
			t.Fatalf("%q should count as local", v.Name())
		}
	}
	if !param.IsCallableParameter() || param.IsReturnParameter() {
		t.Fatalf("plain parameter misclassified")
	}
	if !retParam.IsCallableParameter() || !retParam.IsReturnParameter() {
		t.Fatalf("return parameter misclassified")
	}
	if local.IsCallableParameter() {
		t.Fatalf("a body local is not a parameter")
	}
	if param.IsEventParameter() {
		t.Fatalf("a function parameter is not an event parameter")
	}
}

func TestEventParameterPredicate(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	who := b.Param("who", b.Ty("address"))
	event := b.Event("Ping", b.Params(who))
	who.SetScope(event)

	if !who.IsEventParameter() {
		t.Fatalf("event parameter not recognized")
	}
	if !who.IsCallableParameter() {
		t.Fatalf("event parameters are callable parameters")
	}
}

func TestStateVariableIsNeverLocal(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	v := b.StateVar("x", b.Ty("uint"), VisibilityDefault)
	c := b.Contract("C", nil, v)
	v.SetScope(c)

	if v.IsLocalVariable() || v.IsCallableParameter() {
		t.Fatalf("state variable misclassified as local")
	}
}

func TestVariableScopeRegistersLocals(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	local := b.Param("tmp", b.Ty("uint"))
	fn := b.Fn("f", VisibilityPublic, b.Params(), b.Params(), b.Block())

	other := b.Param("i", b.Ty("uint"))
	fn.AddLocalVariable(local)
	fn.AddLocalVariable(other)

	locals := fn.LocalVariables()
	if len(locals) != 2 || locals[0] != local || locals[1] != other {
		t.Fatalf("expected the locals in registration order, got %v", locals)
	}
}

func TestImplementationOptional(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	declared := b.Fn("f", VisibilityPublic, b.Params(), b.Params(), nil)
	if declared.IsImplemented() {
		t.Fatalf("a bodyless function is unimplemented")
	}
	defined := b.Fn("g", VisibilityPublic, b.Params(), b.Params(), b.Block())
	if !defined.IsImplemented() {
		t.Fatalf("a function with a body is implemented")
	}
}
