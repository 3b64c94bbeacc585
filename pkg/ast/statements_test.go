package ast

import "testing"

func TestTryStatementClauseOrder(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	call := b.Call(b.Member(b.ID("token"), "transfer"), b.ID("to"), b.ID("amount"))

	success := b.Clause("", b.Params(b.Param("ok", b.Ty("bool"))), b.Block())
	reason := b.Clause("Error", b.Params(b.ParamAt("reason", b.Ty("string"), LocationMemory)), b.Block())
	catchAll := b.Clause("", b.Params(b.ParamAt("data", b.Ty("bytes"), LocationMemory)), b.Block())

	try := b.Try(call, success, reason, catchAll)

	if try.ExternalCall != Expression(call) {
		t.Fatalf("the guarded call was not retained")
	}
	if len(try.Clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(try.Clauses))
	}
	if try.SuccessClause() != success {
		t.Fatalf("the first clause is the success clause")
	}
	if try.Clauses[1].ErrorName != "Error" {
		t.Fatalf("the named-reason clause lost its error name")
	}
	if try.Clauses[2].ErrorName != "" {
		t.Fatalf("the catch-all clause must have an empty error name")
	}
}

func TestTryStatementRequiresClauses(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	defer func() {
		if recover() == nil {
			t.Fatalf("a try statement with no clauses must panic")
		}
	}()
	b.Try(b.Call(b.ID("f")))
}

func TestTryCatchClauseOpensScope(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	reasonParam := b.ParamAt("reason", b.Ty("string"), LocationMemory)
	clause := b.Clause("Error", b.Params(reasonParam), b.Block())
	fn := b.Fn("caller", VisibilityPublic, b.Params(), b.Params(),
		b.Block(b.Try(b.Call(b.ID("f")), b.Clause("", nil, b.Block()), clause)))

	clause.SetScope(fn)
	reasonParam.SetScope(clause)

	if got := EnclosingCallable(reasonParam.Scope()); got != CallableDeclaration(fn) {
		t.Fatalf("clause parameters should reach the enclosing callable, got %v", got)
	}
}

func TestWhileAndDoWhile(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	body := b.Block()
	loop := b.Run().NewWhileStatement(SourceLocation{Source: "test.sol"}, nil, b.Bool(true), body, false)
	if loop.IsDoWhile {
		t.Fatalf("plain while misreported as do-while")
	}
	doLoop := b.Run().NewWhileStatement(SourceLocation{Source: "test.sol"}, nil, b.Bool(true), body, true)
	if !doLoop.IsDoWhile {
		t.Fatalf("do-while flag lost")
	}
}

func TestForStatementPartsAreOptional(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	// for (;;) {}
	bare := b.Run().NewForStatement(SourceLocation{Source: "test.sol"}, nil, nil, nil, nil, b.Block())

	count := 0
	Inspect(bare, func(Node) bool {
		count++
		return true
	})
	if count != 2 { // the for statement and its body
		t.Fatalf("visited %d nodes, want 2", count)
	}
}

func TestVariableDeclarationStatementKeepsNilComponents(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	// (uint a, , uint c) = f();
	a := b.Param("a", b.Ty("uint"))
	c := b.Param("c", b.Ty("uint"))
	stmt := b.Run().NewVariableDeclarationStatement(
		SourceLocation{Source: "test.sol"}, nil,
		[]*VariableDeclaration{a, nil, c},
		b.Call(b.ID("f")),
	)
	if len(stmt.Declarations) != 3 {
		t.Fatalf("arity lost: %d declarations", len(stmt.Declarations))
	}
	if stmt.Declarations[1] != nil {
		t.Fatalf("the hole must stay nil")
	}
}

func TestReturnAnnotationIsLazy(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	ret := b.Ret(b.Num("1"))
	ann := ret.Annotation()
	if ann == nil {
		t.Fatalf("first access must allocate the annotation")
	}
	if ret.Annotation() != ann {
		t.Fatalf("repeated access must return the same slot")
	}
}

func TestStatementsCarryDocumentation(t *testing.T) {
	run := NewRun()
	doc := "loop until converged"
	block := run.NewBlock(SourceLocation{Source: "test.sol"}, &doc, nil)
	if got := block.Documentation(); got == nil || *got != doc {
		t.Fatalf("documentation lost: %v", got)
	}
	bare := run.NewBlock(SourceLocation{Source: "test.sol"}, nil, nil)
	if bare.Documentation() != nil {
		t.Fatalf("absent documentation must stay nil")
	}
}
