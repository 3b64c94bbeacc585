package analysis

import "solgo/compiler-go/pkg/ast"

// ScopeBinder walks a source unit and writes the enclosing scope into
// every scope-carrying node: top-level declarations point at the unit,
// contract members at their contract, parameters at their callable and
// body locals at their block. Local variables are additionally registered
// with the enclosing callable. Each node's scope is assigned exactly once;
// a node that already carries a different scope is reported instead of
// rebound.
type ScopeBinder struct {
	diags     []Diagnostic
	scopes    []ast.Node
	callables []ast.CallableDeclaration
}

// BindScopes runs the binder over one source unit and returns its
// findings. A clean run returns nil.
func BindScopes(unit *ast.SourceUnit) []Diagnostic {
	b := &ScopeBinder{}
	unit.Accept(b)
	return b.diags
}

func (b *ScopeBinder) currentScope() ast.Node {
	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1]
}

func (b *ScopeBinder) currentCallable() ast.CallableDeclaration {
	if len(b.callables) == 0 {
		return nil
	}
	return b.callables[len(b.callables)-1]
}

// opensScope reports whether the node starts a new scope for the
// declarations beneath it.
func opensScope(n ast.Node) bool {
	switch n.(type) {
	case *ast.SourceUnit, *ast.ContractDefinition, *ast.Block,
		*ast.TryCatchClause, *ast.ForStatement,
		*ast.StructDefinition, *ast.EnumDefinition:
		return true
	}
	_, callable := n.(ast.CallableDeclaration)
	return callable
}

func (b *ScopeBinder) Visit(n ast.Node) bool {
	if sc, ok := n.(ast.Scopable); ok {
		if parent := b.currentScope(); parent != nil {
			if existing := sc.Scope(); existing == nil || existing == parent {
				sc.SetScope(parent)
			} else {
				b.diags = append(b.diags, errorAt(n,
					"declaration is already bound to a different scope; scopes are assigned exactly once per run"))
			}
		}
	}

	if variable, ok := n.(*ast.VariableDeclaration); ok && !variable.IsStateVariable {
		if callable := b.currentCallable(); callable != nil {
			callable.AddLocalVariable(variable)
		}
	}

	if opensScope(n) {
		b.scopes = append(b.scopes, n)
	}
	if callable, ok := n.(ast.CallableDeclaration); ok {
		b.callables = append(b.callables, callable)
	}
	return true
}

func (b *ScopeBinder) EndVisit(n ast.Node) {
	if len(b.scopes) > 0 && b.scopes[len(b.scopes)-1] == n {
		b.scopes = b.scopes[:len(b.scopes)-1]
	}
	if len(b.callables) > 0 && ast.Node(b.callables[len(b.callables)-1]) == n {
		b.callables = b.callables[:len(b.callables)-1]
	}
}
