package ast

import "fmt"

// Scopable is implemented by nodes that live inside a scope. The enclosing
// scope is a non-owning back reference written exactly once by the name
// resolution pass; it is valid only for the lifetime of the owning run.
type Scopable interface {
	Scope() Node
	SetScope(scope Node)
}

// scopable is the write-once enclosing-scope slot. Rebinding to a different
// scope indicates a defect in the resolution pass and fails fast.
type scopable struct {
	scope Node
}

func (s *scopable) Scope() Node { return s.scope }

func (s *scopable) SetScope(scope Node) {
	if s.scope != nil && s.scope != scope {
		panic(fmt.Sprintf("ast: scope already assigned (node rebind from %T to %T)", s.scope, scope))
	}
	s.scope = scope
}

// EnclosingSourceUnit walks the scope chain up to the source unit the node
// lives in. Available only after scopes have been assigned.
func EnclosingSourceUnit(n Node) *SourceUnit {
	for !isNilNode(n) {
		if unit, ok := n.(*SourceUnit); ok {
			return unit
		}
		sc, ok := n.(Scopable)
		if !ok {
			return nil
		}
		n = sc.Scope()
	}
	return nil
}

// EnclosingCallable returns the function or modifier definition the node is
// declared in, or nil at contract and file level.
func EnclosingCallable(n Node) CallableDeclaration {
	for !isNilNode(n) {
		if callable, ok := n.(CallableDeclaration); ok {
			return callable
		}
		sc, ok := n.(Scopable)
		if !ok {
			return nil
		}
		n = sc.Scope()
	}
	return nil
}

// Documented is implemented by nodes that can carry documentation text.
type Documented interface {
	Documentation() *string
}

type documented struct {
	documentation *string
}

// Documentation returns the attached doc text, or nil when absent.
func (d *documented) Documentation() *string { return d.documentation }

// implementationOptional marks nodes that may be declared without a body.
type implementationOptional struct {
	implemented bool
}

// IsImplemented reports whether the node carries a body.
func (i *implementationOptional) IsImplemented() bool { return i.implemented }

// VariableScope is implemented by nodes that collect local variables.
// Locals are always attached to the enclosing callable, even when their
// lexical scope is narrower.
type VariableScope interface {
	AddLocalVariable(v *VariableDeclaration)
	LocalVariables() []*VariableDeclaration
}

type variableScope struct {
	localVariables []*VariableDeclaration
}

func (s *variableScope) AddLocalVariable(v *VariableDeclaration) {
	s.localVariables = append(s.localVariables, v)
}

func (s *variableScope) LocalVariables() []*VariableDeclaration {
	return s.localVariables
}
