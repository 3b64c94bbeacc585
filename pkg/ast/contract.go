package ast

import "fmt"

// ContractKind distinguishes interfaces, concrete contracts and libraries.
type ContractKind int

const (
	ContractKindInterface ContractKind = iota
	ContractKindContract
	ContractKindLibrary
)

func (k ContractKind) String() string {
	switch k {
	case ContractKindInterface:
		return "interface"
	case ContractKindContract:
		return "contract"
	case ContractKindLibrary:
		return "library"
	default:
		panic(fmt.Sprintf("ast: invalid contract kind %d", int(k)))
	}
}

// ContractDefinition is a contract, interface or library. Members live in
// a single flat list in source order; the per-kind views below are derived
// from it on demand and can never drift from it. The three interface
// caches are computed lazily and memoized once per run; first access must
// be single-threaded (a warm-up pass before any concurrent reads).
type ContractDefinition struct {
	declarationNode
	documented

	BaseContracts []*InheritanceSpecifier
	SubNodes      []Node
	Kind          ContractKind

	annotation *ContractDefinitionAnnotation

	interfaceFunctionsComputed   bool
	interfaceFunctionList        []InterfaceFunction
	interfaceFunctionsBySelector map[Selector]InterfaceFunction
	interfaceFunctionsErr        error

	interfaceEventsComputed bool
	interfaceEvents         []*EventDefinition

	inheritableComputed bool
	inheritableMembers  []Declaration
}

func (r *Run) NewContractDefinition(
	loc SourceLocation,
	name string,
	doc *string,
	baseContracts []*InheritanceSpecifier,
	subNodes []Node,
	kind ContractKind,
) *ContractDefinition {
	return &ContractDefinition{
		declarationNode: newDeclaration(r.newNode(loc), name, VisibilityDefault, VisibilityPublic),
		documented:      documented{documentation: doc},
		BaseContracts:   baseContracts,
		SubNodes:        subNodes,
		Kind:            kind,
	}
}

func (c *ContractDefinition) Accept(v Visitor) {
	if v.Visit(c) {
		acceptList(v, c.BaseContracts)
		acceptList(v, c.SubNodes)
	}
	v.EndVisit(c)
}

func (c *ContractDefinition) IsInterface() bool { return c.Kind == ContractKindInterface }
func (c *ContractDefinition) IsLibrary() bool   { return c.Kind == ContractKindLibrary }

// Per-kind member views, derived from the flat member list.

func (c *ContractDefinition) UsingForDirectives() []*UsingForDirective {
	return FilteredNodes[*UsingForDirective](c.SubNodes)
}

func (c *ContractDefinition) DefinedStructs() []*StructDefinition {
	return FilteredNodes[*StructDefinition](c.SubNodes)
}

func (c *ContractDefinition) DefinedEnums() []*EnumDefinition {
	return FilteredNodes[*EnumDefinition](c.SubNodes)
}

func (c *ContractDefinition) StateVariables() []*VariableDeclaration {
	return FilteredNodes[*VariableDeclaration](c.SubNodes)
}

func (c *ContractDefinition) FunctionModifiers() []*ModifierDefinition {
	return FilteredNodes[*ModifierDefinition](c.SubNodes)
}

func (c *ContractDefinition) DefinedFunctions() []*FunctionDefinition {
	return FilteredNodes[*FunctionDefinition](c.SubNodes)
}

func (c *ContractDefinition) Events() []*EventDefinition {
	return FilteredNodes[*EventDefinition](c.SubNodes)
}

// StateVariablesIncludingInherited aggregates state variables across the
// linearized hierarchy, most derived first.
func (c *ContractDefinition) StateVariablesIncludingInherited() []*VariableDeclaration {
	var out []*VariableDeclaration
	for _, contract := range c.LinearizedBaseContracts() {
		out = append(out, contract.StateVariables()...)
	}
	return out
}

func (c *ContractDefinition) Annotation() *ContractDefinitionAnnotation {
	if c.annotation == nil {
		c.annotation = &ContractDefinitionAnnotation{}
	}
	return c.annotation
}

// LinearizedBaseContracts returns the base ordering interface derivation
// walks: the linearization written by the resolver when available, most
// derived first and including the contract itself. Before resolution it
// falls back to the contract followed by its direct bases in declaration
// order, which only supports single-level shadowing.
func (c *ContractDefinition) LinearizedBaseContracts() []*ContractDefinition {
	if c.annotation != nil && len(c.annotation.LinearizedBaseContracts) > 0 {
		return c.annotation.LinearizedBaseContracts
	}
	out := []*ContractDefinition{c}
	for _, spec := range c.BaseContracts {
		if base := spec.BaseContract(); base != nil {
			out = append(out, base)
		}
	}
	return out
}

// InterfaceFunction is one entry of the external function table: the
// declaration a selector identifies, which is either a *FunctionDefinition
// or a public *VariableDeclaration acting as an implicit accessor.
type InterfaceFunction struct {
	Selector    Selector
	Signature   string
	Declaration Declaration
}

// SelectorCollisionError reports two distinct externally-visible members
// of one contract whose canonical signatures hash to the same selector.
// It fails the contract, not the run; neither member is dropped.
type SelectorCollisionError struct {
	Contract string
	Selector Selector
	First    string
	Second   string
}

func (e *SelectorCollisionError) Error() string {
	return fmt.Sprintf(
		"contract %s: function signature hash collision for %s between %q and %q",
		e.Contract, e.Selector.Hex(), e.First, e.Second,
	)
}

// InterfaceFunctionList returns the external function table in
// linearization order, most derived first. The result (or the error) is
// computed on first access and memoized for the life of the contract node.
func (c *ContractDefinition) InterfaceFunctionList() ([]InterfaceFunction, error) {
	if !c.interfaceFunctionsComputed {
		c.interfaceFunctionList, c.interfaceFunctionsBySelector, c.interfaceFunctionsErr =
			c.computeInterfaceFunctions()
		c.interfaceFunctionsComputed = true
	}
	return c.interfaceFunctionList, c.interfaceFunctionsErr
}

// InterfaceFunctions returns the selector-indexed external function table.
func (c *ContractDefinition) InterfaceFunctions() (map[Selector]InterfaceFunction, error) {
	if _, err := c.InterfaceFunctionList(); err != nil {
		return nil, err
	}
	return c.interfaceFunctionsBySelector, nil
}

func (c *ContractDefinition) computeInterfaceFunctions() ([]InterfaceFunction, map[Selector]InterfaceFunction, error) {
	var list []InterfaceFunction
	bySelector := make(map[Selector]InterfaceFunction)
	// Signatures seen in a more derived contract override base entries;
	// a genuine selector collision between distinct signatures is an error.
	seenSignatures := make(map[string]struct{})

	add := func(signature string, decl Declaration) error {
		if _, ok := seenSignatures[signature]; ok {
			return nil
		}
		seenSignatures[signature] = struct{}{}
		selector := SelectorFromSignature(signature)
		if prev, ok := bySelector[selector]; ok {
			return &SelectorCollisionError{
				Contract: c.Name(),
				Selector: selector,
				First:    prev.Signature,
				Second:   signature,
			}
		}
		entry := InterfaceFunction{Selector: selector, Signature: signature, Declaration: decl}
		bySelector[selector] = entry
		list = append(list, entry)
		return nil
	}

	for _, contract := range c.LinearizedBaseContracts() {
		for _, fn := range contract.DefinedFunctions() {
			if !fn.IsPartOfExternalInterface() {
				continue
			}
			signature, err := fn.ExternalSignature()
			if err != nil {
				return nil, nil, fmt.Errorf("contract %s: %w", c.Name(), err)
			}
			if err := add(signature, fn); err != nil {
				return nil, nil, err
			}
		}
		for _, variable := range contract.StateVariables() {
			if !variable.IsPartOfExternalInterface() {
				continue
			}
			signature, err := variable.ExternalSignature()
			if err != nil {
				return nil, nil, fmt.Errorf("contract %s: %w", c.Name(), err)
			}
			if err := add(signature, variable); err != nil {
				return nil, nil, err
			}
		}
	}
	return list, bySelector, nil
}

// InterfaceEvents returns the events visible from outside the contract:
// its own declared events plus inherited ones that no more derived
// contract re-declares under the same name. Memoized like the function
// table.
func (c *ContractDefinition) InterfaceEvents() []*EventDefinition {
	if !c.interfaceEventsComputed {
		seen := make(map[string]struct{})
		for _, contract := range c.LinearizedBaseContracts() {
			for _, event := range contract.Events() {
				if _, ok := seen[event.Name()]; ok {
					continue
				}
				seen[event.Name()] = struct{}{}
				c.interfaceEvents = append(c.interfaceEvents, event)
			}
		}
		c.interfaceEventsComputed = true
	}
	return c.interfaceEvents
}

// InheritableMembers aggregates the declarations derived contracts can
// see: every member across the hierarchy for which
// IsVisibleInDerivedContracts holds, one binding per name, the most
// derived declaration shadowing base ones.
func (c *ContractDefinition) InheritableMembers() []Declaration {
	if !c.inheritableComputed {
		seen := make(map[string]struct{})
		for _, contract := range c.LinearizedBaseContracts() {
			for _, node := range contract.SubNodes {
				decl, ok := node.(Declaration)
				if !ok || !decl.IsVisibleInDerivedContracts() {
					continue
				}
				if _, shadowed := seen[decl.Name()]; shadowed {
					continue
				}
				seen[decl.Name()] = struct{}{}
				c.inheritableMembers = append(c.inheritableMembers, decl)
			}
		}
		c.inheritableComputed = true
	}
	return c.inheritableMembers
}

// Constructor returns the contract's own constructor, or nil.
func (c *ContractDefinition) Constructor() *FunctionDefinition {
	for _, fn := range c.DefinedFunctions() {
		if fn.IsConstructor {
			return fn
		}
	}
	return nil
}

// ConstructorIsPublic holds when the constructor is absent (implicit, and
// implicitly public) or explicitly public.
func (c *ContractDefinition) ConstructorIsPublic() bool {
	constructor := c.Constructor()
	return constructor == nil || constructor.IsPublic()
}

// CanBeDeployed reports whether the contract is deployable: not an
// interface, and its constructor is public or absent.
func (c *ContractDefinition) CanBeDeployed() bool {
	return c.Kind != ContractKindInterface && c.ConstructorIsPublic()
}

// FallbackFunction returns the first unnamed non-constructor function in
// linearization order, or nil.
func (c *ContractDefinition) FallbackFunction() *FunctionDefinition {
	for _, contract := range c.LinearizedBaseContracts() {
		for _, fn := range contract.DefinedFunctions() {
			if fn.IsFallback() {
				return fn
			}
		}
	}
	return nil
}

// FullyQualifiedName combines the source name with the contract name.
func (c *ContractDefinition) FullyQualifiedName() string {
	return c.Location().Source + ":" + c.Name()
}
