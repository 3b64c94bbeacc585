package ast

import (
	"fmt"
	"strings"
)

// Declaration is any named entity: contract, function, struct, enum,
// variable, modifier, event or import alias. Visibility predicates follow
// a single table; kinds that deviate (functions, variables) override the
// relevant methods on their concrete type.
type Declaration interface {
	Node
	Scopable
	Name() string
	// NoVisibilitySpecified reports whether the source left the
	// visibility implicit.
	NoVisibilitySpecified() bool
	// Visibility returns the resolved visibility: the declared one, or the
	// kind-specific default when none was specified.
	Visibility() Visibility
	IsPublic() bool
	IsVisibleInContract() bool
	IsVisibleInDerivedContracts() bool
	IsVisibleAsLibraryMember() bool
	// IsPartOfExternalInterface reports whether the declaration is
	// reachable from outside the contract boundary (ABI membership).
	IsPartOfExternalInterface() bool
	isDeclaration()
}

// declarationNode carries the shared declaration state. defaultVisibility
// is fixed per kind at construction, which keeps Visibility() free of
// dynamic dispatch.
type declarationNode struct {
	nodeBase
	scopable

	name              string
	visibility        Visibility
	defaultVisibility Visibility
}

func newDeclaration(base nodeBase, name string, visibility, defaultVisibility Visibility) declarationNode {
	return declarationNode{
		nodeBase:          base,
		name:              name,
		visibility:        visibility,
		defaultVisibility: defaultVisibility,
	}
}

func (d *declarationNode) Name() string                { return d.name }
func (d *declarationNode) NoVisibilitySpecified() bool { return d.visibility == VisibilityDefault }
func (*declarationNode) isDeclaration()                {}

func (d *declarationNode) Visibility() Visibility {
	if d.visibility == VisibilityDefault {
		return d.defaultVisibility
	}
	return d.visibility
}

func (d *declarationNode) IsPublic() bool              { return d.Visibility() >= VisibilityPublic }
func (d *declarationNode) IsVisibleInContract() bool   { return d.Visibility() != VisibilityExternal }
func (d *declarationNode) IsVisibleInDerivedContracts() bool {
	return d.IsVisibleInContract() && d.Visibility() >= VisibilityInternal
}
func (d *declarationNode) IsVisibleAsLibraryMember() bool { return d.Visibility() >= VisibilityInternal }
func (d *declarationNode) IsPartOfExternalInterface() bool { return false }

// SourceUnit is the root of one parsed source: import directives, pragma
// directives and contract definitions in source order.
type SourceUnit struct {
	nodeBase

	Nodes []Node

	annotation *SourceUnitAnnotation
}

func (r *Run) NewSourceUnit(loc SourceLocation, nodes []Node) *SourceUnit {
	return &SourceUnit{nodeBase: r.newNode(loc), Nodes: nodes}
}

func (u *SourceUnit) Accept(v Visitor) {
	if v.Visit(u) {
		acceptList(v, u.Nodes)
	}
	v.EndVisit(u)
}

func (u *SourceUnit) Annotation() *SourceUnitAnnotation {
	if u.annotation == nil {
		u.annotation = &SourceUnitAnnotation{}
	}
	return u.annotation
}

// ReferencedSourceUnits returns the units reachable through resolved
// imports, recursively when requested.
func (u *SourceUnit) ReferencedSourceUnits(recurse bool) []*SourceUnit {
	seen := map[*SourceUnit]struct{}{u: {}}
	var collect func(unit *SourceUnit) []*SourceUnit
	collect = func(unit *SourceUnit) []*SourceUnit {
		var out []*SourceUnit
		for _, imp := range FilteredNodes[*ImportDirective](unit.Nodes) {
			target := imp.Annotation().SourceUnit
			if target == nil {
				continue
			}
			if _, ok := seen[target]; ok {
				continue
			}
			seen[target] = struct{}{}
			out = append(out, target)
			if recurse {
				out = append(out, collect(target)...)
			}
		}
		return out
	}
	return collect(u)
}

// PragmaDirective, e.g. `pragma solidity ^0.5.0;`. Tokens and literals are
// stored raw; interpretation is up to the consumer.
type PragmaDirective struct {
	nodeBase

	Tokens   []string
	Literals []string
}

func (r *Run) NewPragmaDirective(loc SourceLocation, tokens, literals []string) *PragmaDirective {
	return &PragmaDirective{nodeBase: r.newNode(loc), Tokens: tokens, Literals: literals}
}

func (p *PragmaDirective) Accept(v Visitor) {
	v.Visit(p)
	v.EndVisit(p)
}

// SymbolAlias is one `{a as b}` entry of an import directive. Alias is
// empty when the symbol is imported unchanged.
type SymbolAlias struct {
	Symbol *Identifier
	Alias  string
}

// ImportDirective references another source object. The unit alias doubles
// as the declared name (empty for plain `import "path";`).
type ImportDirective struct {
	declarationNode

	Path          string
	SymbolAliases []SymbolAlias

	annotation *ImportAnnotation
}

func (r *Run) NewImportDirective(loc SourceLocation, path, unitAlias string, symbolAliases []SymbolAlias) *ImportDirective {
	return &ImportDirective{
		declarationNode: newDeclaration(r.newNode(loc), unitAlias, VisibilityDefault, VisibilityPublic),
		Path:            path,
		SymbolAliases:   symbolAliases,
	}
}

func (i *ImportDirective) Accept(v Visitor) {
	if v.Visit(i) {
		for _, alias := range i.SymbolAliases {
			acceptChild(v, alias.Symbol)
		}
	}
	v.EndVisit(i)
}

func (i *ImportDirective) Annotation() *ImportAnnotation {
	if i.annotation == nil {
		i.annotation = &ImportAnnotation{}
	}
	return i.annotation
}

// InheritanceSpecifier names a base contract in a contract header,
// optionally with constructor arguments (`is Base(1, 2)`).
type InheritanceSpecifier struct {
	nodeBase

	BaseName *UserDefinedTypeName
	// Arguments is nil when no argument list was given (`Base`); an empty,
	// non-nil slice means an explicit empty list (`Base()`).
	Arguments    []Expression
	HasArguments bool
}

func (r *Run) NewInheritanceSpecifier(loc SourceLocation, baseName *UserDefinedTypeName, arguments []Expression, hasArguments bool) *InheritanceSpecifier {
	return &InheritanceSpecifier{nodeBase: r.newNode(loc), BaseName: baseName, Arguments: arguments, HasArguments: hasArguments}
}

func (s *InheritanceSpecifier) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.BaseName)
		acceptList(v, s.Arguments)
	}
	v.EndVisit(s)
}

// BaseContract returns the contract the specifier resolves to, or nil
// before resolution.
func (s *InheritanceSpecifier) BaseContract() *ContractDefinition {
	if s.BaseName == nil {
		return nil
	}
	contract, _ := s.BaseName.Annotation().ReferencedDeclaration.(*ContractDefinition)
	return contract
}

// UsingForDirective attaches library functions to a type:
// `using LibraryName for uint`. TypeName is nil for `using ... for *`.
type UsingForDirective struct {
	nodeBase

	LibraryName *UserDefinedTypeName
	TypeName    TypeName
}

func (r *Run) NewUsingForDirective(loc SourceLocation, libraryName *UserDefinedTypeName, typeName TypeName) *UsingForDirective {
	return &UsingForDirective{nodeBase: r.newNode(loc), LibraryName: libraryName, TypeName: typeName}
}

func (u *UsingForDirective) Accept(v Visitor) {
	if v.Visit(u) {
		acceptChild(v, u.LibraryName)
		acceptChild(v, u.TypeName)
	}
	v.EndVisit(u)
}

// StructDefinition declares a struct inside a contract or source unit.
type StructDefinition struct {
	declarationNode

	Members []*VariableDeclaration
}

func (r *Run) NewStructDefinition(loc SourceLocation, name string, members []*VariableDeclaration) *StructDefinition {
	return &StructDefinition{
		declarationNode: newDeclaration(r.newNode(loc), name, VisibilityDefault, VisibilityPublic),
		Members:         members,
	}
}

func (s *StructDefinition) Accept(v Visitor) {
	if v.Visit(s) {
		acceptList(v, s.Members)
	}
	v.EndVisit(s)
}

// EnumDefinition declares an enum and its values.
type EnumDefinition struct {
	declarationNode

	Members []*EnumValue
}

func (r *Run) NewEnumDefinition(loc SourceLocation, name string, members []*EnumValue) *EnumDefinition {
	return &EnumDefinition{
		declarationNode: newDeclaration(r.newNode(loc), name, VisibilityDefault, VisibilityPublic),
		Members:         members,
	}
}

func (e *EnumDefinition) Accept(v Visitor) {
	if v.Visit(e) {
		acceptList(v, e.Members)
	}
	v.EndVisit(e)
}

// EnumValue is a single member of an enum.
type EnumValue struct {
	declarationNode
}

func (r *Run) NewEnumValue(loc SourceLocation, name string) *EnumValue {
	return &EnumValue{declarationNode: newDeclaration(r.newNode(loc), name, VisibilityDefault, VisibilityPublic)}
}

func (e *EnumValue) Accept(v Visitor) {
	v.Visit(e)
	v.EndVisit(e)
}

// ParameterList is an ordered, possibly empty sequence of variable
// declarations, used for function parameters, return values and try/catch
// clause bindings. Reference and mapping types crossing an ABI boundary
// are rejected by the type checker, not here.
type ParameterList struct {
	nodeBase

	Parameters []*VariableDeclaration
}

func (r *Run) NewParameterList(loc SourceLocation, parameters []*VariableDeclaration) *ParameterList {
	return &ParameterList{nodeBase: r.newNode(loc), Parameters: parameters}
}

func (p *ParameterList) Accept(v Visitor) {
	if v.Visit(p) {
		acceptList(v, p.Parameters)
	}
	v.EndVisit(p)
}

// CallableDeclaration is the composition shared by functions, modifiers
// and events: an input parameter list and an optional return list.
type CallableDeclaration interface {
	Declaration
	VariableScope
	Parameters() []*VariableDeclaration
	ParameterList() *ParameterList
	ReturnParameterList() *ParameterList
}

type callableDeclaration struct {
	declarationNode
	variableScope

	parameters       *ParameterList
	returnParameters *ParameterList
}

func (c *callableDeclaration) Parameters() []*VariableDeclaration {
	return c.parameters.Parameters
}

func (c *callableDeclaration) ParameterList() *ParameterList { return c.parameters }

// ReturnParameterList is nil for callables without declared returns.
func (c *callableDeclaration) ReturnParameterList() *ParameterList { return c.returnParameters }

// ReturnParameters returns the declared return variables, empty when the
// return list is absent.
func (c *callableDeclaration) ReturnParameters() []*VariableDeclaration {
	if c.returnParameters == nil {
		return nil
	}
	return c.returnParameters.Parameters
}

// externalSignatureFor renders `name(type1,type2,...)` from canonical
// parameter types in declared order, with no whitespace.
func externalSignatureFor(name string, parameters []*VariableDeclaration) (string, error) {
	types := make([]string, 0, len(parameters))
	for _, param := range parameters {
		canonical, err := param.CanonicalType()
		if err != nil {
			return "", fmt.Errorf("signature of %s: %w", name, err)
		}
		types = append(types, canonical)
	}
	return name + "(" + strings.Join(types, ",") + ")", nil
}

// FunctionDefinition declares a function, constructor or fallback.
// Constructors and the fallback function are never visible inside the
// contract and never part of the external interface.
type FunctionDefinition struct {
	callableDeclaration
	documented
	implementationOptional

	StateMutability StateMutability
	IsConstructor   bool
	Overrides       *OverrideSpecifier
	Modifiers       []*ModifierInvocation
	Body            *Block

	annotation *FunctionDefinitionAnnotation
}

func (r *Run) NewFunctionDefinition(
	loc SourceLocation,
	name string,
	visibility Visibility,
	mutability StateMutability,
	isConstructor bool,
	overrides *OverrideSpecifier,
	doc *string,
	parameters *ParameterList,
	modifiers []*ModifierInvocation,
	returnParameters *ParameterList,
	body *Block,
) *FunctionDefinition {
	return &FunctionDefinition{
		callableDeclaration: callableDeclaration{
			declarationNode:  newDeclaration(r.newNode(loc), name, visibility, VisibilityPublic),
			parameters:       parameters,
			returnParameters: returnParameters,
		},
		documented:             documented{documentation: doc},
		implementationOptional: implementationOptional{implemented: body != nil},
		StateMutability:        mutability,
		IsConstructor:          isConstructor,
		Overrides:              overrides,
		Modifiers:              modifiers,
		Body:                   body,
	}
}

func (f *FunctionDefinition) Accept(v Visitor) {
	if v.Visit(f) {
		acceptChild(v, f.Overrides)
		acceptChild(v, f.parameters)
		acceptList(v, f.Modifiers)
		acceptChild(v, f.returnParameters)
		acceptChild(v, f.Body)
	}
	v.EndVisit(f)
}

// IsFallback reports whether this is the unnamed fallback function.
func (f *FunctionDefinition) IsFallback() bool { return !f.IsConstructor && f.Name() == "" }

func (f *FunctionDefinition) IsPayable() bool { return f.StateMutability == StateMutabilityPayable }

func (f *FunctionDefinition) IsVisibleInContract() bool {
	return f.declarationNode.IsVisibleInContract() && !f.IsConstructor && !f.IsFallback()
}

func (f *FunctionDefinition) IsVisibleInDerivedContracts() bool {
	return f.IsVisibleInContract() && f.Visibility() >= VisibilityInternal
}

func (f *FunctionDefinition) IsPartOfExternalInterface() bool {
	return f.IsPublic() && !f.IsConstructor && !f.IsFallback()
}

// ExternalSignature renders the canonical ABI signature of the function.
func (f *FunctionDefinition) ExternalSignature() (string, error) {
	return externalSignatureFor(f.Name(), f.Parameters())
}

func (f *FunctionDefinition) Annotation() *FunctionDefinitionAnnotation {
	if f.annotation == nil {
		f.annotation = &FunctionDefinitionAnnotation{}
	}
	return f.annotation
}

// VariableLocation qualifies where a reference-typed variable lives.
type VariableLocation int

const (
	LocationUnspecified VariableLocation = iota
	LocationStorage
	LocationMemory
	LocationCallData
)

func (l VariableLocation) String() string {
	switch l {
	case LocationUnspecified:
		return "unspecified"
	case LocationStorage:
		return "storage"
	case LocationMemory:
		return "memory"
	case LocationCallData:
		return "calldata"
	default:
		panic(fmt.Sprintf("ast: invalid variable location %d", int(l)))
	}
}

// VariableDeclaration declares a variable: a state variable, a parameter,
// a return parameter, an event parameter or a local. The default
// visibility is internal. Public state variables join the external
// interface as implicit accessor functions.
type VariableDeclaration struct {
	declarationNode

	// TypeName is nil for `var` declarations whose type is inferred.
	TypeName TypeName
	// Value is the initial value for state variables; locals keep theirs
	// on the VariableDeclarationStatement instead.
	Value Expression

	IsStateVariable   bool
	IsIndexed         bool
	IsConstant        bool
	Overrides         *OverrideSpecifier
	ReferenceLocation VariableLocation

	annotation *VariableDeclarationAnnotation
}

func (r *Run) NewVariableDeclaration(
	loc SourceLocation,
	typeName TypeName,
	name string,
	value Expression,
	visibility Visibility,
	opts VariableOptions,
) *VariableDeclaration {
	return &VariableDeclaration{
		declarationNode:   newDeclaration(r.newNode(loc), name, visibility, VisibilityInternal),
		TypeName:          typeName,
		Value:             value,
		IsStateVariable:   opts.StateVariable,
		IsIndexed:         opts.Indexed,
		IsConstant:        opts.Constant,
		Overrides:         opts.Overrides,
		ReferenceLocation: opts.Location,
	}
}

// VariableOptions bundles the rarely-set flags of a variable declaration.
type VariableOptions struct {
	StateVariable bool
	Indexed       bool
	Constant      bool
	Overrides     *OverrideSpecifier
	Location      VariableLocation
}

func (d *VariableDeclaration) Accept(v Visitor) {
	if v.Visit(d) {
		acceptChild(v, d.TypeName)
		acceptChild(v, d.Overrides)
		acceptChild(v, d.Value)
	}
	v.EndVisit(d)
}

func (d *VariableDeclaration) IsPartOfExternalInterface() bool { return d.IsPublic() }

// IsLocalVariable reports whether the variable is declared inside a
// callable (as parameter, return parameter or body local). Available only
// after scope assignment.
func (d *VariableDeclaration) IsLocalVariable() bool {
	return !d.IsStateVariable && EnclosingCallable(d.Scope()) != nil
}

// IsCallableParameter reports whether the variable is a parameter or
// return parameter of a function, modifier or event.
func (d *VariableDeclaration) IsCallableParameter() bool {
	callable := EnclosingCallable(d.Scope())
	if callable == nil {
		return false
	}
	for _, param := range callable.Parameters() {
		if param == d {
			return true
		}
	}
	return d.IsReturnParameter()
}

// IsReturnParameter reports whether the variable sits in a return list.
func (d *VariableDeclaration) IsReturnParameter() bool {
	callable := EnclosingCallable(d.Scope())
	if callable == nil {
		return false
	}
	list := callable.ReturnParameterList()
	if list == nil {
		return false
	}
	for _, param := range list.Parameters {
		if param == d {
			return true
		}
	}
	return false
}

// IsEventParameter reports whether the variable is a parameter of an event.
func (d *VariableDeclaration) IsEventParameter() bool {
	_, ok := EnclosingCallable(d.Scope()).(*EventDefinition)
	return ok
}

// CanonicalType returns the canonical ABI spelling of the variable's type.
// A canonical type written by the type checker into the annotation wins;
// otherwise the spelling is derived from the type name structurally.
func (d *VariableDeclaration) CanonicalType() (string, error) {
	if d.annotation != nil && d.annotation.Type != "" {
		return d.annotation.Type, nil
	}
	if d.TypeName == nil {
		return "", fmt.Errorf("variable %q has neither a type name nor a resolved type", d.Name())
	}
	return CanonicalTypeName(d.TypeName)
}

// ExternalSignature renders the accessor signature of a public state
// variable: mapping keys and array indices become parameters in order.
func (d *VariableDeclaration) ExternalSignature() (string, error) {
	if !d.IsStateVariable {
		return "", fmt.Errorf("variable %q is not a state variable", d.Name())
	}
	var params []string
	t := d.TypeName
	for {
		switch tn := t.(type) {
		case *Mapping:
			key, err := CanonicalTypeName(tn.KeyType)
			if err != nil {
				return "", fmt.Errorf("accessor of %s: %w", d.Name(), err)
			}
			params = append(params, key)
			t = tn.ValueType
			continue
		case *ArrayTypeName:
			params = append(params, "uint256")
			t = tn.BaseType
			continue
		}
		break
	}
	return d.Name() + "(" + strings.Join(params, ",") + ")", nil
}

func (d *VariableDeclaration) Annotation() *VariableDeclarationAnnotation {
	if d.annotation == nil {
		d.annotation = &VariableDeclarationAnnotation{}
	}
	return d.annotation
}

// ModifierDefinition declares a function modifier. Modifiers are always
// internal.
type ModifierDefinition struct {
	callableDeclaration
	documented

	Body *Block
}

func (r *Run) NewModifierDefinition(loc SourceLocation, name string, doc *string, parameters *ParameterList, body *Block) *ModifierDefinition {
	return &ModifierDefinition{
		callableDeclaration: callableDeclaration{
			declarationNode: newDeclaration(r.newNode(loc), name, VisibilityInternal, VisibilityInternal),
			parameters:      parameters,
		},
		documented: documented{documentation: doc},
		Body:       body,
	}
}

func (m *ModifierDefinition) Accept(v Visitor) {
	if v.Visit(m) {
		acceptChild(v, m.parameters)
		acceptChild(v, m.Body)
	}
	v.EndVisit(m)
}

// ModifierInvocation is the usage of a modifier on a function header or a
// base constructor call. Arguments is nil when no list was written.
type ModifierInvocation struct {
	nodeBase

	ModifierName *Identifier
	Arguments    []Expression
	HasArguments bool
}

func (r *Run) NewModifierInvocation(loc SourceLocation, name *Identifier, arguments []Expression, hasArguments bool) *ModifierInvocation {
	return &ModifierInvocation{nodeBase: r.newNode(loc), ModifierName: name, Arguments: arguments, HasArguments: hasArguments}
}

func (m *ModifierInvocation) Accept(v Visitor) {
	if v.Visit(m) {
		acceptChild(v, m.ModifierName)
		acceptList(v, m.Arguments)
	}
	v.EndVisit(m)
}

// EventDefinition declares a loggable event.
type EventDefinition struct {
	callableDeclaration
	documented

	IsAnonymous bool
}

func (r *Run) NewEventDefinition(loc SourceLocation, name string, doc *string, parameters *ParameterList, anonymous bool) *EventDefinition {
	return &EventDefinition{
		callableDeclaration: callableDeclaration{
			declarationNode: newDeclaration(r.newNode(loc), name, VisibilityDefault, VisibilityPublic),
			parameters:      parameters,
		},
		documented:  documented{documentation: doc},
		IsAnonymous: anonymous,
	}
}

func (e *EventDefinition) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.parameters)
	}
	v.EndVisit(e)
}

// ExternalSignature renders the canonical event signature used for the
// log topic.
func (e *EventDefinition) ExternalSignature() (string, error) {
	return externalSignatureFor(e.Name(), e.Parameters())
}

// OverrideSpecifier is the `override` keyword with an optional list of the
// overridden bases.
type OverrideSpecifier struct {
	nodeBase

	Overrides []*UserDefinedTypeName
}

func (r *Run) NewOverrideSpecifier(loc SourceLocation, overrides []*UserDefinedTypeName) *OverrideSpecifier {
	return &OverrideSpecifier{nodeBase: r.newNode(loc), Overrides: overrides}
}

func (o *OverrideSpecifier) Accept(v Visitor) {
	if v.Visit(o) {
		acceptList(v, o.Overrides)
	}
	v.EndVisit(o)
}

// MagicVariableDeclaration stands in for built-in identifiers such as
// "msg" and "block". It never appears in the owned tree.
type MagicVariableDeclaration struct {
	declarationNode

	TypeDescription string
}

func (r *Run) NewMagicVariableDeclaration(name, typeDescription string) *MagicVariableDeclaration {
	return &MagicVariableDeclaration{
		declarationNode: newDeclaration(r.newNode(SourceLocation{}), name, VisibilityDefault, VisibilityPublic),
		TypeDescription: typeDescription,
	}
}

func (m *MagicVariableDeclaration) Accept(Visitor) {
	panic("ast: MagicVariableDeclaration used inside real AST")
}
