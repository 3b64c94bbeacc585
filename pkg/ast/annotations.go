package ast

// Annotations are the write-once slots later passes fill with resolved
// facts. Each slot is allocated lazily on first access and never replaced;
// this layer stores them but treats their content as opaque.

// SourceUnitAnnotation is filled by resolution with the unit's exports.
type SourceUnitAnnotation struct {
	// Path is the absolute source path the unit was loaded from.
	Path string
	// ExportedSymbols maps names to the declarations a unit exports.
	ExportedSymbols map[string][]Declaration
}

// ImportAnnotation links an import directive to its resolved unit.
type ImportAnnotation struct {
	AbsolutePath string
	SourceUnit   *SourceUnit
}

// ContractDefinitionAnnotation is filled by resolution.
type ContractDefinitionAnnotation struct {
	// LinearizedBaseContracts is the authoritative base ordering, most
	// derived first and including the contract itself. Interface
	// derivation consumes it; computing it is the resolver's job.
	LinearizedBaseContracts []*ContractDefinition
	// ContractDependencies are contracts created via `new` inside this
	// one; they must be compiled first.
	ContractDependencies []*ContractDefinition
	// UnimplementedFunctions makes the contract abstract when non-empty.
	UnimplementedFunctions []*FunctionDefinition
}

// FunctionDefinitionAnnotation is filled by the type checker.
type FunctionDefinitionAnnotation struct {
	// SuperFunction is the next function in the linearization that this
	// one overrides, if any.
	SuperFunction *FunctionDefinition
}

// VariableDeclarationAnnotation is filled by the type checker.
type VariableDeclarationAnnotation struct {
	// Type is the canonical ABI spelling of the resolved type. When set
	// it overrides the structural spelling derived from the type name;
	// reference types in parameter lists need it.
	Type string
}

// UserDefinedTypeNameAnnotation is filled by reference resolution.
type UserDefinedTypeNameAnnotation struct {
	ReferencedDeclaration Declaration
}

// ExpressionAnnotation is shared by all expression kinds. The fields are
// a union: resolution fills ReferencedDeclaration for identifiers and
// member accesses, the type checker fills the rest.
type ExpressionAnnotation struct {
	// Type is the canonical spelling of the expression's type.
	Type string
	IsPure     bool
	IsLValue   bool
	IsConstant bool
	// ReferencedDeclaration is the resolved target of an identifier or
	// member access.
	ReferencedDeclaration Declaration
}

// ReturnAnnotation links a return statement to the return parameter list
// it populates.
type ReturnAnnotation struct {
	FunctionReturnParameters *ParameterList
}
