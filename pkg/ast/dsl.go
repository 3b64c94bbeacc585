package ast

// Builder offers short constructors for building trees by hand, mainly in
// tests and fixture loading. All nodes share the wrapped Run's identity
// pool and an optional synthetic source name.
type Builder struct {
	run    *Run
	source string
}

// NewBuilder wraps a run. The source name labels every built location.
func NewBuilder(run *Run, source string) *Builder {
	return &Builder{run: run, source: source}
}

// Run exposes the identity pool the builder allocates from.
func (b *Builder) Run() *Run { return b.run }

func (b *Builder) loc() SourceLocation {
	return SourceLocation{Source: b.source}
}

// Expressions.

func (b *Builder) ID(name string) *Identifier {
	return b.run.NewIdentifier(b.loc(), name)
}

func (b *Builder) Num(value string) *Literal {
	return b.run.NewLiteral(b.loc(), LiteralKindNumber, value, SubDenominationNone)
}

func (b *Builder) Str(value string) *Literal {
	return b.run.NewLiteral(b.loc(), LiteralKindString, value, SubDenominationNone)
}

func (b *Builder) Bool(value bool) *Literal {
	lit := "false"
	if value {
		lit = "true"
	}
	return b.run.NewLiteral(b.loc(), LiteralKindBool, lit, SubDenominationNone)
}

func (b *Builder) Bin(left Expression, op Operator, right Expression) *BinaryOperation {
	return b.run.NewBinaryOperation(b.loc(), left, op, right)
}

func (b *Builder) Un(op Operator, sub Expression, prefix bool) *UnaryOperation {
	return b.run.NewUnaryOperation(b.loc(), op, sub, prefix)
}

func (b *Builder) Assign(lhs Expression, op Operator, rhs Expression) *Assignment {
	return b.run.NewAssignment(b.loc(), lhs, op, rhs)
}

func (b *Builder) Tuple(components ...Expression) *TupleExpression {
	return b.run.NewTupleExpression(b.loc(), components, false)
}

func (b *Builder) Call(callee Expression, args ...Expression) *FunctionCall {
	return b.run.NewFunctionCall(b.loc(), callee, args, nil)
}

func (b *Builder) Member(expr Expression, name string) *MemberAccess {
	return b.run.NewMemberAccess(b.loc(), expr, name)
}

func (b *Builder) Index(base, index Expression) *IndexAccess {
	return b.run.NewIndexAccess(b.loc(), base, index)
}

func (b *Builder) Cond(condition, trueExpr, falseExpr Expression) *Conditional {
	return b.run.NewConditional(b.loc(), condition, trueExpr, falseExpr)
}

// Type names.

func (b *Builder) Ty(name string) *ElementaryTypeName {
	return b.run.NewElementaryTypeName(b.loc(), name, nil)
}

func (b *Builder) UserTy(namePath ...string) *UserDefinedTypeName {
	return b.run.NewUserDefinedTypeName(b.loc(), namePath)
}

func (b *Builder) ArrayTy(base TypeName, length Expression) *ArrayTypeName {
	return b.run.NewArrayTypeName(b.loc(), base, length)
}

func (b *Builder) MappingTy(key *ElementaryTypeName, value TypeName) *Mapping {
	return b.run.NewMapping(b.loc(), key, value)
}

// Declarations.

func (b *Builder) Param(name string, typeName TypeName) *VariableDeclaration {
	return b.run.NewVariableDeclaration(b.loc(), typeName, name, nil, VisibilityDefault, VariableOptions{})
}

func (b *Builder) ParamAt(name string, typeName TypeName, location VariableLocation) *VariableDeclaration {
	return b.run.NewVariableDeclaration(b.loc(), typeName, name, nil, VisibilityDefault, VariableOptions{Location: location})
}

func (b *Builder) Params(params ...*VariableDeclaration) *ParameterList {
	return b.run.NewParameterList(b.loc(), params)
}

func (b *Builder) StateVar(name string, typeName TypeName, visibility Visibility) *VariableDeclaration {
	return b.run.NewVariableDeclaration(b.loc(), typeName, name, nil, visibility, VariableOptions{StateVariable: true})
}

func (b *Builder) Fn(name string, visibility Visibility, params, returns *ParameterList, body *Block) *FunctionDefinition {
	if params == nil {
		params = b.Params()
	}
	return b.run.NewFunctionDefinition(
		b.loc(), name, visibility, StateMutabilityNonPayable,
		false, nil, nil, params, nil, returns, body,
	)
}

func (b *Builder) Constructor(visibility Visibility, params *ParameterList, body *Block) *FunctionDefinition {
	if params == nil {
		params = b.Params()
	}
	return b.run.NewFunctionDefinition(
		b.loc(), "", visibility, StateMutabilityNonPayable,
		true, nil, nil, params, nil, nil, body,
	)
}

func (b *Builder) Fallback(visibility Visibility, body *Block) *FunctionDefinition {
	return b.run.NewFunctionDefinition(
		b.loc(), "", visibility, StateMutabilityNonPayable,
		false, nil, nil, b.Params(), nil, nil, body,
	)
}

func (b *Builder) Event(name string, params *ParameterList) *EventDefinition {
	if params == nil {
		params = b.Params()
	}
	return b.run.NewEventDefinition(b.loc(), name, nil, params, false)
}

func (b *Builder) Struct(name string, members ...*VariableDeclaration) *StructDefinition {
	return b.run.NewStructDefinition(b.loc(), name, members)
}

func (b *Builder) Enum(name string, values ...string) *EnumDefinition {
	members := make([]*EnumValue, 0, len(values))
	for _, value := range values {
		members = append(members, b.run.NewEnumValue(b.loc(), value))
	}
	return b.run.NewEnumDefinition(b.loc(), name, members)
}

func (b *Builder) Contract(name string, bases []*InheritanceSpecifier, subNodes ...Node) *ContractDefinition {
	return b.run.NewContractDefinition(b.loc(), name, nil, bases, subNodes, ContractKindContract)
}

func (b *Builder) Iface(name string, subNodes ...Node) *ContractDefinition {
	return b.run.NewContractDefinition(b.loc(), name, nil, nil, subNodes, ContractKindInterface)
}

func (b *Builder) Library(name string, subNodes ...Node) *ContractDefinition {
	return b.run.NewContractDefinition(b.loc(), name, nil, nil, subNodes, ContractKindLibrary)
}

// Base names a base contract and binds the specifier to it, the way
// reference resolution would.
func (b *Builder) Base(contract *ContractDefinition) *InheritanceSpecifier {
	typeName := b.UserTy(contract.Name())
	typeName.Annotation().ReferencedDeclaration = contract
	return b.run.NewInheritanceSpecifier(b.loc(), typeName, nil, false)
}

func (b *Builder) Unit(nodes ...Node) *SourceUnit {
	return b.run.NewSourceUnit(b.loc(), nodes)
}

// Statements.

func (b *Builder) Block(statements ...Statement) *Block {
	return b.run.NewBlock(b.loc(), nil, statements)
}

func (b *Builder) ExprStmt(expr Expression) *ExpressionStatement {
	return b.run.NewExpressionStatement(b.loc(), nil, expr)
}

func (b *Builder) Ret(value Expression) *Return {
	return b.run.NewReturn(b.loc(), nil, value)
}

func (b *Builder) If(condition Expression, trueBody, falseBody Statement) *IfStatement {
	return b.run.NewIfStatement(b.loc(), nil, condition, trueBody, falseBody)
}

func (b *Builder) DeclStmt(value Expression, declarations ...*VariableDeclaration) *VariableDeclarationStatement {
	return b.run.NewVariableDeclarationStatement(b.loc(), nil, declarations, value)
}

func (b *Builder) Emit(call *FunctionCall) *EmitStatement {
	return b.run.NewEmitStatement(b.loc(), nil, call)
}

func (b *Builder) Try(call Expression, clauses ...*TryCatchClause) *TryStatement {
	return b.run.NewTryStatement(b.loc(), nil, call, clauses)
}

func (b *Builder) Clause(errorName string, params *ParameterList, body *Block) *TryCatchClause {
	return b.run.NewTryCatchClause(b.loc(), errorName, params, body)
}
