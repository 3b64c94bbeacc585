package ast

// Statement is any executable statement. Statements can carry a doc
// string from the source.
type Statement interface {
	Node
	Documented
	statementNode()
}

type stmtBase struct {
	nodeBase
	documented
}

func newStatement(base nodeBase, doc *string) stmtBase {
	return stmtBase{nodeBase: base, documented: documented{documentation: doc}}
}

func (*stmtBase) statementNode() {}

// Block is a brace-enclosed list of statements. Blocks open a scope.
type Block struct {
	stmtBase
	scopable

	Statements []Statement
}

func (r *Run) NewBlock(loc SourceLocation, doc *string, statements []Statement) *Block {
	return &Block{stmtBase: newStatement(r.newNode(loc), doc), Statements: statements}
}

func (b *Block) Accept(v Visitor) {
	if v.Visit(b) {
		acceptList(v, b.Statements)
	}
	v.EndVisit(b)
}

// PlaceholderStatement is the `_` inside a modifier body, replaced by the
// modified function during code generation.
type PlaceholderStatement struct {
	stmtBase
}

func (r *Run) NewPlaceholderStatement(loc SourceLocation, doc *string) *PlaceholderStatement {
	return &PlaceholderStatement{stmtBase: newStatement(r.newNode(loc), doc)}
}

func (p *PlaceholderStatement) Accept(v Visitor) {
	v.Visit(p)
	v.EndVisit(p)
}

// IfStatement with an optional else part; `else if` nests a fresh
// IfStatement in FalseBody.
type IfStatement struct {
	stmtBase

	Condition Expression
	TrueBody  Statement
	FalseBody Statement
}

func (r *Run) NewIfStatement(loc SourceLocation, doc *string, condition Expression, trueBody, falseBody Statement) *IfStatement {
	return &IfStatement{
		stmtBase:  newStatement(r.newNode(loc), doc),
		Condition: condition,
		TrueBody:  trueBody,
		FalseBody: falseBody,
	}
}

func (s *IfStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.Condition)
		acceptChild(v, s.TrueBody)
		acceptChild(v, s.FalseBody)
	}
	v.EndVisit(s)
}

// TryCatchClause is one clause of a try statement. The success clause has
// an empty error name; `catch Error(string memory reason)` carries the
// standard revert-reason name; the catch-all clause has an empty name and
// binds the raw failure data, or nothing for a bare catch.
type TryCatchClause struct {
	nodeBase
	scopable

	ErrorName  string
	Parameters *ParameterList
	Body       *Block
}

func (r *Run) NewTryCatchClause(loc SourceLocation, errorName string, parameters *ParameterList, body *Block) *TryCatchClause {
	return &TryCatchClause{nodeBase: r.newNode(loc), ErrorName: errorName, Parameters: parameters, Body: body}
}

func (c *TryCatchClause) Accept(v Visitor) {
	if v.Visit(c) {
		acceptChild(v, c.Parameters)
		acceptChild(v, c.Body)
	}
	v.EndVisit(c)
}

// TryStatement wraps exactly one external call with an ordered, non-empty
// clause list: the success clause first, then optional named-reason and
// catch-all clauses in source order. Run-time dispatch among the clauses
// belongs to the code generator; this layer fixes only shape and order.
type TryStatement struct {
	stmtBase

	ExternalCall Expression
	Clauses      []*TryCatchClause
}

func (r *Run) NewTryStatement(loc SourceLocation, doc *string, externalCall Expression, clauses []*TryCatchClause) *TryStatement {
	if len(clauses) == 0 {
		panic("ast: a try statement needs at least the success clause")
	}
	return &TryStatement{
		stmtBase:     newStatement(r.newNode(loc), doc),
		ExternalCall: externalCall,
		Clauses:      clauses,
	}
}

func (s *TryStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.ExternalCall)
		acceptList(v, s.Clauses)
	}
	v.EndVisit(s)
}

// SuccessClause returns the clause executed when the call returns.
func (s *TryStatement) SuccessClause() *TryCatchClause {
	return s.Clauses[0]
}

// WhileStatement covers both while and do-while loops.
type WhileStatement struct {
	stmtBase

	Condition Expression
	Body      Statement
	IsDoWhile bool
}

func (r *Run) NewWhileStatement(loc SourceLocation, doc *string, condition Expression, body Statement, isDoWhile bool) *WhileStatement {
	return &WhileStatement{
		stmtBase:  newStatement(r.newNode(loc), doc),
		Condition: condition,
		Body:      body,
		IsDoWhile: isDoWhile,
	}
}

func (s *WhileStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.Condition)
		acceptChild(v, s.Body)
	}
	v.EndVisit(s)
}

// ForStatement with all three header slots optional. For loops open a
// scope so the init declaration is visible in the header and body only.
type ForStatement struct {
	stmtBase
	scopable

	Init      Statement
	Condition Expression
	Loop      *ExpressionStatement
	Body      Statement
}

func (r *Run) NewForStatement(loc SourceLocation, doc *string, init Statement, condition Expression, loop *ExpressionStatement, body Statement) *ForStatement {
	return &ForStatement{
		stmtBase:  newStatement(r.newNode(loc), doc),
		Init:      init,
		Condition: condition,
		Loop:      loop,
		Body:      body,
	}
}

func (s *ForStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.Init)
		acceptChild(v, s.Condition)
		acceptChild(v, s.Loop)
		acceptChild(v, s.Body)
	}
	v.EndVisit(s)
}

type Continue struct {
	stmtBase
}

func (r *Run) NewContinue(loc SourceLocation, doc *string) *Continue {
	return &Continue{stmtBase: newStatement(r.newNode(loc), doc)}
}

func (s *Continue) Accept(v Visitor) {
	v.Visit(s)
	v.EndVisit(s)
}

type Break struct {
	stmtBase
}

func (r *Run) NewBreak(loc SourceLocation, doc *string) *Break {
	return &Break{stmtBase: newStatement(r.newNode(loc), doc)}
}

func (s *Break) Accept(v Visitor) {
	v.Visit(s)
	v.EndVisit(s)
}

// Return with an optional value expression.
type Return struct {
	stmtBase

	Value Expression

	annotation *ReturnAnnotation
}

func (r *Run) NewReturn(loc SourceLocation, doc *string, value Expression) *Return {
	return &Return{stmtBase: newStatement(r.newNode(loc), doc), Value: value}
}

func (s *Return) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.Value)
	}
	v.EndVisit(s)
}

func (s *Return) Annotation() *ReturnAnnotation {
	if s.annotation == nil {
		s.annotation = &ReturnAnnotation{}
	}
	return s.annotation
}

// Throw triggers an unconditional revert. Deprecated in the source
// language but still part of the tree model.
type Throw struct {
	stmtBase
}

func (r *Run) NewThrow(loc SourceLocation, doc *string) *Throw {
	return &Throw{stmtBase: newStatement(r.newNode(loc), doc)}
}

func (s *Throw) Accept(v Visitor) {
	v.Visit(s)
	v.EndVisit(s)
}

// EmitStatement logs an event: `emit EventName(arg1, ..., argn)`.
type EmitStatement struct {
	stmtBase

	EventCall *FunctionCall
}

func (r *Run) NewEmitStatement(loc SourceLocation, doc *string, eventCall *FunctionCall) *EmitStatement {
	return &EmitStatement{stmtBase: newStatement(r.newNode(loc), doc), EventCall: eventCall}
}

func (s *EmitStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.EventCall)
	}
	v.EndVisit(s)
}

// VariableDeclarationStatement declares one or more variables inside a
// function body. Tuple components that the source omits are nil entries,
// preserving position: `(uint a, , ) = f();`.
type VariableDeclarationStatement struct {
	stmtBase

	Declarations []*VariableDeclaration
	InitialValue Expression
}

func (r *Run) NewVariableDeclarationStatement(loc SourceLocation, doc *string, declarations []*VariableDeclaration, initialValue Expression) *VariableDeclarationStatement {
	return &VariableDeclarationStatement{
		stmtBase:     newStatement(r.newNode(loc), doc),
		Declarations: declarations,
		InitialValue: initialValue,
	}
}

func (s *VariableDeclarationStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptList(v, s.Declarations)
		acceptChild(v, s.InitialValue)
	}
	v.EndVisit(s)
}

// ExpressionStatement wraps an expression used for effect.
type ExpressionStatement struct {
	stmtBase

	Expression Expression
}

func (r *Run) NewExpressionStatement(loc SourceLocation, doc *string, expression Expression) *ExpressionStatement {
	return &ExpressionStatement{stmtBase: newStatement(r.newNode(loc), doc), Expression: expression}
}

func (s *ExpressionStatement) Accept(v Visitor) {
	if v.Visit(s) {
		acceptChild(v, s.Expression)
	}
	v.EndVisit(s)
}
