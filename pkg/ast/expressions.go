package ast

import (
	"fmt"
	"strings"
)

// Expression is anything that has a value. Expressions are not statements;
// ExpressionStatement wraps them when used for effect.
type Expression interface {
	Node
	// Annotation returns the expression's write-once semantic slot,
	// allocating it on first access.
	Annotation() *ExpressionAnnotation
	expressionNode()
}

type exprBase struct {
	nodeBase

	annotation *ExpressionAnnotation
}

func (*exprBase) expressionNode() {}

func (e *exprBase) Annotation() *ExpressionAnnotation {
	if e.annotation == nil {
		e.annotation = &ExpressionAnnotation{}
	}
	return e.annotation
}

// Conditional is the ternary operator `cond ? a : b`.
type Conditional struct {
	exprBase

	Condition       Expression
	TrueExpression  Expression
	FalseExpression Expression
}

func (r *Run) NewConditional(loc SourceLocation, condition, trueExpr, falseExpr Expression) *Conditional {
	return &Conditional{
		exprBase:        exprBase{nodeBase: r.newNode(loc)},
		Condition:       condition,
		TrueExpression:  trueExpr,
		FalseExpression: falseExpr,
	}
}

func (e *Conditional) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.Condition)
		acceptChild(v, e.TrueExpression)
		acceptChild(v, e.FalseExpression)
	}
	v.EndVisit(e)
}

// Assignment, plain or compound: `a = 7 + 8`, `a *= 2`.
type Assignment struct {
	exprBase

	LeftHandSide  Expression
	Operator      Operator
	RightHandSide Expression
}

func (r *Run) NewAssignment(loc SourceLocation, lhs Expression, op Operator, rhs Expression) *Assignment {
	if !op.IsAssignment() {
		panic(fmt.Sprintf("ast: %q is not an assignment operator", op))
	}
	return &Assignment{
		exprBase:      exprBase{nodeBase: r.newNode(loc)},
		LeftHandSide:  lhs,
		Operator:      op,
		RightHandSide: rhs,
	}
}

func (e *Assignment) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.LeftHandSide)
		acceptChild(v, e.RightHandSide)
	}
	v.EndVisit(e)
}

// TupleExpression is a tuple, parenthesized expression or inline array.
// Components the source omits are nil entries that keep their position:
// `(x, , y)`.
type TupleExpression struct {
	exprBase

	Components    []Expression
	IsInlineArray bool
}

func (r *Run) NewTupleExpression(loc SourceLocation, components []Expression, isInlineArray bool) *TupleExpression {
	return &TupleExpression{
		exprBase:      exprBase{nodeBase: r.newNode(loc)},
		Components:    components,
		IsInlineArray: isInlineArray,
	}
}

func (e *TupleExpression) Accept(v Visitor) {
	if v.Visit(e) {
		acceptList(v, e.Components)
	}
	v.EndVisit(e)
}

// UnaryOperation, prefix or postfix: `++i`, `delete x`, `!ok`.
type UnaryOperation struct {
	exprBase

	Operator      Operator
	SubExpression Expression
	IsPrefix      bool
}

func (r *Run) NewUnaryOperation(loc SourceLocation, op Operator, sub Expression, prefix bool) *UnaryOperation {
	if !op.IsUnary() {
		panic(fmt.Sprintf("ast: %q is not a unary operator", op))
	}
	return &UnaryOperation{
		exprBase:      exprBase{nodeBase: r.newNode(loc)},
		Operator:      op,
		SubExpression: sub,
		IsPrefix:      prefix,
	}
}

func (e *UnaryOperation) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.SubExpression)
	}
	v.EndVisit(e)
}

// BinaryOperation: `1 + 2`, `p && q`, `i <= n`.
type BinaryOperation struct {
	exprBase

	Left     Expression
	Operator Operator
	Right    Expression
}

func (r *Run) NewBinaryOperation(loc SourceLocation, left Expression, op Operator, right Expression) *BinaryOperation {
	if !op.IsBinary() && !op.IsCompare() {
		panic(fmt.Sprintf("ast: %q is not a binary operator", op))
	}
	return &BinaryOperation{
		exprBase: exprBase{nodeBase: r.newNode(loc)},
		Left:     left,
		Operator: op,
		Right:    right,
	}
}

func (e *BinaryOperation) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.Left)
		acceptChild(v, e.Right)
	}
	v.EndVisit(e)
}

// FunctionCall is an ordinary call, a type cast or a struct construction;
// the type checker decides which. Named arguments, if any, parallel the
// argument list.
type FunctionCall struct {
	exprBase

	Expression Expression
	Arguments  []Expression
	Names      []string
}

func (r *Run) NewFunctionCall(loc SourceLocation, expression Expression, arguments []Expression, names []string) *FunctionCall {
	return &FunctionCall{
		exprBase:   exprBase{nodeBase: r.newNode(loc)},
		Expression: expression,
		Arguments:  arguments,
		Names:      names,
	}
}

func (e *FunctionCall) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.Expression)
		acceptList(v, e.Arguments)
	}
	v.EndVisit(e)
}

// NewExpression is the `new SomeContract` part of a deployment or memory
// array creation.
type NewExpression struct {
	exprBase

	TypeName TypeName
}

func (r *Run) NewNewExpression(loc SourceLocation, typeName TypeName) *NewExpression {
	return &NewExpression{exprBase: exprBase{nodeBase: r.newNode(loc)}, TypeName: typeName}
}

func (e *NewExpression) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.TypeName)
	}
	v.EndVisit(e)
}

// MemberAccess: `x.name`.
type MemberAccess struct {
	exprBase

	Expression Expression
	MemberName string
}

func (r *Run) NewMemberAccess(loc SourceLocation, expression Expression, memberName string) *MemberAccess {
	return &MemberAccess{
		exprBase:   exprBase{nodeBase: r.newNode(loc)},
		Expression: expression,
		MemberName: memberName,
	}
}

func (e *MemberAccess) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.Expression)
	}
	v.EndVisit(e)
}

// IndexAccess: `a[2]`. Index is absent in abstract type expressions such
// as `uint[]`.
type IndexAccess struct {
	exprBase

	Base  Expression
	Index Expression
}

func (r *Run) NewIndexAccess(loc SourceLocation, base, index Expression) *IndexAccess {
	return &IndexAccess{exprBase: exprBase{nodeBase: r.newNode(loc)}, Base: base, Index: index}
}

func (e *IndexAccess) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.Base)
		acceptChild(v, e.Index)
	}
	v.EndVisit(e)
}

// Identifier references a declaration by name. The referenced declaration
// is written into the annotation by resolution.
type Identifier struct {
	exprBase

	Name string
}

func (r *Run) NewIdentifier(loc SourceLocation, name string) *Identifier {
	return &Identifier{exprBase: exprBase{nodeBase: r.newNode(loc)}, Name: name}
}

func (e *Identifier) Accept(v Visitor) {
	v.Visit(e)
	v.EndVisit(e)
}

// ElementaryTypeNameExpression appears in explicit conversions such as
// `uint32(2)`.
type ElementaryTypeNameExpression struct {
	exprBase

	TypeName *ElementaryTypeName
}

func (r *Run) NewElementaryTypeNameExpression(loc SourceLocation, typeName *ElementaryTypeName) *ElementaryTypeNameExpression {
	return &ElementaryTypeNameExpression{exprBase: exprBase{nodeBase: r.newNode(loc)}, TypeName: typeName}
}

func (e *ElementaryTypeNameExpression) Accept(v Visitor) {
	if v.Visit(e) {
		acceptChild(v, e.TypeName)
	}
	v.EndVisit(e)
}

// LiteralKind distinguishes the token class of a literal.
type LiteralKind int

const (
	LiteralKindNumber LiteralKind = iota
	LiteralKindString
	LiteralKindBool
)

// SubDenomination is a unit suffix on number literals (`1 ether`).
type SubDenomination string

const (
	SubDenominationNone   SubDenomination = ""
	SubDenominationWei    SubDenomination = "wei"
	SubDenominationSzabo  SubDenomination = "szabo"
	SubDenominationFinney SubDenomination = "finney"
	SubDenominationEther  SubDenomination = "ether"
	SubDenominationSecond SubDenomination = "seconds"
	SubDenominationMinute SubDenomination = "minutes"
	SubDenominationHour   SubDenomination = "hours"
	SubDenominationDay    SubDenomination = "days"
	SubDenominationWeek   SubDenomination = "weeks"
	SubDenominationYear   SubDenomination = "years"
)

// Literal stores the raw, unparsed source value of a number, string or
// boolean literal.
type Literal struct {
	exprBase

	Kind            LiteralKind
	Value           string
	SubDenomination SubDenomination
}

func (r *Run) NewLiteral(loc SourceLocation, kind LiteralKind, value string, sub SubDenomination) *Literal {
	return &Literal{
		exprBase:        exprBase{nodeBase: r.newNode(loc)},
		Kind:            kind,
		Value:           value,
		SubDenomination: sub,
	}
}

func (e *Literal) Accept(v Visitor) {
	v.Visit(e)
	v.EndVisit(e)
}

// ValueWithoutUnderscores strips the digit separators from a number
// literal.
func (e *Literal) ValueWithoutUnderscores() string {
	return strings.ReplaceAll(e.Value, "_", "")
}

// IsHexNumber reports whether the literal is a number with a hex prefix.
func (e *Literal) IsHexNumber() bool {
	return e.Kind == LiteralKindNumber && strings.HasPrefix(e.Value, "0x")
}

// LooksLikeAddress reports whether the literal has the shape of an
// address: a hex number of exactly 40 hex digits.
func (e *Literal) LooksLikeAddress() bool {
	if !e.IsHexNumber() {
		return false
	}
	return len(e.ValueWithoutUnderscores()) == 2+40
}

// PassesAddressChecksum checks the literal against the mixed-case address
// checksum: each alphabetic character must be uppercase exactly when the
// corresponding nibble of the Keccak-256 hash of the lowercased address
// is >= 8.
func (e *Literal) PassesAddressChecksum() bool {
	if !e.LooksLikeAddress() {
		return false
	}
	address := e.ValueWithoutUnderscores()[2:]
	return checksummedAddress(address) == address
}

// ChecksummedAddress returns the checksummed rendering of an address
// literal, or the empty string when the literal is not address-shaped.
func (e *Literal) ChecksummedAddress() string {
	if !e.LooksLikeAddress() {
		return ""
	}
	return "0x" + checksummedAddress(e.ValueWithoutUnderscores()[2:])
}

func checksummedAddress(address string) string {
	lower := strings.ToLower(address)
	hash := keccak256([]byte(lower))
	out := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if c >= 'a' && c <= 'f' && nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
