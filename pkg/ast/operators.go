package ast

// Operator is the source spelling of an operator token. The tokenizer is an
// external collaborator; this layer only validates that the operator class
// matches the node kind it is stored on.
type Operator string

const (
	OpAssign       Operator = "="
	OpAssignBitOr  Operator = "|="
	OpAssignBitXor Operator = "^="
	OpAssignBitAnd Operator = "&="
	OpAssignShl    Operator = "<<="
	OpAssignShr    Operator = ">>="
	OpAssignAdd    Operator = "+="
	OpAssignSub    Operator = "-="
	OpAssignMul    Operator = "*="
	OpAssignDiv    Operator = "/="
	OpAssignMod    Operator = "%="

	OpComma Operator = ","
	OpOr    Operator = "||"
	OpAnd   Operator = "&&"

	OpBitOr  Operator = "|"
	OpBitXor Operator = "^"
	OpBitAnd Operator = "&"
	OpShl    Operator = "<<"
	OpSar    Operator = ">>"

	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpExp Operator = "**"

	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLessThan     Operator = "<"
	OpGreaterThan  Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="

	OpNot    Operator = "!"
	OpBitNot Operator = "~"
	OpInc    Operator = "++"
	OpDec    Operator = "--"
	OpDelete Operator = "delete"
)

// IsAssignment reports whether the operator is plain or compound assignment.
func (op Operator) IsAssignment() bool {
	switch op {
	case OpAssign, OpAssignBitOr, OpAssignBitXor, OpAssignBitAnd,
		OpAssignShl, OpAssignShr, OpAssignAdd, OpAssignSub,
		OpAssignMul, OpAssignDiv, OpAssignMod:
		return true
	}
	return false
}

// IsCompare reports whether the operator is a comparison.
func (op Operator) IsCompare() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessEqual, OpGreaterEqual:
		return true
	}
	return false
}

// IsBinary reports whether the operator may appear in a BinaryOperation
// (comparisons excluded; use IsCompare for those).
func (op Operator) IsBinary() bool {
	switch op {
	case OpComma, OpOr, OpAnd, OpBitOr, OpBitXor, OpBitAnd,
		OpShl, OpSar, OpAdd, OpSub, OpMul, OpDiv, OpMod, OpExp:
		return true
	}
	return false
}

// IsUnary reports whether the operator may appear in a UnaryOperation.
func (op Operator) IsUnary() bool {
	switch op {
	case OpNot, OpBitNot, OpInc, OpDec, OpDelete, OpAdd, OpSub:
		return true
	}
	return false
}
