package ast

import (
	"fmt"
	"strings"
)

// StateMutability of a function or of an address type.
type StateMutability int

const (
	StateMutabilityPure StateMutability = iota
	StateMutabilityView
	StateMutabilityNonPayable
	StateMutabilityPayable
)

func (m StateMutability) String() string {
	switch m {
	case StateMutabilityPure:
		return "pure"
	case StateMutabilityView:
		return "view"
	case StateMutabilityNonPayable:
		return "nonpayable"
	case StateMutabilityPayable:
		return "payable"
	default:
		panic(fmt.Sprintf("ast: invalid state mutability %d", int(m)))
	}
}

// TypeName is any built-in or user-defined type reference in the source.
type TypeName interface {
	Node
	typeNameNode()
}

type typeNameMarker struct{}

func (typeNameMarker) typeNameNode() {}

// ElementaryTypeName is a type named by a single keyword, e.g. uint256,
// address, bytes32. The optional state mutability is only valid for
// address types (`address payable`).
type ElementaryTypeName struct {
	nodeBase
	typeNameMarker

	Name            string
	StateMutability *StateMutability
}

func (r *Run) NewElementaryTypeName(loc SourceLocation, name string, mutability *StateMutability) *ElementaryTypeName {
	if mutability != nil && name != "address" {
		panic("ast: state mutability is only valid for address types")
	}
	return &ElementaryTypeName{nodeBase: r.newNode(loc), Name: name, StateMutability: mutability}
}

func (t *ElementaryTypeName) Accept(v Visitor) {
	v.Visit(t)
	v.EndVisit(t)
}

// CanonicalName returns the normalized ABI spelling of the type: aliases
// are widened (uint -> uint256) and the payable qualifier is dropped.
func (t *ElementaryTypeName) CanonicalName() string {
	switch t.Name {
	case "uint":
		return "uint256"
	case "int":
		return "int256"
	case "byte":
		return "bytes1"
	case "fixed":
		return "fixed128x18"
	case "ufixed":
		return "ufixed128x18"
	case "address":
		return "address"
	default:
		return t.Name
	}
}

// UserDefinedTypeName refers to a struct, enum or contract by (possibly
// qualified) name. The referenced declaration is filled in by resolution.
type UserDefinedTypeName struct {
	nodeBase
	typeNameMarker

	NamePath []string

	annotation *UserDefinedTypeNameAnnotation
}

func (r *Run) NewUserDefinedTypeName(loc SourceLocation, namePath []string) *UserDefinedTypeName {
	return &UserDefinedTypeName{nodeBase: r.newNode(loc), NamePath: namePath}
}

func (t *UserDefinedTypeName) Accept(v Visitor) {
	v.Visit(t)
	v.EndVisit(t)
}

func (t *UserDefinedTypeName) Name() string {
	return strings.Join(t.NamePath, ".")
}

// Annotation allocates the annotation slot on first access and returns it;
// the slot is never replaced afterwards.
func (t *UserDefinedTypeName) Annotation() *UserDefinedTypeNameAnnotation {
	if t.annotation == nil {
		t.annotation = &UserDefinedTypeNameAnnotation{}
	}
	return t.annotation
}

// FunctionTypeName is a literal function type, e.g.
// `function (uint) external returns (bool)`.
type FunctionTypeName struct {
	nodeBase
	typeNameMarker

	ParameterTypes     *ParameterList
	ReturnTypes        *ParameterList
	DeclaredVisibility Visibility
	StateMutability    StateMutability
}

func (r *Run) NewFunctionTypeName(loc SourceLocation, params, returns *ParameterList, visibility Visibility, mutability StateMutability) *FunctionTypeName {
	return &FunctionTypeName{
		nodeBase:           r.newNode(loc),
		ParameterTypes:     params,
		ReturnTypes:        returns,
		DeclaredVisibility: visibility,
		StateMutability:    mutability,
	}
}

func (t *FunctionTypeName) Accept(v Visitor) {
	if v.Visit(t) {
		acceptChild(v, t.ParameterTypes)
		acceptChild(v, t.ReturnTypes)
	}
	v.EndVisit(t)
}

// Visibility resolves the default for function types, which is internal.
func (t *FunctionTypeName) Visibility() Visibility {
	if t.DeclaredVisibility == VisibilityDefault {
		return VisibilityInternal
	}
	return t.DeclaredVisibility
}

// Mapping is a mapping type, `mapping(keyType => valueType)`.
type Mapping struct {
	nodeBase
	typeNameMarker

	KeyType   *ElementaryTypeName
	ValueType TypeName
}

func (r *Run) NewMapping(loc SourceLocation, keyType *ElementaryTypeName, valueType TypeName) *Mapping {
	return &Mapping{nodeBase: r.newNode(loc), KeyType: keyType, ValueType: valueType}
}

func (m *Mapping) Accept(v Visitor) {
	if v.Visit(m) {
		acceptChild(v, m.KeyType)
		acceptChild(v, m.ValueType)
	}
	v.EndVisit(m)
}

// ArrayTypeName is `base[]` or `base[<length>]`; Length is absent for
// dynamically sized arrays.
type ArrayTypeName struct {
	nodeBase
	typeNameMarker

	BaseType TypeName
	Length   Expression
}

func (r *Run) NewArrayTypeName(loc SourceLocation, baseType TypeName, length Expression) *ArrayTypeName {
	return &ArrayTypeName{nodeBase: r.newNode(loc), BaseType: baseType, Length: length}
}

func (t *ArrayTypeName) Accept(v Visitor) {
	if v.Visit(t) {
		acceptChild(v, t.BaseType)
		acceptChild(v, t.Length)
	}
	v.EndVisit(t)
}

// CanonicalTypeName renders the canonical ABI spelling of a type reference,
// as used inside external signatures. User-defined types depend on the
// resolved declaration: contracts become address, enums become uint8.
// Mappings and function types have no ABI spelling and return an error, as
// do user-defined types that resolution has not bound yet.
func CanonicalTypeName(t TypeName) (string, error) {
	switch tn := t.(type) {
	case *ElementaryTypeName:
		return tn.CanonicalName(), nil
	case *ArrayTypeName:
		base, err := CanonicalTypeName(tn.BaseType)
		if err != nil {
			return "", err
		}
		if tn.Length == nil {
			return base + "[]", nil
		}
		lit, ok := tn.Length.(*Literal)
		if !ok || lit.Kind != LiteralKindNumber {
			return "", fmt.Errorf("ast: array length of %q is not a number literal; canonical name needs constant evaluation", base)
		}
		return base + "[" + lit.ValueWithoutUnderscores() + "]", nil
	case *UserDefinedTypeName:
		ref := tn.Annotation().ReferencedDeclaration
		switch ref.(type) {
		case *ContractDefinition:
			return "address", nil
		case *EnumDefinition:
			return "uint8", nil
		case nil:
			return "", fmt.Errorf("ast: type %q is unresolved", tn.Name())
		default:
			return "", fmt.Errorf("ast: type %q has no canonical ABI spelling", tn.Name())
		}
	case *Mapping:
		return "", fmt.Errorf("ast: mapping types are not allowed across the ABI boundary")
	case *FunctionTypeName:
		return "", fmt.Errorf("ast: function types have no canonical ABI spelling")
	default:
		return "", fmt.Errorf("ast: unknown type name %T", t)
	}
}
