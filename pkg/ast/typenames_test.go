package ast

import "testing"

func TestElementaryCanonicalNames(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	cases := map[string]string{
		"uint":    "uint256",
		"int":     "int256",
		"byte":    "bytes1",
		"fixed":   "fixed128x18",
		"ufixed":  "ufixed128x18",
		"uint256": "uint256",
		"uint8":   "uint8",
		"bytes32": "bytes32",
		"bytes":   "bytes",
		"string":  "string",
		"bool":    "bool",
		"address": "address",
	}
	for name, want := range cases {
		if got := b.Ty(name).CanonicalName(); got != want {
			t.Fatalf("canonical name of %q = %q, want %q", name, got, want)
		}
	}
}

func TestPayableAddressCanonicalizesToAddress(t *testing.T) {
	run := NewRun()
	payable := StateMutabilityPayable
	addr := run.NewElementaryTypeName(SourceLocation{Source: "test.sol"}, "address", &payable)
	got, err := CanonicalTypeName(addr)
	if err != nil {
		t.Fatalf("CanonicalTypeName: %v", err)
	}
	if got != "address" {
		t.Fatalf("address payable canonicalized to %q, want address", got)
	}
}

func TestMutabilityOnNonAddressPanics(t *testing.T) {
	run := NewRun()
	payable := StateMutabilityPayable
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for `uint payable`")
		}
	}()
	run.NewElementaryTypeName(SourceLocation{}, "uint", &payable)
}

func TestArrayCanonicalNames(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")

	dynamic := b.ArrayTy(b.Ty("uint"), nil)
	if got, err := CanonicalTypeName(dynamic); err != nil || got != "uint256[]" {
		t.Fatalf("dynamic array = %q, %v; want uint256[]", got, err)
	}

	fixed := b.ArrayTy(b.Ty("bytes32"), b.Num("10"))
	if got, err := CanonicalTypeName(fixed); err != nil || got != "bytes32[10]" {
		t.Fatalf("fixed array = %q, %v; want bytes32[10]", got, err)
	}

	nested := b.ArrayTy(b.ArrayTy(b.Ty("uint"), b.Num("3")), nil)
	if got, err := CanonicalTypeName(nested); err != nil || got != "uint256[3][]" {
		t.Fatalf("nested array = %q, %v; want uint256[3][]", got, err)
	}
}

func TestUserDefinedCanonicalNames(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")

	unresolved := b.UserTy("Token")
	if _, err := CanonicalTypeName(unresolved); err == nil {
		t.Fatalf("an unresolved type must not have a canonical name")
	}

	contractRef := b.UserTy("Token")
	contractRef.Annotation().ReferencedDeclaration = b.Contract("Token", nil)
	if got, err := CanonicalTypeName(contractRef); err != nil || got != "address" {
		t.Fatalf("contract type = %q, %v; want address", got, err)
	}

	enumRef := b.UserTy("Color")
	enumRef.Annotation().ReferencedDeclaration = b.Enum("Color", "Red", "Green")
	if got, err := CanonicalTypeName(enumRef); err != nil || got != "uint8" {
		t.Fatalf("enum type = %q, %v; want uint8", got, err)
	}

	structRef := b.UserTy("Point")
	structRef.Annotation().ReferencedDeclaration = b.Struct("Point", b.Param("x", b.Ty("uint")))
	if _, err := CanonicalTypeName(structRef); err == nil {
		t.Fatalf("struct types have no canonical ABI spelling here")
	}
}

func TestMappingAndFunctionTypesHaveNoCanonicalName(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	if _, err := CanonicalTypeName(b.MappingTy(b.Ty("address"), b.Ty("uint"))); err == nil {
		t.Fatalf("mapping types must be rejected")
	}
	fn := b.Run().NewFunctionTypeName(SourceLocation{Source: "test.sol"}, b.Params(), b.Params(), VisibilityDefault, StateMutabilityNonPayable)
	if _, err := CanonicalTypeName(fn); err == nil {
		t.Fatalf("function types must be rejected")
	}
}

func TestFunctionTypeDefaultVisibilityIsInternal(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	fn := b.Run().NewFunctionTypeName(SourceLocation{Source: "test.sol"}, b.Params(), b.Params(), VisibilityDefault, StateMutabilityNonPayable)
	if got := fn.Visibility(); got != VisibilityInternal {
		t.Fatalf("function type visibility = %s, want internal", got)
	}
}

func TestAccessorSignatureForMappingChain(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	// mapping(address => mapping(address => uint256)) public allowance;
	typeName := b.MappingTy(b.Ty("address"), b.MappingTy(b.Ty("address"), b.Ty("uint256")))
	allowance := b.StateVar("allowance", typeName, VisibilityPublic)

	got, err := allowance.ExternalSignature()
	if err != nil {
		t.Fatalf("ExternalSignature: %v", err)
	}
	if got != "allowance(address,address)" {
		t.Fatalf("accessor signature = %q, want allowance(address,address)", got)
	}
}

func TestAccessorSignatureForArray(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	holders := b.StateVar("holders", b.ArrayTy(b.Ty("address"), nil), VisibilityPublic)
	got, err := holders.ExternalSignature()
	if err != nil {
		t.Fatalf("ExternalSignature: %v", err)
	}
	if got != "holders(uint256)" {
		t.Fatalf("accessor signature = %q, want holders(uint256)", got)
	}
}

func TestAnnotationTypeOverridesStructuralSpelling(t *testing.T) {
	b := NewBuilder(NewRun(), "test.sol")
	param := b.Param("p", b.UserTy("Token"))
	param.Annotation().Type = "address"
	got, err := param.CanonicalType()
	if err != nil {
		t.Fatalf("CanonicalType: %v", err)
	}
	if got != "address" {
		t.Fatalf("annotated canonical type = %q, want address", got)
	}
}
