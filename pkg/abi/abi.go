// Package abi renders the external interface of a contract in the
// standard contract-ABI JSON shape, plus a flat selector listing for
// tooling that only needs the 4-byte dispatch table.
package abi

import (
	"encoding/json"
	"fmt"

	"solgo/compiler-go/pkg/ast"
)

// Argument is one input or output of an ABI entry.
type Argument struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Entry is one element of the ABI array.
type Entry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []Argument `json:"inputs"`
	Outputs         []Argument `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// Export derives the ABI of one contract: every selector-reachable
// function (declared or accessor), the constructor and fallback when
// present, and the externally visible events.
func Export(contract *ast.ContractDefinition) ([]Entry, error) {
	list, err := contract.InterfaceFunctionList()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, fn := range list {
		entry, err := interfaceEntry(fn)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if constructor := contract.Constructor(); constructor != nil {
		inputs, err := arguments(constructor.Parameters())
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Type:            "constructor",
			Inputs:          inputs,
			StateMutability: constructor.StateMutability.String(),
		})
	}

	if fallback := contract.FallbackFunction(); fallback != nil {
		entries = append(entries, Entry{
			Type:            "fallback",
			Inputs:          []Argument{},
			StateMutability: fallback.StateMutability.String(),
		})
	}

	for _, event := range contract.InterfaceEvents() {
		inputs, err := arguments(event.Parameters())
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Type:      "event",
			Name:      event.Name(),
			Inputs:    inputs,
			Anonymous: event.IsAnonymous,
		})
	}

	return entries, nil
}

// MarshalJSON renders the ABI with stable two-space indentation, the way
// tooling expects to diff it.
func MarshalJSON(entries []Entry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

func interfaceEntry(fn ast.InterfaceFunction) (Entry, error) {
	switch decl := fn.Declaration.(type) {
	case *ast.FunctionDefinition:
		inputs, err := arguments(decl.Parameters())
		if err != nil {
			return Entry{}, err
		}
		outputs, err := arguments(decl.ReturnParameters())
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Type:            "function",
			Name:            decl.Name(),
			Inputs:          inputs,
			Outputs:         outputs,
			StateMutability: decl.StateMutability.String(),
		}, nil
	case *ast.VariableDeclaration:
		return accessorEntry(decl)
	default:
		return Entry{}, fmt.Errorf("abi: unexpected interface member %T", fn.Declaration)
	}
}

// accessorEntry renders the implicit getter of a public state variable:
// mapping keys and array indices become unnamed inputs, the terminal
// value type the single output.
func accessorEntry(variable *ast.VariableDeclaration) (Entry, error) {
	inputs := []Argument{}
	t := variable.TypeName
	for {
		switch tn := t.(type) {
		case *ast.Mapping:
			key, err := ast.CanonicalTypeName(tn.KeyType)
			if err != nil {
				return Entry{}, fmt.Errorf("abi: accessor of %s: %w", variable.Name(), err)
			}
			inputs = append(inputs, Argument{Name: "", Type: key})
			t = tn.ValueType
			continue
		case *ast.ArrayTypeName:
			inputs = append(inputs, Argument{Name: "", Type: "uint256"})
			t = tn.BaseType
			continue
		}
		break
	}
	value, err := ast.CanonicalTypeName(t)
	if err != nil {
		return Entry{}, fmt.Errorf("abi: accessor of %s: %w", variable.Name(), err)
	}
	return Entry{
		Type:            "function",
		Name:            variable.Name(),
		Inputs:          inputs,
		Outputs:         []Argument{{Name: "", Type: value}},
		StateMutability: "view",
	}, nil
}

func arguments(parameters []*ast.VariableDeclaration) ([]Argument, error) {
	args := make([]Argument, 0, len(parameters))
	for _, param := range parameters {
		canonical, err := param.CanonicalType()
		if err != nil {
			return nil, fmt.Errorf("abi: parameter %q: %w", param.Name(), err)
		}
		args = append(args, Argument{
			Name:    param.Name(),
			Type:    canonical,
			Indexed: param.IsIndexed,
		})
	}
	return args, nil
}
