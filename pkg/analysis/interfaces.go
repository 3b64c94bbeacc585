package analysis

import (
	"errors"

	"solgo/compiler-go/pkg/ast"
)

// CheckInterfaces derives the external interface of every contract in the
// unit and converts failures into diagnostics. Because the interface
// tables are memoized on first access, this pass doubles as the
// single-threaded warm-up that must precede any concurrent reads.
func CheckInterfaces(unit *ast.SourceUnit) []Diagnostic {
	var diags []Diagnostic
	for _, contract := range ast.FilteredNodes[*ast.ContractDefinition](unit.Nodes) {
		diags = append(diags, checkContractInterface(contract)...)
	}
	return diags
}

func checkContractInterface(contract *ast.ContractDefinition) []Diagnostic {
	var diags []Diagnostic

	if _, err := contract.InterfaceFunctionList(); err != nil {
		var collision *ast.SelectorCollisionError
		if errors.As(err, &collision) {
			diag := errorAt(contract,
				"function signature hash collision for %s between %q and %q",
				collision.Selector.Hex(), collision.First, collision.Second)
			diag.Notes = append(diag.Notes, DiagnosticNote{
				Message: "rename one of the colliding members or change its parameter types",
			})
			diags = append(diags, diag)
		} else {
			diags = append(diags, errorAt(contract, "cannot derive the external interface: %v", err))
		}
	}

	// Touch the remaining lazy tables so later concurrent readers only
	// ever hit warm caches.
	contract.InterfaceEvents()
	contract.InheritableMembers()

	if contract.IsInterface() {
		for _, fn := range contract.DefinedFunctions() {
			if fn.IsImplemented() {
				diags = append(diags, errorAt(fn,
					"functions of interface %s must not have an implementation", contract.Name()))
			}
			if fn.IsConstructor {
				diags = append(diags, errorAt(fn,
					"interface %s must not declare a constructor", contract.Name()))
			}
		}
	}

	if !contract.IsInterface() && !contract.IsLibrary() && !contract.CanBeDeployed() {
		diags = append(diags, warningAt(contract,
			"contract %s has a non-public constructor and cannot be deployed directly", contract.Name()))
	}

	return diags
}
