// Package ast defines the abstract syntax tree of the contract language:
// declarations, type names, statements and expressions, plus the derived
// facts downstream passes consume. Nodes are built bottom-up through a Run,
// which owns identity for one compilation run; a parser supplies locations,
// a resolution pass assigns scopes, a type checker fills annotation slots,
// and only then is the tree safe for concurrent read-only traversal.
//
// The contract interface derivation lives here too: canonical ABI
// signatures, 4-byte Keccak selectors, the memoized external function
// table with collision detection, inherited event aggregation and the
// name-shadowed inheritable member list.
package ast
