package abi

import (
	"fmt"
	"sort"
	"strings"

	"solgo/compiler-go/pkg/ast"
)

// SelectorEntry pairs a dispatch selector with the signature behind it.
type SelectorEntry struct {
	Selector  string `json:"selector"`
	Signature string `json:"signature"`
}

// Selectors lists the contract's dispatch table, sorted by selector so
// the output is stable across runs.
func Selectors(contract *ast.ContractDefinition) ([]SelectorEntry, error) {
	list, err := contract.InterfaceFunctionList()
	if err != nil {
		return nil, err
	}
	entries := make([]SelectorEntry, 0, len(list))
	for _, fn := range list {
		entries = append(entries, SelectorEntry{
			Selector:  fn.Selector.Hex(),
			Signature: fn.Signature,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Selector < entries[j].Selector
	})
	return entries, nil
}

// FormatSelectors renders the dispatch table as aligned text lines.
func FormatSelectors(entries []SelectorEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s\n", e.Selector, e.Signature)
	}
	return b.String()
}

// EventTopics lists the log topics of the contract's non-anonymous
// events, in interface order.
func EventTopics(contract *ast.ContractDefinition) ([]SelectorEntry, error) {
	var entries []SelectorEntry
	for _, event := range contract.InterfaceEvents() {
		if event.IsAnonymous {
			continue
		}
		signature, err := event.ExternalSignature()
		if err != nil {
			return nil, fmt.Errorf("abi: event %q: %w", event.Name(), err)
		}
		entries = append(entries, SelectorEntry{
			Selector:  ast.EventTopicFromSignature(signature).Hex(),
			Signature: signature,
		})
	}
	return entries, nil
}
