package assembler

import (
	"sort"
)

// SymbolTable maps labels to resolved addresses. Only the first pass adds entries.
type SymbolTable struct {
	labels map[string]uint8
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{labels: make(map[string]uint8)}
}

// Lookup returns the address of label.
func (s *SymbolTable) Lookup(label string) (uint8, bool) {
	addr, ok := s.labels[label]
	return addr, ok
}

// Len returns the number of labels.
func (s *SymbolTable) Len() int {
	return len(s.labels)
}

// Names returns the labels sorted by address, then by name.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.labels))
	for k := range s.labels {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := s.labels[names[i]], s.labels[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

// At returns the labels declared at addr, sorted by name.
func (s *SymbolTable) At(addr uint8) []string {
	var names []string
	for k, v := range s.labels {
		if v == addr {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// define records label at addr, returning the previous address if it was already declared.
func (s *SymbolTable) define(label string, addr uint8) (uint8, bool) {
	prev, ok := s.labels[label]
	s.labels[label] = addr
	return prev, ok
}
