package grammar

import (
	"fmt"
	"sort"
)

type SymbolID int

const SymbolIDNil = SymbolID(-1)

func (id SymbolID) Int() int {
	return int(id)
}

func (id SymbolID) IsNil() bool {
	return id == SymbolIDNil
}

type Symbol struct {
	ID   SymbolID
	Name string
}

func (s *Symbol) String() string {
	return s.Name
}

type symbolTable struct {
	text2Sym map[string]SymbolID
	syms     []*Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		text2Sym: map[string]SymbolID{},
	}
}

func (t *symbolTable) registerSymbol(text string) (SymbolID, error) {
	if text == "" {
		return SymbolIDNil, fmt.Errorf("a symbol name must be a non-empty string")
	}
	if _, ok := t.text2Sym[text]; ok {
		return SymbolIDNil, fmt.Errorf("%w: %v", ErrDuplicateSymbol, text)
	}
	id := SymbolID(len(t.syms))
	t.text2Sym[text] = id
	t.syms = append(t.syms, &Symbol{
		ID:   id,
		Name: text,
	})
	return id, nil
}

func (t *symbolTable) toSymbol(text string) (SymbolID, bool) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolIDNil, false
}

func (t *symbolTable) toText(sym SymbolID) (string, bool) {
	if !t.contains(sym) {
		return "", false
	}
	return t.syms[sym].Name, true
}

func (t *symbolTable) contains(sym SymbolID) bool {
	return sym >= 0 && sym.Int() < len(t.syms)
}

func sortSymbols(syms []SymbolID) {
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
}
