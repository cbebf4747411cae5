// Package grammar builds context-free grammars for the forest collaborator.
//
// A grammar is assembled with NewSymbol, NewRule, and SetStartSymbol, then validated once by Precompute.
// Symbols never appearing on the LHS of a rule are terminals. After Precompute succeeds the grammar is
// read-only.
package grammar

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/ambival/error"
)

type Grammar struct {
	symbolTable *symbolTable
	ruleSet     *ruleSet
	start       SymbolID
	precomputed bool

	// nullable is filled by Precompute.
	nullable map[SymbolID]struct{}
}

func NewGrammar() *Grammar {
	return &Grammar{
		symbolTable: newSymbolTable(),
		ruleSet:     newRuleSet(),
		start:       SymbolIDNil,
	}
}

// NewSymbol registers a symbol. Names must be unique.
func (g *Grammar) NewSymbol(name string) (SymbolID, error) {
	if g.precomputed {
		return SymbolIDNil, ErrPrecomputed
	}
	return g.symbolTable.registerSymbol(name)
}

// NewRule registers the rule `lhs ::= rhs`. A rule with an empty RHS derives the empty string.
func (g *Grammar) NewRule(lhs SymbolID, rhs []SymbolID, opts ...RuleOption) (RuleID, error) {
	if g.precomputed {
		return RuleIDNil, ErrPrecomputed
	}
	if !g.symbolTable.contains(lhs) {
		return RuleIDNil, fmt.Errorf("%w: LHS %v", ErrUndefinedSym, lhs)
	}
	for _, sym := range rhs {
		if !g.symbolTable.contains(sym) {
			return RuleIDNil, fmt.Errorf("%w: RHS %v", ErrUndefinedSym, sym)
		}
	}

	r := &Rule{
		LHS: lhs,
		RHS: append([]SymbolID{}, rhs...),
	}
	for _, opt := range opts {
		opt(r)
	}
	err := g.ruleSet.append(r)
	if err != nil {
		return RuleIDNil, fmt.Errorf("%w: %v", err, g.RuleString(r))
	}

	return r.ID, nil
}

func (g *Grammar) SetStartSymbol(sym SymbolID) error {
	if g.precomputed {
		return ErrPrecomputed
	}
	if !g.symbolTable.contains(sym) {
		return fmt.Errorf("%w: %v", ErrUndefinedSym, sym)
	}
	g.start = sym
	return nil
}

// Precompute validates the grammar and freezes it. On failure it returns verr.SpecErrors whose causes are
// the sentinel errors of this package.
func (g *Grammar) Precompute() error {
	if g.precomputed {
		return nil
	}

	var errs verr.SpecErrors
	switch {
	case len(g.ruleSet.rules) == 0:
		errs = append(errs, &verr.SpecError{
			Cause: ErrNoRule,
		})
	case g.start.IsNil():
		errs = append(errs, &verr.SpecError{
			Cause: ErrNoStartSymbol,
		})
	case !g.IsNonTerminal(g.start):
		errs = append(errs, &verr.SpecError{
			Cause:  ErrStartNotLHS,
			Detail: g.SymbolName(g.start),
		})
	}
	if len(errs) > 0 {
		return errs
	}

	for _, sym := range findUnproductiveSymbols(g) {
		errs = append(errs, &verr.SpecError{
			Cause:  ErrUnproductiveSym,
			Detail: g.SymbolName(sym),
		})
	}
	for _, sym := range findUnreachableSymbols(g) {
		errs = append(errs, &verr.SpecError{
			Cause:  ErrUnreachableSym,
			Detail: g.SymbolName(sym),
		})
	}
	nullable := findNullableSymbols(g)
	for _, sym := range findCyclicSymbols(g, nullable) {
		errs = append(errs, &verr.SpecError{
			Cause:  ErrCyclicSym,
			Detail: g.SymbolName(sym),
		})
	}
	if len(errs) > 0 {
		return errs
	}

	g.nullable = nullable
	g.precomputed = true

	return nil
}

func (g *Grammar) IsPrecomputed() bool {
	return g.precomputed
}

func (g *Grammar) StartSymbol() SymbolID {
	return g.start
}

func (g *Grammar) SymbolCount() int {
	return len(g.symbolTable.syms)
}

func (g *Grammar) Symbol(sym SymbolID) (*Symbol, bool) {
	if !g.symbolTable.contains(sym) {
		return nil, false
	}
	return g.symbolTable.syms[sym], true
}

func (g *Grammar) SymbolByName(name string) (SymbolID, bool) {
	return g.symbolTable.toSymbol(name)
}

// SymbolName returns the name of `sym`, or a placeholder for an unknown symbol.
func (g *Grammar) SymbolName(sym SymbolID) string {
	text, ok := g.symbolTable.toText(sym)
	if !ok {
		return fmt.Sprintf("<unknown symbol %v>", sym.Int())
	}
	return text
}

func (g *Grammar) IsTerminal(sym SymbolID) bool {
	return g.symbolTable.contains(sym) && !g.IsNonTerminal(sym)
}

func (g *Grammar) IsNonTerminal(sym SymbolID) bool {
	_, ok := g.ruleSet.findByLHS(sym)
	return ok
}

// IsNullable reports whether `sym` derives the empty string. It is valid only after Precompute.
func (g *Grammar) IsNullable(sym SymbolID) bool {
	_, ok := g.nullable[sym]
	return ok
}

func (g *Grammar) RuleCount() int {
	return len(g.ruleSet.rules)
}

func (g *Grammar) Rule(id RuleID) (*Rule, bool) {
	if id < 0 || id.Int() >= len(g.ruleSet.rules) {
		return nil, false
	}
	return g.ruleSet.rules[id], true
}

func (g *Grammar) Rules() []*Rule {
	return g.ruleSet.rules
}

// RulesOf returns the rules whose LHS is `lhs` in registration order.
func (g *Grammar) RulesOf(lhs SymbolID) []*Rule {
	rules, _ := g.ruleSet.findByLHS(lhs)
	return rules
}

// RuleString renders a rule as `lhs ::= rhs...`.
func (g *Grammar) RuleString(r *Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ::=", g.SymbolName(r.LHS))
	if r.IsEmpty() {
		fmt.Fprintf(&b, " ε")
	}
	for _, sym := range r.RHS {
		fmt.Fprintf(&b, " %v", g.SymbolName(sym))
	}
	return b.String()
}
