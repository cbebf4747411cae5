package grammar

import (
	"fmt"
	"strings"
)

type RuleID int

const RuleIDNil = RuleID(-1)

func (id RuleID) Int() int {
	return int(id)
}

type Rule struct {
	ID  RuleID
	LHS SymbolID
	RHS []SymbolID

	// Rank orders alternatives of an ambiguous parse. Higher ranks come first.
	Rank int
}

func (r *Rule) IsEmpty() bool {
	return len(r.RHS) == 0
}

type RuleOption func(r *Rule)

func Rank(rank int) RuleOption {
	return func(r *Rule) {
		r.Rank = rank
	}
}

type ruleKey string

func genRuleKey(lhs SymbolID, rhs []SymbolID) ruleKey {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:", lhs)
	for _, sym := range rhs {
		fmt.Fprintf(&b, " %v", sym)
	}
	return ruleKey(b.String())
}

type ruleSet struct {
	lhs2Rules map[SymbolID][]*Rule
	key2Rule  map[ruleKey]*Rule
	rules     []*Rule
}

func newRuleSet() *ruleSet {
	return &ruleSet{
		lhs2Rules: map[SymbolID][]*Rule{},
		key2Rule:  map[ruleKey]*Rule{},
	}
}

func (rs *ruleSet) append(r *Rule) error {
	key := genRuleKey(r.LHS, r.RHS)
	if _, ok := rs.key2Rule[key]; ok {
		return ErrDuplicateRule
	}

	r.ID = RuleID(len(rs.rules))
	rs.rules = append(rs.rules, r)
	rs.key2Rule[key] = r
	rs.lhs2Rules[r.LHS] = append(rs.lhs2Rules[r.LHS], r)

	return nil
}

func (rs *ruleSet) findByLHS(lhs SymbolID) ([]*Rule, bool) {
	rules, ok := rs.lhs2Rules[lhs]
	return rules, ok
}
