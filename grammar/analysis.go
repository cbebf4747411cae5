package grammar

// findUnproductiveSymbols returns the non-terminals that derive no terminal string.
func findUnproductiveSymbols(g *Grammar) []SymbolID {
	productive := map[SymbolID]struct{}{}
	for _, sym := range g.symbolTable.syms {
		if g.IsTerminal(sym.ID) {
			productive[sym.ID] = struct{}{}
		}
	}

	for {
		changed := false
		for _, r := range g.ruleSet.rules {
			if _, ok := productive[r.LHS]; ok {
				continue
			}
			if !allIn(r.RHS, productive) {
				continue
			}
			productive[r.LHS] = struct{}{}
			changed = true
		}
		if !changed {
			break
		}
	}

	var syms []SymbolID
	for _, sym := range g.symbolTable.syms {
		if _, ok := productive[sym.ID]; !ok {
			syms = append(syms, sym.ID)
		}
	}
	sortSymbols(syms)
	return syms
}

// findUnreachableSymbols returns the symbols that no derivation from the start symbol contains.
func findUnreachableSymbols(g *Grammar) []SymbolID {
	reachable := map[SymbolID]struct{}{
		g.start: {},
	}
	queue := []SymbolID{g.start}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		for _, r := range g.RulesOf(sym) {
			for _, s := range r.RHS {
				if _, ok := reachable[s]; ok {
					continue
				}
				reachable[s] = struct{}{}
				queue = append(queue, s)
			}
		}
	}

	var syms []SymbolID
	for _, sym := range g.symbolTable.syms {
		if _, ok := reachable[sym.ID]; !ok {
			syms = append(syms, sym.ID)
		}
	}
	sortSymbols(syms)
	return syms
}

func findNullableSymbols(g *Grammar) map[SymbolID]struct{} {
	nullable := map[SymbolID]struct{}{}
	for {
		changed := false
		for _, r := range g.ruleSet.rules {
			if _, ok := nullable[r.LHS]; ok {
				continue
			}
			if !allIn(r.RHS, nullable) {
				continue
			}
			nullable[r.LHS] = struct{}{}
			changed = true
		}
		if !changed {
			break
		}
	}
	return nullable
}

// findCyclicSymbols returns the non-terminals A such that A derives A in one or more steps. Such symbols
// yield infinitely many parse trees for a single input.
func findCyclicSymbols(g *Grammar, nullable map[SymbolID]struct{}) []SymbolID {
	// A has an edge to B when a rule `A ::= α B β` exists and both α and β are nullable.
	edges := map[SymbolID]map[SymbolID]struct{}{}
	for _, r := range g.ruleSet.rules {
		for i, sym := range r.RHS {
			if !g.IsNonTerminal(sym) {
				continue
			}
			if !allIn(r.RHS[:i], nullable) || !allIn(r.RHS[i+1:], nullable) {
				continue
			}
			if edges[r.LHS] == nil {
				edges[r.LHS] = map[SymbolID]struct{}{}
			}
			edges[r.LHS][sym] = struct{}{}
		}
	}

	var syms []SymbolID
	for from := range edges {
		if reaches(edges, from, from) {
			syms = append(syms, from)
		}
	}
	sortSymbols(syms)
	return syms
}

func reaches(edges map[SymbolID]map[SymbolID]struct{}, from, to SymbolID) bool {
	visited := map[SymbolID]struct{}{}
	stack := []SymbolID{from}
	for len(stack) > 0 {
		sym := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range edges[sym] {
			if next == to {
				return true
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return false
}

func allIn(syms []SymbolID, set map[SymbolID]struct{}) bool {
	for _, sym := range syms {
		if _, ok := set[sym]; !ok {
			return false
		}
	}
	return true
}
