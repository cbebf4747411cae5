package forest

import (
	"github.com/nihei9/ambival/grammar"
	"github.com/pkg/errors"
)

// orNode packs every derivation of a symbol over the earlemes [start, end).
type orNode struct {
	sym   grammar.SymbolID
	start int
	end   int
	alts  []*andNode
}

// andNode is one derivation: either a token or a rule whose RHS symbols derive consecutive spans.
type andNode struct {
	tok      *token
	rule     *grammar.Rule
	children []*orNode
}

type spanKey struct {
	sym   grammar.SymbolID
	start int
	end   int
}

type Bocage struct {
	rec   *Recognizer
	g     *grammar.Grammar
	root  *orNode
	nodes map[spanKey]*orNode

	// building holds the nodes under construction. Reentering one of them means a cyclic derivation.
	building map[spanKey]struct{}
}

// NewBocage packs the parses of the start symbol spanning the earlemes [0, earleySet).
func NewBocage(rec *Recognizer, earleySet int) (*Bocage, error) {
	if !rec.started {
		return nil, ErrNotStarted
	}
	if earleySet < 0 || earleySet > rec.latest {
		return nil, errors.Wrapf(ErrInvalidEarleySet, "earley set %v, latest %v", earleySet, rec.latest)
	}

	b := &Bocage{
		rec:      rec,
		g:        rec.g,
		nodes:    map[spanKey]*orNode{},
		building: map[spanKey]struct{}{},
	}
	b.root = b.build(b.g.StartSymbol(), 0, earleySet)
	if b.root == nil {
		return nil, errors.Wrapf(ErrNoParse, "start symbol %v over [0, %v)", b.g.SymbolName(b.g.StartSymbol()), earleySet)
	}

	tracer().Debugf("bocage: %v or-nodes over [0, %v)", len(b.nodes), earleySet)

	return b, nil
}

func (b *Bocage) Grammar() *grammar.Grammar {
	return b.g
}

// build returns the or-node of `sym` over [start, end), or nil when `sym` doesn't derive that span.
func (b *Bocage) build(sym grammar.SymbolID, start, end int) *orNode {
	key := spanKey{
		sym:   sym,
		start: start,
		end:   end,
	}
	if n, ok := b.nodes[key]; ok {
		return n
	}
	if _, ok := b.building[key]; ok {
		return nil
	}
	if start == end && !b.g.IsNullable(sym) {
		return nil
	}

	b.building[key] = struct{}{}
	defer delete(b.building, key)

	n := &orNode{
		sym:   sym,
		start: start,
		end:   end,
	}
	if b.g.IsTerminal(sym) {
		for _, tok := range b.rec.tokensAt(start, end, sym) {
			n.alts = append(n.alts, &andNode{
				tok: tok,
			})
		}
	} else {
		for _, r := range b.g.RulesOf(sym) {
			for _, children := range b.split(r.RHS, start, end) {
				n.alts = append(n.alts, &andNode{
					rule:     r,
					children: children,
				})
			}
		}
	}

	if len(n.alts) == 0 {
		n = nil
	}
	b.nodes[key] = n

	return n
}

// split enumerates the ways `rhs` derives [start, end) as consecutive spans, in ascending order of split points.
func (b *Bocage) split(rhs []grammar.SymbolID, start, end int) [][]*orNode {
	if len(rhs) == 0 {
		if start == end {
			return [][]*orNode{{}}
		}
		return nil
	}

	var splits [][]*orNode
	first := start
	if len(rhs) == 1 {
		first = end
	}
	for mid := first; mid <= end; mid++ {
		head := b.build(rhs[0], start, mid)
		if head == nil {
			continue
		}
		for _, tail := range b.split(rhs[1:], mid, end) {
			children := make([]*orNode, 0, len(rhs))
			children = append(children, head)
			children = append(children, tail...)
			splits = append(splits, children)
		}
	}
	return splits
}
