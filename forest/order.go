package forest

import (
	"sort"

	"github.com/nihei9/ambival/grammar"
)

type OrderOption func(o *Order)

// HighRankOnly keeps, at every choice point, only the alternatives whose rule has the highest rank.
func HighRankOnly() OrderOption {
	return func(o *Order) {
		o.highRankOnly = true
	}
}

// Order decides in which sequence the trees of a bocage are produced. Alternatives are sorted by descending
// rule rank; ties keep the bocage order, which is by rule ID and then by ascending split points.
type Order struct {
	b            *Bocage
	highRankOnly bool
	alts         map[*orNode][]*andNode
}

func NewOrder(b *Bocage, opts ...OrderOption) *Order {
	o := &Order{
		b:    b,
		alts: map[*orNode][]*andNode{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Order) Grammar() *grammar.Grammar {
	return o.b.g
}

func (o *Order) alternatives(n *orNode) []*andNode {
	if alts, ok := o.alts[n]; ok {
		return alts
	}
	alts := make([]*andNode, len(n.alts))
	copy(alts, n.alts)
	sort.SliceStable(alts, func(i, j int) bool {
		return rankOf(alts[i]) > rankOf(alts[j])
	})
	if o.highRankOnly && len(alts) > 0 {
		top := rankOf(alts[0])
		for i, alt := range alts {
			if rankOf(alt) < top {
				alts = alts[:i]
				break
			}
		}
	}
	o.alts[n] = alts
	return alts
}

func rankOf(alt *andNode) int {
	if alt.rule == nil {
		return 0
	}
	return alt.rule.Rank
}

// cursor walks the trees rooted at an or-node in order, one at a time. Alternatives are taken in the order of
// Order.alternatives; within an alternative the children behave like the digits of an odometer whose last
// child turns fastest.
type cursor struct {
	o        *Order
	n        *orNode
	alts     []*andNode
	alt      int
	children []*cursor
}

func newCursor(o *Order, n *orNode) *cursor {
	return &cursor{
		o:    o,
		n:    n,
		alts: o.alternatives(n),
	}
}

// first moves to the first tree. It returns false when the or-node has no tree.
func (c *cursor) first() bool {
	for c.alt = 0; c.alt < len(c.alts); c.alt++ {
		if c.firstOfAlt() {
			return true
		}
	}
	return false
}

func (c *cursor) firstOfAlt() bool {
	alt := c.alts[c.alt]
	c.children = make([]*cursor, len(alt.children))
	for i, child := range alt.children {
		cc := newCursor(c.o, child)
		if !cc.first() {
			return false
		}
		c.children[i] = cc
	}
	return true
}

// next moves to the next tree. It returns false when no tree remains.
func (c *cursor) next() bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		if !c.children[i].next() {
			continue
		}
		for _, cc := range c.children[i+1:] {
			cc.first()
		}
		return true
	}
	for c.alt++; c.alt < len(c.alts); c.alt++ {
		if c.firstOfAlt() {
			return true
		}
	}
	return false
}

// node builds the current tree.
func (c *cursor) node() *Node {
	alt := c.alts[c.alt]
	if alt.tok != nil {
		return &Node{
			Symbol:     c.n.sym,
			TokenValue: alt.tok.value,
			Start:      c.n.start,
			End:        c.n.end,
		}
	}
	children := make([]*Node, len(c.children))
	for i, cc := range c.children {
		children[i] = cc.node()
	}
	return &Node{
		Symbol:   c.n.sym,
		Rule:     alt.rule,
		Start:    c.n.start,
		End:      c.n.end,
		Children: children,
	}
}
