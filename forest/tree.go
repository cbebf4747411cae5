package forest

import (
	"fmt"
	"io"

	"github.com/nihei9/ambival/grammar"
)

// Node is a node of a parse tree. A token node has no rule and no children.
type Node struct {
	Symbol     grammar.SymbolID
	Rule       *grammar.Rule
	TokenValue int
	Start      int
	End        int
	Children   []*Node
}

func (n *Node) IsToken() bool {
	return n.Rule == nil
}

// Tree iterates over the distinct parse trees of an order. Trees are built one at a time on Next.
type Tree struct {
	o     *Order
	c     *cursor
	node  *Node
	count int
	done  bool
}

func NewTree(o *Order) *Tree {
	return &Tree{
		o: o,
	}
}

// Next advances to the next parse tree. It returns false when no tree remains.
func (t *Tree) Next() bool {
	if t.done {
		return false
	}

	var ok bool
	if t.c == nil {
		t.c = newCursor(t.o, t.o.b.root)
		ok = t.c.first()
	} else {
		ok = t.c.next()
	}
	if !ok {
		t.done = true
		t.node = nil

		tracer().Debugf("tree iterator: %v parse trees", t.count)

		return false
	}
	t.node = t.c.node()
	t.count++
	return true
}

// Node returns the current parse tree, or nil before the first Next call and after the last one.
func (t *Tree) Node() *Node {
	return t.node
}

// ParseCount returns the number of trees produced so far.
func (t *Tree) ParseCount() int {
	return t.count
}

func (t *Tree) Grammar() *grammar.Grammar {
	return t.o.b.g
}

// PrintTree writes a parse tree. `values` is the token value table; token nodes print their value text when it
// is available.
func PrintTree(w io.Writer, g *grammar.Grammar, node *Node, values []string) {
	printTree(w, g, node, values, "", "")
}

func printTree(w io.Writer, g *grammar.Grammar, node *Node, values []string, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.IsToken() && node.TokenValue >= 0 && node.TokenValue < len(values):
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, g.SymbolName(node.Symbol), values[node.TokenValue])
	case node.IsToken():
		fmt.Fprintf(w, "%v%v #%v\n", ruledLine, g.SymbolName(node.Symbol), node.TokenValue)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, g.RuleString(node.Rule))
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, g, child, values, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
