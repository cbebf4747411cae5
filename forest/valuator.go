package forest

import (
	"fmt"

	"github.com/nihei9/ambival/grammar"
	"github.com/pkg/errors"
)

type StepType int

const (
	// StepInactive means the valuator has no more steps for the tree.
	StepInactive StepType = iota
	StepToken
	StepRule
)

func (t StepType) String() string {
	switch t {
	case StepInactive:
		return "inactive"
	case StepToken:
		return "token"
	case StepRule:
		return "rule"
	}
	return fmt.Sprintf("<unknown step type %v>", int(t))
}

// Step is one unit of evaluation. A token step asks to store the token's value at Result. A rule step asks to
// combine the values at Arg0 through ArgN (inclusive) and to store the result at Arg0; for an empty rule ArgN
// is Arg0 - 1.
type Step struct {
	Type StepType

	// Symbol and TokenValue are set on token steps.
	Symbol     grammar.SymbolID
	TokenValue int

	// Rule, Arg0, and ArgN are set on rule steps.
	Rule grammar.RuleID
	Arg0 int
	ArgN int

	Result int
}

var inactiveStep = &Step{
	Type: StepInactive,
}

// Valuator emits the steps of the current tree of a tree iterator in post-order. Rules are unvalued by default
// and produce no steps; RuleIsValuedSet marks the rules the caller wants to see.
type Valuator struct {
	g      *grammar.Grammar
	root   *Node
	valued map[grammar.RuleID]struct{}
	steps  []*Step
	pos    int
}

func NewValuator(t *Tree) (*Valuator, error) {
	root := t.Node()
	if root == nil {
		return nil, ErrNoTree
	}
	return &Valuator{
		g:      t.Grammar(),
		root:   root,
		valued: map[grammar.RuleID]struct{}{},
		pos:    -1,
	}, nil
}

func (v *Valuator) RuleIsValuedSet(rule grammar.RuleID, valued bool) error {
	if v.pos >= 0 {
		return ErrValuatorStarted
	}
	if _, ok := v.g.Rule(rule); !ok {
		return errors.Wrapf(ErrUnknownRule, "rule %v", rule)
	}
	if valued {
		v.valued[rule] = struct{}{}
	} else {
		delete(v.valued, rule)
	}
	return nil
}

// Step returns the next step. Once the steps run out, it keeps returning an inactive step.
func (v *Valuator) Step() *Step {
	if v.pos < 0 {
		v.walk(v.root, 0)
		tracer().Debugf("valuator: %v steps", len(v.steps))
	}
	if v.pos >= len(v.steps) {
		return inactiveStep
	}
	v.pos++
	if v.pos >= len(v.steps) {
		return inactiveStep
	}
	return v.steps[v.pos]
}

func (v *Valuator) walk(n *Node, index int) {
	if n.IsToken() {
		v.steps = append(v.steps, &Step{
			Type:       StepToken,
			Symbol:     n.Symbol,
			TokenValue: n.TokenValue,
			Result:     index,
		})
		return
	}

	for i, child := range n.Children {
		v.walk(child, index+i)
	}
	if _, ok := v.valued[n.Rule.ID]; !ok {
		return
	}
	v.steps = append(v.steps, &Step{
		Type:   StepRule,
		Rule:   n.Rule.ID,
		Arg0:   index,
		ArgN:   index + len(n.Children) - 1,
		Result: index,
	})
}
