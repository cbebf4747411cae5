// Package eval folds the parse trees of an ambiguous arithmetic grammar into rendered expressions and their
// values. Each tree is evaluated on its own stack, driven by the steps of a forest.Valuator.
package eval

import (
	"strconv"
	"strings"

	"github.com/nihei9/ambival/forest"
	"github.com/nihei9/ambival/grammar"
	"github.com/nihei9/ambival/stack"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

func tracer() tracing.Trace {
	return tracing.Select("ambival.eval")
}

type EvalError struct {
	message string
}

func newEvalError(message string) *EvalError {
	return &EvalError{
		message: message,
	}
}

func (e *EvalError) Error() string {
	return e.message
}

var (
	ErrUnknownRule     = newEvalError("unknown rule")
	ErrUnknownOperator = newEvalError("unknown operator")
	ErrUnknownToken    = newEvalError("unknown token value")
	ErrUnknownStep     = newEvalError("unknown step type")
	ErrMissingArgument = newEvalError("a rule argument has no value")
	ErrInvalidNumber   = newEvalError("invalid number")
	ErrNoResult        = newEvalError("a tree produced no result")
)

// Value is what a stack slot holds: the rendered text of a subexpression and its value.
type Value struct {
	Text   string
	Number int
}

type valueLifecycle struct{}

func (valueLifecycle) Copy(dst *Value, src *Value) error {
	dst.Text = strings.Clone(src.Text)

	tracer().Debugf("copy: %#v", dst.Text)

	return nil
}

func (valueLifecycle) Free(item *Value) {
	tracer().Debugf("free: %#v", item.Text)

	item.Text = ""
}

func (valueLifecycle) Failure(err error) {
	tracer().Errorf("stack: %v", err)
}

// Rules tells the evaluator which rule of the grammar plays which role.
type Rules struct {
	// Start is `S ::= E`.
	Start grammar.RuleID

	// Literal is `E ::= number`.
	Literal grammar.RuleID

	// Operator is `E ::= E op E`.
	Operator grammar.RuleID
}

func (r Rules) IDs() []grammar.RuleID {
	return []grammar.RuleID{r.Start, r.Literal, r.Operator}
}

// StepSource is what drives an evaluation. *forest.Valuator implements it.
type StepSource interface {
	Step() *forest.Step
}

type Option func(e *Evaluator)

// StackCapacity sets the initial capacity of the stack of each evaluation.
func StackCapacity(n int) Option {
	return func(e *Evaluator) {
		e.capacity = n
	}
}

// StackLimit bounds the capacity of the stack of each evaluation. Zero means no bound.
func StackLimit(n int) Option {
	return func(e *Evaluator) {
		e.limit = n
	}
}

type Evaluator struct {
	rules    Rules
	values   []string
	capacity int
	limit    int
}

// NewEvaluator returns an evaluator. `values` is the token value table: a token step with value index i reads
// its text from values[i].
func NewEvaluator(rules Rules, values []string, opts ...Option) *Evaluator {
	e := &Evaluator{
		rules:    rules,
		values:   values,
		capacity: stack.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate consumes the steps of `src` until an inactive step and returns the value left at index 0.
func (e *Evaluator) Evaluate(src StepSource) (*Value, error) {
	var opts []stack.Option
	if e.limit > 0 {
		opts = append(opts, stack.Limit(e.limit))
	}
	s, err := stack.New[Value](e.capacity, valueLifecycle{}, opts...)
	if err != nil {
		return nil, err
	}
	defer s.Delete()

	for {
		step := src.Step()
		switch step.Type {
		case forest.StepInactive:
			return e.result(s)
		case forest.StepToken:
			err = e.token(s, step)
		case forest.StepRule:
			err = e.rule(s, step)
		default:
			err = errors.Wrapf(ErrUnknownStep, "%v", step.Type)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (e *Evaluator) token(s *stack.Stack[Value], step *forest.Step) error {
	if step.TokenValue < 0 || step.TokenValue >= len(e.values) {
		return errors.Wrapf(ErrUnknownToken, "value index %v", step.TokenValue)
	}
	text := e.values[step.TokenValue]
	n, err := strconv.Atoi(text)
	if err != nil {
		return errors.Wrapf(ErrInvalidNumber, "token %#v: %v", text, err)
	}
	_, err = s.Set(step.Result, &Value{
		Text:   text,
		Number: n,
	})
	return err
}

func (e *Evaluator) rule(s *stack.Stack[Value], step *forest.Step) error {
	var v *Value
	switch step.Rule {
	case e.rules.Start:
		child, err := arg(s, step.ArgN)
		if err != nil {
			return err
		}
		v = &Value{
			Text:   child.Text + " == " + strconv.Itoa(child.Number),
			Number: child.Number,
		}
	case e.rules.Literal:
		child, err := arg(s, step.Arg0)
		if err != nil {
			return err
		}
		v = &Value{
			Text:   strconv.Itoa(child.Number),
			Number: child.Number,
		}
	case e.rules.Operator:
		l, err := arg(s, step.Arg0)
		if err != nil {
			return err
		}
		op, err := arg(s, step.Arg0+1)
		if err != nil {
			return err
		}
		r, err := arg(s, step.ArgN)
		if err != nil {
			return err
		}
		n, err := apply(op.Text, l.Number, r.Number)
		if err != nil {
			return err
		}
		v = &Value{
			Text:   "(" + l.Text + op.Text + r.Text + ")",
			Number: n,
		}
	default:
		return errors.Wrapf(ErrUnknownRule, "rule %v", step.Rule)
	}

	_, err := s.Set(step.Arg0, v)
	return err
}

func arg(s *stack.Stack[Value], index int) (*Value, error) {
	v, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(ErrMissingArgument, "index %v", index)
	}
	return v, nil
}

func apply(op string, l, r int) (int, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	}
	return 0, errors.Wrapf(ErrUnknownOperator, "%#v", op)
}

// result reads the value at index 0. An empty slot there, or a value with an empty text, is ErrNoResult; every
// rule of the arithmetic grammar renders a non-empty text.
func (e *Evaluator) result(s *stack.Stack[Value]) (*Value, error) {
	if s.IsEmpty() {
		return nil, ErrNoResult
	}
	v, err := s.Get(0)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Text == "" {
		return nil, ErrNoResult
	}
	res := *v
	return &res, nil
}
