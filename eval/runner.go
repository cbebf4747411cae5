package eval

import (
	"errors"
	"io"

	"github.com/nihei9/ambival/expect"
	"github.com/nihei9/ambival/forest"
	pkgerrors "github.com/pkg/errors"
)

type Report struct {
	Results []*expect.Result

	// Missing holds the expectations no tree produced.
	Missing []*expect.Expectation
}

// Failed reports whether a result mismatches its expectation or an expectation is left unmatched.
func (r *Report) Failed() bool {
	if len(r.Missing) > 0 {
		return true
	}
	for _, res := range r.Results {
		if res.Status.Failed() {
			return true
		}
	}
	return false
}

// Runner evaluates every parse tree of a source text and checks the results against Expectations. With no
// expectations every result is unchecked.
type Runner struct {
	Arithmetic       *Arithmetic
	Expectations     []*expect.Expectation
	EvaluatorOptions []Option
	OrderOptions     []forest.OrderOption
}

// Run stops at the first error except ErrNoResult, which is recorded in the report and skips only the tree
// that caused it.
func (r *Runner) Run(src io.Reader) (*Report, error) {
	p, err := r.Arithmetic.Parse(src, r.OrderOptions...)
	if err != nil {
		return nil, err
	}

	e := NewEvaluator(r.Arithmetic.Rules, p.Values, r.EvaluatorOptions...)
	c := expect.NewChecker(r.Expectations)
	report := &Report{}
	for p.Trees.Next() {
		n := p.Trees.ParseCount()
		v, err := r.evaluate(e, p.Trees)
		if err != nil {
			if !errors.Is(err, ErrNoResult) {
				return nil, pkgerrors.Wrapf(err, "tree #%v", n)
			}

			tracer().Infof("tree #%v: %v", n, err)

			report.Results = append(report.Results, &expect.Result{
				Tree:   n,
				Status: expect.StatusNoResult,
				Error:  err,
			})
			continue
		}

		res := c.Check(n, v.Text, v.Number)

		tracer().Debugf("tree #%v: %v", n, res)

		report.Results = append(report.Results, res)
	}
	report.Missing = c.Missing()

	return report, nil
}

func (r *Runner) evaluate(e *Evaluator, t *forest.Tree) (*Value, error) {
	v, err := forest.NewValuator(t)
	if err != nil {
		return nil, err
	}
	for _, rule := range r.Arithmetic.Rules.IDs() {
		err := v.RuleIsValuedSet(rule, true)
		if err != nil {
			return nil, err
		}
	}
	return e.Evaluate(v)
}
