package expect

import (
	"fmt"
	"strings"
)

type Status int

const (
	StatusExpected Status = iota
	StatusUnexpectedValue
	StatusTotallyUnexpected
	StatusUnchecked
	StatusNoResult
)

func (s Status) String() string {
	switch s {
	case StatusExpected:
		return "expected"
	case StatusUnexpectedValue:
		return "unexpected value"
	case StatusTotallyUnexpected:
		return "totally unexpected"
	case StatusUnchecked:
		return "unchecked"
	case StatusNoResult:
		return "no result"
	}
	return fmt.Sprintf("<unknown status %v>", int(s))
}

// Failed reports whether the status makes an evaluation run fail.
func (s Status) Failed() bool {
	return s == StatusUnexpectedValue || s == StatusTotallyUnexpected
}

// Result is the outcome of one parse tree. Tree is the 1-based position of the tree in the order the trees
// were produced.
type Result struct {
	Tree          int
	Text          string
	Value         int
	ExpectedValue int
	Status        Status
	Error         error
}

func (r *Result) String() string {
	switch r.Status {
	case StatusExpected:
		return fmt.Sprintf("Expected #%v: %v", r.Tree, r.Text)
	case StatusUnexpectedValue:
		return fmt.Sprintf("Unexpected #%v: %v, value %v instead of %v", r.Tree, r.Text, r.Value, r.ExpectedValue)
	case StatusTotallyUnexpected:
		return fmt.Sprintf("Totally unexpected #%v: %v, value %v", r.Tree, r.Text, r.Value)
	case StatusNoResult:
		const indent = "    "
		msg := fmt.Sprintf("No result #%v", r.Tree)
		if r.Error == nil {
			return msg
		}
		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("%v:\n%v%v", msg, indent, strings.Join(msgLines, "\n"+indent))
	}
	return fmt.Sprintf("Result #%v: %v", r.Tree, r.Text)
}

// Checker classifies results against a set of expectations. A checker without expectations marks every result
// as unchecked.
type Checker struct {
	exps    []*Expectation
	text2Ex map[string]*Expectation
	matched map[string]struct{}
}

func NewChecker(exps []*Expectation) *Checker {
	text2Ex := map[string]*Expectation{}
	for _, e := range exps {
		text2Ex[e.Text] = e
	}
	return &Checker{
		exps:    exps,
		text2Ex: text2Ex,
		matched: map[string]struct{}{},
	}
}

func (c *Checker) Check(tree int, text string, value int) *Result {
	r := &Result{
		Tree:  tree,
		Text:  text,
		Value: value,
	}
	if len(c.exps) == 0 {
		r.Status = StatusUnchecked
		return r
	}
	e, ok := c.text2Ex[text]
	if !ok {
		r.Status = StatusTotallyUnexpected
		return r
	}
	c.matched[text] = struct{}{}
	r.ExpectedValue = e.Value
	if e.Value != value {
		r.Status = StatusUnexpectedValue
		return r
	}
	r.Status = StatusExpected
	return r
}

// Missing returns the expectations no checked result has matched, in the order they were given.
func (c *Checker) Missing() []*Expectation {
	var missing []*Expectation
	for _, e := range c.exps {
		if _, ok := c.matched[e.Text]; ok {
			continue
		}
		missing = append(missing, e)
	}
	return missing
}
