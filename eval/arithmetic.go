package eval

import (
	"io"

	"github.com/nihei9/ambival/forest"
	"github.com/nihei9/ambival/grammar"
	"github.com/nihei9/ambival/lexer"
	"github.com/pkg/errors"
)

// Arithmetic is the ambiguous grammar
//
//	S ::= E
//	E ::= E op E
//	E ::= number
//
// It has no precedence and no associativity, so an input with n operators has as many parse trees as the n-th
// Catalan number.
type Arithmetic struct {
	Grammar *grammar.Grammar
	Rules   Rules

	Number   grammar.SymbolID
	Operator grammar.SymbolID
}

func NewArithmetic() (*Arithmetic, error) {
	g := grammar.NewGrammar()
	var s, e, op, number grammar.SymbolID
	for _, sym := range []struct {
		id   *grammar.SymbolID
		name string
	}{
		{id: &s, name: "S"},
		{id: &e, name: "E"},
		{id: &op, name: "op"},
		{id: &number, name: "number"},
	} {
		id, err := g.NewSymbol(sym.name)
		if err != nil {
			return nil, err
		}
		*sym.id = id
	}

	start, err := g.NewRule(s, []grammar.SymbolID{e})
	if err != nil {
		return nil, err
	}
	operator, err := g.NewRule(e, []grammar.SymbolID{e, op, e})
	if err != nil {
		return nil, err
	}
	literal, err := g.NewRule(e, []grammar.SymbolID{number})
	if err != nil {
		return nil, err
	}

	err = g.SetStartSymbol(s)
	if err != nil {
		return nil, err
	}
	err = g.Precompute()
	if err != nil {
		return nil, err
	}

	return &Arithmetic{
		Grammar: g,
		Rules: Rules{
			Start:    start,
			Literal:  literal,
			Operator: operator,
		},
		Number:   number,
		Operator: op,
	}, nil
}

// Feed starts the input of `rec` and feeds one alternative per token, each one earleme long. It returns the
// token value table: the value index of the i-th alternative is i.
func (a *Arithmetic) Feed(rec *forest.Recognizer, toks []*lexer.Token) ([]string, error) {
	err := rec.StartInput()
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(toks))
	for i, tok := range toks {
		var sym grammar.SymbolID
		switch tok.Kind {
		case lexer.KindNumber:
			sym = a.Number
		case lexer.KindOperator:
			sym = a.Operator
		default:
			return nil, errors.Errorf("unknown token kind: %v", tok.Kind)
		}

		err := rec.Alternative(sym, i, 1)
		if err != nil {
			return nil, errors.Wrapf(err, "token %v", tok)
		}
		values = append(values, tok.Text)

		_, err = rec.EarlemeComplete()
		if err != nil {
			return nil, errors.Wrapf(err, "token %v", tok)
		}
	}
	return values, nil
}

// Parse is the parse of one source text: its trees and the token value table their steps refer to.
type Parse struct {
	Trees  *forest.Tree
	Values []string
}

// Parse tokenizes `src` and prepares the iteration over its parse trees.
func (a *Arithmetic) Parse(src io.Reader, opts ...forest.OrderOption) (*Parse, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	rec, err := forest.NewRecognizer(a.Grammar)
	if err != nil {
		return nil, err
	}
	values, err := a.Feed(rec, toks)
	if err != nil {
		return nil, err
	}
	b, err := forest.NewBocage(rec, rec.LatestEarleySet())
	if err != nil {
		return nil, err
	}
	return &Parse{
		Trees:  forest.NewTree(forest.NewOrder(b, opts...)),
		Values: values,
	}, nil
}
