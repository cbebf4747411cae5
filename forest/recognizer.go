package forest

import (
	"github.com/nihei9/ambival/grammar"
	"github.com/pkg/errors"
)

// token is an alternative accepted by a recognizer. It spans the earlemes [start, end).
type token struct {
	sym   grammar.SymbolID
	value int
	start int
	end   int
}

type Recognizer struct {
	g        *grammar.Grammar
	started  bool
	current  int
	furthest int
	latest   int

	// tokens holds the accepted alternatives indexed by their start earleme.
	tokens map[int][]*token
}

func NewRecognizer(g *grammar.Grammar) (*Recognizer, error) {
	if !g.IsPrecomputed() {
		return nil, ErrNotPrecomputed
	}
	return &Recognizer{
		g:      g,
		tokens: map[int][]*token{},
	}, nil
}

func (r *Recognizer) StartInput() error {
	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true
	return nil
}

// Alternative accepts the terminal `sym` at the current earleme. `value` is an index into the caller's token
// value table and is passed through to the token steps; `length` is the number of earlemes the token spans.
func (r *Recognizer) Alternative(sym grammar.SymbolID, value int, length int) error {
	if !r.started {
		return ErrNotStarted
	}
	if !r.g.IsTerminal(sym) {
		return errors.Wrapf(ErrNotTerminal, "symbol %v", r.g.SymbolName(sym))
	}
	if length < 1 {
		return errors.Wrapf(ErrInvalidLength, "symbol %v, length %v", r.g.SymbolName(sym), length)
	}

	tok := &token{
		sym:   sym,
		value: value,
		start: r.current,
		end:   r.current + length,
	}
	r.tokens[r.current] = append(r.tokens[r.current], tok)
	if tok.end > r.furthest {
		r.furthest = tok.end
	}

	tracer().Debugf("alternative %v (value #%v) at [%v, %v)", r.g.SymbolName(sym), value, tok.start, tok.end)

	return nil
}

// EarlemeComplete closes the current earleme and returns the new current one.
func (r *Recognizer) EarlemeComplete() (int, error) {
	if !r.started {
		return r.current, ErrNotStarted
	}
	if r.current >= r.furthest {
		return r.current, errors.Wrapf(ErrParseExhausted, "earleme %v", r.current)
	}
	r.current++
	r.latest = r.current
	return r.current, nil
}

// LatestEarleySet returns the last completed earleme.
func (r *Recognizer) LatestEarleySet() int {
	return r.latest
}

func (r *Recognizer) Grammar() *grammar.Grammar {
	return r.g
}

func (r *Recognizer) tokensAt(start, end int, sym grammar.SymbolID) []*token {
	var toks []*token
	for _, tok := range r.tokens[start] {
		if tok.sym == sym && tok.end == end {
			toks = append(toks, tok)
		}
	}
	return toks
}
