// Package forest is the parsing collaborator the evaluator talks to.
//
// It follows a fixed call protocol: a Recognizer accepts one or more alternatives per earleme, a Bocage
// packs every derivation of the start symbol over the input, an Order ranks the alternatives, a Tree
// iterates over the distinct parse trees, and a Valuator turns one tree into a sequence of evaluation steps.
//
//	rec, _ := forest.NewRecognizer(g)
//	rec.StartInput()
//	rec.Alternative(number, 0, 1)
//	rec.EarlemeComplete()
//	b, _ := forest.NewBocage(rec, rec.LatestEarleySet())
//	t := forest.NewTree(forest.NewOrder(b))
//	for t.Next() {
//		v, _ := forest.NewValuator(t)
//		for step := v.Step(); step.Type != forest.StepInactive; step = v.Step() {
//			...
//		}
//	}
package forest

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("ambival.forest")
}

type ProtocolError struct {
	message string
}

func newProtocolError(message string) *ProtocolError {
	return &ProtocolError{
		message: message,
	}
}

func (e *ProtocolError) Error() string {
	return e.message
}

var (
	ErrNotPrecomputed   = newProtocolError("a grammar must be precomputed before recognition")
	ErrNotStarted       = newProtocolError("the input has not been started")
	ErrAlreadyStarted   = newProtocolError("the input has already been started")
	ErrNotTerminal      = newProtocolError("an alternative must be a terminal symbol")
	ErrInvalidLength    = newProtocolError("an alternative must be at least one earleme long")
	ErrParseExhausted   = newProtocolError("no alternative reaches beyond the current earleme")
	ErrInvalidEarleySet = newProtocolError("unknown earley set")
	ErrNoParse          = newProtocolError("the input has no parse")
	ErrNoTree           = newProtocolError("the tree iterator has no current tree")
	ErrValuatorStarted  = newProtocolError("a valuator cannot be configured after stepping")
	ErrUnknownRule      = newProtocolError("unknown rule")
)
