package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrNoRule          = newSemanticError("a grammar needs at least one rule")
	ErrNoStartSymbol   = newSemanticError("a grammar needs a start symbol")
	ErrStartNotLHS     = newSemanticError("a start symbol must be the LHS of a rule")
	ErrUnproductiveSym = newSemanticError("unproductive symbol")
	ErrUnreachableSym  = newSemanticError("unreachable symbol")
	ErrCyclicSym       = newSemanticError("cyclic non-terminal")
	ErrDuplicateSymbol = newSemanticError("duplicate symbol")
	ErrDuplicateRule   = newSemanticError("duplicate rule")
	ErrUndefinedSym    = newSemanticError("undefined symbol")
	ErrPrecomputed     = newSemanticError("a precomputed grammar cannot be modified")
	ErrNotPrecomputed  = newSemanticError("a grammar must be precomputed")
)
