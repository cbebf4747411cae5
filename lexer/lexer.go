// Package lexer splits arithmetic source text into numbers and operators.
package lexer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/ambival/error"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("ambival.lexer")
}

type Kind string

const (
	KindNumber   Kind = "number"
	KindOperator Kind = "op"

	kindWhiteSpace = "white_space"
)

type LexicalError struct {
	message string
}

func newLexicalError(message string) *LexicalError {
	return &LexicalError{
		message: message,
	}
}

func (e *LexicalError) Error() string {
	return e.message
}

var (
	ErrInvalidToken = newLexicalError("invalid token")
)

type Token struct {
	Kind Kind
	Text string

	// Row and Col are 1-based.
	Row int
	Col int

	EOF bool
}

func (t *Token) String() string {
	if t.EOF {
		return "<eof>"
	}
	return fmt.Sprintf("%v %#v (%v:%v)", t.Kind, t.Text, t.Row, t.Col)
}

var lexSpec = &mlspec.LexSpec{
	Name: "arithmetic",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName(KindNumber),
			Pattern: mlspec.LexPattern(`[0-9]+`),
		},
		{
			Kind:    mlspec.LexKindName(KindOperator),
			Pattern: mlspec.LexPattern(`\+|-|\*`),
		},
		{
			Kind:    mlspec.LexKindName(kindWhiteSpace),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{0020}\u{000A}\u{000D}]+`),
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *mlspec.CompiledLexSpec
	compileErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		s, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileErr = fmt.Errorf("%s", b.String())
				return
			}
			compileErr = err
			return
		}
		compiled = s

		tracer().Debugf("lexical spec: %v kinds", len(s.KindNames))
	})
	return compiled, compileErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type Lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func NewLexer(src io.Reader) (*Lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		s: s,
		d: d,
	}, nil
}

// Next returns the next number or operator, skipping white spaces. At the end of the input it returns a token
// whose EOF is true.
func (l *Lexer) Next() (*Token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return &Token{
				EOF: true,
			}, nil
		}
		if tok.Invalid {
			return nil, &verr.SpecError{
				Cause:  ErrInvalidToken,
				Detail: string(tok.Lexeme),
				Row:    tok.Row + 1,
				Col:    tok.Col + 1,
			}
		}

		kind := l.s.KindNames[tok.KindID].String()
		if kind == kindWhiteSpace {
			continue
		}

		t := &Token{
			Kind: Kind(kind),
			Text: string(tok.Lexeme),
			Row:  tok.Row + 1,
			Col:  tok.Col + 1,
		}

		tracer().Debugf("token: %v", t)

		return t, nil
	}
}

// Tokenize reads every token of `src`. The EOF token is not included.
func Tokenize(src io.Reader) ([]*Token, error) {
	l, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
