package lexer

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/ambival/error"
	"github.com/nihei9/ambival/expect"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []*Token
	}{
		{
			caption: "an empty source has no tokens",
			src:     "",
		},
		{
			caption: "white spaces are skipped",
			src:     "2 - 0 * 3 + 1",
			tokens: []*Token{
				{Kind: KindNumber, Text: "2", Row: 1, Col: 1},
				{Kind: KindOperator, Text: "-", Row: 1, Col: 3},
				{Kind: KindNumber, Text: "0", Row: 1, Col: 5},
				{Kind: KindOperator, Text: "*", Row: 1, Col: 7},
				{Kind: KindNumber, Text: "3", Row: 1, Col: 9},
				{Kind: KindOperator, Text: "+", Row: 1, Col: 11},
				{Kind: KindNumber, Text: "1", Row: 1, Col: 13},
			},
		},
		{
			caption: "a number can have multiple digits",
			src:     "12+345",
			tokens: []*Token{
				{Kind: KindNumber, Text: "12", Row: 1, Col: 1},
				{Kind: KindOperator, Text: "+", Row: 1, Col: 3},
				{Kind: KindNumber, Text: "345", Row: 1, Col: 4},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := Tokenize(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if len(toks) != len(tt.tokens) {
				t.Fatalf("unexpected token count; want: %v, got: %v", len(tt.tokens), len(toks))
			}
			for i, tok := range toks {
				if *tok != *tt.tokens[i] {
					t.Fatalf("unexpected token; want: %v, got: %v", tt.tokens[i], tok)
				}
			}
		})
	}
}

func TestTokenize_InvalidToken(t *testing.T) {
	_, err := Tokenize(strings.NewReader("1 / 2"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unexpected error; want: %v, got: %v", ErrInvalidToken, err)
	}
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("an invalid token must be reported as %T", specErr)
	}
	if specErr.Detail != "/" || specErr.Row != 1 || specErr.Col != 3 {
		t.Fatalf("unexpected error position; want: \"/\" at 1:3, got: %#v at %v:%v", specErr.Detail, specErr.Row, specErr.Col)
	}
}

func TestTokenize_DefaultSource(t *testing.T) {
	toks, err := Tokenize(strings.NewReader(expect.DefaultSource))
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Text)
	}
	if b.String() != "2-0*3+1" {
		t.Fatalf("unexpected tokens; want: %v, got: %v", "2-0*3+1", b.String())
	}
	if toks[0].Kind != KindNumber || toks[1].Kind != KindOperator {
		t.Fatalf("unexpected kinds; want: %v %v, got: %v %v", KindNumber, KindOperator, toks[0].Kind, toks[1].Kind)
	}
}
