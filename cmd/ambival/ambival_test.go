package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/ambival/eval"
)

func TestIsDefaultSource(t *testing.T) {
	tests := []struct {
		src string
		ok  bool
	}{
		{src: "2 - 0 * 3 + 1", ok: true},
		{src: "2-0*3+1\n", ok: true},
		{src: "2 - 0 * 3", ok: false},
	}
	for _, tt := range tests {
		if ok := isDefaultSource(tt.src); ok != tt.ok {
			t.Fatalf("unexpected result for %#v; want: %v, got: %v", tt.src, tt.ok, ok)
		}
	}
}

func TestWriteGrammar(t *testing.T) {
	a, err := eval.NewArithmetic()
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	err = writeGrammar(&b, a.Grammar)
	if err != nil {
		t.Fatal(err)
	}
	expected := `# Grammar

start symbol: S

   0 S ::= E
   1 E ::= E op E
   2 E ::= number
`
	if b.String() != expected {
		t.Fatalf("unexpected output;\nwant:\n%v\ngot:\n%v", expected, b.String())
	}
}

func TestEvalCommand(t *testing.T) {
	expectPath := filepath.Join(t.TempDir(), "expect.txt")
	err := os.WriteFile(expectPath, []byte("(1+2) == 3 => 4\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		args    []string
		output  string
		failed  bool
	}{
		{
			caption: "the default expression meets the built-in expectations",
			args:    []string{"eval", "--source", "", "--expect", ""},
			output: `Expected #1: (2-(0*(3+1))) == 2
Expected #2: (2-((0*3)+1)) == 1
Expected #3: ((2-0)*(3+1)) == 8
Expected #4: ((2-(0*3))+1) == 3
Expected #5: (((2-0)*3)+1) == 7
`,
		},
		{
			caption: "another expression is unchecked",
			args:    []string{"eval", "--source", "", "--expect", "", "1 + 2"},
			output: `Result #1: (1+2) == 3
`,
		},
		{
			caption: "a mismatch with an expectation file fails",
			args:    []string{"eval", "--source", "", "--expect", expectPath, "1 + 2"},
			output: `Unexpected #1: (1+2) == 3, value 3 instead of 4
`,
			failed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			var out strings.Builder
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			defer rootCmd.SetOut(nil)

			err := rootCmd.Execute()
			if tt.failed && err == nil {
				t.Fatal("an error must occur")
			}
			if !tt.failed && err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.output {
				t.Fatalf("unexpected output;\nwant:\n%v\ngot:\n%v", tt.output, out.String())
			}
		})
	}
}

func TestShowCommand(t *testing.T) {
	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"show", "--source", "", "1 + 2"})
	defer rootCmd.SetOut(nil)

	err := rootCmd.Execute()
	if err != nil {
		t.Fatal(err)
	}
	expected := `# Grammar

start symbol: S

   0 S ::= E
   1 E ::= E op E
   2 E ::= number

# Trees

## Tree 1

S ::= E
└─ E ::= E op E
   ├─ E ::= number
   │  └─ number "1"
   ├─ op "+"
   └─ E ::= number
      └─ number "2"
`
	if out.String() != expected {
		t.Fatalf("unexpected output;\nwant:\n%v\ngot:\n%v", expected, out.String())
	}
}
