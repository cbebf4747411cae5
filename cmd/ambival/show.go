package main

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/nihei9/ambival/eval"
	"github.com/nihei9/ambival/forest"
	"github.com/nihei9/ambival/grammar"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	source       *string
	highRankOnly *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "show [expression]",
		Short: "Print the grammar and every parse tree of an expression",
		Example: `  ambival show '1 + 2 * 3'
  echo '1 + 2 * 3' | ambival show -s -`,
		RunE: runShow,
	}
	showFlags.source = cmd.Flags().StringP("source", "s", "", "source file path; - means stdin (default \"2 - 0 * 3 + 1\")")
	showFlags.highRankOnly = cmd.Flags().Bool("high-rank-only", false, "show only the trees made of highest-ranked rules")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	src, err := readSource(args, *showFlags.source)
	if err != nil {
		return err
	}

	a, err := eval.NewArithmetic()
	if err != nil {
		return err
	}
	var opts []forest.OrderOption
	if *showFlags.highRankOnly {
		opts = append(opts, forest.HighRankOnly())
	}
	p, err := a.Parse(strings.NewReader(src), opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	err = writeGrammar(w, a.Grammar)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n# Trees\n")
	for p.Trees.Next() {
		fmt.Fprintf(w, "\n## Tree %v\n\n", p.Trees.ParseCount())
		forest.PrintTree(w, a.Grammar, p.Trees.Node(), p.Values)
	}

	return nil
}

const grammarTemplate = `# Grammar

start symbol: {{ symbolName .StartSymbol }}

{{ range .Rules -}}
{{ printRule . }}
{{ end -}}
`

func writeGrammar(w io.Writer, g *grammar.Grammar) error {
	fns := template.FuncMap{
		"symbolName": func(sym grammar.SymbolID) string {
			return g.SymbolName(sym)
		},
		"printRule": func(r *grammar.Rule) string {
			if r.Rank != 0 {
				return fmt.Sprintf("%4v %v (rank %v)", r.ID, g.RuleString(r), r.Rank)
			}
			return fmt.Sprintf("%4v %v", r.ID, g.RuleString(r))
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(grammarTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, g)
}
