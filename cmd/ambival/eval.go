package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/nihei9/ambival/eval"
	"github.com/nihei9/ambival/expect"
	"github.com/nihei9/ambival/forest"
	"github.com/spf13/cobra"
)

var evalFlags = struct {
	source       *string
	expect       *string
	stackSize    *int
	stackLimit   *int
	highRankOnly *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate every parse tree of an expression",
		Example: `  ambival eval
  ambival eval '1 + 2 * 3'
  ambival eval -s src.txt -e expect.txt`,
		RunE: runEval,
	}
	evalFlags.source = cmd.Flags().StringP("source", "s", "", "source file path; - means stdin (default \""+expect.DefaultSource+"\")")
	evalFlags.expect = cmd.Flags().StringP("expect", "e", "", "expectation file path (default: built-in expectations for the default expression)")
	evalFlags.stackSize = cmd.Flags().Int("stack-size", 0, "initial capacity of the evaluation stack (default 4)")
	evalFlags.stackLimit = cmd.Flags().Int("stack-limit", 0, "maximum capacity of the evaluation stack; 0 means unlimited")
	evalFlags.highRankOnly = cmd.Flags().Bool("high-rank-only", false, "evaluate only the trees made of highest-ranked rules")
	rootCmd.AddCommand(cmd)
}

func runEval(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("an unexpected error occurred: %v", v)
			}
			fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
			retErr = err
		}
	}()

	src, err := readSource(args, *evalFlags.source)
	if err != nil {
		return err
	}

	var exps []*expect.Expectation
	switch {
	case *evalFlags.expect != "":
		exps, err = expect.ReadFile(*evalFlags.expect)
		if err != nil {
			return err
		}
	case isDefaultSource(src):
		exps = expect.Default()
	}

	a, err := eval.NewArithmetic()
	if err != nil {
		return err
	}
	r := &eval.Runner{
		Arithmetic:   a,
		Expectations: exps,
		EvaluatorOptions: []eval.Option{
			eval.StackCapacity(*evalFlags.stackSize),
			eval.StackLimit(*evalFlags.stackLimit),
		},
	}
	if *evalFlags.highRankOnly {
		r.OrderOptions = append(r.OrderOptions, forest.HighRankOnly())
	}

	report, err := r.Run(strings.NewReader(src))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, res := range report.Results {
		fmt.Fprintln(w, res)
	}
	for _, e := range report.Missing {
		fmt.Fprintf(w, "Missing: %v, value %v\n", e.Text, e.Value)
	}
	if report.Failed() {
		return fmt.Errorf("%v results did not meet the expectations", countFailures(report))
	}

	return nil
}

func countFailures(report *eval.Report) int {
	n := len(report.Missing)
	for _, res := range report.Results {
		if res.Status.Failed() {
			n++
		}
	}
	return n
}
