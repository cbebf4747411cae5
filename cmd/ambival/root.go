package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	traceLevel *string
}{}

var rootCmd = &cobra.Command{
	Use:   "ambival",
	Short: "Evaluate every parse of an ambiguous arithmetic expression",
	Long: `ambival parses an arithmetic expression with a grammar that has neither
precedence nor associativity, so an expression can have several parse trees.
- eval evaluates every parse tree and checks the results against expectations.
- show prints the grammar and every parse tree.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUpTracing,
}

func init() {
	rootFlags.traceLevel = rootCmd.PersistentFlags().String("trace-level", "error", "trace level (error, info, debug); traces go to stderr")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func setUpTracing(cmd *cobra.Command, args []string) error {
	level := strings.ToLower(*rootFlags.traceLevel)
	switch level {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("Unknown trace level: %v", *rootFlags.traceLevel)
	}

	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("ambival").SetTraceLevel(tracing.TraceLevelFromString(level))

	return nil
}
