package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/ambival/expect"
)

// readSource returns the expression given as an argument, or else the content of `path` ("-" means stdin), or
// else the default expression.
func readSource(args []string, path string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	switch path {
	case "":
		return expect.DefaultSource, nil
	case "-":
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(src), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("Cannot open the source file %s: %w", path, err)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(src), nil
}

// isDefaultSource reports whether `src` is the default expression, white spaces aside.
func isDefaultSource(src string) bool {
	return strings.Join(strings.Fields(src), "") == strings.Join(strings.Fields(expect.DefaultSource), "")
}
