// Package expect reads the expected results of an evaluation and classifies the result of each parse tree
// against them.
//
// An expectation file lists one rendered result per line followed by `=>` and its value. Blank lines and lines
// starting with `#` are ignored.
//
//	# 2 - 0 * 3 + 1
//	(2-(0*(3+1))) == 2 => 2
//	(((2-0)*3)+1) == 7 => 7
package expect

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	verr "github.com/nihei9/ambival/error"
)

type FormatError struct {
	message string
}

func newFormatError(message string) *FormatError {
	return &FormatError{
		message: message,
	}
}

func (e *FormatError) Error() string {
	return e.message
}

var (
	ErrNoSeparator    = newFormatError("an expectation needs '=>' between a result and its value")
	ErrEmptyResult    = newFormatError("an expectation needs a result text")
	ErrInvalidValue   = newFormatError("an expected value must be an integer")
	ErrDuplicateEntry = newFormatError("duplicate expectation")
)

const separator = "=>"

type Expectation struct {
	Text  string
	Value int
}

// DefaultSource is the expression the default expectations belong to.
const DefaultSource = "2 - 0 * 3 + 1"

// Default returns the expectations for DefaultSource.
func Default() []*Expectation {
	return []*Expectation{
		{Text: "(2-(0*(3+1))) == 2", Value: 2},
		{Text: "(((2-0)*3)+1) == 7", Value: 7},
		{Text: "((2-(0*3))+1) == 3", Value: 3},
		{Text: "((2-0)*(3+1)) == 8", Value: 8},
		{Text: "(2-((0*3)+1)) == 1", Value: 1},
	}
}

func ReadFile(path string) ([]*Expectation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads expectations from `src`. `filePath` is used only to show the offending line in errors and may be
// empty.
func Parse(src io.Reader, filePath string) ([]*Expectation, error) {
	var exps []*Expectation
	var errs verr.SpecErrors
	seen := map[string]struct{}{}
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		exp, cause, detail := parseLine(line)
		if cause == nil {
			if _, ok := seen[exp.Text]; ok {
				cause = ErrDuplicateEntry
				detail = exp.Text
			}
		}
		if cause != nil {
			errs = append(errs, &verr.SpecError{
				Cause:    cause,
				Detail:   detail,
				FilePath: filePath,
				Row:      row,
			})
			continue
		}
		seen[exp.Text] = struct{}{}
		exps = append(exps, exp)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return exps, nil
}

func parseLine(line string) (*Expectation, error, string) {
	i := strings.LastIndex(line, separator)
	if i < 0 {
		return nil, ErrNoSeparator, ""
	}
	text := strings.TrimSpace(line[:i])
	if text == "" {
		return nil, ErrEmptyResult, ""
	}
	v := strings.TrimSpace(line[i+len(separator):])
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, ErrInvalidValue, v
	}
	return &Expectation{
		Text:  text,
		Value: n,
	}, nil, ""
}
