package expect

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	verr "github.com/nihei9/ambival/error"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		exps    []*Expectation
		causes  []error
		rows    []int
	}{
		{
			caption: "results can contain spaces and '=='",
			src: `
# comment
(2-(0*(3+1))) == 2 => 2

  (((2-0)*3)+1) == 7=>7
`,
			exps: []*Expectation{
				{Text: "(2-(0*(3+1))) == 2", Value: 2},
				{Text: "(((2-0)*3)+1) == 7", Value: 7},
			},
		},
		{
			caption: "a negative value is allowed",
			src:     "(0-1) == -1 => -1",
			exps: []*Expectation{
				{Text: "(0-1) == -1", Value: -1},
			},
		},
		{
			caption: "every broken line is reported",
			src: `1 == 1 => 1
1 == 1
=> 1
2 == 2 => two
1 == 1 => 1
`,
			causes: []error{ErrNoSeparator, ErrEmptyResult, ErrInvalidValue, ErrDuplicateEntry},
			rows:   []int{2, 3, 4, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			exps, err := Parse(strings.NewReader(tt.src), "")
			if len(tt.causes) > 0 {
				var specErrs verr.SpecErrors
				if !errors.As(err, &specErrs) {
					t.Fatalf("unexpected error; want: %T, got: %v", specErrs, err)
				}
				if len(specErrs) != len(tt.causes) {
					t.Fatalf("unexpected error count; want: %v, got: %v\n%v", len(tt.causes), len(specErrs), err)
				}
				for i, e := range specErrs {
					if e.Cause != tt.causes[i] || e.Row != tt.rows[i] {
						t.Fatalf("unexpected error; want: %v at row %v, got: %v at row %v", tt.causes[i], tt.rows[i], e.Cause, e.Row)
					}
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(exps, tt.exps) {
				t.Fatalf("unexpected expectations; want: %+v, got: %+v", tt.exps, exps)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expect.txt")
	err := os.WriteFile(path, []byte("(1+2) == 3 => 3\n(1+2) == 3\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(path)
	if err == nil {
		t.Fatal("an error must occur")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2: error: "+ErrNoSeparator.Error()) || !strings.HasSuffix(msg, "\n    (1+2) == 3") {
		t.Fatalf("an error message must show the offending line; got: %v", msg)
	}
}

func TestChecker(t *testing.T) {
	c := NewChecker(Default())
	tests := []struct {
		text   string
		value  int
		status Status
	}{
		{text: "(2-(0*(3+1))) == 2", value: 2, status: StatusExpected},
		{text: "(((2-0)*3)+1) == 7", value: 6, status: StatusUnexpectedValue},
		{text: "(2-0*3+1) == 0", value: 0, status: StatusTotallyUnexpected},
	}
	for i, tt := range tests {
		r := c.Check(i+1, tt.text, tt.value)
		if r.Status != tt.status {
			t.Fatalf("unexpected status for %v; want: %v, got: %v", tt.text, tt.status, r.Status)
		}
	}
	missing := c.Missing()
	if len(missing) != 3 || missing[0].Text != "((2-(0*3))+1) == 3" {
		t.Fatalf("unexpected missing expectations; got: %+v", missing)
	}

	unchecked := NewChecker(nil).Check(1, "(1+2) == 3", 3)
	if unchecked.Status != StatusUnchecked || unchecked.Status.Failed() {
		t.Fatalf("a checker without expectations must not fail any result; got: %v", unchecked.Status)
	}
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		result *Result
		str    string
	}{
		{
			result: &Result{Tree: 1, Text: "(1+2) == 3", Value: 3, ExpectedValue: 3, Status: StatusExpected},
			str:    "Expected #1: (1+2) == 3",
		},
		{
			result: &Result{Tree: 2, Text: "(1+2) == 3", Value: 3, ExpectedValue: 4, Status: StatusUnexpectedValue},
			str:    "Unexpected #2: (1+2) == 3, value 3 instead of 4",
		},
		{
			result: &Result{Tree: 3, Text: "(1+2) == 3", Value: 3, Status: StatusTotallyUnexpected},
			str:    "Totally unexpected #3: (1+2) == 3, value 3",
		},
		{
			result: &Result{Tree: 4, Status: StatusNoResult, Error: errors.New("foo\nbar")},
			str:    "No result #4:\n    foo\n    bar",
		},
	}
	for _, tt := range tests {
		if s := tt.result.String(); s != tt.str {
			t.Fatalf("unexpected string; want: %#v, got: %#v", tt.str, s)
		}
	}
}
