// SPDX-License-Identifier: MIT

package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/matrix"
)

// Sentinel errors.
var (
	// ErrParse is the package-level parse failure every *ParseError matches.
	ErrParse = fault.Define(fault.ErrInputParse, "input: malformed numeric text")
)

// ParseError describes the first offending token of a parse.
type ParseError struct {
	Line   int    // 1-based line number
	Pos    int    // 1-based token position within the line
	Token  string // offending token, empty for structural problems
	Reason string // human readable explanation
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("input: line %d, value %d: %q: %s", e.Line, e.Pos, e.Token, e.Reason)
	}

	return fmt.Sprintf("input: line %d: %s", e.Line, e.Reason)
}

// Unwrap lets errors.Is match ErrParse (and through it fault.ErrInputParse).
func (e *ParseError) Unwrap() error { return ErrParse }

// isArraySep reports whether r separates array tokens.
func isArraySep(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// parseNumber converts one token, rejecting NaN and infinities.
func parseNumber(tok string, line, pos int) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Line: line, Pos: pos, Token: tok, Reason: "not a finite number"}
	}

	return v, nil
}

// ParseArray parses whitespace/comma delimited numbers. Blank text yields an
// empty, non-nil slice.
func ParseArray(text string) ([]float64, error) {
	out := make([]float64, 0)
	for li, line := range strings.Split(text, "\n") {
		for pi, tok := range strings.FieldsFunc(line, isArraySep) {
			v, err := parseNumber(tok, li+1, pi+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// ParseInts parses whitespace/comma delimited integers.
func ParseInts(text string) ([]int, error) {
	out := make([]int, 0)
	for li, line := range strings.Split(text, "\n") {
		for pi, tok := range strings.FieldsFunc(line, isArraySep) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Line: li + 1, Pos: pi + 1, Token: tok, Reason: "not an integer"}
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// ParseMatrix parses newline separated rows of comma delimited numbers.
// Surrounding whitespace around each value is allowed. Every row must hold
// the same number of values as the first one.
func ParseMatrix(text string) (*matrix.Dense, error) {
	var rows [][]float64
	for li, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		row := make([]float64, 0, len(fields))
		for pi, f := range fields {
			tok := strings.TrimSpace(f)
			if tok == "" {
				return nil, &ParseError{Line: li + 1, Pos: pi + 1, Reason: "empty value"}
			}
			v, err := parseNumber(tok, li+1, pi+1)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, &ParseError{
				Line:   li + 1,
				Reason: fmt.Sprintf("row has %d values, want %d", len(row), len(rows[0])),
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, &ParseError{Line: 1, Reason: "matrix is empty"}
	}

	m, err := matrix.FromRows(rows)
	if err != nil {
		// rows are validated above; reaching here is a bug in this parser
		return nil, fmt.Errorf("input: %w", err)
	}

	return m, nil
}
