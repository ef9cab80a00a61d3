// SPDX-License-Identifier: MIT

package monostack

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// ErrBadValue is returned for NaN or infinite input values.
var ErrBadValue = fault.Define(fault.ErrStructuralPrecondition, "monostack: values must be finite")

// Direction selects what the scan looks for to the right of each index.
type Direction int

const (
	// Greater seeks the next strictly greater value.
	Greater Direction = iota
	// Smaller seeks the next strictly smaller value.
	Smaller
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Smaller {
		return "smaller"
	}

	return "greater"
}

// Answer selects what a popped index records.
type Answer int

const (
	// AnswerValue records the value that popped the index.
	AnswerValue Answer = iota
	// AnswerDistance records how many positions later it appeared.
	AnswerDistance
)

// Config parameterizes a scan.
type Config struct {
	Name      string // algorithm name recorded on the trace
	Direction Direction
	Answer    Answer
	Sentinel  float64 // answer for indices never popped
}

// Presets.
var (
	NextGreater     = Config{Name: "next-greater", Direction: Greater, Answer: AnswerValue, Sentinel: -1}
	NextSmaller     = Config{Name: "next-smaller", Direction: Smaller, Answer: AnswerValue, Sentinel: -1}
	DaysUntilWarmer = Config{Name: "daily-temperatures", Direction: Greater, Answer: AnswerDistance, Sentinel: 0}
)

// Result holds the per-index answers and the recorded trace.
type Result struct {
	Answers []float64
	Trace   *trace.Trace
}

// scanner holds the working state of one pass.
type scanner struct {
	cfg      Config
	values   []float64
	stack    []int
	answers  []float64
	resolved []bool
	rec      *trace.Recorder
}

// Scan runs one monotonic-stack pass over values. values is not modified.
func Scan(values []float64, cfg Config) (*Result, error) {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: values[%d] = %v", ErrBadValue, i, v)
		}
	}
	name := cfg.Name
	if name == "" {
		name = "next-" + cfg.Direction.String()
	}

	s := &scanner{
		cfg:      cfg,
		values:   values,
		stack:    make([]int, 0, len(values)),
		answers:  make([]float64, len(values)),
		resolved: make([]bool, len(values)),
		rec:      trace.NewRecorder(name, len(values)),
	}
	for i := range s.answers {
		s.answers[i] = cfg.Sentinel
	}

	s.emit(trace.KindStart, trace.None, trace.None, "scan %d values for next %s", len(values), cfg.Direction)
	for i, v := range values {
		for len(s.stack) > 0 {
			top := s.stack[len(s.stack)-1]
			beats := s.beats(v, values[top])
			verdict := "keep"
			if beats {
				verdict = "pop"
			}
			s.emit(trace.KindCompare, i, trace.None, "compare %g at index %d with %g at index %d: %s",
				v, i, values[top], top, verdict)
			if !beats {
				break
			}
			s.stack = s.stack[:len(s.stack)-1]
			s.answers[top] = s.answer(top, i)
			s.resolved[top] = true
			s.emit(trace.KindPop, i, top, "pop index %d, answer %g", top, s.answers[top])
		}
		s.stack = append(s.stack, i)
		s.emit(trace.KindPush, i, trace.None, "push index %d (%g)", i, v)
	}

	resolved := 0
	for _, ok := range s.resolved {
		if ok {
			resolved++
		}
	}
	s.emit(trace.KindDone, trace.None, trace.None, "done: %d of %d resolved", resolved, len(values))

	tr, err := s.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Answers: s.answers, Trace: tr}, nil
}

// beats reports whether cur pops a stacked value under the configured
// direction. Equal values never pop.
func (s *scanner) beats(cur, stacked float64) bool {
	if s.cfg.Direction == Smaller {
		return cur < stacked
	}

	return cur > stacked
}

func (s *scanner) answer(popped, cur int) float64 {
	if s.cfg.Answer == AnswerDistance {
		return float64(cur - popped)
	}

	return s.values[cur]
}

func (s *scanner) emit(kind trace.Kind, cur, popped int, format string, args ...any) {
	s.rec.Emit(kind, trace.ArrayState{
		Values:   s.values,
		Current:  cur,
		Stack:    s.stack,
		Answers:  s.answers,
		Resolved: s.resolved,
		Popped:   popped,
	}, format, args...)
}
