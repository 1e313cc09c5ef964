package registry

import (
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// Operator is one of the pipeline-composition operators spec.md §4.4
// defines. It names the relationship between the stage it follows and the
// next stage, not a standalone token.
type Operator int

const (
	// OpNone marks the final stage of a pipeline: there is nothing after
	// it.
	OpNone Operator = iota
	// OpPipe feeds this stage's stdout to the next stage's stdin; both run
	// concurrently.
	OpPipe
	// OpFlip captures this stage's stdout as a single argument appended to
	// the next stage's argv; this stage runs to completion first.
	OpFlip
	// OpAnd runs the next stage iff this stage exited 0.
	OpAnd
	// OpOr runs the next stage iff this stage exited non-zero.
	OpOr
	// OpRedirect truncates the named Target and writes this stage's
	// (sub-pipeline's) stdout to it.
	OpRedirect
	// OpAppend appends this stage's (sub-pipeline's) stdout to the named
	// Target.
	OpAppend
)

// Stage is one command invocation in a pipeline: its argv, and the
// operator connecting it to whatever follows.
type Stage struct {
	Args   []string
	Op     Operator
	Target string // redirect/append path; set only when Op is OpRedirect/OpAppend
}

// Pipeline is a parsed command line: a flat stage list plus the background
// dispatch flag.
type Pipeline struct {
	Stages     []Stage
	Background bool
}

// ParsePipeline tokenizes line with a shell-style word splitter and groups
// the result into stages connected by the PIPE/FLIP/AND/OR/REDIRECT/APPEND
// operators, honoring a trailing "&" as the background-dispatch marker.
//
// Operators are recognized only as their own whitespace-delimited tokens
// (shlex does not itself understand them); "a&&b" with no surrounding
// spaces is not split into an AND pipeline, only "a && b" is. This mirrors
// a plain shell-word tokenizer layered under a separate operator grammar,
// the natural reading of spec.md §4.4's operator table for a tokenizer
// grounded on anmitsu/go-shlex rather than a hand-rolled character scanner.
func ParsePipeline(line string) (*Pipeline, error) {
	trimmed := strings.TrimSpace(line)
	background := false
	if strings.HasSuffix(trimmed, "&") && !strings.HasSuffix(trimmed, "&&") {
		background = true
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "&"))
	}

	words, err := shlex.Split(trimmed, true)
	if err != nil {
		return nil, fmt.Errorf("registry: tokenizing pipeline: %w", err)
	}

	var stages []Stage
	var cur []string
	flush := func(op Operator, target string) {
		stages = append(stages, Stage{Args: cur, Op: op, Target: target})
		cur = nil
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w {
		case "|":
			flush(OpPipe, "")
		case "|;":
			flush(OpFlip, "")
		case "&&":
			flush(OpAnd, "")
		case "||":
			flush(OpOr, "")
		case ">", ">>":
			if i+1 >= len(words) {
				return nil, fmt.Errorf("registry: %s without a target path", w)
			}
			op := OpRedirect
			if w == ">>" {
				op = OpAppend
			}
			target := words[i+1]
			i++
			flush(op, target)
		default:
			cur = append(cur, w)
		}
	}
	if len(cur) > 0 || len(stages) == 0 {
		stages = append(stages, Stage{Args: cur})
	}
	return &Pipeline{Stages: stages, Background: background}, nil
}

// summary reconstructs a readable form of p for job-table logging.
func (p *Pipeline) summary() string {
	parts := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		parts[i] = strings.Join(s.Args, " ")
	}
	return strings.Join(parts, " | ")
}
