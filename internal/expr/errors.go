package expr

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidExpression matches every error returned by Compile.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrEvaluation matches every error returned by Expression.Eval.
	ErrEvaluation = errors.New("evaluation error")
)

// Reason classifies why an expression was rejected at compile time.
type Reason int

const (
	ReasonDisallowedCharacters Reason = iota + 1
	ReasonInvalidSyntax
	ReasonNaN
)

func (r Reason) String() string {
	switch r {
	case ReasonDisallowedCharacters:
		return "contains disallowed characters"
	case ReasonInvalidSyntax:
		return "invalid syntax"
	case ReasonNaN:
		return "evaluates to NaN"
	default:
		return "unknown reason"
	}
}

// CompileError reports a rejected expression source. Pos is the byte offset
// into the trimmed source, or -1 when the failure has no single location.
type CompileError struct {
	Source string
	Reason Reason
	Detail string
	Pos    int
}

func (e *CompileError) Error() string {
	if e.Detail == "" {
		return "invalid expression: " + e.Reason.String()
	}
	return fmt.Sprintf("invalid expression: %s: %s", e.Reason, e.Detail)
}

func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// EvalError reports a NaN or infinite function value at X.
type EvalError struct {
	X     float64
	Value float64
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("non-finite value %v at x = %s", e.Value, FormatFloat(e.X))
}

func (e *EvalError) Is(target error) bool {
	return target == ErrEvaluation
}

// FormatFloat renders f in the shortest form that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func syntaxErrorf(src string, pos int, format string, args ...any) *CompileError {
	return &CompileError{
		Source: src,
		Reason: ReasonInvalidSyntax,
		Detail: fmt.Sprintf(format, args...),
		Pos:    pos,
	}
}
