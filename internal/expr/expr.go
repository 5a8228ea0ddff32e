// Package expr compiles single-variable real expressions such as
// "sin(x)^2 + ln(x)" into trees that can be evaluated at any x.
//
// Source text is never executed: it is tokenized against a closed
// namespace (x, PI, E, sin, cos, tan, exp, ln, log, sqrt, pow and the
// operators + - * / ^), parsed into an immutable tree, and probed once at
// x = 1 before Compile returns.
package expr

import (
	"fmt"
	"math"
	"strings"
)

// probeX is the sample point used to reject expressions that are NaN by
// construction.
const probeX = 1.0

// Expression is a compiled function of x. It holds no mutable state and is
// safe for concurrent use.
type Expression struct {
	source string
	root   node
}

// Compile parses source into an Expression. Every returned error is a
// *CompileError and matches ErrInvalidExpression.
func Compile(source string) (*Expression, error) {
	src := strings.TrimSpace(source)

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	root, err := parse(src, tokens)
	if err != nil {
		return nil, err
	}

	if v := root.eval(probeX); math.IsNaN(v) {
		return nil, &CompileError{
			Source: src,
			Reason: ReasonNaN,
			Detail: fmt.Sprintf("f(%s) is NaN", FormatFloat(probeX)),
			Pos:    -1,
		}
	}

	return &Expression{source: src, root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level fixtures.
func MustCompile(source string) *Expression {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval returns f(x). A NaN or infinite value is reported as an *EvalError
// carrying x.
func (e *Expression) Eval(x float64) (float64, error) {
	v := e.root.eval(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &EvalError{X: x, Value: v}
	}
	return v, nil
}

// Source returns the trimmed source the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// IsConstant reports whether the expression never references x.
func (e *Expression) IsConstant() bool {
	return !e.root.usesVariable()
}

// String returns a fully parenthesised rendering of the parsed tree.
func (e *Expression) String() string {
	return e.root.String()
}

// Validation is the outcome of Check.
type Validation struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	Constant  bool   `json:"constant"`
	Canonical string `json:"canonical,omitempty"`
}

// Check compiles source and summarises the outcome for display. Constant
// expressions are reported with their value at the probe point.
func Check(source string) Validation {
	e, err := Compile(source)
	if err != nil {
		return Validation{Message: err.Error()}
	}

	v := Validation{Valid: true, Canonical: e.String()}
	if e.IsConstant() {
		v.Constant = true
		c := e.root.eval(probeX)
		v.Message = "constant function: f(x) = " + FormatFloat(c)
	}
	return v
}
