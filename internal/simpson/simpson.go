// Package simpson approximates definite integrals of user-supplied
// expressions with the composite Simpson's 1/3 rule and records the
// weighted sample behind every result.
//
// The package is pure: every call takes complete parameters, compiles its
// own expression and returns a complete Result or an *Error.
package simpson

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"go-chi-simpson/internal/expr"
)

// Display precision of recorded values. Accumulation always runs at full
// precision.
const (
	xPrecision     = 4
	valuePrecision = 6
)

// maxPrealloc bounds the up-front trace allocation; longer traces grow on
// append.
const maxPrealloc = 1 << 16

// Params are the inputs of one calculation.
type Params struct {
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	N          int     `json:"n"`
	Expression string  `json:"expression"`
}

// DefaultParams returns the parameters a fresh calculator starts with.
func DefaultParams() Params {
	return Params{A: 0, B: 1, N: 4, Expression: "x^2"}
}

// Step is one sample of the trace. X is rounded to 4 decimal places, FX and
// Term to 6.
type Step struct {
	I           int     `json:"i"`
	X           float64 `json:"x"`
	FX          float64 `json:"fx"`
	Coefficient int     `json:"coefficient"`
	Term        float64 `json:"term"`
}

// Result is a completed calculation. Value is rounded to 6 decimal places;
// Sum is the unrounded weighted sum of samples and H the step size.
type Result struct {
	Value float64 `json:"result"`
	H     float64 `json:"h"`
	Sum   float64 `json:"sum"`
	Steps []Step  `json:"steps"`
}

// Coefficient returns the Simpson weight of node i out of n: 1 at both
// ends, 4 at odd interior nodes and 2 at even interior nodes.
func Coefficient(i, n int) int {
	switch {
	case i == 0 || i == n:
		return 1
	case i%2 == 0:
		return 2
	default:
		return 4
	}
}

// Validate checks p and compiles its expression. Interval count is checked
// first, then bounds, then the expression.
func Validate(p Params) (*expr.Expression, error) {
	if err := checkShape(p); err != nil {
		return nil, err
	}

	f, err := expr.Compile(p.Expression)
	if err != nil {
		return nil, &Error{
			Kind: KindInvalidExpression,
			Msg:  err.Error(),
			Err:  err,
		}
	}
	return f, nil
}

func checkShape(p Params) error {
	switch {
	case p.N%2 != 0:
		return &Error{
			Kind: KindInvalidIntervalCount,
			Msg:  fmt.Sprintf("number of intervals n must be even, got %d", p.N),
		}
	case p.N < 2:
		return &Error{
			Kind: KindInvalidIntervalCount,
			Msg:  fmt.Sprintf("number of intervals n must be at least 2, got %d", p.N),
		}
	case math.IsNaN(p.A) || math.IsInf(p.A, 0) || math.IsNaN(p.B) || math.IsInf(p.B, 0):
		return &Error{
			Kind: KindInvalidBounds,
			Msg:  fmt.Sprintf("bounds must be finite, got a=%s b=%s", expr.FormatFloat(p.A), expr.FormatFloat(p.B)),
		}
	case p.B <= p.A:
		return &Error{
			Kind: KindInvalidBounds,
			Msg:  fmt.Sprintf("upper bound b must be greater than lower bound a, got a=%s b=%s", expr.FormatFloat(p.A), expr.FormatFloat(p.B)),
		}
	}
	return nil
}

// Run samples f at the n+1 nodes of [a, b] and applies Simpson's rule. The
// first failed sample aborts the run; no partial trace is returned.
//
// f must be the expression returned by Validate(p). A compiled expression
// whose source differs from p.Expression is rejected.
func Run(p Params, f *expr.Expression) (*Result, error) {
	if err := checkShape(p); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &Error{Kind: KindInvalidExpression, Msg: "no compiled expression"}
	}
	if f.Source() != strings.TrimSpace(p.Expression) {
		return nil, &Error{
			Kind: KindInvalidExpression,
			Msg:  fmt.Sprintf("compiled expression %q does not match %q", f.Source(), p.Expression),
		}
	}

	h := (p.B - p.A) / float64(p.N)
	steps := make([]Step, 0, min(p.N+1, maxPrealloc))
	sum := 0.0

	for i := 0; i <= p.N; i++ {
		x := p.A + float64(i)*h

		fx, err := f.Eval(x)
		if err != nil {
			return nil, &Error{
				Kind:  KindEvaluation,
				Msg:   fmt.Sprintf("sample %d: %v", i, err),
				Index: i,
				X:     x,
				Err:   err,
			}
		}

		c := Coefficient(i, p.N)
		term := float64(c) * fx
		sum += term

		steps = append(steps, Step{
			I:           i,
			X:           scalar.Round(x, xPrecision),
			FX:          scalar.Round(fx, valuePrecision),
			Coefficient: c,
			Term:        scalar.Round(term, valuePrecision),
		})
	}

	raw := h / 3 * sum
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return nil, &Error{
			Kind:  KindEvaluation,
			Msg:   fmt.Sprintf("weighted sum of samples overflowed to %v", raw),
			Index: p.N,
			X:     p.A + float64(p.N)*h,
		}
	}

	return &Result{
		Value: scalar.Round(raw, valuePrecision),
		H:     h,
		Sum:   sum,
		Steps: steps,
	}, nil
}

// Integrate validates p and runs the quadrature.
func Integrate(p Params) (*Result, error) {
	f, err := Validate(p)
	if err != nil {
		return nil, err
	}
	return Run(p, f)
}
