package simpson

import "errors"

// Kind tags a calculation failure.
type Kind int

const (
	KindInvalidIntervalCount Kind = iota + 1
	KindInvalidBounds
	KindInvalidExpression
	KindEvaluation
)

var (
	ErrInvalidIntervalCount = errors.New("invalid interval count")
	ErrInvalidBounds        = errors.New("invalid bounds")
	ErrInvalidExpression    = errors.New("invalid expression")
	ErrEvaluation           = errors.New("evaluation error")
)

// String returns the wire tag for k.
func (k Kind) String() string {
	switch k {
	case KindInvalidIntervalCount:
		return "invalid_interval_count"
	case KindInvalidBounds:
		return "invalid_bounds"
	case KindInvalidExpression:
		return "invalid_expression"
	case KindEvaluation:
		return "evaluation_error"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidIntervalCount:
		return ErrInvalidIntervalCount
	case KindInvalidBounds:
		return ErrInvalidBounds
	case KindInvalidExpression:
		return ErrInvalidExpression
	case KindEvaluation:
		return ErrEvaluation
	default:
		return nil
	}
}

// Error is the single error type returned by Validate, Run and Integrate.
// Index and X are set only for KindEvaluation; Err holds the underlying
// expr error when there is one.
type Error struct {
	Kind  Kind
	Msg   string
	Index int
	X     float64
	Err   error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
