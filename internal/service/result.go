package service

import "github.com/Veraticus/finyo-console/internal/common"

// Outcome classifies how a backend call resolved.
type Outcome int

// Outcome values.
const (
	// OutcomeLoaded means the call succeeded and returned data.
	OutcomeLoaded Outcome = iota
	// OutcomeEmpty means the call succeeded but there was nothing to return.
	OutcomeEmpty
	// OutcomeFailed means the call failed; Value holds the empty sentinel.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result carries a backend value together with how it was obtained.
// Value is always usable: on failure it is the operation's empty sentinel,
// so callers that only care about rendering can ignore Err.
type Result[T any] struct {
	Value T
	Err   error
	empty bool
}

// Loaded wraps a successful value. empty marks a legitimately empty payload.
func Loaded[T any](value T, empty bool) Result[T] {
	return Result[T]{Value: value, empty: empty}
}

// Failed wraps a failure with the sentinel value to render in its place.
func Failed[T any](sentinel T, err error) Result[T] {
	return Result[T]{Value: sentinel, Err: err}
}

// Outcome reports how the call resolved.
func (r Result[T]) Outcome() Outcome {
	switch {
	case r.Err != nil:
		return OutcomeFailed
	case r.empty:
		return OutcomeEmpty
	default:
		return OutcomeLoaded
	}
}

// OK reports whether the call succeeded, empty or not.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Detail returns operator-facing failure text, or "" on success.
func (r Result[T]) Detail() string {
	return common.Detail(r.Err)
}
