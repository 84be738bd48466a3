package qtree

import (
	"context"
	"fmt"
)

// ComputeFunc computes a late-bound field from the answers collected so far.
type ComputeFunc[T any] func(ctx context.Context, answers Answers) (T, error)

// Value is a configurable question field: unset, a literal, or computed from
// the answer bag at the moment it is needed.
type Value[T any] struct {
	literal T
	compute ComputeFunc[T]
	set     bool
}

// Literal returns a Value holding v.
func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// Computed returns a Value resolved by fn on every use.
func Computed[T any](fn ComputeFunc[T]) Value[T] {
	return Value[T]{compute: fn, set: fn != nil}
}

// IsSet reports whether the value is a literal or computed.
func (v Value[T]) IsSet() bool { return v.set }

// IsComputed reports whether the value is computed.
func (v Value[T]) IsComputed() bool { return v.compute != nil }

// Resolve returns the value for the given answers. An unset value resolves
// to the zero value. A panicking compute function is reported as an error.
func (v Value[T]) Resolve(ctx context.Context, answers Answers) (out T, err error) {
	if v.compute == nil {
		return v.literal, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("computing value: panic: %v", r)
		}
	}()
	return v.compute(ctx, answers)
}
