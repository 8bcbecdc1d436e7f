// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

// Optional holds a value that may be absent. It is the result type of
// the OptionalOf combinator: a present value means the inner parser
// matched, an absent one means it was missing from the input.
type Optional[T any] struct {
	present bool
	value   T
}

func (self Optional[T]) IsPresent() bool {
	return self.present
}

func (self Optional[T]) Value() T {
	return self.value
}

// OrElse returns the held value, or def when absent.
func (self Optional[T]) OrElse(def T) T {
	if self.present {
		return self.value
	}
	return def
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   v,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
