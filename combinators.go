// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"fmt"
)

// Pure always succeeds with the given value and consumes nothing.
func Pure[T any](v T) Parser[T] {
	return &pureParser[T]{v: v}
}

type pureParser[T any] struct{ v T }

func (p *pureParser[T]) meta() *Meta { return &Meta{kind: metaHidden} }

func (p *pureParser[T]) eval(s *state) (T, *failure) { return p.v, nil }

// Fail always fails as missing with the given message.
func Fail[T any](message string) Parser[T] {
	return &failParser[T]{message: message}
}

type failParser[T any] struct{ message string }

func (p *failParser[T]) meta() *Meta { return &Meta{kind: metaHidden} }

func (p *failParser[T]) eval(s *state) (T, *failure) {
	var zero T
	return zero, missing(&Meta{kind: metaHidden, metavar: p.message})
}

// Map applies a pure transform to a matched value.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return ParseWith(p, func(a A) (B, error) { return f(a), nil })
}

// ParseWith applies a fallible transform to a matched value. A
// transform error is an invalid failure: the input was present but
// malformed, so it is reported rather than recovered.
func ParseWith[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return &parseParser[A, B]{inner: p, f: f}
}

type parseParser[A, B any] struct {
	inner Parser[A]
	f     func(A) (B, error)
}

func (p *parseParser[A, B]) meta() *Meta { return p.inner.meta() }

func (p *parseParser[A, B]) eval(s *state) (B, *failure) {
	var zero B
	a, fail := p.inner.eval(s)
	if fail != nil {
		return zero, fail
	}
	b, err := p.f(a)
	if err != nil {
		return zero, invalid(fmt.Sprintf("couldn't parse `%v`: %v", a, err))
	}
	return b, nil
}

// Guard fails a matched value that does not satisfy the predicate,
// reporting the message as an invalid failure.
func Guard[T any](p Parser[T], pred func(T) bool, message string) Parser[T] {
	return ParseWith(p, func(v T) (T, error) {
		if !pred(v) {
			return v, fmt.Errorf("%s", message)
		}
		return v, nil
	})
}

// Fallback replaces a missing failure with a default value. An invalid
// failure is never replaced: an explicit malformed input is always
// reported, never silently defaulted.
func Fallback[T any](p Parser[T], value T) Parser[T] {
	return FallbackWith(p, func() (T, error) { return value, nil })
}

// FallbackWith replaces a missing failure with a lazily computed
// default. An error from the computation is an invalid failure.
func FallbackWith[T any](p Parser[T], f func() (T, error)) Parser[T] {
	return &fallbackParser[T]{inner: p, f: f}
}

type fallbackParser[T any] struct {
	inner Parser[T]
	f     func() (T, error)
}

func (p *fallbackParser[T]) meta() *Meta {
	return &Meta{kind: metaOptional, children: []*Meta{p.inner.meta()}}
}

func (p *fallbackParser[T]) eval(s *state) (T, *failure) {
	snap := s.st.Snapshot()
	v, fail := p.inner.eval(s)
	if fail == nil || fail.kind != failMissing {
		return v, fail
	}
	s.st.Restore(snap)
	d, err := p.f()
	if err != nil {
		var zero T
		return zero, invalid(err.Error())
	}
	return d, nil
}

// OptionalParser wraps a parser so that a missing inner match becomes
// a successful absent value. An invalid inner failure still
// propagates unless Catch is applied.
type OptionalParser[T any] struct {
	inner Parser[T]
	catch bool
	m     *Meta
}

// OptionalOf makes the inner parser's absence a success.
func OptionalOf[T any](p Parser[T]) *OptionalParser[T] {
	return &OptionalParser[T]{
		inner: p,
		m:     &Meta{kind: metaOptional, children: []*Meta{p.meta()}},
	}
}

// Catch additionally downgrades an invalid inner failure to an absent
// value and leaves the offending tokens unconsumed, so a different
// matcher placed later over the same name can still claim them. This
// is the only place an explicit malformed input is silently recovered.
func (p *OptionalParser[T]) Catch() *OptionalParser[T] {
	p.catch = true
	return p
}

func (p *OptionalParser[T]) meta() *Meta { return p.m }

func (p *OptionalParser[T]) eval(s *state) (Optional[T], *failure) {
	snap := s.st.Snapshot()
	v, fail := p.inner.eval(s)
	if fail == nil {
		return Some(v), nil
	}
	switch fail.kind {
	case failMissing:
		s.st.Restore(snap)
		return None[T](), nil
	case failInvalid:
		if p.catch {
			s.st.Restore(snap)
			return None[T](), nil
		}
	}
	return None[T](), fail
}

// RepeatParser repeats an inner parser until it fails as missing.
type RepeatParser[T any] struct {
	inner Parser[T]
	// atLeastOne makes zero repetitions a missing failure (Some).
	atLeastOne bool
	catch      bool
	m          *Meta
}

// Many repeats the inner parser and collects every match in order,
// duplicates retained. Zero matches succeed with an empty result.
func Many[T any](p Parser[T]) *RepeatParser[T] {
	return &RepeatParser[T]{
		inner: p,
		m:     &Meta{kind: metaMany, children: []*Meta{p.meta()}},
	}
}

// SomeOf is Many requiring at least one match; zero matches fail as
// missing.
func SomeOf[T any](p Parser[T]) *RepeatParser[T] {
	return &RepeatParser[T]{
		inner:      p,
		atLeastOne: true,
		m:          &Meta{kind: metaSome, children: []*Meta{p.meta()}},
	}
}

// Catch makes an invalid inner failure stop the repetition without
// consuming the offending tokens, mirroring OptionalParser.Catch.
func (p *RepeatParser[T]) Catch() *RepeatParser[T] {
	p.catch = true
	return p
}

func (p *RepeatParser[T]) meta() *Meta { return p.m }

func (p *RepeatParser[T]) eval(s *state) ([]T, *failure) {
	var out []T
	for {
		snap := s.st.Snapshot()
		before := s.st.Remaining()
		v, fail := p.inner.eval(s)
		if fail != nil {
			switch fail.kind {
			case failMissing:
				s.st.Restore(snap)
			case failInvalid:
				if !p.catch {
					return nil, fail
				}
				s.st.Restore(snap)
			default:
				return nil, fail
			}
			break
		}
		out = append(out, v)
		// A match that consumed nothing can vacuously succeed forever;
		// it is kept once and the loop stops.
		if s.st.Remaining() == before {
			break
		}
	}
	if p.atLeastOne && len(out) == 0 {
		return nil, missing(p.inner.meta())
	}
	return out, nil
}

// Collect is Many with a de-duplicating, unordered result container.
func Collect[T comparable](p Parser[T]) Parser[map[T]struct{}] {
	return Map(Many(p), func(vs []T) map[T]struct{} {
		set := make(map[T]struct{}, len(vs))
		for _, v := range vs {
			set[v] = struct{}{}
		}
		return set
	})
}

// Count repeats the inner parser, discards the values, and produces
// the repetition count, zero included.
func Count[T any](p Parser[T]) Parser[int] {
	return Map(Many(p), func(vs []T) int { return len(vs) })
}

// LastOf repeats the inner parser and keeps only the most recent
// match, so a flag given several times resolves to its final value.
// Zero matches fail as missing.
func LastOf[T any](p Parser[T]) Parser[T] {
	inner := SomeOf(p)
	return ParseWith[[]T, T](inner, func(vs []T) (T, error) {
		return vs[len(vs)-1], nil
	})
}

// Hide removes the parser from usage lines, help text, completion,
// and typo suggestions. Matching is unaffected.
func Hide[T any](p Parser[T]) Parser[T] {
	return &metaOverride[T]{inner: p, m: &Meta{kind: metaHidden, children: []*Meta{p.meta()}}}
}

// HideUsage removes the parser from the usage line only; it still
// renders in the verbose help listing.
func HideUsage[T any](p Parser[T]) Parser[T] {
	return &metaOverride[T]{inner: p, m: &Meta{kind: metaHideUsage, children: []*Meta{p.meta()}}}
}

type metaOverride[T any] struct {
	inner Parser[T]
	m     *Meta
}

func (p *metaOverride[T]) meta() *Meta { return p.m }

func (p *metaOverride[T]) eval(s *state) (T, *failure) { return p.inner.eval(s) }
