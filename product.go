// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

// Construct2 evaluates both parsers in declaration order against the
// current stream and combines their values. Children may claim tokens
// anywhere still unconsumed; wrap the product in Adjacent to force one
// contiguous run.
func Construct2[A, B, R any](pa Parser[A], pb Parser[B], f func(A, B) R) Parser[R] {
	return &productParser[R]{
		children: []*Meta{pa.meta(), pb.meta()},
		run: func(s *state) (R, *failure) {
			var zero R
			a, fail := pa.eval(s)
			if fail != nil {
				return zero, fail
			}
			b, fail := pb.eval(s)
			if fail != nil {
				return zero, fail
			}
			return f(a, b), nil
		},
	}
}

// Construct3 is Construct2 for three parsers.
func Construct3[A, B, C, R any](pa Parser[A], pb Parser[B], pc Parser[C], f func(A, B, C) R) Parser[R] {
	return &productParser[R]{
		children: []*Meta{pa.meta(), pb.meta(), pc.meta()},
		run: func(s *state) (R, *failure) {
			var zero R
			a, fail := pa.eval(s)
			if fail != nil {
				return zero, fail
			}
			b, fail := pb.eval(s)
			if fail != nil {
				return zero, fail
			}
			c, fail := pc.eval(s)
			if fail != nil {
				return zero, fail
			}
			return f(a, b, c), nil
		},
	}
}

// Construct4 is Construct2 for four parsers.
func Construct4[A, B, C, D, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], f func(A, B, C, D) R) Parser[R] {
	return &productParser[R]{
		children: []*Meta{pa.meta(), pb.meta(), pc.meta(), pd.meta()},
		run: func(s *state) (R, *failure) {
			var zero R
			a, fail := pa.eval(s)
			if fail != nil {
				return zero, fail
			}
			b, fail := pb.eval(s)
			if fail != nil {
				return zero, fail
			}
			c, fail := pc.eval(s)
			if fail != nil {
				return zero, fail
			}
			d, fail := pd.eval(s)
			if fail != nil {
				return zero, fail
			}
			return f(a, b, c, d), nil
		},
	}
}

// Construct5 is Construct2 for five parsers.
func Construct5[A, B, C, D, E, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], f func(A, B, C, D, E) R) Parser[R] {
	return &productParser[R]{
		children: []*Meta{pa.meta(), pb.meta(), pc.meta(), pd.meta(), pe.meta()},
		run: func(s *state) (R, *failure) {
			var zero R
			a, fail := pa.eval(s)
			if fail != nil {
				return zero, fail
			}
			b, fail := pb.eval(s)
			if fail != nil {
				return zero, fail
			}
			c, fail := pc.eval(s)
			if fail != nil {
				return zero, fail
			}
			d, fail := pd.eval(s)
			if fail != nil {
				return zero, fail
			}
			e, fail := pe.eval(s)
			if fail != nil {
				return zero, fail
			}
			return f(a, b, c, d, e), nil
		},
	}
}

type productParser[R any] struct {
	children []*Meta
	run      func(s *state) (R, *failure)
}

func (p *productParser[R]) meta() *Meta {
	return &Meta{kind: metaAnd, children: p.children}
}

func (p *productParser[R]) eval(s *state) (R, *failure) { return p.run(s) }

// Adjacent restricts a composite parser to one contiguous run of
// tokens: the first piece must match at the scan position and every
// later piece must follow immediately, with no intervening token
// claimed by anything else. The matched run behaves as one atomic
// unit, so a repeated adjacent product yields independent,
// non-interleaving groups located anywhere in the stream.
func Adjacent[T any](p Parser[T]) Parser[T] {
	return &adjacentParser[T]{
		inner: p,
		m:     &Meta{kind: metaAdjacent, children: []*Meta{p.meta()}},
	}
}

type adjacentParser[T any] struct {
	inner Parser[T]
	m     *Meta
}

func (p *adjacentParser[T]) meta() *Meta { return p.m }

func (p *adjacentParser[T]) eval(s *state) (T, *failure) {
	var zero T
	var firstInvalid *failure
	lo, hi := s.st.Scope()
	end := hi
	if end == 0 {
		end = s.st.Len()
	}
	for start := lo; start < end; start++ {
		if s.st.IsConsumed(start) {
			continue
		}
		snap := s.st.Snapshot()
		prevLo, prevHi := s.st.SetScope(start, hi)
		v, fail := p.inner.eval(s)
		s.st.SetScope(prevLo, prevHi)
		if fail != nil {
			if fail.kind == failExit {
				return zero, fail
			}
			if fail.kind == failInvalid && firstInvalid == nil {
				firstInvalid = fail
			}
			s.st.Restore(snap)
			continue
		}
		if runIsContiguous(s.st.ConsumedSince(snap), start) {
			return v, nil
		}
		s.st.Restore(snap)
	}
	if firstInvalid != nil {
		return zero, firstInvalid
	}
	return zero, missing(p.inner.meta())
}

// runIsContiguous reports whether the claimed indices form one
// unbroken run beginning exactly at start.
func runIsContiguous(claimed []int, start int) bool {
	if len(claimed) == 0 || claimed[0] != start {
		return false
	}
	for i := 1; i < len(claimed); i++ {
		if claimed[i] != claimed[i-1]+1 {
			return false
		}
	}
	return true
}
