// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

// First tries each branch in declaration order against the unmodified
// stream state; the first branch that succeeds commits its consumption
// and wins. After a committing branch, the names of every losing
// branch are recorded as shadowed, so a later appearance of one of
// them surfaces as a mutual-exclusion error instead of a silent
// leftover.
func First[T any](branches ...Parser[T]) Parser[T] {
	metas := make([]*Meta, len(branches))
	for i, b := range branches {
		metas[i] = b.meta()
	}
	return &altParser[T]{branches: branches, m: &Meta{kind: metaOr, children: metas}}
}

type altParser[T any] struct {
	branches []Parser[T]
	m        *Meta
}

func (p *altParser[T]) meta() *Meta { return p.m }

func (p *altParser[T]) eval(s *state) (T, *failure) {
	var zero T
	var firstInvalid *failure
	var expected []*Meta
	for i, branch := range p.branches {
		snap := s.st.Snapshot()
		v, fail := branch.eval(s)
		if fail == nil {
			if len(s.st.ConsumedSince(snap)) > 0 {
				p.shadowLosers(s, i)
			}
			return v, nil
		}
		if fail.kind == failExit {
			return zero, fail
		}
		s.st.Restore(snap)
		switch fail.kind {
		case failInvalid:
			if firstInvalid == nil {
				firstInvalid = fail
			}
		case failMissing:
			expected = append(expected, fail.expected...)
		}
	}
	// An explicit malformed input beats every "nothing matched".
	if firstInvalid != nil {
		return zero, firstInvalid
	}
	return zero, &failure{kind: failMissing, expected: expected}
}

// shadowLosers records the winner's visible name against every name of
// the losing branches.
func (p *altParser[T]) shadowLosers(s *state, winner int) {
	winnerName := p.branches[winner].meta().firstItemName()
	if winnerName == "" {
		return
	}
	for i, branch := range p.branches {
		if i == winner {
			continue
		}
		branch.meta().walkItems(func(it *Meta) {
			for _, dashed := range it.dashedNames() {
				s.st.RegisterConflict(dashed, winnerName)
			}
		})
	}
}
