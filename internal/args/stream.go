// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package args

// Stream is the mutable consumption state of one argument list during
// one evaluation pass. Items are claimed by marking them consumed;
// speculative matching snapshots the marks and rolls them back on
// failure instead of advancing an irreversible cursor.
type Stream struct {
	raw      []string
	items    []Item
	consumed []bool
	// scope restricts all searches to the item index range
	// [scopeStart, scopeEnd). Zero scopeEnd means end of stream.
	scopeStart int
	scopeEnd   int
	// counts tracks how many items of each flag name were consumed,
	// keyed by the dashed rendering of the name.
	counts map[string]int
	// conflicts maps a flag name to the name that shadows it after an
	// alternation branch committed.
	conflicts map[string]string
}

// Snapshot captures the full consumption state so a failed speculative
// branch can be rolled back.
type Snapshot struct {
	consumed  []bool
	counts    map[string]int
	conflicts map[string]string
}

func (s *Stream) Len() int { return len(s.items) }

func (s *Stream) At(i int) Item { return s.items[i] }

func (s *Stream) IsConsumed(i int) bool { return s.consumed[i] }

// Remaining counts unconsumed items in the current scope.
func (s *Stream) Remaining() int {
	n := 0
	for i := s.lo(); i < s.hi(); i++ {
		if !s.consumed[i] {
			n++
		}
	}
	return n
}

func (s *Stream) lo() int { return s.scopeStart }

func (s *Stream) hi() int {
	if s.scopeEnd == 0 {
		return len(s.items)
	}
	return s.scopeEnd
}

// Scope returns the current search scope bounds. A zero end means end
// of stream.
func (s *Stream) Scope() (start, end int) { return s.scopeStart, s.scopeEnd }

// SetScope restricts searches to [start, end) and returns the previous
// scope so the caller can restore it.
func (s *Stream) SetScope(start, end int) (prevStart, prevEnd int) {
	prevStart, prevEnd = s.scopeStart, s.scopeEnd
	s.scopeStart, s.scopeEnd = start, end
	return prevStart, prevEnd
}

func (s *Stream) Snapshot() Snapshot {
	snap := Snapshot{
		consumed:  make([]bool, len(s.consumed)),
		counts:    make(map[string]int, len(s.counts)),
		conflicts: make(map[string]string, len(s.conflicts)),
	}
	copy(snap.consumed, s.consumed)
	for k, v := range s.counts {
		snap.counts[k] = v
	}
	for k, v := range s.conflicts {
		snap.conflicts[k] = v
	}
	return snap
}

func (s *Stream) Restore(snap Snapshot) {
	copy(s.consumed, snap.consumed)
	s.counts = make(map[string]int, len(snap.counts))
	for k, v := range snap.counts {
		s.counts[k] = v
	}
	s.conflicts = make(map[string]string, len(snap.conflicts))
	for k, v := range snap.conflicts {
		s.conflicts[k] = v
	}
}

// ConsumedSince lists item indices consumed after the given snapshot
// was taken, in ascending order.
func (s *Stream) ConsumedSince(snap Snapshot) []int {
	var idx []int
	for i := range s.consumed {
		if s.consumed[i] && !snap.consumed[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Consume marks one item claimed and records its name count.
func (s *Stream) Consume(i int) {
	if s.consumed[i] {
		return
	}
	s.consumed[i] = true
	if key := s.items[i].Dashed(); key != "" {
		s.counts[key]++
	}
}

// Dashed renders a flag item's name with its dashes, or "" for words.
func (it Item) Dashed() string {
	switch it.Kind {
	case KindLong:
		return "--" + it.Name
	case KindShort:
		return "-" + it.Name
	default:
		return ""
	}
}

// FindLong locates the first unconsumed long flag with the given name
// in scope.
func (s *Stream) FindLong(name string) (int, Item, bool) {
	for i := s.lo(); i < s.hi(); i++ {
		it := s.items[i]
		if !s.consumed[i] && it.Kind == KindLong && it.Name == name {
			return i, it, true
		}
	}
	return 0, Item{}, false
}

// FindShort locates the first unconsumed short flag with the given
// name in scope.
func (s *Stream) FindShort(name rune) (int, Item, bool) {
	want := string(name)
	for i := s.lo(); i < s.hi(); i++ {
		it := s.items[i]
		if !s.consumed[i] && it.Kind == KindShort && it.Name == want {
			return i, it, true
		}
	}
	return 0, Item{}, false
}

// FindWord locates the left-most unconsumed word item in scope.
func (s *Stream) FindWord() (int, Item, bool) {
	for i := s.lo(); i < s.hi(); i++ {
		if !s.consumed[i] && s.items[i].Kind == KindWord {
			return i, s.items[i], true
		}
	}
	return 0, Item{}, false
}

// FirstUnconsumed returns the earliest unconsumed item in scope,
// whatever its kind.
func (s *Stream) FirstUnconsumed() (int, Item, bool) {
	for i := s.lo(); i < s.hi(); i++ {
		if !s.consumed[i] {
			return i, s.items[i], true
		}
	}
	return 0, Item{}, false
}

// Groups lists the item index of the first item of every raw token
// whose items are all still unconsumed in scope, in stream order. A
// cluster with one member already claimed is no longer a candidate for
// raw-token matching.
func (s *Stream) Groups() []int {
	var heads []int
	lastPos := -1
	for i := s.lo(); i < s.hi(); i++ {
		it := s.items[i]
		if it.Pos == lastPos {
			continue
		}
		lastPos = it.Pos
		if s.groupFree(i) {
			heads = append(heads, i)
		}
	}
	return heads
}

func (s *Stream) groupFree(head int) bool {
	pos := s.items[head].Pos
	for i := head; i < len(s.items) && s.items[i].Pos == pos; i++ {
		if s.consumed[i] {
			return false
		}
	}
	return true
}

// ConsumeGroup claims every item split from the raw token holding
// index i.
func (s *Stream) ConsumeGroup(i int) {
	pos := s.items[i].Pos
	for j := range s.items {
		if s.items[j].Pos == pos {
			s.Consume(j)
		}
	}
}

// ConsumeFromPos claims every item at or after the given raw token
// position. Used when a command takes the remainder of the stream.
func (s *Stream) ConsumeFromPos(pos int) {
	for i := range s.items {
		if s.items[i].Pos >= pos {
			s.Consume(i)
		}
	}
}

// ConsumePosRange claims items whose raw position falls in [from, to).
func (s *Stream) ConsumePosRange(from, to int) {
	for i := range s.items {
		if p := s.items[i].Pos; p >= from && p < to {
			s.Consume(i)
		}
	}
}

// FindSepWord locates the left-most unconsumed word located past the
// literal "--" separator in scope.
func (s *Stream) FindSepWord() (int, Item, bool) {
	for i := s.lo(); i < s.hi(); i++ {
		if !s.consumed[i] && s.items[i].Kind == KindWord && s.items[i].AfterSep {
			return i, s.items[i], true
		}
	}
	return 0, Item{}, false
}

// RawSuffix returns the raw tokens strictly after position pos.
func (s *Stream) RawSuffix(pos int) []string {
	if pos+1 >= len(s.raw) {
		return nil
	}
	return s.raw[pos+1:]
}

// CountOf reports how many items carrying the dashed name were
// consumed so far in this pass.
func (s *Stream) CountOf(dashed string) int { return s.counts[dashed] }

// RegisterConflict records that name lost an alternation to winner.
func (s *Stream) RegisterConflict(name, winner string) {
	if _, dup := s.conflicts[name]; !dup {
		s.conflicts[name] = winner
	}
}

// ConflictFor reports the name that shadows the given dashed name, if
// an alternation committed against it.
func (s *Stream) ConflictFor(dashed string) (string, bool) {
	w, ok := s.conflicts[dashed]
	return w, ok
}
