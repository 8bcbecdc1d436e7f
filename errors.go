// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"fmt"
	"strings"

	"github.com/pacak/bpaf-sub000/internal/args"
)

// ParseError is the surfaced outcome of an unsuccessful run, or of a
// help/version render request. Help and version carry their text in
// Message with a zero code and Stdout set; failures carry a rendered
// reason, a nonzero code, and a hint to pass --help.
type ParseError struct {
	Message string
	Code    int
	Stdout  bool
}

func (e *ParseError) Error() string { return e.Message }

// ExitCode is the process status a host should terminate with.
func (e *ParseError) ExitCode() int { return e.Code }

const helpHint = "pass `--help` for usage information"

func userError(message string) *ParseError {
	return &ParseError{Message: message + "\n" + helpHint, Code: 1}
}

// failureMessage renders an unrecovered evaluation failure.
func failureMessage(f *failure) string {
	switch f.kind {
	case failInvalid:
		return f.message
	case failMissing:
		return "expected " + renderExpected(f.expected)
	}
	return f.message
}

// renderExpected names what could have matched, keeping the list
// short: one item, two items, or two items "or more".
func renderExpected(expected []*Meta) string {
	var names []string
	seen := map[string]bool{}
	for _, m := range expected {
		n := itemUsage(m)
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, "`"+n+"`")
		}
	}
	switch {
	case len(names) == 0:
		return "more arguments"
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + " or " + names[1]
	default:
		return names[0] + ", " + names[1] + ", or more"
	}
}

// classifyLeftover turns the first unconsumed item into the error a
// user sees: a repeated name, a mutual-exclusion violation, a name
// that exists but is unreachable here, or an unknown flag with a typo
// suggestion over visible names only.
func classifyLeftover(st *args.Stream, m *Meta) string {
	_, it, ok := st.FirstUnconsumed()
	if !ok {
		return ""
	}
	if it.Kind == args.KindWord {
		if s, ok := suggest(it.Word, visibleCommands(m)); ok {
			return fmt.Sprintf("`%s` is not expected in this context, did you mean `%s`?", it.Word, s)
		}
		return fmt.Sprintf("`%s` is not expected in this context", it.Word)
	}
	dashed := it.Dashed()
	if st.CountOf(dashed) > 0 {
		return fmt.Sprintf("`%s` is used multiple times", dashed)
	}
	if winner, ok := st.ConflictFor(dashed); ok {
		return fmt.Sprintf("`%s` cannot be used at the same time as `%s`", dashed, winner)
	}
	if m.knowsName(dashed) {
		return fmt.Sprintf("`%s` is not expected in this context", dashed)
	}
	if s, ok := suggest(strings.TrimLeft(dashed, "-"), visibleLongs(m)); ok {
		return fmt.Sprintf("no such flag: `%s`, did you mean `--%s`?", dashed, s)
	}
	return fmt.Sprintf("no such flag: `%s`", dashed)
}

// visibleLongs lists the visible long name of every item that renders,
// plus the implicit help leaf. Hidden aliases and hidden subtrees are
// excluded so suggestions never leak what help does not show.
func visibleLongs(m *Meta) []string {
	longs := []string{"help"}
	walkVisible(m, func(it *Meta) {
		if len(it.longs) > 0 {
			longs = append(longs, it.longs[0])
		}
	})
	return longs
}

// visibleCommands lists command names and their visible aliases.
func visibleCommands(m *Meta) []string {
	var names []string
	walkVisible(m, func(it *Meta) {
		if it.kind == metaCommand {
			names = append(names, it.cmdName)
		}
	})
	return names
}

// walkVisible is walkItems skipping hidden subtrees.
func walkVisible(m *Meta, visit func(*Meta)) {
	if m == nil || m.kind == metaHidden {
		return
	}
	if m.isItem() {
		visit(m)
		return
	}
	for _, c := range m.children {
		walkVisible(c, visit)
	}
}

// suggest finds the candidate within a bounded Damerau-Levenshtein
// distance of the unknown word. The bound of two edits covers the
// plausible single typo plus an off-by-one, without matching wildly
// unrelated names.
func suggest(word string, candidates []string) (string, bool) {
	const maxDistance = 2
	best, bestD := "", maxDistance+1
	for _, c := range candidates {
		if c == word {
			continue
		}
		if d := editDistance(word, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best, bestD <= maxDistance
}

// editDistance computes the Damerau-Levenshtein distance with adjacent
// transpositions counted as one edit.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[lb]
}
