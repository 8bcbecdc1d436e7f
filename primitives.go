// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"fmt"

	"github.com/pacak/bpaf-sub000/internal/args"
)

// findFlag locates the earliest unconsumed flag item matching any of
// the registered names, hidden aliases included.
func (s *state) findFlag(n *NamedArg) (int, args.Item, bool) {
	best := -1
	var bestItem args.Item
	for _, l := range n.longs {
		if i, it, ok := s.st.FindLong(l); ok && (best < 0 || i < best) {
			best, bestItem = i, it
		}
	}
	for _, c := range n.shorts {
		if i, it, ok := s.st.FindShort(c); ok && (best < 0 || i < best) {
			best, bestItem = i, it
		}
	}
	if best < 0 {
		return 0, args.Item{}, false
	}
	return best, bestItem, true
}

type flagParser[T any] struct {
	name *NamedArg
	on   T
	// off is returned when the flag is absent; nil makes absence a
	// missing failure instead (the required-flag shape).
	off  *T
	item *Meta
	m    *Meta
}

func newFlagParser[T any](n *NamedArg, on T, off *T) *flagParser[T] {
	item := n.itemMeta(metaFlag, "")
	m := item
	if off != nil {
		m = &Meta{kind: metaOptional, children: []*Meta{item}}
	}
	return &flagParser[T]{name: n, on: on, off: off, item: item, m: m}
}

func (p *flagParser[T]) meta() *Meta { return p.m }

func (p *flagParser[T]) eval(s *state) (T, *failure) {
	i, it, ok := s.findFlag(p.name)
	if !ok {
		if p.off != nil {
			return *p.off, nil
		}
		var zero T
		return zero, missing(p.item)
	}
	if it.HasValue {
		var zero T
		return zero, invalid(fmt.Sprintf("`%s` doesn't accept an argument", it.Dashed()))
	}
	s.st.Consume(i)
	return p.on, nil
}

// Switch matches the presence of any of the names and produces true,
// or false when absent. Absence is a missing failure at the leaf,
// recovered by an implicit fallback to false.
func (n *NamedArg) Switch() Parser[bool] {
	off := false
	return newFlagParser(n, true, &off)
}

// Flag produces on when any of the names is present and off when all
// are absent. Absence is success, not failure.
func Flag[T any](n *NamedArg, on, off T) Parser[T] {
	return newFlagParser(n, on, &off)
}

// ReqFlag produces on when any of the names is present and fails as
// missing when absent. It is the usual seed for Count and for
// alternations of mutually exclusive modes.
func ReqFlag[T any](n *NamedArg, on T) Parser[T] {
	return newFlagParser[T](n, on, nil)
}

// ArgParser matches a name followed by a value: space-separated,
// =-joined, or, for short names only, glued directly onto the flag.
// It implements Parser[string]; pair it with ParseWith for typed
// conversions.
type ArgParser struct {
	name    *NamedArg
	metavar string
	m       *Meta
}

// Argument turns the name set into a valued argument with the given
// metavariable.
func (n *NamedArg) Argument(metavar string) *ArgParser {
	return &ArgParser{name: n, metavar: metavar, m: n.itemMeta(metaArg, metavar)}
}

// Complete registers a dynamic value completer invoked by the
// completion generator with the partially typed value.
func (a *ArgParser) Complete(fn func(prefix string) []string) *ArgParser {
	a.m.completeFn = fn
	return a
}

func (a *ArgParser) meta() *Meta { return a.m }

func (a *ArgParser) eval(s *state) (string, *failure) {
	i, it, ok := s.findFlag(a.name)
	if !ok {
		if a.name.env != "" && s.lookupEnv != nil {
			if v, present := s.lookupEnv(a.name.env); present {
				return v, nil
			}
		}
		return "", missing(a.m)
	}
	if it.HasValue {
		s.st.Consume(i)
		return it.Value, nil
	}
	j := i + 1
	if j < s.st.Len() && !s.st.IsConsumed(j) {
		next := s.st.At(j)
		if next.Kind == args.KindWord && next.Pos == it.Pos+1 && !next.AfterSep {
			s.st.Consume(i)
			s.st.Consume(j)
			return next.Word, nil
		}
	}
	return "", invalid(fmt.Sprintf("`%s` requires an argument `%s`", it.Dashed(), a.metavar))
}

// PosParser claims the left-most unconsumed token that does not look
// like a named flag. Past a literal "--" separator every remaining
// token qualifies regardless of a leading dash.
type PosParser struct {
	metavar string
	strict  bool
	m       *Meta
}

// Positional creates a positional matcher with the given
// metavariable.
func Positional(metavar string) *PosParser {
	return &PosParser{metavar: metavar, m: &Meta{kind: metaPositional, metavar: metavar}}
}

// Help attaches help text shown for this positional.
func (p *PosParser) Help(text string) *PosParser {
	p.m.help = text
	return p
}

// Complete registers a dynamic value completer for this positional.
func (p *PosParser) Complete(fn func(prefix string) []string) *PosParser {
	p.m.completeFn = fn
	return p
}

// Strict restricts the positional to tokens located after the literal
// "--" separator, the usual shape for trailing arguments handed to a
// wrapped program.
func (p *PosParser) Strict() *PosParser {
	p.strict = true
	p.m.strict = true
	return p
}

func (p *PosParser) meta() *Meta { return p.m }

func (p *PosParser) eval(s *state) (string, *failure) {
	find := s.st.FindWord
	if p.strict {
		find = s.st.FindSepWord
	}
	i, it, ok := find()
	if !ok {
		return "", missing(p.m)
	}
	s.st.Consume(i)
	return it.Word, nil
}

// AnyParser applies a caller-supplied check to one raw token,
// supporting custom surface syntaxes such as a bare +name/-name toggle
// or key=value tokens. By default only the next unconsumed token is
// considered; Anywhere extends the scan to the whole remaining stream.
type AnyParser[T any] struct {
	metavar  string
	check    func(string) (T, bool)
	anywhere bool
	item     *Meta
	m        *Meta
}

// Any creates a matcher over one raw token. The check receives the
// token exactly as the user typed it, dashes included, and reports
// whether it claims the token.
func Any[T any](metavar string, check func(token string) (T, bool)) *AnyParser[T] {
	item := &Meta{kind: metaAnyToken, metavar: metavar}
	return &AnyParser[T]{metavar: metavar, check: check, item: item, m: item}
}

// Anywhere makes the matcher scan the full remaining stream for the
// first token the check accepts, independent of position.
func (a *AnyParser[T]) Anywhere() *AnyParser[T] {
	a.anywhere = true
	a.m = &Meta{kind: metaAnywhere, children: []*Meta{a.item}}
	return a
}

// Help attaches help text shown for this matcher.
func (a *AnyParser[T]) Help(text string) *AnyParser[T] {
	a.item.help = text
	return a
}

func (a *AnyParser[T]) meta() *Meta { return a.m }

func (a *AnyParser[T]) eval(s *state) (T, *failure) {
	var zero T
	heads := s.st.Groups()
	if len(heads) == 0 {
		return zero, missing(a.item)
	}
	if !a.anywhere {
		heads = heads[:1]
	}
	for _, head := range heads {
		if v, ok := a.check(s.st.At(head).Orig); ok {
			s.st.ConsumeGroup(head)
			return v, nil
		}
	}
	return zero, missing(a.item)
}

// Literal matches one exact token and produces it.
func Literal(value string) *AnyParser[string] {
	return Any(value, func(token string) (string, bool) {
		return token, token == value
	})
}
