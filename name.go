// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

// NamedArg accumulates the names and annotations of a named matcher
// before it is turned into a switch, flag, or argument. The first
// short and first long name registered are visible in generated text;
// any registered afterwards are hidden aliases that match identically
// but never render.
type NamedArg struct {
	shorts []rune
	longs  []string
	env    string
	help   string
}

// Short starts a named matcher with a single-character name.
func Short(name rune) *NamedArg {
	return &NamedArg{shorts: []rune{name}}
}

// Long starts a named matcher with a long name.
func Long(name string) *NamedArg {
	return &NamedArg{longs: []string{name}}
}

// Short registers an additional short name.
func (n *NamedArg) Short(name rune) *NamedArg {
	n.shorts = append(n.shorts, name)
	return n
}

// Long registers an additional long name.
func (n *NamedArg) Long(name string) *NamedArg {
	n.longs = append(n.longs, name)
	return n
}

// Env registers an environment variable consulted by Argument when the
// flag is absent from the command line. Precedence is explicit flag,
// then environment variable, then whatever fallback wraps the parser.
func (n *NamedArg) Env(variable string) *NamedArg {
	n.env = variable
	return n
}

// Help attaches the help text shown for this matcher.
func (n *NamedArg) Help(text string) *NamedArg {
	n.help = text
	return n
}

// itemMeta builds the render-facing description of this name set.
func (n *NamedArg) itemMeta(kind metaKind, metavar string) *Meta {
	return &Meta{
		kind:    kind,
		shorts:  n.shorts,
		longs:   n.longs,
		metavar: metavar,
		help:    n.help,
		env:     n.env,
	}
}

// dashed renders the visible spelling of the name set.
func (n *NamedArg) dashed() string {
	if len(n.longs) > 0 {
		return "--" + n.longs[0]
	}
	if len(n.shorts) > 0 {
		return "-" + string(n.shorts[0])
	}
	return ""
}
