// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"fmt"
)

type metaKind uint8

const (
	metaFlag metaKind = iota
	metaArg
	metaPositional
	metaAnyToken
	metaCommand
	metaAnd
	metaOr
	metaOptional
	metaMany
	metaSome
	metaAdjacent
	metaAnywhere
	metaHidden
	metaHideUsage
)

// Meta is the render-facing mirror of a grammar tree. It is built once
// alongside the parsers and consulted only by the usage, help, and
// completion generators, never by the matching engine itself.
type Meta struct {
	kind metaKind

	// shorts and longs hold every registered name for item nodes. The
	// first of each list is visible; the rest are hidden aliases that
	// match identically but never render.
	shorts []rune
	longs  []string

	metavar string
	help    string
	env     string
	// strict marks a positional that only accepts tokens after the
	// literal "--" separator.
	strict bool

	// cmdName and cmdAliases identify command items.
	cmdName    string
	cmdAliases []string

	children []*Meta

	// completeFn is the caller-registered dynamic value completer for
	// argument and positional items.
	completeFn func(prefix string) []string
}

func (m *Meta) isItem() bool {
	switch m.kind {
	case metaFlag, metaArg, metaPositional, metaAnyToken, metaCommand:
		return true
	default:
		return false
	}
}

// visibleName renders the preferred user-facing spelling of an item:
// the first long name when one exists, otherwise the first short name.
func (m *Meta) visibleName() string {
	if len(m.longs) > 0 {
		return "--" + m.longs[0]
	}
	if len(m.shorts) > 0 {
		return "-" + string(m.shorts[0])
	}
	switch m.kind {
	case metaCommand:
		return m.cmdName
	default:
		return m.metavar
	}
}

// dashedNames lists every registered spelling of an item with its
// dashes, hidden aliases included.
func (m *Meta) dashedNames() []string {
	names := make([]string, 0, len(m.shorts)+len(m.longs))
	for _, s := range m.shorts {
		names = append(names, "-"+string(s))
	}
	for _, l := range m.longs {
		names = append(names, "--"+l)
	}
	return names
}

// walkItems visits every item node in declaration order. Command
// sub-trees are owned by their own OptionParser and are not entered.
func (m *Meta) walkItems(visit func(*Meta)) {
	if m == nil {
		return
	}
	if m.isItem() {
		visit(m)
		return
	}
	for _, c := range m.children {
		c.walkItems(visit)
	}
}

// firstItemName renders the visible name of the first item in the
// tree, or "" when there is none.
func (m *Meta) firstItemName() string {
	name := ""
	m.walkItems(func(it *Meta) {
		if name == "" {
			name = it.visibleName()
		}
	})
	return name
}

// knowsName reports whether any item registers the given dashed
// spelling.
func (m *Meta) knowsName(dashed string) bool {
	found := false
	m.walkItems(func(it *Meta) {
		for _, n := range it.dashedNames() {
			if n == dashed {
				found = true
			}
		}
	})
	return found
}

// isCommandWord reports whether the word is a registered command name
// or alias in this tree.
func (m *Meta) isCommandWord(word string) bool {
	found := false
	m.walkItems(func(it *Meta) {
		if it.kind != metaCommand {
			return
		}
		if it.cmdName == word {
			found = true
		}
		for _, a := range it.cmdAliases {
			if a == word {
				found = true
			}
		}
	})
	return found
}

// splitInfo collects what the stream pre-splitter needs to know from
// the grammar: short names that take an attached value, and whether
// any short name is a digit.
func (m *Meta) splitInfo() (valueShorts map[rune]bool, digitShorts bool) {
	valueShorts = map[rune]bool{}
	m.walkItems(func(it *Meta) {
		for _, s := range it.shorts {
			if s >= '0' && s <= '9' {
				digitShorts = true
			}
			if it.kind == metaArg {
				valueShorts[s] = true
			}
		}
	})
	return valueShorts, digitShorts
}

// validate enforces the declaration-order invariant: within one
// grammar tree every named item must precede every positional or
// command item. Sub-trees under an adjacent or anywhere modifier are
// exempt, and command sub-trees are validated when their own
// OptionParser is built. The check runs once, when the Meta is built,
// independent of any input.
func (m *Meta) validate() error {
	var firstPositional *Meta
	return m.validateWalk(&firstPositional)
}

func (m *Meta) validateWalk(firstPositional **Meta) error {
	if m == nil {
		return nil
	}
	switch m.kind {
	case metaAdjacent, metaAnywhere:
		return nil
	case metaFlag, metaArg:
		if *firstPositional != nil {
			return fmt.Errorf(
				"named item `%s` is declared after positional item `%s`: named items must precede positionals and commands",
				m.visibleName(), (*firstPositional).visibleName(),
			)
		}
		return nil
	case metaPositional, metaAnyToken, metaCommand:
		if *firstPositional == nil {
			*firstPositional = m
		}
		return nil
	}
	for _, c := range m.children {
		if err := c.validateWalk(firstPositional); err != nil {
			return err
		}
	}
	return nil
}
