// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

// CmdParser matches one positional token equal to a registered command
// name and hands the remaining stream to an independently built
// grammar with its own names, its own structural validation, and its
// own help. By default the command consumes the entire remainder; with
// Adjacent it claims only the contiguous block its sub-grammar matches
// and returns the rest, enabling several commands chained in one
// invocation.
type CmdParser[T any] struct {
	name     string
	aliases  []string
	sub      *OptionParser[T]
	adjacent bool
	m        *Meta
}

// Command creates a subcommand leaf over an independently defined
// OptionParser.
func Command[T any](name string, help string, sub *OptionParser[T]) *CmdParser[T] {
	return &CmdParser[T]{
		name: name,
		sub:  sub,
		m:    &Meta{kind: metaCommand, cmdName: name, help: help},
	}
}

// Alias registers a hidden alternative spelling for the command name.
func (c *CmdParser[T]) Alias(name string) *CmdParser[T] {
	c.aliases = append(c.aliases, name)
	c.m.cmdAliases = append(c.m.cmdAliases, name)
	return c
}

// Adjacent makes the command claim only the contiguous token block its
// sub-grammar matches, returning the remainder to the caller.
func (c *CmdParser[T]) Adjacent() *CmdParser[T] {
	c.adjacent = true
	return c
}

func (c *CmdParser[T]) meta() *Meta { return c.m }

func (c *CmdParser[T]) matches(word string) bool {
	if word == c.name {
		return true
	}
	for _, a := range c.aliases {
		if word == a {
			return true
		}
	}
	return false
}

func (c *CmdParser[T]) eval(s *state) (T, *failure) {
	var zero T
	i, it, ok := s.st.FindWord()
	if !ok || !c.matches(it.Word) {
		return zero, missing(c.m)
	}
	s.st.Consume(i)

	// The suffix after the command word becomes a fresh, independent
	// consumption context for the sub-grammar.
	sub := c.sub.newStream(s.st.RawSuffix(it.Pos))
	v, bound, fail := c.sub.runStream(sub, c.adjacent)
	if fail != nil {
		switch fail.kind {
		case failExit:
			return zero, fail
		case failMissing:
			// The command name already matched, so an incomplete
			// invocation is reported, not recovered.
			return zero, invalid(failureMessage(fail))
		default:
			return zero, fail
		}
	}
	if c.adjacent {
		s.st.ConsumePosRange(it.Pos, it.Pos+1+bound)
	} else {
		s.st.ConsumeFromPos(it.Pos)
	}
	return v, nil
}
