// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package args

import (
	"strings"
)

// ItemKind distinguishes the three shapes a command-line token can take
// after pre-splitting: a bare word, a long flag, or a short flag.
type ItemKind uint8

const (
	KindWord ItemKind = iota
	KindLong
	KindShort
)

// Item is one pre-split element of the argument stream. A single raw
// token may expand into several items (a clustered run of short flags)
// or carry an attached value (--name=value, -nvalue).
type Item struct {
	Kind ItemKind
	// Name is the flag name without leading dashes. Short names are a
	// single rune wide. Empty for KindWord.
	Name string
	// Value is the attached value for KindLong/KindShort items spelled
	// as --name=value, -n=value, or -nvalue.
	Value    string
	HasValue bool
	// Word is the payload for KindWord items.
	Word string
	// Pos is the index of the originating token in the raw argument
	// list. Items split from one cluster share a Pos.
	Pos int
	// Orig is the raw token text as the user typed it.
	Orig string
	// AfterSep marks items located past the literal "--" separator.
	AfterSep bool
}

// Split describes the parts of the grammar the pre-splitter needs:
// which short names consume an attached value, and whether any short
// name is a digit (controls negative-number detection).
type Split struct {
	ValueShorts map[rune]bool
	DigitShorts bool
}

// looksNumeric reports whether a dash-prefixed token reads as a
// negative decimal number, e.g. -5 or -1.25.
func looksNumeric(tok string) bool {
	body := tok[1:]
	dot := false
	for i, r := range body {
		if r == '.' {
			if dot || i == 0 || i == len(body)-1 {
				return false
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return body != ""
}

// splitToken expands one raw token into stream items.
func splitToken(tok string, pos int, sp Split, out []Item) []Item {
	if strings.HasPrefix(tok, "--") && len(tok) > 2 {
		name := tok[2:]
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			return append(out, Item{Kind: KindLong, Name: name[:eq], Value: name[eq+1:], HasValue: true, Pos: pos, Orig: tok})
		}
		return append(out, Item{Kind: KindLong, Name: name, Pos: pos, Orig: tok})
	}
	if len(tok) > 1 && tok[0] == '-' {
		if looksNumeric(tok) && !sp.DigitShorts {
			return append(out, Item{Kind: KindWord, Word: tok, Pos: pos, Orig: tok})
		}
		runes := []rune(tok[1:])
		head := runes[0]
		rest := string(runes[1:])
		if rest != "" && rest[0] == '=' {
			return append(out, Item{Kind: KindShort, Name: string(head), Value: rest[1:], HasValue: true, Pos: pos, Orig: tok})
		}
		if rest != "" && sp.ValueShorts[head] {
			return append(out, Item{Kind: KindShort, Name: string(head), Value: rest, HasValue: true, Pos: pos, Orig: tok})
		}
		for _, r := range runes {
			out = append(out, Item{Kind: KindShort, Name: string(r), Pos: pos, Orig: tok})
		}
		return out
	}
	return append(out, Item{Kind: KindWord, Word: tok, Pos: pos, Orig: tok})
}

// New pre-splits a raw argument list into a Stream. Every token after a
// literal "--" separator becomes a word item regardless of leading
// dashes; the separator itself is not part of the stream.
func New(raw []string, sp Split) *Stream {
	items := make([]Item, 0, len(raw))
	sep := false
	for pos, tok := range raw {
		if !sep && tok == "--" {
			sep = true
			continue
		}
		if sep {
			items = append(items, Item{Kind: KindWord, Word: tok, Pos: pos, Orig: tok, AfterSep: true})
			continue
		}
		items = splitToken(tok, pos, sp, items)
	}
	return &Stream{
		raw:       raw,
		items:     items,
		consumed:  make([]bool, len(items)),
		counts:    map[string]int{},
		conflicts: map[string]string{},
	}
}
