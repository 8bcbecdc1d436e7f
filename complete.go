// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// CompItem is one completion candidate offered to a shell.
type CompItem struct {
	Value string
	Help  string
}

// Complete answers a completion query: given the tokens typed so far,
// with the last one possibly partial, it returns the valid next names
// and value suggestions ranked against the partial word. Hidden nodes
// never appear. Dynamic completers registered on argument and
// positional nodes are invoked with the partially typed value.
func (o *OptionParser[T]) Complete(tokens []string) []CompItem {
	partial := ""
	prior := tokens
	if len(tokens) > 0 {
		partial = tokens[len(tokens)-1]
		prior = tokens[:len(tokens)-1]
	}

	// Best-effort pass over the completed tokens so candidates already
	// claimed once drop out.
	st := o.newStream(prior)
	s := &state{st: st, lookupEnv: o.cfg.lookupEnv}
	_, _ = o.inner.eval(s)

	// A value position: the previous token is a valued argument's name
	// awaiting its value, or the partial is --name=prefix.
	if items := o.valueCandidates(prior, partial); items != nil {
		return items
	}

	var pool []CompItem
	walkVisible(o.m, func(it *Meta) {
		switch it.kind {
		case metaCommand:
			pool = append(pool, CompItem{Value: it.cmdName, Help: it.help})
		case metaFlag, metaArg:
			var visible []string
			if len(it.shorts) > 0 {
				visible = append(visible, "-"+string(it.shorts[0]))
			}
			if len(it.longs) > 0 {
				visible = append(visible, "--"+it.longs[0])
			}
			for _, name := range visible {
				if st.CountOf(name) > 0 {
					return
				}
			}
			for _, name := range visible {
				pool = append(pool, CompItem{Value: name, Help: it.help})
			}
		case metaPositional, metaAnyToken:
			if it.completeFn != nil {
				for _, v := range it.completeFn(partial) {
					pool = append(pool, CompItem{Value: v, Help: it.help})
				}
			}
		}
	})
	pool = append(pool, CompItem{Value: "--help", Help: "Prints help information"})
	if o.cfg.version != "" {
		pool = append(pool, CompItem{Value: "--version", Help: "Prints version information"})
	}

	if partial == "" {
		return pool
	}
	return rank(partial, pool)
}

// valueCandidates handles completion inside an argument's value slot.
func (o *OptionParser[T]) valueCandidates(prior []string, partial string) []CompItem {
	if name, prefix, ok := strings.Cut(partial, "="); ok && strings.HasPrefix(name, "-") {
		if it := o.findArgItem(name); it != nil && it.completeFn != nil {
			var out []CompItem
			for _, v := range it.completeFn(prefix) {
				out = append(out, CompItem{Value: name + "=" + v, Help: it.help})
			}
			return out
		}
	}
	if len(prior) == 0 {
		return nil
	}
	it := o.findArgItem(prior[len(prior)-1])
	if it == nil {
		return nil
	}
	if it.completeFn == nil {
		return []CompItem{{Value: it.metavar, Help: it.help}}
	}
	var out []CompItem
	for _, v := range it.completeFn(partial) {
		out = append(out, CompItem{Value: v, Help: it.help})
	}
	return out
}

// findArgItem resolves a dashed spelling to a visible valued-argument
// item.
func (o *OptionParser[T]) findArgItem(dashed string) *Meta {
	var found *Meta
	walkVisible(o.m, func(it *Meta) {
		if it.kind != metaArg || found != nil {
			return
		}
		for _, n := range it.dashedNames() {
			if n == dashed {
				found = it
			}
		}
	})
	return found
}

// rank orders the pool by fuzzy match quality against the partial
// word, dropping candidates that do not match at all. A partial made
// of dashes alone carries no pattern yet; it asks for the flag-shaped
// candidates themselves.
func rank(partial string, pool []CompItem) []CompItem {
	pattern := strings.TrimLeft(partial, "-")
	if pattern == "" {
		out := make([]CompItem, 0, len(pool))
		for _, c := range pool {
			if strings.HasPrefix(c.Value, "-") {
				out = append(out, c)
			}
		}
		return out
	}
	values := make([]string, len(pool))
	for i, c := range pool {
		values[i] = c.Value
	}
	matches := fuzzy.Find(pattern, trimDashes(values))
	out := make([]CompItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, pool[m.Index])
	}
	return out
}

func trimDashes(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimLeft(v, "-")
	}
	return out
}
