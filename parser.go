// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package bpaf composes small argument matchers into a full
// command-line grammar. Primitives (switches, flags, valued arguments,
// positionals, commands) are combined with products, alternations,
// repetition, and recovery combinators into a Parser, which is turned
// into an OptionParser and evaluated against an argument list. The
// same grammar description drives matching, usage/help rendering, and
// completion candidates.
//
// Matching is nondeterministic: combinators snapshot the consumption
// state of the argument stream and roll it back around speculative
// attempts, so a later alternative observes the stream exactly as it
// was before an earlier one failed.
package bpaf

import (
	"github.com/pacak/bpaf-sub000/internal/args"
)

// Parser matches part of a command-line grammar and produces a typed
// value. Parsers are built from the primitives and combinators in this
// package; the interface is sealed and cannot be implemented outside
// of it.
type Parser[T any] interface {
	eval(s *state) (T, *failure)
	meta() *Meta
}

// state is the per-invocation evaluation context: the consumable
// stream plus the injected environment lookup hook.
type state struct {
	st        *args.Stream
	lookupEnv func(string) (string, bool)
}

type failKind uint8

const (
	// failMissing means nothing matched. Recoverable by fallback,
	// optional, repetition, and alternation fallthrough.
	failMissing failKind = iota
	// failInvalid means something matched but failed conversion or
	// validation. Reported unless explicitly caught.
	failInvalid
	// failExit is the help/version short circuit: a render request
	// threaded back through the evaluation call stack so the host
	// decides how to terminate.
	failExit
)

// failure is the internal evaluation outcome for anything other than a
// successful match.
type failure struct {
	kind failKind
	// expected lists the item metas that could have matched, for
	// failMissing.
	expected []*Meta
	// message is the rendered reason, for failInvalid.
	message string
	// out and code carry the render request for failExit.
	out  string
	code int
}

func missing(expected ...*Meta) *failure {
	return &failure{kind: failMissing, expected: expected}
}

func invalid(message string) *failure {
	return &failure{kind: failInvalid, message: message}
}

func exitRequest(out string, code int) *failure {
	return &failure{kind: failExit, out: out, code: code}
}
