// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"fmt"
	"os"

	"github.com/pacak/bpaf-sub000/internal/args"
)

type config struct {
	descr     string
	version   string
	usage     string
	lookupEnv func(string) (string, bool)
}

// Option configures an OptionParser.
type Option func(*config)

// OptionDescription sets the one-line description shown atop help.
func OptionDescription(text string) Option {
	return func(c *config) { c.descr = text }
}

// OptionVersion enables the implicit --version/-V leaf with the given
// version string.
func OptionVersion(version string) Option {
	return func(c *config) { c.version = version }
}

// OptionUsage overrides the generated usage line.
func OptionUsage(usage string) Option {
	return func(c *config) { c.usage = usage }
}

// OptionLookupEnv injects the environment lookup hook consulted by
// named arguments with an Env annotation. Defaults to os.LookupEnv.
func OptionLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *config) { c.lookupEnv = lookupEnv }
}

// OptionParser is a finished grammar: the composed parser, its
// validated Meta, and the program-level metadata. It is stateless and
// reusable across matching, help rendering, and completion.
type OptionParser[T any] struct {
	inner       Parser[T]
	m           *Meta
	cfg         config
	valueShorts map[rune]bool
	digitShorts bool
}

// ToOptions finalizes a parser into a runnable OptionParser. The
// declaration-order invariant is checked here, once, independent of
// any input: a tree placing a positional or command before a named
// item is rejected outright.
func ToOptions[T any](p Parser[T], opts ...Option) (*OptionParser[T], error) {
	cfg := config{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&cfg)
	}
	m := p.meta()
	if err := m.validate(); err != nil {
		return nil, err
	}
	valueShorts, digitShorts := m.splitInfo()
	return &OptionParser[T]{
		inner:       p,
		m:           m,
		cfg:         cfg,
		valueShorts: valueShorts,
		digitShorts: digitShorts,
	}, nil
}

// RunArgs evaluates the grammar against an explicit token list,
// decoupled from however the host obtained it. The returned error is
// nil on success, a render request for help/version, or a rendered
// failure with a nonzero exit code.
func (o *OptionParser[T]) RunArgs(tokens []string) (T, *ParseError) {
	st := o.newStream(tokens)
	v, _, fail := o.runStream(st, false)
	if fail == nil {
		return v, nil
	}
	var zero T
	if fail.kind == failExit {
		return zero, &ParseError{Message: fail.out, Code: fail.code, Stdout: true}
	}
	return zero, userError(failureMessage(fail))
}

// Run evaluates against os.Args and terminates the process on
// anything but success: help and version print to stdout and exit
// zero, failures print to stderr and exit nonzero.
func (o *OptionParser[T]) Run() T {
	v, err := o.RunArgs(os.Args[1:])
	if err == nil {
		return v
	}
	if err.Stdout {
		fmt.Fprintln(os.Stdout, err.Message)
	} else {
		fmt.Fprintln(os.Stderr, err.Message)
	}
	os.Exit(err.ExitCode())
	return v
}

func (o *OptionParser[T]) newStream(tokens []string) *args.Stream {
	return args.New(tokens, args.Split{
		ValueShorts: o.valueShorts,
		DigitShorts: o.digitShorts,
	})
}

// runStream is one full evaluation pass: the help/version pre-scan,
// the grammar walk, and the leftover check. In adjacent mode the
// grammar claims only a contiguous prefix of the stream and reports
// how many raw tokens it took; otherwise any unconsumed leftover is an
// error.
func (o *OptionParser[T]) runStream(st *args.Stream, adjacent bool) (T, int, *failure) {
	var zero T
	if fail := o.prescan(st); fail != nil {
		return zero, 0, fail
	}
	s := &state{st: st, lookupEnv: o.cfg.lookupEnv}
	v, fail := o.inner.eval(s)
	if fail != nil {
		return zero, 0, fail
	}
	if adjacent {
		bound, fail := prefixBound(st)
		if fail != nil {
			return zero, 0, fail
		}
		return v, bound, nil
	}
	if msg := classifyLeftover(st, o.m); msg != "" {
		return zero, 0, invalid(msg)
	}
	return v, 0, nil
}

// prefixBound verifies the consumed items form a contiguous prefix in
// raw-token space and returns the number of raw tokens claimed. A gap
// means some token inside the claimed run was never matched, which is
// an error in an adjacent command block.
func prefixBound(st *args.Stream) (int, *failure) {
	bound := 0
	for i := 0; i < st.Len(); i++ {
		if st.IsConsumed(i) {
			if p := st.At(i).Pos + 1; p > bound {
				bound = p
			}
		}
	}
	for i := 0; i < st.Len(); i++ {
		if !st.IsConsumed(i) && st.At(i).Pos < bound {
			it := st.At(i)
			name := it.Dashed()
			if name == "" {
				name = it.Word
			}
			return 0, invalid(fmt.Sprintf("`%s` is not expected in this context", name))
		}
	}
	return bound, nil
}

// prescan implements the implicit help and version leaves. Both
// short-circuit matching regardless of other failures; a second help
// occurrence switches the render to the verbose mode. The scan stops
// at the first word spelling a registered command name, so a command's
// own help leaf gets to answer instead; plain positional words do not
// end the scan.
func (o *OptionParser[T]) prescan(st *args.Stream) *failure {
	limit := st.Len()
	for i := 0; i < limit; i++ {
		it := st.At(i)
		if it.Kind == args.KindWord && !it.AfterSep && o.m.isCommandWord(it.Word) {
			limit = i
			break
		}
	}
	helpCount := 0
	versionSeen := false
	for i := 0; i < limit; i++ {
		it := st.At(i)
		if it.AfterSep {
			continue
		}
		switch {
		case it.Kind == args.KindLong && it.Name == "help",
			it.Kind == args.KindShort && it.Name == "h":
			helpCount++
		case it.Kind == args.KindLong && it.Name == "version",
			it.Kind == args.KindShort && it.Name == "V":
			versionSeen = true
		}
	}
	if helpCount > 0 {
		return exitRequest(helpText(o.m, o.cfg, helpCount > 1), 0)
	}
	if versionSeen && o.cfg.version != "" {
		return exitRequest("Version: "+o.cfg.version, 0)
	}
	return nil
}
