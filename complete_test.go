// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func compValues(items []CompItem) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Value
	}
	return out
}

func TestCompleteOffersNamesAndCommands(t *testing.T) {
	t.Parallel()

	sub, err := ToOptions(Pure(""))
	require.Nil(t, err)
	p := Construct2(
		Fallback(Long("verbose").Short('v').Switch(), false),
		Parser[string](Command("check", "validate inputs", sub)),
		func(v bool, c string) string { return c },
	)
	op := mustOptions(t, p)

	values := compValues(op.Complete(nil))
	require.Contains(t, values, "check")
	require.Contains(t, values, "--verbose")
	require.Contains(t, values, "-v")
	require.Contains(t, values, "--help")
}

func TestCompleteRanksPartialWord(t *testing.T) {
	t.Parallel()

	sub, err := ToOptions(Pure(""))
	require.Nil(t, err)
	p := First(
		Parser[string](Command("check", "validate inputs", sub)),
		Parser[string](Command("clean", "remove artifacts", sub)),
		Parser[string](Command("build", "compile things", sub)),
	)
	op := mustOptions(t, p)

	values := compValues(op.Complete([]string{"ch"}))
	require.Contains(t, values, "check")
	require.NotContains(t, values, "build")
}

func TestCompletePartialFlag(t *testing.T) {
	t.Parallel()

	p := Construct2(
		Fallback(Long("verbose").Switch(), false),
		Fallback(Long("version-check").Switch(), false),
		func(a, b bool) bool { return a },
	)
	op := mustOptions(t, p)

	values := compValues(op.Complete([]string{"--verb"}))
	require.Contains(t, values, "--verbose")
	require.NotContains(t, values, "--version-check")
}

func TestCompleteBareDash(t *testing.T) {
	t.Parallel()

	sub, err := ToOptions(Pure(""))
	require.Nil(t, err)
	p := Construct3(
		Fallback(Long("force").Switch(), false),
		Fallback(Long("quiet").Switch(), false),
		OptionalOf(Parser[string](Command("check", "validate inputs", sub))),
		func(f, q bool, c Optional[string]) bool { return f },
	)
	op := mustOptions(t, p)

	// A lone dash names no pattern yet; it still lists every flag.
	for _, partial := range []string{"-", "--"} {
		values := compValues(op.Complete([]string{partial}))
		require.Contains(t, values, "--force")
		require.Contains(t, values, "--quiet")
		require.Contains(t, values, "--help")
		require.NotContains(t, values, "check")
	}
}

func TestCompleteDropsConsumedFlags(t *testing.T) {
	t.Parallel()

	p := Construct2(
		Fallback(Long("force").Switch(), false),
		Fallback(Long("quiet").Switch(), false),
		func(a, b bool) bool { return a },
	)
	op := mustOptions(t, p)

	values := compValues(op.Complete([]string{"--force", ""}))
	require.NotContains(t, values, "--force")
	require.Contains(t, values, "--quiet")
}

func TestCompleteArgumentValue(t *testing.T) {
	t.Parallel()

	levels := func(prefix string) []string {
		return []string{"debug", "info", "warn", "error"}
	}
	op := mustOptions(t, Long("level").Argument("LEVEL").Complete(levels))

	// Space-separated value slot.
	values := compValues(op.Complete([]string{"--level", ""}))
	require.Equal(t, []string{"debug", "info", "warn", "error"}, values)

	// Joined value slot keeps the name= prefix.
	values = compValues(op.Complete([]string{"--level=de"}))
	require.Equal(t, []string{"--level=debug", "--level=info", "--level=warn", "--level=error"}, values)
}

func TestCompleteArgumentMetavarPlaceholder(t *testing.T) {
	t.Parallel()

	op := mustOptions(t, Long("file").Argument("FILE"))

	// Without a registered completer the metavar is the only hint.
	values := compValues(op.Complete([]string{"--file", ""}))
	require.Equal(t, []string{"FILE"}, values)
}

func TestCompletePositionalValues(t *testing.T) {
	t.Parallel()

	pos := Positional("ACTION").Complete(func(prefix string) []string {
		return []string{"start", "stop"}
	})
	op := mustOptions(t, pos)

	values := compValues(op.Complete([]string{"st"}))
	require.Contains(t, values, "start")
	require.Contains(t, values, "stop")
}

func TestCompleteHiddenStaysHidden(t *testing.T) {
	t.Parallel()

	p := Construct2(
		Fallback(Long("public").Switch(), false),
		Hide(Fallback(Long("secret").Switch(), false)),
		func(a, b bool) bool { return a },
	)
	op := mustOptions(t, p)

	values := compValues(op.Complete(nil))
	require.Contains(t, values, "--public")
	require.NotContains(t, values, "--secret")
}
