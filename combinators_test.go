// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManyAndSome(t *testing.T) {
	t.Parallel()

	many := mustOptions(t, Many(ReqFlag(Short('v'), true)))
	some := mustOptions(t, SomeOf(ReqFlag(Short('v'), true)))

	v, err := many.RunArgs([]string{"-v", "-v"})
	require.Nil(t, err)
	require.Equal(t, []bool{true, true}, v)

	// Zero matches: empty for many, missing for some.
	v, err = many.RunArgs(nil)
	require.Nil(t, err)
	require.Empty(t, v)

	_, err = some.RunArgs(nil)
	require.NotNil(t, err)
	require.Contains(t, err.Message, "expected `-v`")
}

func TestManyZeroConsumptionGuard(t *testing.T) {
	t.Parallel()

	// A parser that succeeds without consuming is kept once, then the
	// repetition stops instead of looping forever.
	op := mustOptions(t, Many(Pure(7)))
	v, err := op.RunArgs(nil)
	require.Nil(t, err)
	require.Equal(t, []int{7}, v)
}

func TestCollect(t *testing.T) {
	t.Parallel()

	p := Collect(ParseWith(Short('n').Argument("N"), strconv.Atoi))
	op := mustOptions(t, p)

	v, err := op.RunArgs([]string{"-n", "1", "-n", "1", "-n", "2"})
	require.Nil(t, err)
	require.Equal(t, map[int]struct{}{1: {}, 2: {}}, v)

	v, err = op.RunArgs(nil)
	require.Nil(t, err)
	require.Empty(t, v)
}

func TestCount(t *testing.T) {
	t.Parallel()

	op := mustOptions(t, Count(ReqFlag(Short('v'), true)))

	v, err := op.RunArgs([]string{"-vvv"})
	require.Nil(t, err)
	require.Equal(t, 3, v)

	v, err = op.RunArgs(nil)
	require.Nil(t, err)
	require.Equal(t, 0, v)
}

func TestLastOf(t *testing.T) {
	t.Parallel()

	op := mustOptions(t, LastOf(Short('f').Argument("F")))

	v, err := op.RunArgs([]string{"-f", "one", "-f", "two"})
	require.Nil(t, err)
	require.Equal(t, "two", v)

	_, err = op.RunArgs(nil)
	require.NotNil(t, err)
}

func TestFallback(t *testing.T) {
	t.Parallel()

	p := Fallback(ParseWith(Long("num").Argument("N"), strconv.Atoi), 10)
	op := mustOptions(t, p)

	v, err := op.RunArgs(nil)
	require.Nil(t, err)
	require.Equal(t, 10, v)

	v, err = op.RunArgs([]string{"--num", "3"})
	require.Nil(t, err)
	require.Equal(t, 3, v)

	// An explicit malformed input is reported, never defaulted.
	_, err = op.RunArgs([]string{"--num", "x"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "couldn't parse `x`")
}

func TestFallbackWith(t *testing.T) {
	t.Parallel()

	okOp := mustOptions(t, FallbackWith(
		Long("num").Argument("N"),
		func() (string, error) { return "computed", nil },
	))
	v, err := okOp.RunArgs(nil)
	require.Nil(t, err)
	require.Equal(t, "computed", v)

	badOp := mustOptions(t, FallbackWith(
		Long("num").Argument("N"),
		func() (string, error) { return "", errors.New("no default available") },
	))
	_, err = badOp.RunArgs(nil)
	require.NotNil(t, err)
	require.Contains(t, err.Message, "no default available")
}

func TestGuard(t *testing.T) {
	t.Parallel()

	p := Guard(
		ParseWith(Long("port").Argument("PORT"), strconv.Atoi),
		func(p int) bool { return p > 0 && p < 65536 },
		"port must be in range 1-65535",
	)
	op := mustOptions(t, p)

	v, err := op.RunArgs([]string{"--port", "8080"})
	require.Nil(t, err)
	require.Equal(t, 8080, v)

	_, err = op.RunArgs([]string{"--port", "70000"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "port must be in range 1-65535")
}

func TestOptional(t *testing.T) {
	t.Parallel()

	op := mustOptions(t, OptionalOf(Long("tag").Argument("TAG")))

	v, err := op.RunArgs([]string{"--tag", "v1"})
	require.Nil(t, err)
	require.Equal(t, Some("v1"), v)

	v, err = op.RunArgs(nil)
	require.Nil(t, err)
	require.Equal(t, None[string](), v)
	require.Equal(t, "none", v.OrElse("none"))
}

func TestOptionalInvalidPropagates(t *testing.T) {
	t.Parallel()

	p := OptionalOf(ParseWith(Long("num").Argument("N"), strconv.Atoi))
	op := mustOptions(t, p)

	_, err := op.RunArgs([]string{"--num", "x"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "couldn't parse `x`")
}

func TestOptionalCatchLeavesTokens(t *testing.T) {
	t.Parallel()

	// Two parsers over one name with two result types: the typed one
	// catches its own conversion failure without consuming, so the
	// string one placed later can still claim the tokens.
	typed := OptionalOf(ParseWith(Long("size").Argument("N"), strconv.Atoi)).Catch()
	raw := OptionalOf(Long("size").Argument("SIZE"))
	type sized struct {
		n Optional[int]
		s Optional[string]
	}
	op := mustOptions(t, Construct2(typed, raw, func(n Optional[int], s Optional[string]) sized {
		return sized{n: n, s: s}
	}))

	v, err := op.RunArgs([]string{"--size", "10"})
	require.Nil(t, err)
	require.Equal(t, Some(10), v.n)
	require.Equal(t, None[string](), v.s)

	v, err = op.RunArgs([]string{"--size", "banana"})
	require.Nil(t, err)
	require.Equal(t, None[int](), v.n)
	require.Equal(t, Some("banana"), v.s)
}

func TestManyCatch(t *testing.T) {
	t.Parallel()

	// Catch stops the repetition on a malformed value and leaves it
	// unconsumed for the parser declared after.
	nums := Many(ParseWith(Short('n').Argument("N"), strconv.Atoi)).Catch()
	rest := OptionalOf(Short('n').Argument("WORD"))
	type out struct {
		nums []int
		rest Optional[string]
	}
	op := mustOptions(t, Construct2(nums, rest, func(ns []int, r Optional[string]) out {
		return out{nums: ns, rest: r}
	}))

	v, err := op.RunArgs([]string{"-n", "1", "-n", "x"})
	require.Nil(t, err)
	require.Equal(t, []int{1}, v.nums)
	require.Equal(t, Some("x"), v.rest)
}

func TestMapAndPure(t *testing.T) {
	t.Parallel()

	p := Construct2(
		Map(Long("size").Argument("N"), func(s string) int { return len(s) }),
		Pure("fixed"),
		func(n int, s string) int { return n + len(s) },
	)
	op := mustOptions(t, p)

	v, err := op.RunArgs([]string{"--size", "abc"})
	require.Nil(t, err)
	require.Equal(t, 8, v)
}

func TestFirstAlternation(t *testing.T) {
	t.Parallel()

	p := First(
		ReqFlag(Short('a').Long("all"), "all"),
		ReqFlag(Short('o').Long("one"), "one"),
	)
	op := mustOptions(t, p)

	v, err := op.RunArgs([]string{"-a"})
	require.Nil(t, err)
	require.Equal(t, "all", v)

	v, err = op.RunArgs([]string{"-o"})
	require.Nil(t, err)
	require.Equal(t, "one", v)

	// With neither branch present the merged expectation is reported.
	_, err = op.RunArgs(nil)
	require.NotNil(t, err)
	require.Contains(t, err.Message, "expected `--all` or `--one`")
}

func TestMutualExclusion(t *testing.T) {
	t.Parallel()

	p := First(
		ReqFlag(Long("json"), "json"),
		ReqFlag(Long("yaml"), "yaml"),
	)
	op := mustOptions(t, p)

	_, err := op.RunArgs([]string{"--json", "--yaml"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "`--yaml` cannot be used at the same time as `--json`")
}

func TestNonRepeatableName(t *testing.T) {
	t.Parallel()

	// The same name twice without a repetition combinator always
	// fails.
	op := mustOptions(t, Long("force").Switch())
	_, err := op.RunArgs([]string{"--force", "--force"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "`--force` is used multiple times")

	arg := mustOptions(t, Long("file").Argument("FILE"))
	_, err = arg.RunArgs([]string{"--file", "a", "--file", "b"})
	require.NotNil(t, err)
	require.Contains(t, err.Message, "`--file` is used multiple times")
}

func TestHide(t *testing.T) {
	t.Parallel()

	p := Construct2(
		Long("verbose").Switch(),
		Hide(Long("secret").Switch()),
		func(v, s bool) [2]bool { return [2]bool{v, s} },
	)
	op := mustOptions(t, p)

	// Matching is unaffected.
	v, err := op.RunArgs([]string{"--secret"})
	require.Nil(t, err)
	require.Equal(t, [2]bool{false, true}, v)

	_, err = op.RunArgs([]string{"--help"})
	require.NotNil(t, err)
	require.True(t, err.Stdout)
	require.NotContains(t, err.Message, "--secret")
}
