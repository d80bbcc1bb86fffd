package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceStream(t *testing.T) {
	t.Run("walks the slice", func(t *testing.T) {
		in := Tokens([]int{1, 2, 3})
		v, rest, ok := in.Uncons()
		require.True(t, ok)
		assert.Equal(t, 1, v)
		v, rest, ok = rest.Uncons()
		require.True(t, ok)
		assert.Equal(t, 2, v)
		v, rest, ok = rest.Uncons()
		require.True(t, ok)
		assert.Equal(t, 3, v)
		_, _, ok = rest.Uncons()
		assert.False(t, ok)
	})

	t.Run("is restartable", func(t *testing.T) {
		in := Runes("ab")
		a1, rest1, _ := in.Uncons()
		a2, rest2, _ := in.Uncons()
		assert.Equal(t, a1, a2)
		b1, _, _ := rest1.Uncons()
		b2, _, _ := rest2.Uncons()
		assert.Equal(t, b1, b2)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, ok := Runes("").Uncons()
		assert.False(t, ok)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("pulls lazily and memoizes", func(t *testing.T) {
		pulls := 0
		next := 0
		in := Generate(func() (int, bool) {
			pulls++
			next++
			if next > 3 {
				return 0, false
			}
			return next, true
		})

		assert.Equal(t, 0, pulls, "nothing is pulled before the first read")

		v, rest, ok := in.Uncons()
		require.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 1, pulls)

		// Re-reading the same cell does not pull again.
		v2, _, _ := in.Uncons()
		assert.Equal(t, v, v2)
		assert.Equal(t, 1, pulls)

		v, rest, ok = rest.Uncons()
		require.True(t, ok)
		assert.Equal(t, 2, v)

		v, rest, ok = rest.Uncons()
		require.True(t, ok)
		assert.Equal(t, 3, v)

		_, _, ok = rest.Uncons()
		assert.False(t, ok)
		endPulls := pulls

		// The exhausted cell stays exhausted.
		_, _, ok = rest.Uncons()
		assert.False(t, ok)
		assert.Equal(t, endPulls, pulls)
	})

	t.Run("backtracking over a generated stream", func(t *testing.T) {
		runes := []rune("lexical")
		i := 0
		in := Generate(func() (rune, bool) {
			if i >= len(runes) {
				return 0, false
			}
			r := runes[i]
			i++
			return r, true
		})

		p := Choice(Try(String("let")), ToStr(Many1(Alpha())))
		r := Parse(p, in)
		require.False(t, r.Failed())
		assert.Equal(t, "lexical", r.Value)
	})
}
