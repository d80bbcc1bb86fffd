package parsec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Satisfy accepts a single rune approved by pred, with character
// position tracking installed.  Every character parser below bottoms
// out here.
func Satisfy(pred func(rune) bool) Parser[rune, rune] {
	return Token(pred,
		ShowWith(quoteRune),
		AdvanceWith(NextPosRune))
}

// AnyRune accepts any single character.
func AnyRune() Parser[rune, rune] {
	return Satisfy(func(rune) bool { return true })
}

// Rune accepts exactly r.
func Rune(r rune) Parser[rune, rune] {
	return Expecting(Satisfy(func(c rune) bool { return c == r }), quoteRune(r))
}

// OneOf accepts any character contained in set.
func OneOf(set string) Parser[rune, rune] {
	return Expecting(
		Satisfy(func(c rune) bool { return strings.ContainsRune(set, c) }),
		fmt.Sprintf("(one-of %q)", set))
}

// NoneOf accepts any character not contained in set.
func NoneOf(set string) Parser[rune, rune] {
	return Expecting(
		Satisfy(func(c rune) bool { return !strings.ContainsRune(set, c) }),
		fmt.Sprintf("(none-of %q)", set))
}

// Range accepts any character between lo and hi inclusive.
func Range(lo, hi rune) Parser[rune, rune] {
	return Expecting(
		Satisfy(func(c rune) bool { return c >= lo && c <= hi }),
		fmt.Sprintf("(range %q %q)", string(lo), string(hi)))
}

// Alpha accepts a letter.
func Alpha() Parser[rune, rune] {
	return Expecting(Satisfy(unicode.IsLetter), "letter")
}

// Upper accepts an uppercase letter.
func Upper() Parser[rune, rune] {
	return Expecting(Satisfy(unicode.IsUpper), "uppercase letter")
}

// Lower accepts a lowercase letter.
func Lower() Parser[rune, rune] {
	return Expecting(Satisfy(unicode.IsLower), "lowercase letter")
}

// Numeric accepts a decimal digit.
func Numeric() Parser[rune, rune] {
	return Expecting(Satisfy(unicode.IsDigit), "digit")
}

// AlphaNum accepts a letter or a decimal digit.
func AlphaNum() Parser[rune, rune] {
	return Expecting(
		Satisfy(func(c rune) bool { return unicode.IsLetter(c) || unicode.IsDigit(c) }),
		"letter or digit")
}

// Space accepts a single whitespace character.
func Space() Parser[rune, rune] {
	return Expecting(Satisfy(unicode.IsSpace), "space")
}

// Whitespace skips over zero or more whitespace characters.
func Whitespace() Parser[rune, struct{}] {
	return SkipMany(Space())
}

// Tab accepts a horizontal tab.
func Tab() Parser[rune, rune] {
	return Rune('\t')
}

// Newline accepts a Unix or a DOS line ending, producing '\n' for
// both.  Note that having seen '\r' it is committed: "\ra" is a
// consumed failure, not an invitation to try another branch.
func Newline() Parser[rune, rune] {
	return Expecting(
		Choice(
			Rune('\n'),
			Then(Rune('\r'), Rune('\n')),
		),
		"newline")
}

// String accepts the characters of lit in order and produces lit.
// Matching is committed: once a prefix of lit has been read, a
// mismatch is a consumed failure pointing at the offending character,
// which is what keeps diagnostics for near-misses like "abx" against
// "abc" precise.
func String(lit string) Parser[rune, string] {
	want := []rune(lit)
	return func(s State[rune]) reply[rune, string] {
		if len(want) == 0 {
			return emptyOK("", s, newErrUnknown(s.Pos))
		}
		cur := s
		for i, r := range want {
			tok, rest, ok := cur.Input.Uncons()
			if !ok {
				err := newErrMessage(kindSysUnexpect, "", cur.Pos)
				return errReply[rune, string](i > 0, err.expect(stringExpectText(lit, i)))
			}
			if tok != r {
				t := tok
				err := newErrMessageLazy(kindSysUnexpect, func() string { return quoteRune(t) }, cur.Pos)
				return errReply[rune, string](i > 0, err.expect(stringExpectText(lit, i)))
			}
			cur = State[rune]{Input: rest, Pos: NextPosRune(cur.Pos, tok, rest), User: cur.User}
		}
		return consumedOK(lit, cur, newErrUnknown(cur.Pos))
	}
}

// stringExpectText describes what String still wanted when it failed
// i characters in.
func stringExpectText(lit string, i int) string {
	if i == 0 {
		return fmt.Sprintf("(string %q)", lit)
	}
	return fmt.Sprintf("%q in (string %q)", string([]rune(lit)[i]), lit)
}

// Match accepts the prefix of the remaining input matched by re,
// anchored at the current position.  Among alternatives the regexp
// package's leftmost-first preference applies, so the match is not
// necessarily the longest one.  The remaining input is
// materialized for the match, so this is meant for token-sized
// patterns, not whole documents.  An empty match succeeds without
// consuming.
func Match(re *regexp.Regexp) Parser[rune, string] {
	label := fmt.Sprintf("(match %q)", re.String())
	return func(s State[rune]) reply[rune, string] {
		var b strings.Builder
		for in := s.Input; ; {
			r, rest, ok := in.Uncons()
			if !ok {
				break
			}
			b.WriteRune(r)
			in = rest
		}
		text := b.String()

		loc := re.FindStringIndex(text)
		if loc == nil || loc[0] != 0 {
			err := unexpectedHere(s)
			return emptyErr[rune, string](err.expect(label))
		}
		matched := text[:loc[1]]
		if matched == "" {
			return emptyOK("", s, newErrUnknown(s.Pos))
		}

		cur := s
		for range matched {
			tok, rest, _ := cur.Input.Uncons()
			cur = State[rune]{Input: rest, Pos: NextPosRune(cur.Pos, tok, rest), User: cur.User}
		}
		return consumedOK(matched, cur, newErrUnknown(cur.Pos))
	}
}

// ToStr turns a parser of runes into a parser of the string they
// spell.
func ToStr[T any](p Parser[T, []rune]) Parser[T, string] {
	return Map(p, func(rs []rune) string { return string(rs) })
}

// unexpectedHere builds the system "unexpected" error for the current
// head of the input.
func unexpectedHere(s State[rune]) *ParseError {
	tok, _, ok := s.Input.Uncons()
	if !ok {
		return newErrMessage(kindSysUnexpect, "", s.Pos)
	}
	t := tok
	return newErrMessageLazy(kindSysUnexpect, func() string { return quoteRune(t) }, s.Pos)
}

func quoteRune(r rune) string {
	return strconv.Quote(string(r))
}
