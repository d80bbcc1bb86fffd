package parsec_test

import (
	"fmt"
	"strconv"

	"github.com/clarete/parsec"
)

// A four-operation calculator in a dozen lines: numbers, parentheses,
// and two precedence levels built from Chainl1.
func Example_calculator() {
	lexeme := func(p parsec.Parser[rune, rune]) parsec.Parser[rune, rune] {
		return parsec.ThenSkip(p, parsec.Whitespace())
	}
	number := parsec.Expecting(parsec.Map(
		parsec.ThenSkip(parsec.ToStr(parsec.Many1(parsec.Numeric())), parsec.Whitespace()),
		func(s string) int {
			n, _ := strconv.Atoi(s)
			return n
		}), "number")

	op := func(r rune, f func(int, int) int) parsec.Parser[rune, func(int, int) int] {
		return parsec.Map(lexeme(parsec.Rune(r)), func(rune) func(int, int) int { return f })
	}
	addop := parsec.Choice(
		op('+', func(a, b int) int { return a + b }),
		op('-', func(a, b int) int { return a - b }))
	mulop := parsec.Choice(
		op('*', func(a, b int) int { return a * b }),
		op('/', func(a, b int) int { return a / b }))

	var expr parsec.Parser[rune, int]
	factor := parsec.Choice(
		parsec.Between(lexeme(parsec.Rune('(')),
			parsec.Lazy(func() parsec.Parser[rune, int] { return expr }),
			lexeme(parsec.Rune(')'))),
		number)
	term := parsec.Chainl1(factor, mulop)
	expr = parsec.Chainl1(term, addop)

	input := parsec.ThenSkip(expr, parsec.EOF[rune]())

	for _, src := range []string{"1 + 2 * 3", "(1 + 2) * 3", "10 - 2 - 3"} {
		r := parsec.ParseString(input, src)
		fmt.Printf("%s = %d\n", src, r.Value)
	}
	// Output:
	// 1 + 2 * 3 = 7
	// (1 + 2) * 3 = 9
	// 10 - 2 - 3 = 5
}

// Errors point at the position that got furthest and list what the
// parsers that stopped there expected.  Expectations left open by
// earlier successful rounds of a repetition are not carried along, so
// the letters and digits that could have extended "b" are not listed.
func Example_errorReporting() {
	item := parsec.ToStr(parsec.Many1(parsec.AlphaNum()))
	list := parsec.Between(
		parsec.Rune('['),
		parsec.SepBy(item, parsec.Rune(',')),
		parsec.Rune(']'))

	r := parsec.ParseString(list, "[a,b!", parsec.WithSourceName("list.txt"))
	if r.Failed() {
		fmt.Println(r.Err)
	}
	// Output:
	// at list.txt, line 1, column 5:
	// unexpected "!"
	// expecting "," or "]"
}

// Keywords are carved out of identifiers with Try and NotFollowedBy.
func Example_keywords() {
	keyword := func(name string) parsec.Parser[rune, string] {
		return parsec.Try(parsec.ThenSkip(
			parsec.String(name),
			parsec.NotFollowedBy(parsec.AlphaNum())))
	}
	ident := parsec.ToStr(parsec.Many1(parsec.Alpha()))

	classify := parsec.Choice(
		parsec.Map(keyword("let"), func(string) string { return "keyword" }),
		parsec.Map(ident, func(string) string { return "identifier" }))

	for _, src := range []string{"let", "lexical"} {
		r := parsec.ParseString(classify, src)
		fmt.Printf("%s: %s\n", src, r.Value)
	}
	// Output:
	// let: keyword
	// lexical: identifier
}
