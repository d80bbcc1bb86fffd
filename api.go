// Package parsec is a library of parser combinators: small parsers
// that compose into grammars, in the Parsec tradition.
//
// Two properties define the family.  Alternation is predictive: a
// branch that consumes any input commits, and backtracking has to be
// requested explicitly with Try.  And failures carry structured
// errors that merge across branches, so the rendered message names
// the position that got furthest and everything that was expected
// there.
package parsec

// Parse runs p over a token stream and returns the terminal reply.
func Parse[T, V any](p Parser[T, V], in Stream[T], opts ...ParseOption) Reply[T, V] {
	cfg := newParseConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := State[T]{
		Input: in,
		Pos:   Pos{Name: cfg.name, Line: cfg.line, Col: cfg.col, tab: cfg.tab},
		User:  cfg.user,
	}
	return terminal(p(s))
}

// ParseString runs a character parser over a string.
func ParseString[V any](p Parser[rune, V], input string, opts ...ParseOption) Reply[rune, V] {
	return Parse(p, Runes(input), opts...)
}
