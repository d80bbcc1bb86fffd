package parsec

import (
	"fmt"
	"strings"
)

const defaultTabWidth = 8

// Pos points at a line and column within a named input.  Lines and
// columns are both 1-based.  A Pos never moves; advancing the parser
// produces a fresh value.
type Pos struct {
	// Name identifies the input in rendered errors.  Usually a
	// file path.  May be empty.
	Name string

	Line int
	Col  int

	tab int
}

// NewPos returns a position at the top-left corner of the input named
// `name`.
func NewPos(name string) Pos {
	return Pos{Name: name, Line: 1, Col: 1}
}

func (p Pos) String() string {
	var s strings.Builder
	if p.Name != "" {
		s.WriteString(p.Name)
		s.WriteString(", ")
	}
	fmt.Fprintf(&s, "line %d, column %d", p.Line, p.Col)
	return s.String()
}

// before reports whether p comes strictly earlier in the input than
// other.  Comparison is lexicographic on (line, column); the input
// name does not participate.
func (p Pos) before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Pos) tabWidth() int {
	if p.tab <= 0 {
		return defaultTabWidth
	}
	return p.tab
}

//  ---- Advancement ----

// NextPosRune is the position-advance rule for character input: a
// newline moves to column 1 of the next line, a tab moves the column
// to the next tab stop, and everything else moves one column to the
// right.
func NextPosRune(pos Pos, r rune, _ Stream[rune]) Pos {
	switch r {
	case '\n':
		pos.Line++
		pos.Col = 1
	case '\t':
		w := pos.tabWidth()
		pos.Col = pos.Col + w - ((pos.Col - 1) % w)
	default:
		pos.Col++
	}
	return pos
}

// KeepPos is the advance rule for token types that carry no intrinsic
// layout: the position does not move.  Token streams produced by a
// lexer usually install their own rule instead, reading the position
// recorded on the token.
func KeepPos[T any](pos Pos, _ T, _ Stream[T]) Pos {
	return pos
}
