package parsec

import (
	"fmt"
	"io"
)

// Trace wraps p so that entering and leaving it is narrated on w.
// The parse behaves exactly as without the wrapper; use it to find
// out which branch of a grammar is eating the input.
func Trace[T, V any](w io.Writer, label string, p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		fmt.Fprintf(w, "%s: enter at %s\n", label, s.Pos)
		r := p(s)
		switch r.tag {
		case rConsumedOK:
			fmt.Fprintf(w, "%s: ok (consumed) at %s: %v\n", label, r.state.Pos, r.value)
		case rEmptyOK:
			fmt.Fprintf(w, "%s: ok (empty) at %s: %v\n", label, r.state.Pos, r.value)
		case rConsumedErr:
			fmt.Fprintf(w, "%s: error (consumed) at %s\n", label, r.err.Pos)
		case rEmptyErr:
			fmt.Fprintf(w, "%s: error (empty) at %s\n", label, r.err.Pos)
		}
		return r
	}
}

// Dump prints the position and the next few tokens without touching
// the parse.
func Dump[T any](w io.Writer, label string) Parser[T, struct{}] {
	const peek = 8
	return func(s State[T]) reply[T, struct{}] {
		fmt.Fprintf(w, "%s: at %s:", label, s.Pos)
		in := s.Input
		for i := 0; i < peek; i++ {
			tok, rest, ok := in.Uncons()
			if !ok {
				fmt.Fprintf(w, " <end of input>")
				break
			}
			fmt.Fprintf(w, " %s", showToken(tok))
			in = rest
		}
		fmt.Fprintln(w)
		return emptyOK(struct{}{}, s, newErrUnknown(s.Pos))
	}
}
