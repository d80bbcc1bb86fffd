package parsec

import (
	"fmt"
	"strconv"
)

// Parser consumes a State and reports one of the four outcomes.  T is
// the token type of the input, V the type of the produced value.
// Parsers are pure values: the same parser may be shared between
// parses, goroutines, and grammars without ceremony.
//
// A Parser must invoke exactly one outcome per call, must advance the
// state it returns on the consumed arms, and must leave the state
// untouched on the empty arms.
type Parser[T, V any] func(s State[T]) reply[T, V]

// Return succeeds with x without touching the input.
func Return[T, V any](x V) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		return emptyOK(x, s, newErrUnknown(s.Pos))
	}
}

// Fail fails with a free-form message without touching the input.
func Fail[T, V any](text string) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		return emptyErr[T, V](newErrMessage(kindMessage, text, s.Pos))
	}
}

// Failf is Fail with formatting.
func Failf[T, V any](format string, args ...any) Parser[T, V] {
	return Fail[T, V](fmt.Sprintf(format, args...))
}

// Unexpected fails reporting `text` as the thing that was not
// supposed to be there.  Useful inside semantic checks that run after
// a token already matched syntactically.
func Unexpected[T, V any](text string) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		return emptyErr[T, V](newErrMessage(kindUnexpect, text, s.Pos))
	}
}

//  ---- Token ----

// TokenOption customizes how Token renders, advances past, and
// threads user state for the tokens it accepts.
type TokenOption[T any] func(*tokenConfig[T])

type tokenConfig[T any] struct {
	show    func(T) string
	advance func(Pos, T, Stream[T]) Pos
	update  func(Pos, T, Stream[T], any) any
}

// ShowWith sets the renderer used when a rejected token lands in an
// error message.
func ShowWith[T any](fn func(T) string) TokenOption[T] {
	return func(c *tokenConfig[T]) { c.show = fn }
}

// AdvanceWith sets the position-advance rule applied after a token is
// accepted.
func AdvanceWith[T any](fn func(Pos, T, Stream[T]) Pos) TokenOption[T] {
	return func(c *tokenConfig[T]) { c.advance = fn }
}

// UpdateUserWith installs a transformer for the user-state slot, run
// on every accepted token.
func UpdateUserWith[T any](fn func(Pos, T, Stream[T], any) any) TokenOption[T] {
	return func(c *tokenConfig[T]) { c.update = fn }
}

// Token is the one primitive that consumes input.  It accepts the
// first token of the stream when pred approves of it, advancing the
// position and optionally the user state.  It rejects without
// consuming when the input is empty or pred says no, so Token
// failures never commit an alternation.
func Token[T any](pred func(T) bool, opts ...TokenOption[T]) Parser[T, T] {
	cfg := tokenConfig[T]{show: showToken[T], advance: KeepPos[T]}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(s State[T]) reply[T, T] {
		tok, rest, ok := s.Input.Uncons()
		if !ok {
			return emptyErr[T, T](newErrMessage(kindSysUnexpect, "", s.Pos))
		}
		if !pred(tok) {
			t := tok
			err := newErrMessageLazy(kindSysUnexpect, func() string { return cfg.show(t) }, s.Pos)
			return emptyErr[T, T](err)
		}
		pos := cfg.advance(s.Pos, tok, rest)
		user := s.User
		if cfg.update != nil {
			user = cfg.update(s.Pos, tok, rest, s.User)
		}
		next := State[T]{Input: rest, Pos: pos, User: user}
		return consumedOK(tok, next, newErrUnknown(pos))
	}
}

// AnyToken accepts whatever token comes first, failing only at the
// end of the input.  It does not advance the position, which is fine
// for its main use inside lookahead (see EOF).
func AnyToken[T any]() Parser[T, T] {
	return Token(func(T) bool { return true })
}

//  ---- Sequencing ----

// Bind runs p, feeds its value to f, and runs the parser f returns at
// the spot where p stopped.  The bookkeeping that matters is all
// about errors: an expectation p left open is merged into whatever
// its continuation reports from the same position, so a failure
// downstream can still say what the upstream would have accepted.
func Bind[T, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return func(s State[T]) reply[T, B] {
		r := p(s)
		switch r.tag {
		case rConsumedOK:
			// Anything the continuation does without moving
			// still counts as consumed, and inherits p's
			// residue.
			r2 := f(r.value)(r.state)
			switch r2.tag {
			case rEmptyOK:
				return consumedOK(r2.value, r2.state, merge(r.err, r2.err))
			case rEmptyErr:
				return consumedErr[T, B](merge(r.err, r2.err))
			}
			return r2

		case rEmptyOK:
			if r.err.Empty() {
				return f(r.value)(r.state)
			}
			r2 := f(r.value)(r.state)
			switch r2.tag {
			case rEmptyOK:
				return emptyOK(r2.value, r2.state, merge(r.err, r2.err))
			case rEmptyErr:
				return emptyErr[T, B](merge(r.err, r2.err))
			}
			return r2

		case rConsumedErr:
			return consumedErr[T, B](r.err)

		default:
			return emptyErr[T, B](r.err)
		}
	}
}

//  ---- Alternation ----

// Choice tries each alternative in order.  A branch that fails
// without consuming passes the baton (and its error, for merging) to
// the next; a branch that consumes anything commits the whole choice,
// win or lose.  Wrap a branch in Try to opt out of that commitment.
func Choice[T, V any](ps ...Parser[T, V]) Parser[T, V] {
	if len(ps) == 0 {
		panic("parsec: Choice requires at least one alternative")
	}
	p := ps[0]
	for _, q := range ps[1:] {
		p = orElse(p, q)
	}
	return p
}

func orElse[T, V any](p, q Parser[T, V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		r := p(s)
		if r.tag != rEmptyErr {
			return r
		}
		r2 := q(s)
		switch r2.tag {
		case rEmptyOK:
			return emptyOK(r2.value, r2.state, merge(r.err, r2.err))
		case rEmptyErr:
			return emptyErr[T, V](merge(r.err, r2.err))
		}
		return r2
	}
}

//  ---- Lookahead and backtracking ----

// Try runs p but pretends no input was consumed when p fails.  That
// is the escape hatch from predictive alternation: Choice(Try(p), q)
// will still try q after p fell over three tokens in.  Successes are
// reported verbatim.
func Try[T, V any](p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		r := p(s)
		if r.tag == rConsumedErr {
			return emptyErr[T, V](r.err)
		}
		return r
	}
}

// LookAhead runs p and, when it succeeds, rewinds to the original
// state, reporting the value without consumption.  Failures come back
// unchanged, so combine with Try when p may fail after consuming.
func LookAhead[T, V any](p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		r := p(s)
		if r.ok() {
			return emptyOK(r.value, s, newErrUnknown(s.Pos))
		}
		return r
	}
}

// NotFollowedBy succeeds exactly when p fails, consuming nothing
// either way.  When p would have succeeded, the parsed value shows up
// as the "unexpected" item.  This is the negative-lookahead used to
// cut keywords out of identifiers.
func NotFollowedBy[T, V any](p Parser[T, V], opts ...NotFollowedByOption[V]) Parser[T, V] {
	show := showToken[V]
	for _, opt := range opts {
		opt(&show)
	}
	return func(s State[T]) reply[T, V] {
		r := p(s)
		if r.ok() {
			v := r.value
			err := newErrMessageLazy(kindUnexpect, func() string { return show(v) }, s.Pos)
			return emptyErr[T, V](err)
		}
		var zero V
		return emptyOK(zero, s, newErrUnknown(s.Pos))
	}
}

// NotFollowedByOption customizes NotFollowedBy.
type NotFollowedByOption[V any] func(*func(V) string)

// ShowValueWith sets the renderer NotFollowedBy uses for the value it
// did not want to see.
func ShowValueWith[V any](fn func(V) string) NotFollowedByOption[V] {
	return func(show *func(V) string) { *show = fn }
}

//  ---- Labeling ----

// Expecting renames what p reports under "expecting" whenever p gives
// up (or silently hopes for more) without having consumed input.
// Once p consumes, its own lower-level messages stand: at that point
// they pinpoint the problem better than the label would.
func Expecting[T, V any](p Parser[T, V], label string) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		r := p(s)
		switch r.tag {
		case rEmptyOK:
			if !r.err.Empty() {
				r.err = relabel(r.err, label)
			}
		case rEmptyErr:
			r.err = relabel(r.err, label)
		}
		return r
	}
}

//  ---- Repetition ----

// Many applies p zero or more times and collects the results.  The
// walk is a plain loop: repetition is where parser recursion depth
// would otherwise go linear in the input size.
//
// Handing Many a parser that can succeed on empty input is a
// programming error and panics; it would loop forever otherwise.
func Many[T, V any](p Parser[T, V]) Parser[T, []V] {
	return func(s State[T]) reply[T, []V] {
		var acc []V
		cur, consumed := s, false
		for {
			r := p(cur)
			switch r.tag {
			case rConsumedOK:
				acc = append(acc, r.value)
				cur = r.state
				consumed = true
			case rEmptyOK:
				panicEmptyRepeat("Many")
			case rConsumedErr:
				return consumedErr[T, []V](r.err)
			case rEmptyErr:
				return okReply(consumed, acc, cur, r.err)
			}
		}
	}
}

// Many1 is Many demanding at least one match.
func Many1[T, V any](p Parser[T, V]) Parser[T, []V] {
	return Bind(p, func(x V) Parser[T, []V] {
		return Bind(Many(p), func(xs []V) Parser[T, []V] {
			return Return[T](append([]V{x}, xs...))
		})
	})
}

// SkipMany is Many for effect only: same walk, no accumulation.
func SkipMany[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return func(s State[T]) reply[T, struct{}] {
		cur, consumed := s, false
		for {
			r := p(cur)
			switch r.tag {
			case rConsumedOK:
				cur = r.state
				consumed = true
			case rEmptyOK:
				panicEmptyRepeat("SkipMany")
			case rConsumedErr:
				return consumedErr[T, struct{}](r.err)
			case rEmptyErr:
				return okReply(consumed, struct{}{}, cur, r.err)
			}
		}
	}
}

// SkipMany1 demands at least one match before skipping the rest.
func SkipMany1[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return Bind(p, func(V) Parser[T, struct{}] {
		return SkipMany(p)
	})
}

func panicEmptyRepeat(name string) {
	panic("parsec: " + name + " applied to a parser that accepts the empty string")
}

// showToken renders a token for an error message.  Characters and
// strings come out quoted the way a reader of the input would type
// them; everything else falls back to its natural formatting.
func showToken[V any](v V) string {
	switch t := any(v).(type) {
	case rune:
		return strconv.Quote(string(t))
	case byte:
		return strconv.Quote(string(rune(t)))
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
