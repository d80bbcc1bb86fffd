package parsec

import "sync"

// walk carries the state of an iterative sequencing loop: where we
// are, whether anything was consumed so far, and the open "expected"
// residue that a failure at the current spot should absorb.  It is
// the loop-shaped twin of Bind's bookkeeping.
type walk[T any] struct {
	state    State[T]
	consumed bool
	residue  *ParseError
	err      *ParseError
}

func newWalk[T any](s State[T]) *walk[T] {
	return &walk[T]{state: s, residue: newErrUnknown(s.Pos)}
}

// foldOK advances the walk past a successful step.
func (w *walk[T]) foldOK(consumed bool, st State[T], err *ParseError) {
	if consumed {
		w.state, w.consumed, w.residue = st, true, err
	} else {
		w.state = st
		w.residue = merge(w.residue, err)
	}
}

// foldErr records a failed step.  After it, w.consumed and w.err
// describe the reply the caller should emit.
func (w *walk[T]) foldErr(consumed bool, err *ParseError) {
	if consumed {
		w.consumed = true
		w.err = err
	} else {
		w.err = merge(w.residue, err)
	}
}

// walkStep runs one parser at the walk's current state, folding its
// outcome in.  It reports false on failure; the caller then emits
// errReply(w.consumed, w.err).
func walkStep[T, V any](w *walk[T], p Parser[T, V]) (V, bool) {
	r := p(w.state)
	if r.ok() {
		w.foldOK(r.consumed(), r.state, r.err)
		return r.value, true
	}
	w.foldErr(r.consumed(), r.err)
	var zero V
	return zero, false
}

//  ---- Everyday glue ----

// Map transforms the value a parser produces.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Bind(p, func(x A) Parser[T, B] {
		return Return[T](f(x))
	})
}

// Then runs p, throws its value away, and runs q.
func Then[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Bind(p, func(A) Parser[T, B] {
		return q
	})
}

// ThenSkip runs p then q, keeping p's value.
func ThenSkip[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Bind(p, func(x A) Parser[T, A] {
		return Map(q, func(B) A { return x })
	})
}

// Seq runs each parser in order and collects their values.
func Seq[T, V any](ps ...Parser[T, V]) Parser[T, []V] {
	return func(s State[T]) reply[T, []V] {
		w := newWalk(s)
		acc := make([]V, 0, len(ps))
		for _, p := range ps {
			v, ok := walkStep(w, p)
			if !ok {
				return errReply[T, []V](w.consumed, w.err)
			}
			acc = append(acc, v)
		}
		return okReply(w.consumed, acc, w.state, w.residue)
	}
}

// Between parses open, then p, then close, keeping only p's value.
func Between[T, O, V, C any](open Parser[T, O], p Parser[T, V], close Parser[T, C]) Parser[T, V] {
	return Bind(open, func(O) Parser[T, V] {
		return ThenSkip(p, close)
	})
}

// Option tries p and yields def when p fails without consuming.
func Option[T, V any](def V, p Parser[T, V]) Parser[T, V] {
	return Choice(p, Return[T](def))
}

// Optional tries p and succeeds whether or not it matched, keeping
// nothing.  Failure after consumption still fails.
func Optional[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return Choice(
		Map(p, func(V) struct{} { return struct{}{} }),
		Return[T](struct{}{}),
	)
}

// Count applies p exactly n times.  A count of zero or less asks for
// nothing and produces an empty list.
func Count[T, V any](n int, p Parser[T, V]) Parser[T, []V] {
	if n <= 0 {
		return Return[T]([]V(nil))
	}
	return func(s State[T]) reply[T, []V] {
		w := newWalk(s)
		acc := make([]V, 0, n)
		for i := 0; i < n; i++ {
			v, ok := walkStep(w, p)
			if !ok {
				return errReply[T, []V](w.consumed, w.err)
			}
			acc = append(acc, v)
		}
		return okReply(w.consumed, acc, w.state, w.residue)
	}
}

//  ---- Separated lists ----

// SepBy parses zero or more p separated by sep: the shape of argument
// lists and comma-separated values.
func SepBy[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Choice(SepBy1(p, sep), Return[T]([]V(nil)))
}

// SepBy1 is SepBy demanding at least one p.
func SepBy1[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Bind(p, func(x V) Parser[T, []V] {
		return Bind(Many(Then(sep, p)), func(xs []V) Parser[T, []V] {
			return Return[T](append([]V{x}, xs...))
		})
	})
}

// EndBy parses zero or more p each followed by sep: the shape of
// semicolon-terminated statements.
func EndBy[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Many(ThenSkip(p, sep))
}

// EndBy1 is EndBy demanding at least one p.
func EndBy1[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Many1(ThenSkip(p, sep))
}

// SepEndBy parses zero or more p separated by sep, tolerating one
// trailing sep.
func SepEndBy[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Choice(SepEndBy1(p, sep), Return[T]([]V(nil)))
}

// SepEndBy1 is SepEndBy demanding at least one p.  The walk is a
// loop; a sep/p pair that both match empty input would never make
// progress and panics like Many does.
func SepEndBy1[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return func(s State[T]) reply[T, []V] {
		w := newWalk(s)
		x, ok := walkStep(w, p)
		if !ok {
			return errReply[T, []V](w.consumed, w.err)
		}
		acc := []V{x}
		for {
			rs := sep(w.state)
			switch rs.tag {
			case rConsumedErr:
				return consumedErr[T, []V](rs.err)
			case rEmptyErr:
				return okReply(w.consumed, acc, w.state, merge(w.residue, rs.err))
			}
			sepConsumed := rs.tag == rConsumedOK
			w.foldOK(sepConsumed, rs.state, rs.err)

			rp := p(w.state)
			switch rp.tag {
			case rConsumedOK:
				w.foldOK(true, rp.state, rp.err)
				acc = append(acc, rp.value)
			case rEmptyOK:
				if !sepConsumed {
					panicEmptyRepeat("SepEndBy1")
				}
				w.foldOK(false, rp.state, rp.err)
				acc = append(acc, rp.value)
			case rConsumedErr:
				return consumedErr[T, []V](rp.err)
			case rEmptyErr:
				// The sep turned out to be a trailing one.
				return okReply(w.consumed, acc, w.state, merge(w.residue, rp.err))
			}
		}
	}
}

//  ---- Bounded repetition ----

// ManyTill applies p until end matches, collecting p's results.  end
// is attempted first on every round, so
// ManyTill(AnyRune, Try(String("-->"))) reads a comment body without a
// special terminator token.  An end that fails after consuming input
// fails the whole ManyTill, hence the Try.
func ManyTill[T, V, E any](p Parser[T, V], end Parser[T, E]) Parser[T, []V] {
	return func(s State[T]) reply[T, []V] {
		w := newWalk(s)
		var acc []V
		for {
			re := end(w.state)
			switch re.tag {
			case rConsumedOK:
				return consumedOK(acc, re.state, re.err)
			case rEmptyOK:
				return okReply(w.consumed, acc, re.state, merge(w.residue, re.err))
			case rConsumedErr:
				return consumedErr[T, []V](re.err)
			}

			rp := p(w.state)
			switch rp.tag {
			case rConsumedOK:
				w.foldOK(true, rp.state, rp.err)
				acc = append(acc, rp.value)
			case rEmptyOK:
				panicEmptyRepeat("ManyTill")
			case rConsumedErr:
				return consumedErr[T, []V](rp.err)
			case rEmptyErr:
				return errReply[T, []V](w.consumed, merge(re.err, rp.err))
			}
		}
	}
}

//  ---- Expression chains ----

// Chainl1 parses one or more p separated by op, folding the values
// left-associatively with the functions op produces.  This is the
// classic way to parse binary operator expressions without left
// recursion.
func Chainl1[T, V any](p Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		w := newWalk(s)
		x, ok := walkStep(w, p)
		if !ok {
			return errReply[T, V](w.consumed, w.err)
		}
		for {
			before := w.state
			ro := op(w.state)
			switch ro.tag {
			case rConsumedErr:
				return consumedErr[T, V](ro.err)
			case rEmptyErr:
				return okReply(w.consumed, x, w.state, merge(w.residue, ro.err))
			}
			opConsumed := ro.tag == rConsumedOK
			w.foldOK(opConsumed, ro.state, ro.err)

			rp := p(w.state)
			switch rp.tag {
			case rConsumedOK:
				x = ro.value(x, rp.value)
				w.foldOK(true, rp.state, rp.err)
			case rEmptyOK:
				if !opConsumed {
					panicEmptyRepeat("Chainl1")
				}
				x = ro.value(x, rp.value)
				w.foldOK(false, rp.state, rp.err)
			case rConsumedErr:
				return consumedErr[T, V](rp.err)
			case rEmptyErr:
				if opConsumed {
					return consumedErr[T, V](merge(w.residue, rp.err))
				}
				// op matched nothing tangible; pretend the
				// round never happened.
				return okReply(w.consumed, x, before, merge(w.residue, rp.err))
			}
		}
	}
}

// Chainl is Chainl1 falling back to def when not even one p matches.
func Chainl[T, V any](p Parser[T, V], op Parser[T, func(V, V) V], def V) Parser[T, V] {
	return Choice(Chainl1(p, op), Return[T](def))
}

// Chainr1 is Chainl1 with right-associative folding.  Operands and
// operators are gathered in one loop and folded once the chain ends,
// keeping the stack flat on long inputs.
func Chainr1[T, V any](p Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	return func(s State[T]) reply[T, V] {
		w := newWalk(s)
		x, ok := walkStep(w, p)
		if !ok {
			return errReply[T, V](w.consumed, w.err)
		}
		vals := []V{x}
		var fns []func(V, V) V
		foldr := func() V {
			res := vals[len(vals)-1]
			for i := len(fns) - 1; i >= 0; i-- {
				res = fns[i](vals[i], res)
			}
			return res
		}
		for {
			before := w.state
			ro := op(w.state)
			switch ro.tag {
			case rConsumedErr:
				return consumedErr[T, V](ro.err)
			case rEmptyErr:
				return okReply(w.consumed, foldr(), w.state, merge(w.residue, ro.err))
			}
			opConsumed := ro.tag == rConsumedOK
			w.foldOK(opConsumed, ro.state, ro.err)

			rp := p(w.state)
			switch rp.tag {
			case rConsumedOK:
				vals = append(vals, rp.value)
				fns = append(fns, ro.value)
				w.foldOK(true, rp.state, rp.err)
			case rEmptyOK:
				if !opConsumed {
					panicEmptyRepeat("Chainr1")
				}
				vals = append(vals, rp.value)
				fns = append(fns, ro.value)
				w.foldOK(false, rp.state, rp.err)
			case rConsumedErr:
				return consumedErr[T, V](rp.err)
			case rEmptyErr:
				if opConsumed {
					return consumedErr[T, V](merge(w.residue, rp.err))
				}
				return okReply(w.consumed, foldr(), before, merge(w.residue, rp.err))
			}
		}
	}
}

// Chainr is Chainr1 falling back to def when not even one p matches.
func Chainr[T, V any](p Parser[T, V], op Parser[T, func(V, V) V], def V) Parser[T, V] {
	return Choice(Chainr1(p, op), Return[T](def))
}

// Lazy defers building a parser until it first runs, which is how a
// recursive grammar ties the knot: declare the variable, refer to it
// through Lazy, assign it afterwards.
func Lazy[T, V any](build func() Parser[T, V]) Parser[T, V] {
	var (
		once sync.Once
		p    Parser[T, V]
	)
	return func(s State[T]) reply[T, V] {
		once.Do(func() { p = build() })
		return p(s)
	}
}

//  ---- End of input ----

// EOF succeeds only when no input remains.  The token it trips over
// otherwise becomes the "unexpected" item.
func EOF[T any]() Parser[T, struct{}] {
	p := Expecting(NotFollowedBy(AnyToken[T]()), endOfInputDesc)
	return Map(p, func(T) struct{} { return struct{}{} })
}
