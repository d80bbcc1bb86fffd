package parsec

// Parsers over the state record itself.  None of them consume input;
// they exist so grammars can carry context (indentation stacks,
// symbol tables, counters) without any ambient globals.

// GetState produces the current user value.
func GetState[T any]() Parser[T, any] {
	return func(s State[T]) reply[T, any] {
		return emptyOK(s.User, s, newErrUnknown(s.Pos))
	}
}

// PutState replaces the user value.
func PutState[T any](user any) Parser[T, struct{}] {
	return func(s State[T]) reply[T, struct{}] {
		return emptyOK(struct{}{}, s.withUser(user), newErrUnknown(s.Pos))
	}
}

// ModifyState replaces the user value with f of it.
func ModifyState[T any](f func(any) any) Parser[T, struct{}] {
	return func(s State[T]) reply[T, struct{}] {
		return emptyOK(struct{}{}, s.withUser(f(s.User)), newErrUnknown(s.Pos))
	}
}

// GetPosition produces the current position.
func GetPosition[T any]() Parser[T, Pos] {
	return func(s State[T]) reply[T, Pos] {
		return emptyOK(s.Pos, s, newErrUnknown(s.Pos))
	}
}

// GetInput produces the unconsumed input.
func GetInput[T any]() Parser[T, Stream[T]] {
	return func(s State[T]) reply[T, Stream[T]] {
		return emptyOK(s.Input, s, newErrUnknown(s.Pos))
	}
}

// SetInput swaps the unconsumed input, leaving the position alone.
// Paired with GetInput this implements include-style expansion.
func SetInput[T any](in Stream[T]) Parser[T, struct{}] {
	return func(s State[T]) reply[T, struct{}] {
		return emptyOK(struct{}{}, s.withInput(in), newErrUnknown(s.Pos))
	}
}
