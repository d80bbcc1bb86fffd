package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	at := func(line, col int) Pos { return Pos{Line: line, Col: col} }

	t.Run("empty error loses to a non-empty one", func(t *testing.T) {
		empty := newErrUnknown(at(1, 5))
		full := newErrMessage(kindExpect, "digit", at(1, 1))
		assert.Same(t, full, merge(empty, full))
		assert.Same(t, full, merge(full, empty))
	})

	t.Run("nil behaves like empty", func(t *testing.T) {
		full := newErrMessage(kindExpect, "digit", at(1, 1))
		assert.Same(t, full, merge(nil, full))
		assert.Same(t, full, merge(full, nil))
	})

	t.Run("the error further into the input wins", func(t *testing.T) {
		near := newErrMessage(kindExpect, "digit", at(1, 2))
		far := newErrMessage(kindExpect, "letter", at(1, 7))
		assert.Same(t, far, merge(near, far))
		assert.Same(t, far, merge(far, near))

		nextLine := newErrMessage(kindExpect, "newline", at(2, 1))
		assert.Same(t, nextLine, merge(far, nextLine))
	})

	t.Run("a position tie unions the messages", func(t *testing.T) {
		e1 := newErrMessage(kindExpect, "digit", at(1, 3))
		e2 := newErrMessage(kindExpect, "letter", at(1, 3))
		merged := merge(e1, e2)
		require.NotNil(t, merged)
		assert.Equal(t, at(1, 3), merged.Pos)
		assert.Equal(t,
			"at line 1, column 3:\nexpecting digit or letter",
			merged.Error())
	})
}

func TestRelabel(t *testing.T) {
	pos := Pos{Line: 1, Col: 1}

	err := newErrMessage(kindSysUnexpect, `"d"`, pos)
	err = err.expect("digit").expect("letter")

	relabeled := relabel(err, "identifier")
	assert.Equal(t,
		"at line 1, column 1:\nunexpected \"d\"\nexpecting identifier",
		relabeled.Error())

	erased := relabel(err, "")
	assert.Equal(t,
		"at line 1, column 1:\nunexpected \"d\"",
		erased.Error())

	// The input error is untouched.
	assert.Equal(t,
		"at line 1, column 1:\nunexpected \"d\"\nexpecting digit or letter",
		err.Error())
}

func TestParseError_Render(t *testing.T) {
	tests := []struct {
		name     string
		build    func(pos Pos) *ParseError
		expected string
	}{
		{
			name:     "no messages",
			build:    newErrUnknown,
			expected: "at line 1, column 1:\nunknown parse error",
		},
		{
			name: "empty system unexpect means end of input",
			build: func(pos Pos) *ParseError {
				return newErrMessage(kindSysUnexpect, "", pos)
			},
			expected: "at line 1, column 1:\nunexpected end of input",
		},
		{
			name: "user unexpect shadows the system one",
			build: func(pos Pos) *ParseError {
				e := newErrMessage(kindSysUnexpect, `"x"`, pos)
				e.msgs = append(e.msgs, msg{kind: kindUnexpect, text: newText("keyword let")})
				return e
			},
			expected: "at line 1, column 1:\nunexpected keyword let",
		},
		{
			name: "expects are sorted and de-duplicated",
			build: func(pos Pos) *ParseError {
				e := newErrMessage(kindExpect, "letter", pos)
				return e.expect("digit").expect("letter").expect(`"_"`)
			},
			expected: "at line 1, column 1:\nexpecting \"_\" or digit or letter",
		},
		{
			name: "free-form messages keep their own lines",
			build: func(pos Pos) *ParseError {
				e := newErrMessage(kindMessage, "number out of range", pos)
				e.msgs = append(e.msgs, msg{kind: kindMessage, text: newText("number out of range")})
				e.msgs = append(e.msgs, msg{kind: kindMessage, text: newText("try a smaller one")})
				return e
			},
			expected: "at line 1, column 1:\nnumber out of range\ntry a smaller one",
		},
		{
			name: "unexpected and expects together",
			build: func(pos Pos) *ParseError {
				e := newErrMessage(kindSysUnexpect, `"}"`, pos)
				return e.expect("expression").expect("digit")
			},
			expected: "at line 1, column 1:\nunexpected \"}\"\nexpecting digit or expression",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.build(Pos{Line: 1, Col: 1})
			assert.Equal(t, test.expected, err.Error())
		})
	}
}

func TestParseError_RenderWithSourceName(t *testing.T) {
	pos := Pos{Name: "grammar.peg", Line: 4, Col: 2}
	err := newErrMessage(kindSysUnexpect, `"!"`, pos)
	assert.Equal(t,
		"at grammar.peg, line 4, column 2:\nunexpected \"!\"",
		err.Error())
}

func TestLazyMessageText(t *testing.T) {
	calls := 0
	err := newErrMessageLazy(kindSysUnexpect, func() string {
		calls++
		return `"x"`
	}, Pos{Line: 1, Col: 1})

	assert.Equal(t, 0, calls, "text must not be rendered eagerly")
	first := err.Error()
	second := err.Error()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "text must be rendered at most once")
}
