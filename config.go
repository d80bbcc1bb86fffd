package parsec

// ParseOption adjusts how a parse starts: where the position counter
// begins, how wide tabs are, and what rides in the user-state slot.
type ParseOption func(*parseConfig)

type parseConfig struct {
	name string
	line int
	col  int
	tab  int
	user any
}

func newParseConfig() parseConfig {
	// tab stays zero here; Pos treats zero as the default width.
	return parseConfig{line: 1, col: 1}
}

// WithSourceName names the input in rendered errors, typically with
// the path of the file being parsed.
func WithSourceName(name string) ParseOption {
	return func(c *parseConfig) { c.name = name }
}

// WithPosition starts the position counter at the given line and
// column instead of 1,1.  Useful when the parsed text was cut out of
// a larger document.
func WithPosition(line, col int) ParseOption {
	return func(c *parseConfig) {
		c.line = line
		c.col = col
	}
}

// WithTabWidth sets the tab-stop width used when a tab advances the
// column.  The default is 8.
func WithTabWidth(w int) ParseOption {
	return func(c *parseConfig) { c.tab = w }
}

// WithUserState seeds the user-state slot threaded through the parse.
func WithUserState(user any) ParseOption {
	return func(c *parseConfig) { c.user = user }
}
