package scanner

import "io"

// Fake is a TokenSource backed by a fixed list of tokens. It lets consumers
// of the token stream be tested without source text.
type Fake struct {
	tokens []TokenWithLocation
	i      int
	err    error
}

func NewFake(tokens ...TokenWithLocation) *Fake {
	return &Fake{
		tokens: tokens,
		err:    io.EOF,
	}
}

// WithError makes Next return err instead of io.EOF after the last token.
func (f *Fake) WithError(err error) *Fake {
	f.err = err
	return f
}

func (f *Fake) Next() (TokenWithLocation, error) {
	if f.i >= len(f.tokens) {
		return TokenWithLocation{}, f.err
	}

	t := f.tokens[f.i]
	f.i++
	return t, nil
}
