package scanner

import "errors"

var (
	// ErrUnexpectedChar is a violation of the lexical grammar.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrOutOfMemory is returned when token text would grow past Options.MaxTokenSize.
	// It is fatal for the scanner.
	ErrOutOfMemory = errors.New("token buffer limit exceeded")
)

// Error is returned by Scanner.Next on a failed step. Err is one of
// ErrUnexpectedChar, ErrOutOfMemory or io.ErrUnexpectedEOF for a string
// that is not closed before the end of input.
type Error struct {
	Diagnostic Diagnostic
	Err        error
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
