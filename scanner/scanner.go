// Package scanner tokenizes TOML-like configuration text into keys, strings,
// dots, equal signs and newlines with their source locations.
package scanner

import (
	"fmt"
	"io"
)

const defaultBufferSize = 64

// TokenSource is anything that hands out tokens one at a time. Next returns
// io.EOF once the stream is exhausted.
type TokenSource interface {
	Next() (TokenWithLocation, error)
}

var _ TokenSource = (*Scanner)(nil)

type Options struct {
	// InitialBufferSize is the starting capacity of the token text buffer.
	InitialBufferSize int
	// MaxTokenSize limits the length of a single key or string, 0 means no limit.
	MaxTokenSize int
}

// Scanner splits a TOML-like source into tokens. It is not safe for
// concurrent use.
type Scanner struct {
	src   []byte
	cur   int
	pos   Location
	start Location
	lit   []byte
	max   int
	err   *Error
}

// NewScanner creates a scanner over src. The slice is not copied and must not
// be modified while the scanner is in use.
func NewScanner(src []byte) *Scanner {
	return NewScannerOptions(src, Options{})
}

func NewScannerOptions(src []byte, opts Options) *Scanner {
	size := opts.InitialBufferSize
	if size <= 0 {
		size = defaultBufferSize
	}

	return &Scanner{
		src: src,
		pos: startLocation,
		lit: make([]byte, 0, size),
		max: opts.MaxTokenSize,
	}
}

// Reset prepares the scanner for a new source keeping its buffer.
func (s *Scanner) Reset(src []byte) {
	s.src = src
	s.cur = 0
	s.pos = startLocation
	s.start = startLocation
	s.lit = s.lit[:0]
	s.err = nil
}

// Location returns the location of the next unread character.
func (s *Scanner) Location() Location {
	return s.pos
}

// Diagnostic returns the diagnostic of the step that failed, if any.
func (s *Scanner) Diagnostic() (Diagnostic, bool) {
	if s.err == nil {
		return Diagnostic{}, false
	}

	return s.err.Diagnostic, true
}

// Next scans the next token. It returns io.EOF when the input is exhausted
// and *Error when the input is malformed. After an error the scanner keeps
// returning the same error.
//
// Text of the returned Key and String tokens is overwritten by the next call.
func (s *Scanner) Next() (TokenWithLocation, error) {
	if s.err != nil {
		return TokenWithLocation{}, s.err
	}

	s.lit = s.lit[:0]

	err := s.skipInsignificant()
	if err != nil {
		return TokenWithLocation{}, err
	}

	s.start = s.pos

	var tok Token

	switch classify(s.src[s.cur]) {
	case actString:
		s.advance()
		err = s.scanString()
		tok = Token{Kind: KString, Text: s.lit}
	case actEquals:
		s.advance()
		tok = EqualsToken
	case actDot:
		s.advance()
		tok = DotToken
	case actNewline:
		s.advance()
		tok = NewlineToken
	default:
		err = s.scanKey()
		tok = Token{Kind: KKey, Text: s.lit}
	}

	if err != nil {
		return TokenWithLocation{}, err
	}

	return TokenWithLocation{Token: tok, Location: s.start}, nil
}

type action uint

const (
	actKey action = iota
	actString
	actEquals
	actDot
	actNewline
)

// classify picks the sub-scan for the first character of a token.
func classify(c byte) action {
	switch c {
	case '"':
		return actString
	case '=':
		return actEquals
	case '.':
		return actDot
	case '\n':
		return actNewline
	}

	return actKey
}

func (s *Scanner) peek() (byte, bool) {
	if s.cur >= len(s.src) {
		return 0, false
	}

	return s.src[s.cur], true
}

func (s *Scanner) peekAt(n int) (byte, bool) {
	if s.cur+n >= len(s.src) {
		return 0, false
	}

	return s.src[s.cur+n], true
}

func (s *Scanner) advance() byte {
	c := s.src[s.cur]
	s.cur++

	if c == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}

	return c
}

func (s *Scanner) skipInsignificant() error {
	for {
		c, ok := s.peek()
		if !ok {
			return io.EOF
		}

		switch {
		case isBlank(c):
			s.advance()
		case c == '#':
			s.advance()

			err := s.skipComment()
			if err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipComment stops in front of the line feed that ends the comment.
func (s *Scanner) skipComment() error {
	for {
		c, ok := s.peek()
		if !ok || c == '\n' {
			return nil
		}

		if c == '\r' {
			if n, _ := s.peekAt(1); n == '\n' {
				return nil
			}
		}

		if isControl(c) {
			return s.fail(ErrUnexpectedChar, s.pos,
				"control character %q is not allowed in comment", c)
		}

		s.advance()
	}
}

func (s *Scanner) scanString() error {
	for {
		c, ok := s.peek()
		if !ok {
			return s.fail(io.ErrUnexpectedEOF, s.pos,
				"unterminated string started at %s", s.start)
		}

		switch c {
		case '"':
			s.advance()
			return nil
		case '\\':
			s.advance()

			at := s.pos

			e, ok := s.peek()
			if !ok {
				return s.fail(io.ErrUnexpectedEOF, at,
					"unterminated string started at %s", s.start)
			}

			d, ok := unescape(e)
			if !ok {
				return s.fail(ErrUnexpectedChar, at,
					"invalid escape character %q, expected one of b, t, n, r, f, '\"' or '\\'", e)
			}

			s.advance()

			err := s.emit(d)
			if err != nil {
				return err
			}
		default:
			err := s.emit(s.advance())
			if err != nil {
				return err
			}
		}
	}
}

// scanKey does not consume the terminating character.
func (s *Scanner) scanKey() error {
	for {
		c, ok := s.peek()
		if !ok {
			return nil
		}

		switch {
		case isKey(c):
			err := s.emit(s.advance())
			if err != nil {
				return err
			}
		case isKeyEnd(c):
			return nil
		default:
			return s.fail(ErrUnexpectedChar, s.pos,
				"unexpected character %q in key, expected whitespace, '.', '=' or end of input", c)
		}
	}
}

func (s *Scanner) emit(c byte) error {
	if s.max > 0 && len(s.lit) >= s.max {
		return s.fail(ErrOutOfMemory, s.start,
			"token is longer than %d bytes", s.max)
	}

	s.lit = append(s.lit, c)
	return nil
}

func (s *Scanner) fail(err error, at Location, format string, args ...interface{}) error {
	s.err = &Error{
		Diagnostic: Diagnostic{
			Location: at,
			Message:  fmt.Sprintf(format, args...),
		},
		Err: err,
	}

	return s.err
}

func unescape(c byte) (byte, bool) {
	switch c {
	case 'b':
		return '\b', true
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	}

	return 0, false
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isControl(c byte) bool {
	return (c < 0x20 && c != '\t') || c == 0x7f
}

func isKey(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' ||
		c == '-'
}

func isKeyEnd(c byte) bool {
	return isBlank(c) || c == '\n' || c == '.' || c == '='
}
