package scanner

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a Token.
type Kind uint

const (
	KEquals Kind = iota + 1
	KNewline
	KDot
	KKey
	KString
	// Reserved for a parser stage, the scanner never produces these.
	KInteger
	KFloat
	KBoolean
)

var kindNames = [...]string{
	KEquals:  "Equals",
	KNewline: "Newline",
	KDot:     "Dot",
	KKey:     "Key",
	KString:  "String",
	KInteger: "Integer",
	KFloat:   "Float",
	KBoolean: "Boolean",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// Token is a lexical unit. Payload fields are meaningful only for the kind
// that carries them: Text for KKey and KString, Integer, Float and Boolean
// for their kinds.
//
// Text returned by Scanner.Next points into the scanner buffer and is valid
// only until the next call to Next. Use Clone to keep it.
type Token struct {
	Kind    Kind
	Text    []byte
	Integer int64
	Float   float64
	Boolean bool
}

var (
	EqualsToken  = Token{Kind: KEquals}
	NewlineToken = Token{Kind: KNewline}
	DotToken     = Token{Kind: KDot}
)

func KeyToken(text string) Token {
	return Token{Kind: KKey, Text: []byte(text)}
}

func StringToken(text string) Token {
	return Token{Kind: KString, Text: []byte(text)}
}

func IntegerToken(v int64) Token {
	return Token{Kind: KInteger, Integer: v}
}

func FloatToken(v float64) Token {
	return Token{Kind: KFloat, Float: v}
}

func BooleanToken(v bool) Token {
	return Token{Kind: KBoolean, Boolean: v}
}

// Clone returns a copy of the token that does not share Text with the scanner.
func (t Token) Clone() Token {
	if t.Text != nil {
		t.Text = append([]byte(nil), t.Text...)
	}

	return t
}

// Equal reports whether both tokens are the same variant with the same payload.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}

	switch t.Kind {
	case KKey, KString:
		return string(t.Text) == string(o.Text)
	case KInteger:
		return t.Integer == o.Integer
	case KFloat:
		return t.Float == o.Float
	case KBoolean:
		return t.Boolean == o.Boolean
	}

	return true
}

func (t Token) String() string {
	switch t.Kind {
	case KKey, KString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case KInteger:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Integer)
	case KFloat:
		return fmt.Sprintf("%s(%g)", t.Kind, t.Float)
	case KBoolean:
		return fmt.Sprintf("%s(%t)", t.Kind, t.Boolean)
	}

	return t.Kind.String()
}

// TokenWithLocation is the unit returned by a scan step.
type TokenWithLocation struct {
	Token    Token
	Location Location
}

func (t TokenWithLocation) Clone() TokenWithLocation {
	t.Token = t.Token.Clone()
	return t
}

func (t TokenWithLocation) String() string {
	return t.Token.String() + " at " + t.Location.String()
}
