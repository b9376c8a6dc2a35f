package scanner

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		c    byte
		want action
	}{
		{'"', actString},
		{'=', actEquals},
		{'.', actDot},
		{'\n', actNewline},
		{'a', actKey},
		{'-', actKey},
		{'@', actKey},
		{'[', actKey},
	}

	for _, tt := range tests {
		if got := classify(tt.c); got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestIsKey(t *testing.T) {
	allowed := "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

	for i := 0; i < 256; i++ {
		c := byte(i)
		want := strings.IndexByte(allowed, c) >= 0

		if got := isKey(c); got != want {
			t.Errorf("isKey(%q) = %v, want %v", c, got, want)
		}
	}
}

func TestUnescapeFormFeed(t *testing.T) {
	d, ok := unescape('f')
	if !ok || d != 0x0c {
		t.Fatalf("unescape('f') = %#x, %v", d, ok)
	}
}

func TestScanKeyEmptyOnTerminator(t *testing.T) {
	for _, src := range []string{"=", ".", " ", "\n", ""} {
		s := NewScanner([]byte(src))

		err := s.scanKey()
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}

		if len(s.lit) != 0 || s.cur != 0 {
			t.Fatalf("%q: expected empty key without consuming, got %q at %d", src, s.lit, s.cur)
		}
	}
}
