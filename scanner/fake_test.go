package scanner_test

import (
	"errors"
	"io"
	"testing"

	"github.com/hummerd/tomlx/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake(t *testing.T) {
	want := []scanner.TokenWithLocation{
		at(scanner.KeyToken("a"), 1, 1),
		at(scanner.EqualsToken, 1, 3),
		at(scanner.IntegerToken(42), 1, 5),
	}

	var src scanner.TokenSource = scanner.NewFake(want...)

	for _, w := range want {
		got, err := src.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	for i := 0; i < 2; i++ {
		_, err := src.Next()
		assert.Equal(t, io.EOF, err)
	}
}

func TestFakeWithError(t *testing.T) {
	boom := errors.New("boom")
	f := scanner.NewFake(at(scanner.DotToken, 1, 1)).WithError(boom)

	_, err := f.Next()
	require.NoError(t, err)

	_, err = f.Next()
	assert.Same(t, boom, err)
}
