package tomlx

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hummerd/tomlx/scanner"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	tokenCache = make(map[string][]scanner.TokenWithLocation)
	tokenLock  = sync.RWMutex{}

	scannerPool = sync.Pool{New: func() interface{} {
		return scanner.NewScanner(nil)
	}}
)

// MustTokenize is the same as Tokenize but panics if source can not be tokenized.
func MustTokenize(src []byte) []scanner.TokenWithLocation {
	tokens, err := Tokenize(src)
	if err != nil {
		panic(fmt.Sprintf("can not tokenize: \"%s\", error: %v", src, err))
	}

	return tokens
}

// Tokenize splits src into tokens. Results are cached by source text, so the same
// document is scanned only once. Returned tokens own their text and may be kept.
func Tokenize(src []byte) ([]scanner.TokenWithLocation, error) {
	tokenLock.RLock()
	ct, ok := tokenCache[string(src)]
	tokenLock.RUnlock()

	if ok {
		return clone(ct), nil
	}

	tokenLock.Lock()
	defer tokenLock.Unlock()

	// double check resource locking
	ct, ok = tokenCache[string(src)]
	if ok {
		return clone(ct), nil
	}

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	tokenCache[string(src)] = tokens

	return clone(tokens), nil
}

// TokenizeAll tokenizes every document on its own goroutine with its own scanner.
// The first failure cancels the rest.
func TokenizeAll(ctx context.Context, sources [][]byte) ([][]scanner.TokenWithLocation, error) {
	result := make([][]scanner.TokenWithLocation, len(sources))

	g, ctx := errgroup.WithContext(ctx)

	for i := range sources {
		i := i

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tokens, err := tokenize(sources[i])
			if err != nil {
				return errors.Wrapf(err, "tokenize document %d", i)
			}

			result[i] = tokens
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Collect reads src until io.EOF copying every token out of the source buffer.
// On error the tokens read so far are returned along with it.
func Collect(src scanner.TokenSource) ([]scanner.TokenWithLocation, error) {
	var tokens []scanner.TokenWithLocation

	for {
		t, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}

			return tokens, err
		}

		tokens = append(tokens, t.Clone())
	}
}

func tokenize(src []byte) ([]scanner.TokenWithLocation, error) {
	s := scannerPool.Get().(*scanner.Scanner)
	s.Reset(src)

	defer func() {
		s.Reset(nil)
		scannerPool.Put(s)
	}()

	return Collect(s)
}

func clone(tokens []scanner.TokenWithLocation) []scanner.TokenWithLocation {
	c := make([]scanner.TokenWithLocation, 0, len(tokens))
	for _, t := range tokens {
		c = append(c, t.Clone())
	}

	return c
}
