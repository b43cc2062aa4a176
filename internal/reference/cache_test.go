package reference

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripsearch/pkg/logger"
)

func fixedLoader(pairs []Pair) Loader {
	return LoaderFunc(func(context.Context) ([]Pair, error) { return pairs, nil })
}

func newTestCache(loader Loader) (*Cache, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewCache(context.Background(), loader, logger.NewWithWriter("development", buf)), buf
}

func TestCache_Resolve(t *testing.T) {
	c, _ := newTestCache(fixedLoader([]Pair{
		{Code: "PAR", Name: "Paris"},
		{Code: "tlv", Name: "Tel Aviv"},
	}))

	assert.Equal(t, "Paris", c.Resolve("PAR"))
	assert.Equal(t, "Paris", c.Resolve("par"), "lookup is case-insensitive")
	assert.Equal(t, "Tel Aviv", c.Resolve("TLV"), "keys upper-cased at build time")
	assert.Equal(t, "XYZ", c.Resolve("XYZ"), "unknown codes fall back to themselves")
}

func TestCache_SkipsDuplicatesAndBlanks(t *testing.T) {
	c, _ := newTestCache(fixedLoader([]Pair{
		{Code: "PAR", Name: "Paris"},
		{Code: "PAR", Name: "Parys"},
		{Code: "", Name: "Nowhere"},
		{Code: "LON", Name: ""},
	}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "Paris", c.Resolve("PAR"), "first mapping wins")
	assert.Equal(t, "LON", c.Resolve("LON"))
}

func TestCache_LoadFailureIsSilent(t *testing.T) {
	failing := LoaderFunc(func(context.Context) ([]Pair, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	c, buf := newTestCache(failing)

	assert.Zero(t, c.Len())
	assert.Equal(t, "PAR", c.Resolve("PAR"), "every lookup falls back")
	assert.Contains(t, buf.String(), "Reference data unavailable")
}
