package reference

import (
	"context"
	"strings"

	"tripsearch/pkg/logger"
)

// Pair is one code to display-name mapping from the backing store.
type Pair struct {
	Code string
	Name string
}

// Loader supplies the full reference data set. Implemented by the
// Postgres store and by fixtures in tests.
type Loader interface {
	LoadReferenceCodes(ctx context.Context) ([]Pair, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]Pair, error)

func (f LoaderFunc) LoadReferenceCodes(ctx context.Context) ([]Pair, error) {
	return f(ctx)
}

// Cache resolves location codes to display names. It loads exactly
// once at construction and is read-only afterwards, so lookups need no
// locking. Resolution is advisory: any miss falls back to the raw code
// and a failed load never reaches the caller.
type Cache struct {
	entries map[string]string
}

func NewCache(ctx context.Context, loader Loader, log logger.Client) *Cache {
	c := &Cache{entries: make(map[string]string)}

	pairs, err := loader.LoadReferenceCodes(ctx)
	if err != nil {
		log.Warn("Reference data unavailable, falling back to raw codes",
			logger.Field{Key: "err", Value: err},
		)
		return c
	}

	for _, p := range pairs {
		code := strings.ToUpper(strings.TrimSpace(p.Code))
		if code == "" || p.Name == "" {
			continue
		}
		if _, dup := c.entries[code]; dup {
			continue
		}
		c.entries[code] = p.Name
	}

	log.Info("Reference data loaded", logger.Field{Key: "entries", Value: len(c.entries)})
	return c
}

// Resolve returns the display name for code, or the code itself when
// unknown.
func (c *Cache) Resolve(code string) string {
	if name, ok := c.entries[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

// Len reports how many codes resolved during load.
func (c *Cache) Len() int {
	return len(c.entries)
}
