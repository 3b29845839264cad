package geo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// CachedCalculator memoizes successful lookups of the wrapped Calculator.
// Distance is symmetric so (a, b) and (b, a) share one entry.
type CachedCalculator struct {
	next  Calculator
	cache *lru.Cache[pairKey, float64]
}

func NewCachedCalculator(next Calculator, size int) (*CachedCalculator, error) {
	cache, err := lru.New[pairKey, float64](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create distance cache: %w", err)
	}
	return &CachedCalculator{next: next, cache: cache}, nil
}

func (c *CachedCalculator) Distance(a, b int) (float64, error) {
	key := newPairKey(a, b)
	if d, ok := c.cache.Get(key); ok {
		return d, nil
	}

	d, err := c.next.Distance(a, b)
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, d)
	return d, nil
}

func (c *CachedCalculator) Len() int {
	return c.cache.Len()
}
