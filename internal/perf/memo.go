package perf

// Memo caches the results of fn keyed by keyFn(arg).
type Memo[A any, K comparable, R any] struct {
	fn    func(A) R
	keyFn func(A) K
	cache *LRUCache[K, R]
}

// Memoize wraps fn with an LRU of at most maxSize results.
func Memoize[A any, K comparable, R any](fn func(A) R, keyFn func(A) K, maxSize int) *Memo[A, K, R] {
	return &Memo[A, K, R]{fn: fn, keyFn: keyFn, cache: NewLRUCache[K, R](maxSize)}
}

// Call returns the cached result for arg, computing it on a miss.
func (m *Memo[A, K, R]) Call(arg A) R {
	key := m.keyFn(arg)
	if result, ok := m.cache.Get(key); ok {
		return result
	}
	result := m.fn(arg)
	m.cache.Put(key, result)
	return result
}

// Len reports how many results are cached.
func (m *Memo[A, K, R]) Len() int {
	return m.cache.Len()
}

// Purge drops every cached result.
func (m *Memo[A, K, R]) Purge() {
	m.cache.Purge()
}
