package ai

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingEmbedder wraps an Embedder with an LRU memoization cache keyed by
// input text. It exists to avoid re-embedding repeated queries; correctness
// never depends on it. Safe for concurrent use.
type CachingEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps inner with a cache of the given capacity.
func NewCachingEmbedder(inner Embedder, size int) (*CachingEmbedder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachingEmbedder{inner: inner, cache: cache}, nil
}

// EmbedText returns the cached vector for text, embedding and caching it on miss.
// Errors from the inner embedder are never cached.
func (e *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if vector, ok := e.cache.Get(text); ok {
		return vector, nil
	}
	vector, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(text, vector)
	return vector, nil
}

// EmbedTexts embeds a batch, serving individual texts from the cache where
// possible and batching only the misses.
func (e *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if vector, ok := e.cache.Get(text); ok {
			results[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return results, nil
	}

	vectors, err := e.inner.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, vector := range vectors {
		results[missingIdx[j]] = vector
		e.cache.Add(missing[j], vector)
	}
	return results, nil
}

// Len returns the number of cached embeddings.
func (e *CachingEmbedder) Len() int {
	return e.cache.Len()
}
