package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/valkey-io/valkey-go"
)

// EmbeddingCache stores vectors by key. Get reports ok=false on a miss.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) (vector []float32, ok bool, err error)
	Set(ctx context.Context, key string, vector []float32) error
}

type valkeyEmbeddingCache struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeyEmbeddingCache connects and pings before returning.
func NewValkeyEmbeddingCache(ctx context.Context, address, password string, ttl time.Duration) (EmbeddingCache, func(), error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &valkeyEmbeddingCache{client: client, ttl: ttl}, client.Close, nil
}

// Get implements EmbeddingCache.
func (c *valkeyEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal(raw, &vector); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached embedding: %w", err)
	}

	return vector, true, nil
}

// Set implements EmbeddingCache.
func (c *valkeyEmbeddingCache) Set(ctx context.Context, key string, vector []float32) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	cmd := c.client.B().Set().Key(key).Value(valkey.BinaryString(raw))
	if c.ttl > 0 {
		err = c.client.Do(ctx, cmd.ExSeconds(expireSeconds(c.ttl)).Build()).Error()
	} else {
		err = c.client.Do(ctx, cmd.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("failed to write cached embedding: %w", err)
	}

	return nil
}

// expireSeconds rounds ttl up to whole seconds; EX rejects 0.
func expireSeconds(ttl time.Duration) int64 {
	return int64((ttl + time.Second - 1) / time.Second)
}

type cachedEmbedder struct {
	inner Embedder
	cache EmbeddingCache
	model string
}

// NewCachedEmbedder puts a content-addressed cache in front of inner. Cache
// failures are logged and treated as misses; they never fail a request.
func NewCachedEmbedder(inner Embedder, cache EmbeddingCache, model string) Embedder {
	return &cachedEmbedder{inner: inner, cache: cache, model: model}
}

// EmbeddingCacheKey is the cache key for text under model.
func EmbeddingCacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + model + ":" + hex.EncodeToString(sum[:])
}

// Embed implements Embedder.
func (c *cachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		v, ok, err := c.cache.Get(ctx, EmbeddingCacheKey(c.model, text))
		if err != nil {
			log.Printf("⚠️  Embedding cache read failed: %v\n", err)
		}
		if ok {
			vectors[i] = v
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, idx := range missingIdx {
		vectors[idx] = fetched[j]
		if err := c.cache.Set(ctx, EmbeddingCacheKey(c.model, missing[j]), fetched[j]); err != nil {
			log.Printf("⚠️  Embedding cache write failed: %v\n", err)
		}
	}

	return vectors, nil
}
