package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/mocks"
)

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]float32
	getErr  error
	setErr  error
	setKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]float32{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setKeys = append(c.setKeys, key)
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = vector
	return nil
}

func TestPinnedEmbedder(t *testing.T) {
	inner := new(mocks.MockEmbedder)
	inner.On("Embed", mock.Anything, []string{"job"}).Return([][]float32{{1, 0}}, nil).Once()
	inner.On("Embed", mock.Anything, []string{"resume"}).Return([][]float32{{0, 1}}, nil).Once()

	pinned, err := NewPinnedEmbedder(context.Background(), inner, "job")
	require.NoError(t, err)

	vectors, err := pinned.Embed(context.Background(), []string{"job", "resume"})

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vectors)
	inner.AssertExpectations(t)
}

func TestPinnedEmbedder_AllPinnedSkipsInner(t *testing.T) {
	inner := &mocks.BagOfWordsEmbedder{}

	pinned, err := NewPinnedEmbedder(context.Background(), inner, "job", "other")
	require.NoError(t, err)
	require.Equal(t, 1, inner.Calls)

	_, err = pinned.Embed(context.Background(), []string{"other", "job"})

	require.NoError(t, err)
	assert.Equal(t, 1, inner.Calls)
}

func TestPinnedEmbedder_Errors(t *testing.T) {
	apiErr := errors.New("unavailable")

	t.Run("pinning fails", func(t *testing.T) {
		inner := new(mocks.MockEmbedder)
		inner.On("Embed", mock.Anything, mock.Anything).Return(nil, apiErr)

		_, err := NewPinnedEmbedder(context.Background(), inner, "job")

		require.ErrorIs(t, err, apiErr)
	})

	t.Run("forwarded call fails", func(t *testing.T) {
		inner := new(mocks.MockEmbedder)
		inner.On("Embed", mock.Anything, []string{"job"}).Return([][]float32{{1}}, nil).Once()
		inner.On("Embed", mock.Anything, []string{"resume"}).Return(nil, apiErr).Once()

		pinned, err := NewPinnedEmbedder(context.Background(), inner, "job")
		require.NoError(t, err)

		_, err = pinned.Embed(context.Background(), []string{"job", "resume"})
		require.ErrorIs(t, err, apiErr)
	})
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	inner := &mocks.BagOfWordsEmbedder{}
	embedder := NewCachedEmbedder(inner, cache, "gemini/text-embedding-004")

	first, err := embedder.Embed(ctx, []string{"job", "resume"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Calls)
	assert.Len(t, cache.data, 2)

	second, err := embedder.Embed(ctx, []string{"resume", "job"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Calls)
	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[0])

	_, err = embedder.Embed(ctx, []string{"job", "new text"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls)
	assert.Len(t, cache.data, 3)
}

func TestCachedEmbedder_CacheFailuresAreMisses(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	inner := &mocks.BagOfWordsEmbedder{}

	vectors, err := NewCachedEmbedder(inner, cache, "m").Embed(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 1, inner.Calls)
	assert.Len(t, cache.setKeys, 2)
}

func TestCachedEmbedder_InnerError(t *testing.T) {
	apiErr := errors.New("quota")
	inner := new(mocks.MockEmbedder)
	inner.On("Embed", mock.Anything, mock.Anything).Return(nil, apiErr)
	cache := newMemoryCache()

	_, err := NewCachedEmbedder(inner, cache, "m").Embed(context.Background(), []string{"a"})

	require.ErrorIs(t, err, apiErr)
	assert.Empty(t, cache.data)
}

func TestEmbeddingCacheKey(t *testing.T) {
	key := EmbeddingCacheKey("openai/text-embedding-3-small", "hello")

	assert.Equal(t, "embedding:openai/text-embedding-3-small:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", key)
	assert.NotEqual(t, key, EmbeddingCacheKey("gemini/text-embedding-004", "hello"))
}

func TestExpireSeconds(t *testing.T) {
	assert.Equal(t, int64(1), expireSeconds(time.Millisecond))
	assert.Equal(t, int64(1), expireSeconds(999*time.Millisecond))
	assert.Equal(t, int64(1), expireSeconds(time.Second))
	assert.Equal(t, int64(2), expireSeconds(1500*time.Millisecond))
	assert.Equal(t, int64(86400), expireSeconds(24*time.Hour))
}

func TestValkeyEmbeddingCache_Integration(t *testing.T) {
	address := os.Getenv("VALKEY_TEST_ADDRESS")
	if address == "" {
		t.Skip("VALKEY_TEST_ADDRESS not set, skipping integration test")
	}

	ctx := context.Background()
	cache, closeCache, err := NewValkeyEmbeddingCache(ctx, address, os.Getenv("VALKEY_TEST_PASSWORD"), time.Minute)
	require.NoError(t, err)
	defer closeCache()

	key := EmbeddingCacheKey("test", time.Now().String())

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, []float32{0.25, -1, 3.5}))

	vector, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float32{0.25, -1, 3.5}, vector)
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

// newOpenAIServer answers embedding requests with one vector per input,
// listed in reverse order. Vector i is [len(input_i), i].
func newOpenAIServer(t *testing.T, requests *[]embeddingRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embeddingRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if requests != nil {
			*requests = append(*requests, req)
		}

		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float64{float64(len([]rune(req.Input[i]))), float64(i)},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestOpenAIEmbedder(t *testing.T) {
	var requests []embeddingRequest
	server := newOpenAIServer(t, &requests)

	embedder := NewOpenAIService("sk-test", server.URL, "text-embedding-3-small", 3)
	vectors, err := embedder.Embed(context.Background(), []string{"résumé", "go"})

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{3, 0}, {2, 1}}, vectors)

	require.Len(t, requests, 1)
	assert.Equal(t, "text-embedding-3-small", requests[0].Model)
	assert.Equal(t, []string{"rés", "go"}, requests[0].Input)
}

func TestOpenAIEmbedder_EmptyInput(t *testing.T) {
	vectors, err := NewOpenAIService("sk-test", "http://127.0.0.1:1", "m", 0).Embed(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestOpenAIEmbedder_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[1]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer server.Close()

	_, err := NewOpenAIService("sk-test", server.URL, "m", 0).Embed(context.Background(), []string{"a", "b"})

	require.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func TestOpenAIEmbedder_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := NewOpenAIService("sk-test", server.URL, "m", 0).Embed(context.Background(), []string{"a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate embeddings")
}

func TestNewEmbedderFromConfig(t *testing.T) {
	var requests []embeddingRequest
	server := newOpenAIServer(t, &requests)

	cfg := &config.Config{
		OpenAI: config.OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL},
		Embedding: config.EmbeddingConfig{
			Provider:          config.ProviderOpenAI,
			Model:             "text-embedding-3-small",
			Timeout:           time.Second,
			PinJobDescription: true,
		},
	}

	embedder, cleanup, err := NewEmbedderFromConfig(context.Background(), cfg, flaskJob)
	require.NoError(t, err)
	defer cleanup()
	require.Len(t, requests, 1)

	score, err := NewSimilarityScorer(embedder).Score(context.Background(), flaskJob, "Go")
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)

	require.Len(t, requests, 2)
	assert.Equal(t, []string{"Go"}, requests[1].Input)
}

func TestNewEmbedderFromConfig_Errors(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		cfg := &config.Config{Embedding: config.EmbeddingConfig{Provider: "word2vec"}}

		_, cleanup, err := NewEmbedderFromConfig(context.Background(), cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown embedding provider")
		cleanup()
	})

	t.Run("unreachable cache", func(t *testing.T) {
		cfg := &config.Config{
			OpenAI:    config.OpenAIConfig{APIKey: "sk-test"},
			Embedding: config.EmbeddingConfig{Provider: config.ProviderOpenAI, Model: "m"},
			Cache:     config.CacheConfig{Address: "127.0.0.1:1"},
		}

		_, _, err := NewEmbedderFromConfig(context.Background(), cfg)

		require.Error(t, err)
	})
}

func TestNewExtractorFromConfig(t *testing.T) {
	for _, backend := range []string{config.PDFBackendPDF, config.PDFBackendFitz} {
		extractor, err := NewExtractorFromConfig(&config.Config{Extraction: config.ExtractionConfig{PDFBackend: backend}})
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	}

	_, err := NewExtractorFromConfig(&config.Config{Extraction: config.ExtractionConfig{PDFBackend: "poppler"}})
	assert.Error(t, err)
}
