package memory

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// corpus entries are a few hundred KB of JSON; copies dominate Get/Set cost
var corpusPayload = []byte(strings.Repeat(`{"url":"https://medium.com/@x/post","links":[]},`, 4096))

func BenchmarkMemoryCache_GetCorpus(b *testing.B) {
	cache := NewMemoryCache(time.Hour, time.Minute)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		cache.Set(ctx, fmt.Sprintf("corpus:user-%d:0", i), corpusPayload, time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, fmt.Sprintf("corpus:user-%d:0", i%100))
	}
}

func BenchmarkMemoryCache_ConcurrentSetCorpus(b *testing.B) {
	cache := NewMemoryCache(time.Hour, time.Minute)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = cache.Set(ctx, fmt.Sprintf("corpus:user-%d:0", i%100), corpusPayload, time.Hour)
			i++
		}
	})
}
