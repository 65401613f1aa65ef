package memoize_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	pca "github.com/patrickmn/go-cache"
	"github.com/puzpuzpuz/xsync"
	memoize "github.com/veartutop/memoizex"
)

func Benchmark_Call(b *testing.B) {
	m := memoize.New(func(_ context.Context, args ...interface{}) (int, error) {
		return len(args[0].(string)), nil
	}, memoize.Config{TimeToLive: time.Minute})

	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%10000)
		// nolint
		_, _ = m.Call(ctx, k)
	}
}

func Benchmark_Call_concurrent(b *testing.B) {
	m := memoize.New(func(_ context.Context, args ...interface{}) (int, error) {
		return len(args[0].(string)), nil
	}, memoize.Config{TimeToLive: time.Minute})

	ctx := context.Background()
	cardinality := 10000

	for i := 0; i < cardinality; i++ {
		k := "oneone" + strconv.Itoa(i)

		if _, err := m.Call(ctx, k); err != nil {
			b.Fail()
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	numRoutines := 50
	wg := sync.WaitGroup{}
	wg.Add(numRoutines)

	for r := 0; r < numRoutines; r++ {
		cnt := b.N / numRoutines
		if r == 0 {
			cnt = b.N - cnt*(numRoutines-1)
		}

		go func() {
			for i := 0; i < cnt; i++ {
				k := "oneone" + strconv.Itoa((i^12345)%cardinality)

				v, err := m.Call(ctx, k)
				if err != nil || v != len(k) {
					b.Fail()
				}
			}
			wg.Done()
		}()
	}

	wg.Wait()
}

// The naive baselines below cache resolved values only, so concurrent misses
// for one key each invoke the computation. They serve as performance
// reference points, not as alternative designs.

func Benchmark_naiveGoCache(b *testing.B) {
	c := pca.New(time.Minute, 0)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%10000)

		if _, ok := c.Get(k); ok {
			continue
		}

		c.Set(k, len(k), pca.DefaultExpiration)
	}
}

func Benchmark_naiveXsyncMap(b *testing.B) {
	m := xsync.NewMap()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%10000)

		if _, ok := m.Load(k); ok {
			continue
		}

		m.Store(k, len(k))
	}
}
