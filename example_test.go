package memoize_test

import (
	"context"
	"fmt"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	memoize "github.com/veartutop/memoizex"
)

func ExampleNew() {
	// Create memoized function instance.
	m := memoize.New(func(ctx context.Context, args ...interface{}) (int, error) {
		fmt.Println("computing", args[0])

		return args[0].(int) * 2, nil
	}, memoize.Config{
		Name:       "doubler",
		TimeToLive: time.Minute,
		Logger:     &ctxd.LoggerMock{},
		Stats:      &stats.TrackerMock{},
	})

	// Use context if available.
	ctx := context.TODO()

	v, _ := m.Call(ctx, 21)
	fmt.Println("got", v)

	// The second call is served from memory without recomputing.
	v, _ = m.Call(ctx, 21)
	fmt.Println("got", v)

	// Output:
	// computing 21
	// got 42
	// got 42
}

func ExampleMemoized_Reset() {
	calls := 0
	m := memoize.New(func(ctx context.Context, args ...interface{}) (string, error) {
		calls++

		return fmt.Sprintf("result-%d", calls), nil
	})

	ctx := context.TODO()

	v1, _ := m.Call(ctx, "query")

	// Reset drops every entry regardless of remaining validity.
	m.Reset()

	v2, _ := m.Call(ctx, "query")

	fmt.Println(v1, v2)

	// Output:
	// result-1 result-2
}
