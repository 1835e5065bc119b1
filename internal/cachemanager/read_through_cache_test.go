package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type wrappedInput struct {
	Id int
}

// fakeCacheManager records interactions so tests can assert which path
// the read-through wrapper took.
type fakeCacheManager[V any] struct {
	value    V
	found    bool
	gets     int
	refreshs int
	sets     int
	setValue V
}

func (f *fakeCacheManager[V]) Get(ctx context.Context, key string) (V, bool) {
	f.gets++
	return f.value, f.found
}

func (f *fakeCacheManager[V]) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (V, bool) {
	f.refreshs++
	return f.value, f.found
}

func (f *fakeCacheManager[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	f.sets++
	f.setValue = value
}

func (f *fakeCacheManager[V]) Delete(ctx context.Context, keys ...string) error { return nil }
func (f *fakeCacheManager[V]) Flush(ctx context.Context) error                  { return nil }
func (f *fakeCacheManager[V]) ItemCount() int                                   { return 0 }

func computeExamples(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
	return []*ExampleStruct{
		{
			ID: input.Id,
		},
	}, nil
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		true,
	)

	examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	require.Zero(t, manager.gets, "disabled cache is never consulted")
	require.Zero(t, manager.sets)
}

func TestReadThroughCache_GetWithRefresh_WithCacheDisabled(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		true,
	)

	examples, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	require.Zero(t, manager.refreshs)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{
		value: []*ExampleStruct{{ID: 1, Name: "Example"}},
		found: true,
	}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		false,
	)

	examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1, Name: "Example"}}, examples)
	require.Equal(t, 1, manager.gets)
	require.Zero(t, manager.sets, "hit must not rewrite the entry")
}

func TestReadThroughCache_Get_EmptyCache(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		false,
	)

	examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	require.Equal(t, 1, manager.sets, "miss must populate the cache")
	require.Equal(t, examples, manager.setValue)
}

func TestReadThroughCache_Get_ComputeError(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			return nil, errors.New("failed to get data")
		},
		false,
	)

	_, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.Error(t, err)
	require.Zero(t, manager.sets, "errors are never cached")
}

func TestReadThroughCache_GetWithRefresh_WithValueInCache(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{
		value: []*ExampleStruct{{ID: 1, Name: "Example"}},
		found: true,
	}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		false,
	)

	examples, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1, Name: "Example"}}, examples)
	require.Equal(t, 1, manager.refreshs)
}

func TestReadThroughCache_GetWithRefresh_EmptyCache(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		computeExamples,
		false,
	)

	examples, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	require.Equal(t, 1, manager.sets)
}

func TestReadThroughCache_GetWithRefresh_ComputeError(t *testing.T) {
	manager := &fakeCacheManager[[]*ExampleStruct]{}

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			return nil, errors.New("failed to get data")
		},
		false,
	)

	_, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.Error(t, err)
}
