package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/feature"
	"github.com/ubc-systopia/gosdt-guesses/model"
)

func testDataset(t *testing.T) dataset.Dataset {
	t.Helper()
	metadata := &feature.Metadata{
		Features: []feature.Feature{{Name: "age", Type: feature.Rational}},
		Binary: []feature.BinaryFeature{
			{Index: 0, Original: 0, Relation: ">=", Reference: 3},
			{Index: 1, Original: 0, Relation: ">=", Reference: 7},
		},
	}
	columns := []*bitmask.Bitmask{
		bitmask.FromIndices(8, 2, 3, 4, 5, 6, 7),
		bitmask.FromIndices(8, 6, 7),
	}
	targets := []*bitmask.Bitmask{
		bitmask.FromIndices(8, 0, 1, 2, 3),
		bitmask.FromIndices(8, 4, 5, 6, 7),
	}
	ds, err := dataset.New(metadata, columns, targets, dataset.Config{Regularization: 0.01})
	require.NoError(t, err)
	return ds
}

func testTree(t *testing.T, ds dataset.Dataset, splitFeature int) *model.Model {
	t.Helper()
	negative, err := model.NewLeaf(bitmask.FromIndices(8, 0, 1, 2, 3), ds)
	require.NoError(t, err)
	positive, err := model.NewLeaf(bitmask.FromIndices(8, 4, 5, 6, 7), ds)
	require.NoError(t, err)
	tree, err := model.NewSplit(splitFeature, negative, positive, ds)
	require.NoError(t, err)
	return tree
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	lruStore, err := NewLRUStore(16)
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"lru":    lruStore,
	}
}

func TestInternDeduplicates(t *testing.T) {
	ds := testDataset(t)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := testTree(t, ds, 0)
			canonical, known, err := store.Intern(ctx, first)
			require.NoError(t, err)
			assert.False(t, known)
			assert.Same(t, first, canonical)
			assert.True(t, first.Identified())

			// A structurally equal tree built independently, even on a
			// different split feature, resolves to the interned instance.
			second := testTree(t, ds, 1)
			canonical, known, err = store.Intern(ctx, second)
			require.NoError(t, err)
			assert.True(t, known)
			assert.Same(t, first, canonical)
			assert.False(t, second.Identified())

			length, err := store.Len(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, length)
			require.NoError(t, store.Close(ctx))
		})
	}
}

func TestInternAssignsDistinctIdentifiers(t *testing.T) {
	ds := testDataset(t)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tree := testTree(t, ds, 0)
			other, err := model.NewLeaf(bitmask.FromIndices(8, 0, 1, 2, 3, 4, 5, 6, 7), ds)
			require.NoError(t, err)

			_, _, err = store.Intern(ctx, tree)
			require.NoError(t, err)
			_, _, err = store.Intern(ctx, other)
			require.NoError(t, err)
			require.True(t, tree.Identified())
			require.True(t, other.Identified())
			assert.False(t, tree.Identifier().Equals(other.Identifier()))
		})
	}
}

func TestGet(t *testing.T) {
	ds := testDataset(t)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tree := testTree(t, ds, 0)
			_, _, err := store.Intern(ctx, tree)
			require.NoError(t, err)

			bucket, err := store.Get(ctx, tree.Hash())
			require.NoError(t, err)
			require.Len(t, bucket, 1)
			assert.Same(t, tree, bucket[0])

			bucket, err = store.Get(ctx, tree.Hash()+1)
			require.NoError(t, err)
			assert.Empty(t, bucket)
		})
	}
}

func TestInternWithCancelledContext(t *testing.T) {
	ds := testDataset(t)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, _, err := store.Intern(ctx, testTree(t, ds, 0))
			assert.Error(t, err)
		})
	}
}

func TestInternConcurrent(t *testing.T) {
	ds := testDataset(t)
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	canonicals := make([]*model.Model, 16)
	for i := range canonicals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			canonical, _, err := store.Intern(ctx, testTree(t, ds, i%2))
			assert.NoError(t, err)
			canonicals[i] = canonical
		}(i)
	}
	wg.Wait()
	for _, canonical := range canonicals {
		assert.Same(t, canonicals[0], canonical)
	}
	length, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, length)
}
