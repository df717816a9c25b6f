/*
Package cache provides interning stores for canonical decision trees.
The search engine submits every candidate subtree it discovers; the
store recognizes subtrees it has already seen through their canonical
hash and equality, hands back the canonical instance so it can be
shared across composed trees, and tags each newly interned subtree
with an identifier.
*/
package cache

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/model"
)

const identifierBits = 64

/*
Store is an interface to manage a store where canonical trees are
interned and looked up.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Intern takes a tree and returns its canonical instance: the tree
	// already interned that equals it, or the tree itself, identified and
	// recorded, when no equal tree is known. The boolean reports whether
	// the returned instance was already interned.
	Intern(ctx context.Context, m *model.Model) (*model.Model, bool, error)
	// Get takes a canonical hash and returns the interned trees with
	// that hash, or an error if the store cannot be queried.
	Get(ctx context.Context, hash uint64) ([]*model.Model, error)
	// Len returns the number of interned trees.
	Len(ctx context.Context) (int, error)
	// Close closes the store, freeing any resources in use.
	Close(ctx context.Context) error
}

type memoryStore struct {
	buckets map[uint64][]*model.Model
	lock    sync.RWMutex
	count   int
}

/*
NewMemoryStore returns an implementation of Store with the process
memory space as underlying backend. It is safe for concurrent use.
*/
func NewMemoryStore() Store {
	return &memoryStore{buckets: make(map[uint64][]*model.Model)}
}

func (ms *memoryStore) Intern(ctx context.Context, m *model.Model) (*model.Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	hash := m.Hash()
	ms.lock.Lock()
	defer ms.lock.Unlock()
	for _, candidate := range ms.buckets[hash] {
		if candidate.Equals(m) {
			return candidate, true, nil
		}
	}
	m.Identify(identifierFor(ms.count))
	ms.buckets[hash] = append(ms.buckets[hash], m)
	ms.count++
	return m, false, nil
}

func (ms *memoryStore) Get(ctx context.Context, hash uint64) ([]*model.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return ms.buckets[hash], nil
}

func (ms *memoryStore) Len(ctx context.Context) (int, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return ms.count, nil
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

type lruStore struct {
	buckets *lru.Cache[uint64, []*model.Model]
	lock    sync.Mutex
	count   int
}

/*
NewLRUStore returns an implementation of Store that keeps at most size
hash buckets, evicting the least recently used ones. Evicted subtrees
are simply rediscovered and re-interned if the search meets them again,
so the bound trades deduplication hit rate for memory on long searches.
*/
func NewLRUStore(size int) (Store, error) {
	buckets, err := lru.New[uint64, []*model.Model](size)
	if err != nil {
		return nil, fmt.Errorf("building lru store: %v", err)
	}
	return &lruStore{buckets: buckets}, nil
}

func (ls *lruStore) Intern(ctx context.Context, m *model.Model) (*model.Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	hash := m.Hash()
	ls.lock.Lock()
	defer ls.lock.Unlock()
	bucket, _ := ls.buckets.Get(hash)
	for _, candidate := range bucket {
		if candidate.Equals(m) {
			return candidate, true, nil
		}
	}
	m.Identify(identifierFor(ls.count))
	ls.buckets.Add(hash, append(bucket, m))
	ls.count++
	return m, false, nil
}

func (ls *lruStore) Get(ctx context.Context, hash uint64) ([]*model.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ls.lock.Lock()
	defer ls.lock.Unlock()
	bucket, _ := ls.buckets.Get(hash)
	return bucket, nil
}

func (ls *lruStore) Len(ctx context.Context) (int, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.count, nil
}

func (ls *lruStore) Close(ctx context.Context) error {
	ls.buckets.Purge()
	return nil
}

// identifierFor encodes an interning ordinal as a bitmask tag.
func identifierFor(ordinal int) *bitmask.Bitmask {
	id := bitmask.New(identifierBits)
	for i := 0; i < identifierBits; i++ {
		if ordinal&(1<<i) != 0 {
			id.Set(i)
		}
	}
	return id
}
