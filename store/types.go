//nolint
package store

import "github.com/stronghold-labs/stronghold"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = stronghold.ReadOnlyKVStore
type KVStore = stronghold.KVStore
type Iterator = stronghold.Iterator
type CacheableKVStore = stronghold.CacheableKVStore
type KVCacheWrap = stronghold.KVCacheWrap
type Batch = stronghold.Batch
type Model = stronghold.Model

// SetDeleter is the write subset of a KVStore, used as the output of a
// batch.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}
