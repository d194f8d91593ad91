package stronghold

// This file defines the public interfaces for interacting with stores.
// KVStore/Iterator are the basic objects to use in all extension code.

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid. A nil start iterates from the first key, a nil end
	// through the last one.
	// CONTRACT: no writes may happen within a domain while an
	// iterator exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order.
	// End is exclusive. Start must be greater than end, or the
	// Iterator is invalid.
	// CONTRACT: no writes may happen within a domain while an
	// iterator exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this
// interface. They *may* implement other methods as well, but at least
// these are required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// Iterator allows us to access a set of items within a range of keys.
// These may all be preloaded, or loaded on demand.
//
//	var itr Iterator = ...
//	defer itr.Close()
//
//	for ; itr.Valid(); itr.Next() {
//	    k, v := itr.Key(), itr.Value()
//	    ...
//	}
type Iterator interface {
	// Valid returns whether the current position is valid. Once
	// invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key, as
	// defined by the order of iteration. Panics if Valid is false.
	Next() error

	// Key returns the key of the cursor. Panics if Valid is false.
	// CONTRACT: key is read only.
	Key() []byte

	// Value returns the value of the cursor. Panics if Valid is
	// false.
	// CONTRACT: value is read only.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports CacheWrapping. The cache
// wrap groups temporary writes that may be committed or discarded
// together, like a database savepoint.
//
// Use this instead of KVStore for any code path that must either fully
// commit or fully revert a multi-write mutation.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch-pad of uncommitted data that can be viewed
// with all queries. At the end, call Write to apply the cached
// changes, or Discard to drop them.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// Batch collects write operations to be applied to a store at once.
type Batch interface {
	Set(key, value []byte) error
	Delete(key []byte) error
	Write() error
}

// Model groups a key-value pair as returned by queries and iteration
// helpers.
type Model struct {
	Key   []byte
	Value []byte
}

// Persistent is implemented by anything that can be serialized into
// the store. The encoding must be deterministic for a given value, as
// content-addressed keys are derived from the produced bytes.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
