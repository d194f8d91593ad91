/*
Package orm provides an easy to use db wrapper.

It breaks the state space into prefixed sections called buckets. Each
bucket contains only one type of object, has a primary (possibly
composite) key and supports iteration over its whole key range. No
reflection magic, better a bit of compile-time static boilerplate.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	stronghold.Persistent
	Validate() error
}

// Bucket is a prefixed subspace of the database holding entities of a
// single type. It is a generic building block that should be embedded
// in a type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data under the given name.
// Panics if the name is not a valid bucket name, as this is a startup
// time configuration issue.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the prefix. We
// copy into a new array rather than use append, as we don't want
// consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Has returns true iff an entity with the given key exists in this
// bucket.
func (b Bucket) Has(db stronghold.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// One queries the database for a single entity. Lookup is done by the
// primary key and the result is loaded into the given destination
// model. This method returns ErrNotFound if the entity does not exist
// in the database.
func (b Bucket) One(db stronghold.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "bucket lookup")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

// Put saves the given model in the database under the given key. The
// model is validated before it is persisted.
func (b Bucket) Put(db stronghold.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with the given primary key from the
// database. It returns ErrNotFound if an entity with the given key
// does not exist.
func (b Bucket) Delete(db stronghold.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrap(err, "bucket lookup")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return db.Delete(dbkey)
}

// Iterator returns an iterator over all entities in this bucket, in
// ascending key order. The iterator reports keys with the bucket
// prefix stripped.
func (b Bucket) Iterator(db stronghold.ReadOnlyKVStore) (stronghold.Iterator, error) {
	start, end := prefixRange(b.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{iter: it, skip: len(b.prefix)}, nil
}

// prefixRange turns a prefix into the (start, end) range that covers
// all keys with that prefix. The end of the range is the prefix with
// the last non-0xff byte incremented; a prefix of all 0xff bytes has
// no end (iterate through the last key).
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}

// prefixIterator strips the bucket prefix from reported keys.
type prefixIterator struct {
	iter stronghold.Iterator
	skip int
}

var _ stronghold.Iterator = (*prefixIterator)(nil)

func (p *prefixIterator) Valid() bool   { return p.iter.Valid() }
func (p *prefixIterator) Next() error   { return p.iter.Next() }
func (p *prefixIterator) Key() []byte   { return p.iter.Key()[p.skip:] }
func (p *prefixIterator) Value() []byte { return p.iter.Value() }
func (p *prefixIterator) Close()        { p.iter.Close() }
