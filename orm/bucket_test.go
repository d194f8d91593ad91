package orm

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/store"
)

// counter is a tiny model used to exercise the bucket.
type counter struct {
	Count int64 `json:"count"`
}

func (c *counter) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func TestBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	key := []byte("some")
	if err := b.Put(db, key, &counter{Count: 55}); err != nil {
		t.Fatalf("put: %+v", err)
	}

	var loaded counter
	if err := b.One(db, key, &loaded); err != nil {
		t.Fatalf("one: %+v", err)
	}
	if loaded.Count != 55 {
		t.Fatalf("want 55, got %d", loaded.Count)
	}
}

func TestBucketOneMissing(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	var dest counter
	if err := b.One(db, []byte("unknown"), &dest); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestBucketPutInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	if err := b.Put(db, []byte("bad"), &counter{Count: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("want model error, got %+v", err)
	}
	if ok, _ := b.Has(db, []byte("bad")); ok {
		t.Fatal("invalid model must not be persisted")
	}
}

func TestBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	key := []byte("gone")
	if err := b.Put(db, key, &counter{Count: 1}); err != nil {
		t.Fatalf("put: %+v", err)
	}
	if err := b.Delete(db, key); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if err := b.Delete(db, key); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found on second delete, got %+v", err)
	}
}

func TestBucketIsolation(t *testing.T) {
	db := store.MemStore()
	first := NewBucket("aaa")
	second := NewBucket("aab")

	key := []byte("shared")
	if err := first.Put(db, key, &counter{Count: 1}); err != nil {
		t.Fatalf("put: %+v", err)
	}

	if ok, _ := second.Has(db, key); ok {
		t.Fatal("buckets must not share key space")
	}
}

func TestBucketIterator(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")
	other := NewBucket("cnty")

	for i, key := range [][]byte{[]byte("a"), []byte("b"), []byte("c")} {
		if err := b.Put(db, key, &counter{Count: int64(i)}); err != nil {
			t.Fatalf("put: %+v", err)
		}
	}
	// neighbouring bucket data must not leak into iteration
	if err := other.Put(db, []byte("a"), &counter{Count: 99}); err != nil {
		t.Fatalf("put: %+v", err)
	}

	it, err := b.Iterator(db)
	if err != nil {
		t.Fatalf("iterator: %+v", err)
	}
	defer it.Close()

	var keys [][]byte
	for ; it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	if len(keys) != 3 {
		t.Fatalf("want 3 entries, got %d", len(keys))
	}
	if !bytes.Equal(keys[0], []byte("a")) || !bytes.Equal(keys[2], []byte("c")) {
		t.Fatalf("unexpected keys: %q", keys)
	}
}

func TestBucketNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("invalid bucket name must panic")
		}
	}()
	NewBucket("Bad Name!")
}
