package treasury

import (
	"testing"

	"github.com/stronghold-labs/stronghold/store"
	"github.com/stronghold-labs/stronghold/strongholdtest"
	"github.com/stronghold-labs/stronghold/strongholdtest/assert"
)

func TestRegistryBucketAddGetRemove(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()
	holder := strongholdtest.NewIdentity()

	ok, err := bucket.Has(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.Nil(t, bucket.Add(db, NewMintCap(holder, 500, 1)))

	ok, err = bucket.Has(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	cap, err := bucket.Get(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), cap.Mint.Limit)

	removed, err := bucket.Remove(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), removed.Mint.Limit)

	ok, err = bucket.Has(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestRegistryBucketDuplicate(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()
	holder := strongholdtest.NewIdentity()

	assert.Nil(t, bucket.Add(db, NewBurnCap(holder)))
	assert.IsErr(t, ErrDuplicateRole, bucket.Add(db, NewBurnCap(holder)))

	// a different role for the same holder is a different capability
	assert.Nil(t, bucket.Add(db, NewAdminAuth(holder)))
}

func TestRegistryBucketMissing(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()
	holder := strongholdtest.NewIdentity()

	_, err := bucket.Get(db, RoleAdmin, holder)
	assert.IsErr(t, ErrMissingRole, err)

	_, err = bucket.Remove(db, RoleAdmin, holder)
	assert.IsErr(t, ErrMissingRole, err)
}

func TestRegistryBucketNoCrossRoleLookup(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()
	holder := strongholdtest.NewIdentity()

	assert.Nil(t, bucket.Add(db, NewBurnCap(holder)))

	// holding one role must never answer for another
	for _, role := range []Role{RoleAdmin, RoleMint, RoleDenyAdd, RoleDenyRevoke, RoleWhitelist, RoleWhitelistEntry} {
		ok, err := bucket.Has(db, role, holder)
		assert.Nil(t, err)
		if ok {
			t.Errorf("burn capability answered for role %s", role)
		}
	}
}

func TestRegistryBucketUpdate(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()
	holder := strongholdtest.NewIdentity()

	assert.Nil(t, bucket.Add(db, NewMintCap(holder, 500, 1)))

	cap, err := bucket.Get(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Nil(t, cap.Mint.Charge(1, 100))
	assert.Nil(t, bucket.Update(db, cap))

	reloaded, err := bucket.Get(db, RoleMint, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(400), reloaded.Mint.Remaining)

	// updating an unregistered capability must fail
	orphan := NewBurnCap(strongholdtest.NewIdentity())
	assert.IsErr(t, ErrMissingRole, bucket.Update(db, &orphan))
}

func TestRegistryBucketDrain(t *testing.T) {
	db := store.MemStore()
	bucket := NewRegistryBucket()

	caps := []Capability{
		NewAdminAuth(strongholdtest.NewIdentity()),
		NewBurnCap(strongholdtest.NewIdentity()),
		NewWhitelistEntry(strongholdtest.NewIdentity()),
	}
	for _, cap := range caps {
		assert.Nil(t, bucket.Add(db, cap))
	}

	drained, err := bucket.Drain(db)
	assert.Nil(t, err)
	assert.Equal(t, len(caps), len(drained))

	for _, cap := range caps {
		ok, err := bucket.Has(db, cap.Role, cap.Holder)
		assert.Nil(t, err)
		if ok {
			t.Errorf("capability %s for %s survived the drain", cap.Role, cap.Holder)
		}
	}
}
