package treasury

import (
	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/orm"
)

const (
	// registryBucketName is where we store the granted capabilities.
	registryBucketName = "roles"
	// stateBucketName is where we store the treasury aggregate.
	stateBucketName = "treasury"
)

// stateKey is the singleton key of the treasury aggregate.
var stateKey = []byte("state")

// RegistryBucket is the authorization registry: a type-safe wrapper
// around an orm.Bucket keyed by (role, holder). The role byte leads
// the key, so capabilities of different roles can never shadow each
// other no matter what identity they are held by.
type RegistryBucket struct {
	orm.Bucket
}

// NewRegistryBucket initializes a RegistryBucket with the default
// name.
func NewRegistryBucket() RegistryBucket {
	return RegistryBucket{Bucket: orm.NewBucket(registryBucketName)}
}

// registryKey builds the composite primary key of a capability.
func registryKey(role Role, holder stronghold.Identity) []byte {
	key := make([]byte, 0, len(holder)+1)
	key = append(key, byte(role))
	return append(key, holder...)
}

// Has returns true iff a live capability of exactly this role exists
// for the holder. A capability of another role never matches.
func (b RegistryBucket) Has(db stronghold.ReadOnlyKVStore, role Role, holder stronghold.Identity) (bool, error) {
	return b.Bucket.Has(db, registryKey(role, holder))
}

// Add registers a new capability. It fails with ErrDuplicateRole when
// the holder already owns a capability of the same role.
func (b RegistryBucket) Add(db stronghold.KVStore, cap Capability) error {
	key := registryKey(cap.Role, cap.Holder)
	switch ok, err := b.Bucket.Has(db, key); {
	case err != nil:
		return errors.Wrap(err, "registry lookup")
	case ok:
		return errors.Wrapf(ErrDuplicateRole, "%s for %s", cap.Role, cap.Holder)
	}
	return b.Bucket.Put(db, key, &cap)
}

// Get returns the capability of the given role held by holder. It
// fails with ErrMissingRole when absent. Mutations to the returned
// value are not persisted until Update is called.
func (b RegistryBucket) Get(db stronghold.ReadOnlyKVStore, role Role, holder stronghold.Identity) (*Capability, error) {
	var cap Capability
	err := b.Bucket.One(db, registryKey(role, holder), &cap)
	switch {
	case err == nil:
		return &cap, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrMissingRole, "%s for %s", role, holder)
	default:
		return nil, errors.Wrap(err, "registry lookup")
	}
}

// Update persists a mutated capability. It fails with ErrMissingRole
// when the capability is not registered.
func (b RegistryBucket) Update(db stronghold.KVStore, cap *Capability) error {
	key := registryKey(cap.Role, cap.Holder)
	switch ok, err := b.Bucket.Has(db, key); {
	case err != nil:
		return errors.Wrap(err, "registry lookup")
	case !ok:
		return errors.Wrapf(ErrMissingRole, "%s for %s", cap.Role, cap.Holder)
	}
	return b.Bucket.Put(db, key, cap)
}

// Remove deletes the capability and returns the removed instance. It
// fails with ErrMissingRole when absent. Removal is immediate: the
// very next Has observes the change.
func (b RegistryBucket) Remove(db stronghold.KVStore, role Role, holder stronghold.Identity) (*Capability, error) {
	cap, err := b.Get(db, role, holder)
	if err != nil {
		return nil, err
	}
	if err := b.Bucket.Delete(db, registryKey(role, holder)); err != nil {
		return nil, errors.Wrap(err, "registry delete")
	}
	return cap, nil
}

// Drain removes and returns all capabilities left in the registry, in
// key order.
func (b RegistryBucket) Drain(db stronghold.KVStore) ([]Capability, error) {
	it, err := b.Bucket.Iterator(db)
	if err != nil {
		return nil, errors.Wrap(err, "registry iterator")
	}

	// collect first, the store forbids writes under an open iterator
	var caps []Capability
	for ; it.Valid(); it.Next() {
		var cap Capability
		if err := cap.Unmarshal(it.Value()); err != nil {
			it.Close()
			return nil, errors.Wrap(err, "broken capability")
		}
		caps = append(caps, cap)
	}
	it.Close()

	for _, cap := range caps {
		if err := b.Bucket.Delete(db, registryKey(cap.Role, cap.Holder)); err != nil {
			return nil, errors.Wrap(err, "registry delete")
		}
	}
	return caps, nil
}

// newStateBucket returns the singleton bucket holding the treasury
// aggregate.
func newStateBucket() orm.Bucket {
	return orm.NewBucket(stateBucketName)
}
