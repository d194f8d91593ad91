package strongholdtest

import (
	"encoding/binary"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/crypto"
)

// NewKey returns a random ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a random signature condition.
func NewCondition() stronghold.Condition {
	return NewKey().PublicKey().Condition()
}

// NewIdentity returns the identity of a random signature condition.
func NewIdentity() stronghold.Identity {
	return NewCondition().Identity()
}

// SequenceCondition returns the n-th condition of a deterministic
// sequence. Use it when a test must produce the same participants on
// every run.
func SequenceCondition(n uint64) stronghold.Condition {
	seed := make([]byte, 32)
	binary.BigEndian.PutUint64(seed, n)
	return crypto.PrivKeyEd25519FromSeed(seed).PublicKey().Condition()
}
