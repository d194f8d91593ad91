// Package crypto wires signature keys into the condition system. A
// public key yields a condition, and through it the identity that the
// treasury and quorum extensions store and match. The cores never see
// keys, only identities, which is what allows a threshold account to
// stand wherever a single key can.
package crypto

import (
	"golang.org/x/crypto/ed25519"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
)

// ExtensionName is used for the conditions we derive from signature
// keys.
const ExtensionName = "sigs"

// PubKey represents a public key we can verify signatures against.
type PubKey interface {
	Verify(message []byte, sig Signature) bool
	Condition() stronghold.Condition
}

// Signer is the functionality we use from a private key. No
// serialization, to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (Signature, error)
	PublicKey() PublicKey
}

// Signature is a raw signature produced by a Signer.
type Signature []byte

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = PublicKey{}

// Verify verifies the signature was created with this message and
// public key.
func (p PublicKey) Verify(message []byte, sig Signature) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a condition.
func (p PublicKey) Condition() stronghold.Condition {
	return stronghold.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Identity is a shortcut for p.Condition().Identity().
func (p PublicKey) Identity() stronghold.Identity {
	return p.Condition().Identity()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = PrivateKey{}

// Sign returns a matching signature for this private key.
func (p PrivateKey) Sign(message []byte) (Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding public key.
func (p PrivateKey) PublicKey() PublicKey {
	priv := ed25519.PrivateKey(p.Ed25519)
	pub := priv.Public().(ed25519.PublicKey)
	return PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically generates a private key
// from a given seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return PrivateKey{Ed25519: priv}
}
