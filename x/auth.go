// Package x holds the contracts shared by all extensions, most
// importantly the Authenticator used to learn which identities stand
// behind the current operation.
package x

import (
	"github.com/stronghold-labs/stronghold"
)

// Authenticator is an interface we can use to extract authentication
// info from the context. This should be passed into the constructor of
// controllers, so we can plug in another authentication system rather
// than hard-coding one for all extensions.
//
// What fulfills a condition is the host's business. A condition backed
// by a single key and one backed by an N-of-M threshold account both
// surface here as a plain identity.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled.
	GetConditions(stronghold.Context) []stronghold.Condition
	// HasIdentity checks if any condition matches this identity.
	HasIdentity(stronghold.Context, stronghold.Identity) bool
}

// MultiAuth chains together many authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions combines all conditions from all authenticators.
func (m MultiAuth) GetConditions(ctx stronghold.Context) []stronghold.Condition {
	var res []stronghold.Condition
	for _, impl := range m.impls {
		if add := impl.GetConditions(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasIdentity returns true iff any authenticator supports this.
func (m MultiAuth) HasIdentity(ctx stronghold.Context, id stronghold.Identity) bool {
	for _, impl := range m.impls {
		if impl.HasIdentity(ctx, id) {
			return true
		}
	}
	return false
}

// GetIdentities wraps the GetConditions method of any authenticator.
func GetIdentities(ctx stronghold.Context, auth Authenticator) []stronghold.Identity {
	conds := auth.GetConditions(ctx)
	ids := make([]stronghold.Identity, len(conds))
	for i, c := range conds {
		ids[i] = c.Identity()
	}
	return ids
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx stronghold.Context, auth Authenticator) stronghold.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllIdentities returns true if all elements in required are also
// in the context.
func HasAllIdentities(ctx stronghold.Context, auth Authenticator, required []stronghold.Identity) bool {
	for _, r := range required {
		if !auth.HasIdentity(ctx, r) {
			return false
		}
	}
	return true
}
