package strongholdtest

import (
	"context"
	"fmt"

	"github.com/stronghold-labs/stronghold"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You
// can use either the Signer or Signers (or both) attribute to
// reference conditions. Each time all signers are considered,
// regardless of which attribute holds them.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when a single signer is enough.
	Signer stronghold.Condition

	// Signers represents an authentication of multiple signers.
	Signers []stronghold.Condition
}

func (a *Auth) GetConditions(stronghold.Context) []stronghold.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasIdentity(ctx stronghold.Context, id stronghold.Identity) bool {
	for _, s := range a.Signers {
		if id.Equals(s.Identity()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return id.Equals(a.Signer.Identity())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx stronghold.Context, permissions ...stronghold.Condition) stronghold.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx stronghold.Context) []stronghold.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]stronghold.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []stronghold.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasIdentity(ctx stronghold.Context, id stronghold.Identity) bool {
	for _, s := range a.GetConditions(ctx) {
		if id.Equals(s.Identity()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
