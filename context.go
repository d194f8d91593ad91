package stronghold

import (
	"context"

	"github.com/stronghold-labs/stronghold/errors"
)

// Context is passed through between the host, middleware, and
// operations. The host enriches it with information operations may not
// produce themselves, such as the current epoch. Each extension, such
// as an authenticator, may add its own keys.
//
// There should exist two functions for every XYZ of type T that we
// want to support in Context:
//
//	WithXYZ(Context, T) Context
//	GetXYZ(Context) (val T, ok bool)
type Context = context.Context

type contextKey int

const (
	contextKeyEpoch contextKey = iota
)

// WithEpoch sets the current epoch for this context. Panics if the
// epoch was set before, to prevent lower-level code from overriding
// host-provided information.
func WithEpoch(ctx Context, epoch int64) Context {
	if _, ok := GetEpoch(ctx); ok {
		panic("epoch already set")
	}
	return context.WithValue(ctx, contextKeyEpoch, epoch)
}

// GetEpoch returns the epoch declared by the host, if set.
//
// Epochs are an opaque, monotonically growing counter. Allowance
// windows reset when an operation observes an epoch newer than the one
// it has stored.
func GetEpoch(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyEpoch).(int64)
	return val, ok
}

// MustGetEpoch returns the epoch declared by the host or an error when
// the host did not declare one.
func MustGetEpoch(ctx Context) (int64, error) {
	epoch, ok := GetEpoch(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "epoch not set")
	}
	return epoch, nil
}
