package stronghold

import (
	"context"
	"testing"
)

func TestEpochContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := GetEpoch(ctx); ok {
		t.Fatal("fresh context must not carry an epoch")
	}
	if _, err := MustGetEpoch(ctx); err == nil {
		t.Fatal("missing epoch must be an error")
	}

	ctx = WithEpoch(ctx, 42)
	epoch, ok := GetEpoch(ctx)
	if !ok || epoch != 42 {
		t.Fatalf("want epoch 42, got %d (ok=%v)", epoch, ok)
	}
}

func TestEpochCannotBeOverridden(t *testing.T) {
	ctx := WithEpoch(context.Background(), 1)
	defer func() {
		if recover() == nil {
			t.Fatal("overriding the epoch must panic")
		}
	}()
	WithEpoch(ctx, 2)
}
