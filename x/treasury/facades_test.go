package treasury

import (
	"context"
	"testing"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/strongholdtest"
	"github.com/stronghold-labs/stronghold/strongholdtest/assert"
)

func TestMintChargesAllowance(t *testing.T) {
	tt := newTestTreasury(t)
	minter := tt.signer(2)
	recipient := strongholdtest.NewIdentity()

	assert.Nil(t, tt.ctrl.GrantMint(tt.ctx, tt.db, tt.admin, minter, 1000, 1))

	asset, err := tt.ctrl.Mint(tt.ctx, tt.db, minter, recipient, 400)
	assert.Nil(t, err)
	assert.Equal(t, uint64(400), asset.Amount)
	assert.Equal(t, uint64(400), tt.ledger.supply)

	cap, err := tt.ctrl.roles.Get(tt.db, RoleMint, minter)
	assert.Nil(t, err)
	assert.Equal(t, uint64(600), cap.Mint.Remaining)

	// over the remaining allowance, nothing issued
	_, err = tt.ctrl.Mint(tt.ctx, tt.db, minter, recipient, 601)
	assert.IsErr(t, ErrLimitExceeded, err)
	assert.Equal(t, uint64(400), tt.ledger.supply)

	assert.Equal(t, []AuditRecord{
		MintRecord{Amount: 400, To: recipient},
	}, tt.audit.records)
}

func TestMintAllowanceRefillsNextEpoch(t *testing.T) {
	tt := newTestTreasury(t)
	minter := tt.signer(2)
	recipient := strongholdtest.NewIdentity()

	assert.Nil(t, tt.ctrl.GrantMint(tt.ctx, tt.db, tt.admin, minter, 100, 1))

	_, err := tt.ctrl.Mint(tt.ctx, tt.db, minter, recipient, 100)
	assert.Nil(t, err)
	_, err = tt.ctrl.Mint(tt.ctx, tt.db, minter, recipient, 1)
	assert.IsErr(t, ErrLimitExceeded, err)

	// the allowance is whole again in the next epoch
	later := stronghold.WithEpoch(context.Background(), 2)
	_, err = tt.ctrl.Mint(later, tt.db, minter, recipient, 100)
	assert.Nil(t, err)
	assert.Equal(t, uint64(200), tt.ledger.supply)
}

func TestMintRequiresEpoch(t *testing.T) {
	tt := newTestTreasury(t)
	minter := tt.signer(2)

	assert.Nil(t, tt.ctrl.GrantMint(tt.ctx, tt.db, tt.admin, minter, 100, 1))

	_, err := tt.ctrl.Mint(context.Background(), tt.db, minter, minter, 10)
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Equal(t, uint64(0), tt.ledger.supply)
}

func TestMintRequiresCapability(t *testing.T) {
	tt := newTestTreasury(t)
	outsider := tt.signer(2)

	_, err := tt.ctrl.Mint(tt.ctx, tt.db, outsider, outsider, 10)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// even the admin cannot mint without a mint capability
	_, err = tt.ctrl.Mint(tt.ctx, tt.db, tt.admin, outsider, 10)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestBurnRequiresWhitelist(t *testing.T) {
	tt := newTestTreasury(t)
	manager := tt.signer(2)
	user := tt.signer(3)
	minter := tt.signer(4)

	assert.Nil(t, tt.ctrl.GrantMint(tt.ctx, tt.db, tt.admin, minter, 1000, 1))
	assert.Nil(t, tt.ctrl.GrantWhitelist(tt.ctx, tt.db, tt.admin, manager))

	asset, err := tt.ctrl.Mint(tt.ctx, tt.db, minter, user, 500)
	assert.Nil(t, err)

	// not whitelisted yet, the supply must not move
	err = tt.ctrl.Burn(tt.ctx, tt.db, user, asset)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, uint64(500), tt.ledger.supply)

	assert.Nil(t, tt.ctrl.Whitelist(tt.ctx, tt.db, manager, user))
	assert.Nil(t, tt.ctrl.Burn(tt.ctx, tt.db, user, asset))
	assert.Equal(t, uint64(0), tt.ledger.supply)

	// the whitelist manager qualifies for burning as well
	asset, err = tt.ctrl.Mint(tt.ctx, tt.db, minter, manager, 100)
	assert.Nil(t, err)
	assert.Nil(t, tt.ctrl.Burn(tt.ctx, tt.db, manager, asset))
}

func TestUnwhitelistStopsBurning(t *testing.T) {
	tt := newTestTreasury(t)
	manager := tt.signer(2)
	user := tt.signer(3)

	assert.Nil(t, tt.ctrl.GrantWhitelist(tt.ctx, tt.db, tt.admin, manager))
	assert.Nil(t, tt.ctrl.Whitelist(tt.ctx, tt.db, manager, user))

	// a second entry for the same identity is refused
	err := tt.ctrl.Whitelist(tt.ctx, tt.db, manager, user)
	assert.IsErr(t, ErrDuplicateRole, err)

	assert.Nil(t, tt.ctrl.Unwhitelist(tt.ctx, tt.db, manager, user))
	err = tt.ctrl.Unwhitelist(tt.ctx, tt.db, manager, user)
	assert.IsErr(t, ErrMissingRole, err)

	err = tt.ctrl.Burn(tt.ctx, tt.db, user, Asset{Amount: 1})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestDenyRegistryRoundTrip(t *testing.T) {
	tt := newTestTreasury(t)
	adder := tt.signer(2)
	revoker := tt.signer(3)
	target := strongholdtest.NewIdentity()

	assert.Nil(t, tt.ctrl.GrantDenyAdd(tt.ctx, tt.db, tt.admin, adder))
	assert.Nil(t, tt.ctrl.GrantDenyRevoke(tt.ctx, tt.db, tt.admin, revoker))

	// adding and revoking are separate capabilities
	err := tt.ctrl.DenyAdd(tt.ctx, tt.db, revoker, target)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	err = tt.ctrl.DenyRevoke(tt.ctx, tt.db, adder, target)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, tt.ctrl.DenyAdd(tt.ctx, tt.db, adder, target))
	ok, err := tt.deny.Contains(target)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, tt.ctrl.DenyRevoke(tt.ctx, tt.db, revoker, target))
	ok, err = tt.deny.Contains(target)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

// TestTreasuryLifecycle walks the treasury through a full scenario:
// bootstrap, capability distribution, whitelisting, minting up to the
// allowance, and burning the issued amount.
func TestTreasuryLifecycle(t *testing.T) {
	tt := newTestTreasury(t)
	minter := tt.signer(2)
	manager := tt.signer(3)
	user := tt.signer(4)

	assert.Nil(t, tt.ctrl.GrantMint(tt.ctx, tt.db, tt.admin, minter, 1000, 1))
	assert.Nil(t, tt.ctrl.GrantWhitelist(tt.ctx, tt.db, tt.admin, manager))
	assert.Nil(t, tt.ctrl.Whitelist(tt.ctx, tt.db, manager, user))

	asset, err := tt.ctrl.Mint(tt.ctx, tt.db, minter, user, 1000)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), tt.ledger.supply)

	// the allowance is exhausted for this epoch
	_, err = tt.ctrl.Mint(tt.ctx, tt.db, minter, user, 1)
	assert.IsErr(t, ErrLimitExceeded, err)

	assert.Nil(t, tt.ctrl.Burn(tt.ctx, tt.db, user, asset))
	assert.Equal(t, uint64(0), tt.ledger.supply)

	assert.Equal(t, []AuditRecord{
		MintRecord{Amount: 1000, To: user},
		BurnRecord{Amount: 1000, From: user},
	}, tt.audit.records)
}
