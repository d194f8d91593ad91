package treasury

import (
	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
)

// Grant helpers build the capability value and route it through
// AddAuthorization. A capability is never pushed to its recipient; an
// admin decides explicitly who receives what.

// GrantAdmin makes target another admin.
func (c *Controller) GrantAdmin(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity) error {
	return c.AddAuthorization(ctx, db, admin, NewAdminAuth(target))
}

// GrantMint allows target to issue up to limit per epoch, starting at
// the given epoch.
func (c *Controller) GrantMint(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity, limit uint64, epoch int64) error {
	return c.AddAuthorization(ctx, db, admin, NewMintCap(target, limit, epoch))
}

// GrantBurn marks target as a designated burner.
func (c *Controller) GrantBurn(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity) error {
	return c.AddAuthorization(ctx, db, admin, NewBurnCap(target))
}

// GrantDenyAdd allows target to extend the deny registry.
func (c *Controller) GrantDenyAdd(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity) error {
	return c.AddAuthorization(ctx, db, admin, NewDenyAddCap(target))
}

// GrantDenyRevoke allows target to shrink the deny registry.
func (c *Controller) GrantDenyRevoke(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity) error {
	return c.AddAuthorization(ctx, db, admin, NewDenyRevokeCap(target))
}

// GrantWhitelist allows target to manage whitelist entries.
func (c *Controller) GrantWhitelist(ctx stronghold.Context, db stronghold.KVStore, admin, target stronghold.Identity) error {
	return c.AddAuthorization(ctx, db, admin, NewWhitelistCap(target))
}

// Mint issues the given amount on the external ledger for the
// recipient. The caller must authenticate and hold a live mint
// capability, and the amount must fit into what remains of the
// allowance for the epoch declared by the host.
func (c *Controller) Mint(ctx stronghold.Context, db stronghold.KVStore, caller, to stronghold.Identity, amount uint64) (Asset, error) {
	if err := c.authorizeRole(ctx, db, RoleMint, caller); err != nil {
		return Asset{}, err
	}
	epoch, err := stronghold.MustGetEpoch(ctx)
	if err != nil {
		return Asset{}, err
	}

	cap, err := c.roles.Get(db, RoleMint, caller)
	if err != nil {
		return Asset{}, err
	}
	if err := cap.Mint.Charge(epoch, amount); err != nil {
		return Asset{}, err
	}
	if err := c.roles.Update(db, cap); err != nil {
		return Asset{}, err
	}

	asset, err := c.ledger.Issue(amount)
	if err != nil {
		return Asset{}, errors.Wrap(err, "ledger issue")
	}
	c.audit.Emit(MintRecord{Amount: amount, To: to})
	return asset, nil
}

// Burn retires the given asset on the external ledger. Burning is open
// to any whitelisted caller: a whitelist entry or the whitelist
// manager capability qualifies, and there is no ledger-side limit.
func (c *Controller) Burn(ctx stronghold.Context, db stronghold.KVStore, caller stronghold.Identity, asset Asset) error {
	if err := c.authorizeWhitelistClass(ctx, db, caller); err != nil {
		return err
	}
	if err := c.ledger.Retire(asset); err != nil {
		return errors.Wrap(err, "ledger retire")
	}
	c.audit.Emit(BurnRecord{Amount: asset.Amount, From: caller})
	return nil
}

// DenyAdd puts target on the external deny registry.
func (c *Controller) DenyAdd(ctx stronghold.Context, db stronghold.KVStore, caller, target stronghold.Identity) error {
	if err := c.authorizeRole(ctx, db, RoleDenyAdd, caller); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	return errors.Wrap(c.deny.Add(target), "deny registry")
}

// DenyRevoke removes target from the external deny registry.
func (c *Controller) DenyRevoke(ctx stronghold.Context, db stronghold.KVStore, caller, target stronghold.Identity) error {
	if err := c.authorizeRole(ctx, db, RoleDenyRevoke, caller); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	return errors.Wrap(c.deny.Remove(target), "deny registry")
}

// Whitelist creates a whitelist entry for target. The caller must hold
// the whitelist manager capability. A second entry for the same target
// fails with ErrDuplicateRole.
func (c *Controller) Whitelist(ctx stronghold.Context, db stronghold.KVStore, caller, target stronghold.Identity) error {
	if err := c.authorizeRole(ctx, db, RoleWhitelist, caller); err != nil {
		return err
	}
	return c.roles.Add(db, NewWhitelistEntry(target))
}

// Unwhitelist consumes the whitelist entry of target. The entry is a
// one-time value: once removed it is gone and burning stops working
// for target immediately.
func (c *Controller) Unwhitelist(ctx stronghold.Context, db stronghold.KVStore, caller, target stronghold.Identity) error {
	if err := c.authorizeRole(ctx, db, RoleWhitelist, caller); err != nil {
		return err
	}
	_, err := c.roles.Remove(db, RoleWhitelistEntry, target)
	return err
}

// authorizeWhitelistClass accepts any whitelist-class capability.
func (c *Controller) authorizeWhitelistClass(ctx stronghold.Context, db stronghold.ReadOnlyKVStore, caller stronghold.Identity) error {
	if _, err := c.loadState(db); err != nil {
		return err
	}
	if !c.auth.HasIdentity(ctx, caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", caller)
	}
	for role := range roleNames {
		if !role.whitelistClass() {
			continue
		}
		switch ok, err := c.roles.Has(db, role, caller); {
		case err != nil:
			return errors.Wrap(err, "registry lookup")
		case ok:
			return nil
		}
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s is not whitelisted", caller)
}
