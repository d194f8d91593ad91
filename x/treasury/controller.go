package treasury

import (
	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/orm"
	"github.com/stronghold-labs/stronghold/x"
)

// Controller owns the treasury aggregate: the authorization registry,
// the admin bookkeeping, and the references to the external asset
// ledger and deny registry. All operations expect the host to
// serialize access to the backing store; run each one inside a cache
// wrap and commit only on success.
type Controller struct {
	auth   x.Authenticator
	ledger AssetLedger
	deny   DenyRegistry
	audit  AuditSink
	roles  RegistryBucket
	state  orm.Bucket
}

// NewController wires a treasury controller. A nil audit sink is
// replaced with a discarding one.
func NewController(auth x.Authenticator, ledger AssetLedger, deny DenyRegistry, audit AuditSink) *Controller {
	if audit == nil {
		audit = NopAudit{}
	}
	return &Controller{
		auth:   auth,
		ledger: ledger,
		deny:   deny,
		audit:  audit,
		roles:  NewRegistryBucket(),
		state:  newStateBucket(),
	}
}

// Bootstrap creates the treasury with exactly one admin. It fails with
// ErrDuplicate when the treasury was already created.
func (c *Controller) Bootstrap(db stronghold.KVStore, initialAdmin stronghold.Identity) error {
	if err := initialAdmin.Validate(); err != nil {
		return errors.Wrap(err, "initial admin")
	}
	switch ok, err := c.state.Has(db, stateKey); {
	case err != nil:
		return errors.Wrap(err, "state lookup")
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "treasury already created")
	}

	if err := c.roles.Add(db, NewAdminAuth(initialAdmin)); err != nil {
		return errors.Wrap(err, "register initial admin")
	}
	return c.state.Put(db, stateKey, &Treasury{AdminCount: 1})
}

// AddAuthorization registers the given capability for its holder. The
// caller must authenticate as admin and the holder must not yet own a
// capability of the same role. Granting another admin capability grows
// the admin count in the same operation.
func (c *Controller) AddAuthorization(ctx stronghold.Context, db stronghold.KVStore, admin stronghold.Identity, cap Capability) error {
	state, err := c.loadState(db)
	if err != nil {
		return err
	}
	if err := c.authorizeAdmin(ctx, db, admin); err != nil {
		return err
	}
	if err := cap.Validate(); err != nil {
		return errors.Wrap(err, "capability")
	}

	if err := c.roles.Add(db, cap); err != nil {
		return err
	}
	if cap.Role.IsAdmin() {
		state.AdminCount++
		return c.state.Put(db, stateKey, state)
	}
	return nil
}

// RemoveAuthorization revokes the capability of the given role from
// target and returns the removed instance. Revocation is immediate.
// Removing an admin capability requires more than one admin to remain,
// otherwise the operation fails with ErrLastAdmin and nothing changes.
func (c *Controller) RemoveAuthorization(ctx stronghold.Context, db stronghold.KVStore, admin stronghold.Identity, role Role, target stronghold.Identity) (*Capability, error) {
	state, err := c.loadState(db)
	if err != nil {
		return nil, err
	}
	if err := c.authorizeAdmin(ctx, db, admin); err != nil {
		return nil, err
	}

	// order matters: the missing role answer must win over the
	// last admin violation, and no write may precede either check
	switch ok, err := c.roles.Has(db, role, target); {
	case err != nil:
		return nil, errors.Wrap(err, "registry lookup")
	case !ok:
		return nil, errors.Wrapf(ErrMissingRole, "%s for %s", role, target)
	}
	if role.IsAdmin() && state.AdminCount <= 1 {
		return nil, errors.Wrap(ErrLastAdmin, "refusing removal")
	}

	removed, err := c.roles.Remove(db, role, target)
	if err != nil {
		return nil, err
	}
	if role.IsAdmin() {
		state.AdminCount--
		if err := c.state.Put(db, stateKey, state); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// Deconstruct unpacks the aggregate: it returns the external ledger
// and deny registry references together with whatever capabilities
// were still registered. Draining the returned capabilities is the
// caller's responsibility. After deconstruction every other operation
// fails with not found.
func (c *Controller) Deconstruct(ctx stronghold.Context, db stronghold.KVStore, admin stronghold.Identity) (AssetLedger, DenyRegistry, []Capability, error) {
	if _, err := c.loadState(db); err != nil {
		return nil, nil, nil, err
	}
	if err := c.authorizeAdmin(ctx, db, admin); err != nil {
		return nil, nil, nil, err
	}

	remaining, err := c.roles.Drain(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := c.state.Delete(db, stateKey); err != nil {
		return nil, nil, nil, err
	}
	return c.ledger, c.deny, remaining, nil
}

// AdminCount returns the current number of admins.
func (c *Controller) AdminCount(db stronghold.ReadOnlyKVStore) (uint32, error) {
	state, err := c.loadState(db)
	if err != nil {
		return 0, err
	}
	return state.AdminCount, nil
}

// HasRole exposes the registry lookup for external callers.
func (c *Controller) HasRole(db stronghold.ReadOnlyKVStore, role Role, holder stronghold.Identity) (bool, error) {
	return c.roles.Has(db, role, holder)
}

func (c *Controller) loadState(db stronghold.ReadOnlyKVStore) (*Treasury, error) {
	var state Treasury
	if err := c.state.One(db, stateKey, &state); err != nil {
		return nil, errors.Wrap(err, "treasury not created")
	}
	return &state, nil
}

// authorizeAdmin verifies that the caller authenticates as the given
// identity and that this identity holds the admin capability.
func (c *Controller) authorizeAdmin(ctx stronghold.Context, db stronghold.ReadOnlyKVStore, admin stronghold.Identity) error {
	return c.authorizeRole(ctx, db, RoleAdmin, admin)
}

// authorizeRole is the witness re-validation every facade goes
// through: the context must authenticate the caller identity and the
// identity must hold a live capability of the required role right now.
func (c *Controller) authorizeRole(ctx stronghold.Context, db stronghold.ReadOnlyKVStore, role Role, caller stronghold.Identity) error {
	if _, err := c.loadState(db); err != nil {
		return err
	}
	if !c.auth.HasIdentity(ctx, caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", caller)
	}
	switch ok, err := c.roles.Has(db, role, caller); {
	case err != nil:
		return errors.Wrap(err, "registry lookup")
	case !ok:
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not hold %s", caller, role)
	}
	return nil
}
