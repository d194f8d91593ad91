package treasury

import (
	"encoding/json"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/orm"
)

// Role enumerates every capability class the registry can hold. The
// enum is closed: admin bookkeeping switches on it exhaustively
// instead of comparing runtime types, and the registry key embeds the
// numeric value so that two roles can never collide regardless of any
// human-chosen name.
type Role byte

const (
	// RoleAdmin can grant and revoke any role, including other
	// admins, and deconstruct the treasury.
	RoleAdmin Role = 1
	// RoleMint can issue assets, limited per epoch.
	RoleMint Role = 2
	// RoleBurn marks the holder as a designated burner. Burning
	// itself is gated on the whitelist-class roles below.
	RoleBurn Role = 3
	// RoleDenyAdd can add identities to the deny registry.
	RoleDenyAdd Role = 4
	// RoleDenyRevoke can remove identities from the deny registry.
	RoleDenyRevoke Role = 5
	// RoleWhitelist can hand out and take back whitelist entries.
	RoleWhitelist Role = 6
	// RoleWhitelistEntry is a single whitelisted identity. It is
	// created by a RoleWhitelist holder, not by an admin grant.
	RoleWhitelistEntry Role = 7
)

var roleNames = map[Role]string{
	RoleAdmin:          "admin",
	RoleMint:           "mint",
	RoleBurn:           "burn",
	RoleDenyAdd:        "deny-add",
	RoleDenyRevoke:     "deny-revoke",
	RoleWhitelist:      "whitelist",
	RoleWhitelistEntry: "whitelist-entry",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "invalid"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errors.Wrapf(errors.ErrInput, "role %d", r)
	}
	return nil
}

// IsAdmin reports whether holding this role makes the holder an
// admin. The admin counter is maintained from this method alone, never
// from a caller supplied flag.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// whitelistClass reports whether this role allows burning.
func (r Role) whitelistClass() bool {
	return r == RoleWhitelist || r == RoleWhitelistEntry
}

// Capability is one live permission: a role bound to a holder
// identity. At most one capability per (role, holder) pair exists at
// any time. Only the mint role carries a payload.
type Capability struct {
	Role   Role                `json:"role"`
	Holder stronghold.Identity `json:"holder"`
	Mint   *MintAllowance      `json:"mint,omitempty"`
}

var _ orm.Model = (*Capability)(nil)

func (c *Capability) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Capability) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *Capability) Validate() error {
	if err := c.Role.Validate(); err != nil {
		return errors.Field("Role", err, "invalid role")
	}
	if err := c.Holder.Validate(); err != nil {
		return errors.Field("Holder", err, "invalid holder")
	}
	switch {
	case c.Role == RoleMint && c.Mint == nil:
		return errors.Field("Mint", errors.ErrEmpty, "mint role requires an allowance")
	case c.Role != RoleMint && c.Mint != nil:
		return errors.Field("Mint", errors.ErrInput, "only the mint role carries an allowance")
	}
	if c.Mint != nil {
		return errors.Field("Mint", c.Mint.Validate(), "invalid allowance")
	}
	return nil
}

// MintAllowance limits how much a mint capability may issue within one
// epoch. Remaining never exceeds Limit and resets to Limit lazily, the
// first time an operation observes an epoch newer than the stored one.
type MintAllowance struct {
	Limit     uint64 `json:"limit"`
	Remaining uint64 `json:"remaining"`
	Epoch     int64  `json:"epoch"`
}

func (m *MintAllowance) Validate() error {
	if m.Remaining > m.Limit {
		return errors.Wrapf(errors.ErrState,
			"remaining %d exceeds limit %d", m.Remaining, m.Limit)
	}
	return nil
}

// Charge deducts amount from what remains in the given epoch. Crossing
// into a newer epoch refills the allowance before the deduction. A
// deduction over the remaining amount fails with ErrLimitExceeded and
// leaves the allowance untouched.
func (m *MintAllowance) Charge(epoch int64, amount uint64) error {
	if epoch > m.Epoch {
		m.Remaining = m.Limit
		m.Epoch = epoch
	}
	if amount > m.Remaining {
		return errors.Wrapf(ErrLimitExceeded,
			"requested %d, remaining %d", amount, m.Remaining)
	}
	m.Remaining -= amount
	return nil
}

// NewAdminAuth returns an admin capability for the given holder.
func NewAdminAuth(holder stronghold.Identity) Capability {
	return Capability{Role: RoleAdmin, Holder: holder}
}

// NewMintCap returns a mint capability with a fresh allowance. The
// full limit is spendable in the starting epoch.
func NewMintCap(holder stronghold.Identity, limit uint64, epoch int64) Capability {
	return Capability{
		Role:   RoleMint,
		Holder: holder,
		Mint:   &MintAllowance{Limit: limit, Remaining: limit, Epoch: epoch},
	}
}

// NewBurnCap returns a burner capability for the given holder.
func NewBurnCap(holder stronghold.Identity) Capability {
	return Capability{Role: RoleBurn, Holder: holder}
}

// NewDenyAddCap returns a capability to extend the deny registry.
func NewDenyAddCap(holder stronghold.Identity) Capability {
	return Capability{Role: RoleDenyAdd, Holder: holder}
}

// NewDenyRevokeCap returns a capability to shrink the deny registry.
func NewDenyRevokeCap(holder stronghold.Identity) Capability {
	return Capability{Role: RoleDenyRevoke, Holder: holder}
}

// NewWhitelistCap returns a capability to manage whitelist entries.
func NewWhitelistCap(holder stronghold.Identity) Capability {
	return Capability{Role: RoleWhitelist, Holder: holder}
}

// NewWhitelistEntry returns a whitelist membership for the given
// holder.
func NewWhitelistEntry(holder stronghold.Identity) Capability {
	return Capability{Role: RoleWhitelistEntry, Holder: holder}
}

// Treasury is the persisted aggregate state. The external ledger and
// deny registry references live on the Controller; only the admin
// bookkeeping needs to survive in the store.
type Treasury struct {
	AdminCount uint32 `json:"admin_count"`
}

var _ orm.Model = (*Treasury)(nil)

func (t *Treasury) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Treasury) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, t)
}

func (t *Treasury) Validate() error {
	if t.AdminCount < 1 {
		return errors.Wrap(errors.ErrState, "admin count below one")
	}
	return nil
}
