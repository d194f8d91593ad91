package treasury

import (
	"github.com/stronghold-labs/stronghold"
)

// Asset is a claim issued by the external ledger. The treasury never
// interprets it beyond carrying the amount between issue and retire.
type Asset struct {
	Amount uint64 `json:"amount"`
}

// AssetLedger is the external mint/burn primitive. Given a valid
// capability check on our side, both operations are assumed to
// succeed.
type AssetLedger interface {
	Issue(amount uint64) (Asset, error)
	Retire(asset Asset) error
}

// DenyRegistry is the external membership store keyed by identity.
type DenyRegistry interface {
	Contains(id stronghold.Identity) (bool, error)
	Add(id stronghold.Identity) error
	Remove(id stronghold.Identity) error
}

// AuditRecord is a closed set of events the treasury reports. The
// unexported method keeps the set closed.
type AuditRecord interface {
	auditRecord()
}

// MintRecord reports an executed mint.
type MintRecord struct {
	Amount uint64
	To     stronghold.Identity
}

func (MintRecord) auditRecord() {}

// BurnRecord reports an executed burn.
type BurnRecord struct {
	Amount uint64
	From   stronghold.Identity
}

func (BurnRecord) auditRecord() {}

// AuditSink consumes audit records. Emission is fire-and-forget: the
// sink must not fail the operation and records arrive in commit order.
type AuditSink interface {
	Emit(rec AuditRecord)
}

// NopAudit discards all records.
type NopAudit struct{}

var _ AuditSink = NopAudit{}

func (NopAudit) Emit(AuditRecord) {}
